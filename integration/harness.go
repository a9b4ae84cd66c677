//go:build integration

package integration

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/encodeous/adcn/core"
	"github.com/encodeous/adcn/state"
)

type Signal chan bool

func NewSignal() Signal {
	return make(chan bool)
}
func (s Signal) Trigger() {
	select {
	case <-s:
	default:
		close(s)
	}
}
func (s Signal) Triggered() bool {
	select {
	case <-s:
		return true
	default:
		return false
	}
}
func (s Signal) Wait() {
	<-s
}

// RealtimeHarness runs the network on its own main loop, like the run command does
type RealtimeHarness struct {
	Cfg      state.AdcnCfg
	Scenario state.ScenarioCfg
	State    *state.State
	Done     Signal
}

func NewRealtimeHarness() *RealtimeHarness {
	scn := state.DefaultScenario()
	scn.Interval = 5 * time.Millisecond
	return &RealtimeHarness{
		Cfg:      state.DefaultConfig(),
		Scenario: scn,
	}
}

func (v *RealtimeHarness) Start() chan error {
	errChan := make(chan error, 8)
	v.Done = NewSignal()
	logger, err := core.NewLogger(slog.LevelDebug, "")
	if err != nil {
		errChan <- err
		return errChan
	}
	go func() {
		defer v.Done.Trigger()
		if err := core.Start(v.Cfg, v.Scenario, logger, &v.State); err != nil {
			errChan <- err
		}
	}()
	// wait for the main loop to start
	for v.State == nil || !v.State.Started.Load() {
		select {
		case err := <-errChan:
			errChan <- err
			return errChan
		case <-time.After(time.Millisecond * 10):
		}
	}
	return errChan
}

// Do runs fun on the main loop
func (v *RealtimeHarness) Do(fun func(a *core.Adcn) any) (any, error) {
	return v.State.DispatchWait(func(s *state.State) (any, error) {
		return fun(core.Get[*core.Adcn](s)), nil
	})
}

func (v *RealtimeHarness) Read(name string) (bool, error) {
	res, err := v.Do(func(a *core.Adcn) any {
		val, _ := a.Signals.Read(name)
		return val
	})
	if err != nil {
		return false, err
	}
	return res.(bool), nil
}

// WaitFor polls the signal until it holds the value
func (v *RealtimeHarness) WaitFor(name string, value bool, timeout time.Duration) error {
	deadline := time.After(timeout)
	for {
		val, err := v.Read(name)
		if err != nil {
			return err
		}
		if val == value {
			return nil
		}
		select {
		case <-deadline:
			return fmt.Errorf("timed out waiting for %s=%t", name, value)
		case <-time.After(v.Scenario.GetInterval()):
		}
	}
}

func (v *RealtimeHarness) Stop() {
	println("Stopping RealtimeHarness")
	v.State.Cancel(context.Canceled)
	v.Done.Wait()
	println("Stopped RealtimeHarness")
}
