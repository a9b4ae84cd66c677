package core

import (
	"errors"
	"log/slog"

	"github.com/encodeous/adcn/state"
)

var ErrScenarioComplete = errors.New("scenario complete")

// Adcn is the avionics data communication network together with the
// simulated environment it reads from and publishes to.
type Adcn struct {
	*Controller
	Buses    *BusSet
	Failures *FailureInjector
	Signals  *MemoryBus
	Scenario *Scenario
	// Tick is the number of completed ticks
	Tick uint64
}

func NewAdcn(cfg state.AdcnCfg, scn state.ScenarioCfg, log *slog.Logger) (*Adcn, error) {
	a := &Adcn{
		Buses:    NewBusSet(scn.PoweredBuses...),
		Failures: NewFailureInjector(),
		Signals:  NewMemoryBus(),
	}
	c, err := NewController(cfg, a.Buses, a.Failures, log)
	if err != nil {
		return nil, err
	}
	a.Controller = c
	ids := make([]state.SwitchId, 0)
	for _, n := range c.Networks {
		ids = append(ids, n.Topology.Ids()...)
	}
	a.Scenario = NewScenario(scn, ids, log)
	return a, nil
}

// Step runs one tick: scenario events, switch and routing update, publication.
// It reports whether the routing tables were published.
func (a *Adcn) Step() bool {
	a.Scenario.Apply(a.Tick, a.Buses, a.Failures)
	a.Update()
	published := a.Publish(a.Signals)
	if published && state.DBG_log_signals {
		for _, name := range a.Signals.Names() {
			v, _ := a.Signals.Read(name)
			a.log.Debug("signal", "name", name, "value", v)
		}
	}
	a.Tick++
	return published
}

// Run steps until the scenario is done. The scenario must have a tick limit.
func (a *Adcn) Run() {
	if a.Scenario.cfg.Ticks == 0 {
		panic("scenario runs forever")
	}
	for !a.Scenario.Done(a.Tick) {
		a.Step()
	}
}

func (a *Adcn) Init(s *state.State) error {
	s.Log.Debug("init adcn")
	na, err := NewAdcn(s.AdcnCfg, s.Scenario, s.Log)
	if err != nil {
		return err
	}
	*a = *na
	s.RepeatTask(adcnTick, s.Scenario.GetInterval())
	return nil
}

func (a *Adcn) Cleanup(s *state.State) error {
	s.Log.Info("adcn stopped", "ticks", a.Tick, "signal writes", a.Signals.Writes())
	return nil
}

func adcnTick(s *state.State) error {
	a := Get[*Adcn](s)
	if a.Scenario.Done(a.Tick) {
		s.Cancel(ErrScenarioComplete)
		return nil
	}
	if a.Step() {
		s.Log.Debug("routing tables published", "tick", a.Tick-1)
	}
	return nil
}
