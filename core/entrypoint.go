package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path"
	"reflect"
	"runtime"
	"slices"
	"syscall"
	"time"

	"github.com/encodeous/adcn/perf"
	"github.com/encodeous/adcn/state"
	"github.com/encodeous/tint"
	"github.com/goccy/go-yaml"
	slogmulti "github.com/samber/slog-multi"
)

var ErrShutdown = errors.New("received shutdown signal")

func setupDebugging() {
	if state.DBG_debug {
		go func() {
			log.Println(http.ListenAndServe(state.DebugAddr, nil))
		}()
	}
}

// ReadConfig loads the network layout. An empty path selects the built-in A380 layout.
func ReadConfig(cfgPath string) (*state.AdcnCfg, error) {
	if cfgPath == "" {
		cfg := state.DefaultConfig()
		return &cfg, nil
	}
	var cfg state.AdcnCfg
	file, err := os.ReadFile(cfgPath)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(file, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", cfgPath, err)
	}
	return &cfg, nil
}

// ReadScenario loads a scenario. An empty path selects the default scenario, which runs until interrupted.
func ReadScenario(scnPath string) (*state.ScenarioCfg, error) {
	if scnPath == "" {
		scn := state.DefaultScenario()
		return &scn, nil
	}
	var scn state.ScenarioCfg
	file, err := os.ReadFile(scnPath)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(file, &scn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", scnPath, err)
	}
	return &scn, nil
}

// LoadAndValidate reads both files and validates them against each other.
// Without a scenario, every bus of the layout is powered.
func LoadAndValidate(cfgPath, scnPath string) (*state.AdcnCfg, *state.ScenarioCfg, error) {
	cfg, err := ReadConfig(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	scn, err := ReadScenario(scnPath)
	if err != nil {
		return nil, nil, err
	}
	if scnPath == "" {
		scn.PoweredBuses = slices.Clone(cfg.Buses)
	}
	err = state.ConfigValidator(cfg)
	if err != nil {
		return nil, nil, err
	}
	err = state.ScenarioValidator(cfg, scn)
	if err != nil {
		return nil, nil, err
	}
	return cfg, scn, nil
}

func NewLogger(logLevel slog.Level, logPath string) (*slog.Logger, error) {
	handlers := make([]slog.Handler, 0)
	handlers = append(handlers,
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:        logLevel,
			AddSource:    false,
			CustomPrefix: "adcn",
			ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
				if attr.Key == "time" {
					return slog.Attr{}
				}
				return attr
			},
		}))

	if logPath != "" {
		err := os.MkdirAll(path.Dir(logPath), 0700)
		if err != nil {
			return nil, err
		}
		f, err := os.OpenFile(logPath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0600)
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, slog.NewTextHandler(f, &slog.HandlerOptions{Level: logLevel}))
	}

	return slog.New(slogmulti.Fanout(handlers...)), nil
}

// Start runs the network until the scenario completes or the process is interrupted
func Start(cfg state.AdcnCfg, scn state.ScenarioCfg, logger *slog.Logger, initState **state.State) error {
	setupDebugging()
	ctx, cancel := context.WithCancelCause(context.Background())

	dispatch := make(chan func(s *state.State) error, 128)

	s := state.State{
		Modules: make(map[string]state.AdcnModule),
		Env: &state.Env{
			Context:         ctx,
			Cancel:          cancel,
			DispatchChannel: dispatch,
			AdcnCfg:         cfg,
			Scenario:        scn,
			Log:             logger,
		},
	}
	if initState != nil {
		*initState = &s
	}

	s.Log.Info("init modules")
	err := initModules(&s)
	if err != nil {
		cancel(err)
		return err
	}
	s.Log.Info("init modules complete")

	s.Log.Info("ADCN is running. To gracefully exit, send SIGINT or Ctrl+C.")

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer signal.Stop(c)
		select {
		case <-c:
			s.Cancel(ErrShutdown)
		case <-ctx.Done():
			return
		}
	}()

	return MainLoop(&s, dispatch)
}

func initModules(s *state.State) error {
	var modules []state.AdcnModule
	modules = append(modules, &Adcn{})

	for _, module := range modules {
		s.Modules[reflect.TypeOf(module).String()] = module
		if err := module.Init(s); err != nil {
			return err
		}
	}
	return nil
}

func MainLoop(s *state.State, dispatch <-chan func(*state.State) error) error {
	s.Log.Debug("started main loop")
	s.Started.Store(true)
	for {
		select {
		case fun := <-dispatch:
			if fun == nil {
				goto endLoop
			}
			start := time.Now()
			err := runDispatched(s, fun)
			if err != nil {
				s.Log.Error("error occurred during dispatch: ", "error", err)
				s.Cancel(err)
			}
			elapsed := time.Since(start)
			perf.DispatchLatency.Add(float64(elapsed.Microseconds()))
			if elapsed > state.DispatchWarnDuration {
				s.Log.Warn("dispatch took a long time!", "fun", runtime.FuncForPC(reflect.ValueOf(fun).Pointer()).Name(), "elapsed", elapsed, "len", len(dispatch))
			}
		case <-s.Context.Done():
			goto endLoop
		}
	}
endLoop:
	s.Log.Info("stopped main loop", "reason", context.Cause(s.Context).Error())
	Stop(s)
	if cause := context.Cause(s.Context); !errors.Is(cause, ErrScenarioComplete) && !errors.Is(cause, ErrShutdown) && !errors.Is(cause, context.Canceled) {
		return cause
	}
	return nil
}

// runDispatched turns a panic in fun into an error so that it cancels the node instead of crashing it
func runDispatched(s *state.State, fun func(*state.State) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fun(s)
}

func Stop(s *state.State) {
	if s.Stopping.Swap(true) {
		return // don't stop twice
	}
	s.Cancel(context.Canceled)
	s.Log.Info("cleaning up modules")
	for moduleName, module := range s.Modules {
		err := module.Cleanup(s)
		if err != nil {
			s.Log.Error("error occurred during Stop: ", "module", moduleName, "error", err)
		}
	}
	s.Log.Info("stopped")
}
