package core

import (
	"log/slog"

	"github.com/encodeous/adcn/state"
)

// Scenario plays scripted bus and switch events, plus chaos if configured
type Scenario struct {
	cfg   state.ScenarioCfg
	chaos *Chaos
	log   *slog.Logger
}

func NewScenario(cfg state.ScenarioCfg, ids []state.SwitchId, log *slog.Logger) *Scenario {
	s := &Scenario{
		cfg: cfg,
		log: log,
	}
	if cfg.Chaos != nil && cfg.Chaos.Probability > 0 {
		s.chaos = NewChaos(*cfg.Chaos, ids)
	}
	return s
}

// Done is true once the configured number of ticks has run
func (s *Scenario) Done(tick uint64) bool {
	return s.cfg.Ticks != 0 && tick >= s.cfg.Ticks
}

// Apply applies the events due at the start of the tick
func (s *Scenario) Apply(tick uint64, buses *BusSet, failures *FailureInjector) {
	for _, e := range s.cfg.EventsAt(tick) {
		switch {
		case e.Bus != "" && e.Powered != nil:
			buses.SetPowered(e.Bus, *e.Powered)
			s.log.Info("bus changed", "tick", tick, "bus", e.Bus, "powered", *e.Powered)
		case e.Switch != 0 && e.Failed != nil:
			// a scripted event owns the switch from now on
			if s.chaos != nil {
				s.chaos.Forget(e.Switch)
			}
			if *e.Failed {
				failures.Fail(e.Switch, e.Duration)
				s.log.Info("switch failed", "tick", tick, "switch", e.Switch, "duration", e.Duration)
			} else {
				failures.Repair(e.Switch)
				s.log.Info("switch repaired", "tick", tick, "switch", e.Switch)
			}
		}
	}
	if s.chaos != nil {
		if id, ok := s.chaos.Step(tick, failures); ok {
			s.log.Info("chaos failed switch", "tick", tick, "switch", id)
		}
	}
}
