package core

import (
	"slices"

	"github.com/encodeous/adcn/state"
)

type PowerSource interface {
	IsPowered(bus state.BusId) bool
}

type FailureSource interface {
	IsFailed(id state.SwitchId) bool
}

// Switch is an AFDX switch. It is available while at least one of its
// supplies is powered and it is not failed.
type Switch struct {
	Id       state.SwitchId
	Supplies []state.BusId
	power    PowerSource
	failures FailureSource

	available bool
	// previous-value cache for the edge trigger
	prev    bool
	hasPrev bool
	changed bool
}

func NewSwitch(cfg state.SwitchCfg, power PowerSource, failures FailureSource) *Switch {
	return &Switch{
		Id:       cfg.Id,
		Supplies: slices.Clone(cfg.Supplies),
		power:    power,
		failures: failures,
	}
}

// Update samples the supplies and the failure flag for this tick
func (s *Switch) Update() {
	powered := slices.ContainsFunc(s.Supplies, s.power.IsPowered)
	s.available = powered && !s.failures.IsFailed(s.Id)

	// the first tick has nothing to compare against and always counts as a change
	s.changed = !s.hasPrev || s.available != s.prev
	s.prev = s.available
	s.hasPrev = true
}

func (s *Switch) IsAvailable() bool {
	return s.available
}

// RoutingUpdateRequired is true if the availability changed during the last Update
func (s *Switch) RoutingUpdateRequired() bool {
	return s.changed
}
