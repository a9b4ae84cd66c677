package core

import (
	"github.com/encodeous/adcn/state"
	"github.com/iti/rngstream"
)

// Chaos randomly fails switches for a random number of ticks
type Chaos struct {
	rng         *rngstream.RngStream
	probability float64
	maxTicks    int
	ids         []state.SwitchId
	repairAt    map[state.SwitchId]uint64
}

func NewChaos(cfg state.ChaosCfg, ids []state.SwitchId) *Chaos {
	name := cfg.Stream
	if name == "" {
		name = state.ChaosStream
	}
	maxTicks := cfg.MaxTicks
	if maxTicks <= 0 {
		maxTicks = state.ChaosMaxTicks
	}
	return &Chaos{
		rng:         rngstream.New(name),
		probability: cfg.Probability,
		maxTicks:    maxTicks,
		ids:         ids,
		repairAt:    make(map[state.SwitchId]uint64),
	}
}

// Step repairs the switches whose injected failure is over, then possibly
// fails another one. It returns the switch it failed, if any.
func (c *Chaos) Step(tick uint64, failures *FailureInjector) (state.SwitchId, bool) {
	for id, at := range c.repairAt {
		if tick >= at {
			failures.Repair(id)
			delete(c.repairAt, id)
		}
	}
	if len(c.ids) == 0 || c.rng.RandU01() >= c.probability {
		return 0, false
	}
	id := c.ids[min(c.rng.RandInt(0, len(c.ids)-1), len(c.ids)-1)]
	if failures.IsFailed(id) {
		return 0, false
	}
	failures.Fail(id, 0)
	c.repairAt[id] = tick + uint64(max(c.rng.RandInt(1, c.maxTicks), 1))
	return id, true
}

// Forget hands the switch back to the scenario, chaos will no longer repair it
func (c *Chaos) Forget(id state.SwitchId) {
	delete(c.repairAt, id)
}
