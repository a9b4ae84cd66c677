package core

import (
	"fmt"
	"time"

	"github.com/encodeous/adcn/state"
	"github.com/jellydator/ttlcache/v3"
)

// BusSet holds the energization of the electrical buses. Unknown buses are unpowered.
type BusSet struct {
	powered map[state.BusId]bool
}

func NewBusSet(powered ...state.BusId) *BusSet {
	b := &BusSet{
		powered: make(map[state.BusId]bool),
	}
	for _, bus := range powered {
		b.powered[bus] = true
	}
	return b
}

func (b *BusSet) SetPowered(bus state.BusId, powered bool) {
	b.powered[bus] = powered
}

func (b *BusSet) IsPowered(bus state.BusId) bool {
	return b.powered[bus]
}

// FailureInjector holds the failure flags of the switches. A failure set with
// a duration lapses on its own once the duration has passed.
type FailureInjector struct {
	failures *ttlcache.Cache[state.SwitchId, time.Time]
}

func NewFailureInjector() *FailureInjector {
	return &FailureInjector{
		failures: ttlcache.New[state.SwitchId, time.Time](
			ttlcache.WithTTL[state.SwitchId, time.Time](ttlcache.NoTTL),
			ttlcache.WithDisableTouchOnHit[state.SwitchId, time.Time](),
		),
	}
}

// Fail marks the switch as failed. A zero duration never lapses.
func (f *FailureInjector) Fail(id state.SwitchId, duration time.Duration) {
	ttl := ttlcache.NoTTL
	if duration > 0 {
		ttl = duration
	}
	f.failures.Set(id, time.Now(), ttl)
}

func (f *FailureInjector) Repair(id state.SwitchId) {
	f.failures.Delete(id)
}

func (f *FailureInjector) IsFailed(id state.SwitchId) bool {
	return f.failures.Get(id) != nil
}

// Write accepts failure flags named like FailureSignal, so that the injector
// can sit behind the same signal bus as the host simulation.
func (f *FailureInjector) Write(name string, value bool) {
	var id state.SwitchId
	_, err := fmt.Sscanf(name, state.SignalPrefix+"_SWITCH_%d_FAILURE", &id)
	if err != nil || FailureSignal(id) != name {
		panic("not a switch failure signal: " + name)
	}
	if value {
		f.Fail(id, 0)
	} else {
		f.Repair(id)
	}
}
