package core

import (
	"fmt"
	"maps"
	"slices"

	"github.com/encodeous/adcn/state"
)

// SignalWriter is the host simulation's named-signal bus, as seen by publishers
type SignalWriter interface {
	Write(name string, value bool)
}

type SignalReader interface {
	Read(name string) (value bool, ok bool)
}

// ReachableSignal names the signal stating that from can reach to
func ReachableSignal(from, to state.SwitchId) string {
	return fmt.Sprintf("%s_%d_%d_REACHABLE", state.SignalPrefix, from, to)
}

// FailureSignal names the failure injection flag of a switch
func FailureSignal(id state.SwitchId) string {
	return fmt.Sprintf("%s_SWITCH_%d_FAILURE", state.SignalPrefix, id)
}

// MemoryBus keeps the last value written to every signal
type MemoryBus struct {
	values map[string]bool
	writes uint64
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		values: make(map[string]bool),
	}
}

func (b *MemoryBus) Write(name string, value bool) {
	b.values[name] = value
	b.writes++
}

func (b *MemoryBus) Read(name string) (bool, bool) {
	v, ok := b.values[name]
	return v, ok
}

// Writes is the number of writes since the bus was created
func (b *MemoryBus) Writes() uint64 {
	return b.writes
}

func (b *MemoryBus) Names() []string {
	return slices.Sorted(maps.Keys(b.values))
}

// Snapshot copies the current signal values
func (b *MemoryBus) Snapshot() map[string]bool {
	return maps.Clone(b.values)
}
