package core

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/encodeous/adcn/state"
	"github.com/stretchr/testify/assert"
)

// SignalHarness records every signal write in order
type SignalHarness struct {
	writes []string
}

func (h *SignalHarness) Write(name string, value bool) {
	h.writes = append(h.writes, fmt.Sprintf("%s=%t", name, value))
}

func (h *SignalHarness) Len() int {
	return len(h.writes)
}

func (h *SignalHarness) Reset() {
	h.writes = h.writes[:0]
}

func (h *SignalHarness) AssertWrote(t *testing.T, name string, value bool) {
	t.Helper()
	assert.True(t, slices.Contains(h.writes, fmt.Sprintf("%s=%t", name, value)),
		"expected %s=%t in:\n%s", name, value, strings.Join(h.writes, "\n"))
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// networkA is the dense wiring of network A, switches 1-7 and 9
var networkA = struct {
	ids []state.SwitchId
	adj [][]int
}{
	ids: []state.SwitchId{1, 2, 3, 4, 5, 6, 7, 9},
	adj: [][]int{
		{1, 2, 7},
		{0, 3, 7},
		{0, 3, 4, 6, 7},
		{1, 2, 5, 6, 7},
		{2, 5, 6},
		{3, 4, 6},
		{2, 3, 4, 5},
		{0, 1, 2, 3},
	},
}

func networkATopology(t *testing.T) *Topology {
	t.Helper()
	topo, err := NewTopologyFromAdjacency(networkA.ids, networkA.adj)
	if err != nil {
		t.Fatal(err)
	}
	return topo
}

// availExcept marks every switch of the topology available except the given ids
func availExcept(topo *Topology, down ...state.SwitchId) []bool {
	avail := make([]bool, topo.Len())
	for i := range avail {
		avail[i] = !slices.Contains(down, topo.Id(i))
	}
	return avail
}

func newTestAdcn(t *testing.T, scn state.ScenarioCfg) *Adcn {
	t.Helper()
	a, err := NewAdcn(state.DefaultConfig(), scn, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func allPowered() state.ScenarioCfg {
	return state.DefaultScenario()
}
