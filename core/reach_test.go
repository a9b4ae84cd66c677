package core

import (
	"slices"
	"testing"

	"github.com/encodeous/adcn/state"
	"github.com/stretchr/testify/assert"
)

func TestReach_AllAvailable(t *testing.T) {
	topo := networkATopology(t)
	r := NewReach(topo)
	avail := availExcept(topo)
	for i := 0; i < topo.Len(); i++ {
		for j := 0; j < topo.Len(); j++ {
			assert.True(t, r.Reachable(i, j, avail))
		}
	}
}

func TestReach_UnavailableEndpoints(t *testing.T) {
	topo := networkATopology(t)
	r := NewReach(topo)
	avail := availExcept(topo, 5)
	i5 := topo.Index(5)
	assert.False(t, r.Reachable(i5, i5, avail))
	assert.False(t, r.Reachable(i5, 0, avail))
	assert.False(t, r.Reachable(0, i5, avail))
	assert.True(t, r.Reachable(0, topo.Index(6), avail))
}

func TestReach_Isolation(t *testing.T) {
	topo := networkATopology(t)
	r := NewReach(topo)
	avail := availExcept(topo, 2, 3, 9)
	i1 := topo.Index(1)
	assert.True(t, r.Reachable(i1, i1, avail))
	for _, id := range []state.SwitchId{4, 5, 6, 7} {
		assert.False(t, r.Reachable(i1, topo.Index(id), avail))
		assert.False(t, r.Reachable(topo.Index(id), i1, avail))
	}
	assert.True(t, r.Reachable(topo.Index(4), topo.Index(5), avail))
}

func TestReach_Panics(t *testing.T) {
	topo := networkATopology(t)
	r := NewReach(topo)
	avail := availExcept(topo)
	assert.Panics(t, func() { r.Reachable(0, 8, avail) })
	assert.Panics(t, func() { r.Reachable(-1, 0, avail) })
	assert.Panics(t, func() { r.Reachable(0, 1, avail[:3]) })
}

// every availability subset of network A, checked against connected components
func TestReach_MatchesComponents(t *testing.T) {
	topo := networkATopology(t)
	r := NewReach(topo)
	n := topo.Len()
	for mask := 0; mask < 1<<n; mask++ {
		avail := make([]bool, n)
		for i := range avail {
			avail[i] = mask&(1<<i) != 0
		}
		comps := topo.Components(avail)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				want := slices.ContainsFunc(comps, func(c []state.SwitchId) bool {
					return slices.Contains(c, topo.Id(i)) && slices.Contains(c, topo.Id(j))
				})
				if got := r.Reachable(i, j, avail); got != want {
					t.Fatalf("mask %08b: %d->%d got %t, want %t", mask, topo.Id(i), topo.Id(j), got, want)
				}
				if r.Reachable(j, i, avail) != r.Reachable(i, j, avail) {
					t.Fatalf("mask %08b: %d<->%d is not symmetric", mask, topo.Id(i), topo.Id(j))
				}
			}
		}
	}
}

// making another switch available never breaks a path
func TestReach_Monotonic(t *testing.T) {
	topo := networkATopology(t)
	r := NewReach(topo)
	n := topo.Len()
	toAvail := func(mask int) []bool {
		avail := make([]bool, n)
		for i := range avail {
			avail[i] = mask&(1<<i) != 0
		}
		return avail
	}
	for mask := 0; mask < 1<<n; mask++ {
		for k := 0; k < n; k++ {
			if mask&(1<<k) != 0 {
				continue
			}
			before, after := toAvail(mask), toAvail(mask|1<<k)
			for i := 0; i < n; i++ {
				for j := i; j < n; j++ {
					if r.Reachable(i, j, before) && !r.Reachable(i, j, after) {
						t.Fatalf("mask %08b: enabling %d broke %d<->%d", mask, topo.Id(k), topo.Id(i), topo.Id(j))
					}
				}
			}
		}
	}
}
