package core

import (
	"fmt"
	"slices"

	"github.com/encodeous/adcn/state"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Topology is the immutable wiring of one network. Switches are addressed by a
// dense index 0..Len()-1 assigned in ascending switch id order.
type Topology struct {
	ids   []state.SwitchId
	index map[state.SwitchId]int
	adj   [][]int
}

// NewTopology builds the wiring from undirected links between switch ids
func NewTopology(ids []state.SwitchId, links []state.Pair[state.SwitchId, state.SwitchId]) (*Topology, error) {
	t, err := newTopology(ids)
	if err != nil {
		return nil, err
	}
	for _, l := range links {
		a, ok := t.index[l.V1]
		if !ok {
			return nil, fmt.Errorf("link %d-%d references unknown switch %d", l.V1, l.V2, l.V1)
		}
		b, ok := t.index[l.V2]
		if !ok {
			return nil, fmt.Errorf("link %d-%d references unknown switch %d", l.V1, l.V2, l.V2)
		}
		if a == b {
			return nil, fmt.Errorf("switch %d is linked to itself", l.V1)
		}
		t.adj[a] = append(t.adj[a], b)
		t.adj[b] = append(t.adj[b], a)
	}
	t.normalize()
	return t, nil
}

// NewTopologyFromAdjacency builds the wiring from neighbour lists indexed by
// dense index. The lists must be symmetric.
func NewTopologyFromAdjacency(ids []state.SwitchId, adj [][]int) (*Topology, error) {
	if !slices.IsSorted(ids) {
		return nil, fmt.Errorf("switch ids must be in ascending order")
	}
	t, err := newTopology(ids)
	if err != nil {
		return nil, err
	}
	if len(adj) != len(ids) {
		return nil, fmt.Errorf("adjacency has %d rows for %d switches", len(adj), len(ids))
	}
	for i, neighs := range adj {
		for _, j := range neighs {
			if j < 0 || j >= len(ids) {
				return nil, fmt.Errorf("switch %d has neighbour index %d out of range", ids[i], j)
			}
			if i == j {
				return nil, fmt.Errorf("switch %d is linked to itself", ids[i])
			}
			if !slices.Contains(adj[j], i) {
				return nil, fmt.Errorf("link %d-%d is not symmetric", ids[i], ids[j])
			}
		}
		t.adj[i] = slices.Clone(neighs)
	}
	t.normalize()
	return t, nil
}

func newTopology(ids []state.SwitchId) (*Topology, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("topology has no switches")
	}
	t := &Topology{
		ids:   slices.Sorted(slices.Values(ids)),
		index: make(map[state.SwitchId]int, len(ids)),
		adj:   make([][]int, len(ids)),
	}
	for i, id := range t.ids {
		if _, ok := t.index[id]; ok {
			return nil, fmt.Errorf("duplicate switch %d", id)
		}
		t.index[id] = i
	}
	return t, nil
}

func (t *Topology) normalize() {
	for i := range t.adj {
		slices.Sort(t.adj[i])
		t.adj[i] = slices.Clip(slices.Compact(t.adj[i]))
	}
}

func (t *Topology) Len() int {
	return len(t.ids)
}

func (t *Topology) check(i int) {
	if i < 0 || i >= len(t.ids) {
		panic(fmt.Sprintf("switch index %d out of range [0, %d)", i, len(t.ids)))
	}
}

// Neighbours returns the switches wired to i. The result must not be modified.
func (t *Topology) Neighbours(i int) []int {
	t.check(i)
	return t.adj[i]
}

func (t *Topology) Id(i int) state.SwitchId {
	t.check(i)
	return t.ids[i]
}

func (t *Topology) Ids() []state.SwitchId {
	return slices.Clone(t.ids)
}

func (t *Topology) Lookup(id state.SwitchId) (int, bool) {
	i, ok := t.index[id]
	return i, ok
}

func (t *Topology) Index(id state.SwitchId) int {
	i, ok := t.index[id]
	if !ok {
		panic(fmt.Sprintf("switch %d is not part of this network", id))
	}
	return i
}

// Components groups the available switches into sets that can reach each other
func (t *Topology) Components(avail []bool) [][]state.SwitchId {
	if len(avail) != len(t.ids) {
		panic(fmt.Sprintf("availability has %d entries for %d switches", len(avail), len(t.ids)))
	}
	g := simple.NewUndirectedGraph()
	for i := range t.adj {
		if avail[i] {
			g.AddNode(simple.Node(i))
		}
	}
	for i, neighs := range t.adj {
		for _, j := range neighs {
			if j > i && avail[i] && avail[j] {
				g.SetEdge(g.NewEdge(simple.Node(i), simple.Node(j)))
			}
		}
	}
	comps := make([][]state.SwitchId, 0)
	for _, cc := range topo.ConnectedComponents(g) {
		comp := make([]state.SwitchId, 0, len(cc))
		for _, n := range cc {
			comp = append(comp, t.ids[n.ID()])
		}
		slices.Sort(comp)
		comps = append(comps, comp)
	}
	slices.SortFunc(comps, func(a, b []state.SwitchId) int {
		return int(a[0]) - int(b[0])
	})
	return comps
}

// IsConnected reports whether every switch can reach every other switch when all are available
func (t *Topology) IsConnected() bool {
	avail := make([]bool, len(t.ids))
	for i := range avail {
		avail[i] = true
	}
	return len(t.Components(avail)) == 1
}
