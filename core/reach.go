package core

import "fmt"

// Reach answers reachability questions over one topology using breadth-first
// search. Its buffers are sized once, so a Reach must not be shared between
// goroutines.
type Reach struct {
	topo    *Topology
	visited []bool
	queue   []int
}

func NewReach(t *Topology) *Reach {
	return &Reach{
		topo:    t,
		visited: make([]bool, t.Len()),
		queue:   make([]int, 0, t.Len()),
	}
}

// Reachable reports whether a chain of available switches connects src to dst.
// An unavailable source reaches nothing, not even itself.
func (r *Reach) Reachable(src, dst int, avail []bool) bool {
	r.topo.check(src)
	r.topo.check(dst)
	if len(avail) != r.topo.Len() {
		panic(fmt.Sprintf("availability has %d entries for %d switches", len(avail), r.topo.Len()))
	}
	if !avail[src] {
		return false
	}

	clear(r.visited)
	// every switch is queued at most once, so the queue never grows past its capacity
	r.queue = append(r.queue[:0], src)
	r.visited[src] = true

	for head := 0; head < len(r.queue); head++ {
		node := r.queue[head]
		if node == dst {
			return true
		}
		for _, neigh := range r.topo.adj[node] {
			if avail[neigh] && !r.visited[neigh] {
				r.visited[neigh] = true
				r.queue = append(r.queue, neigh)
			}
		}
	}
	return false
}
