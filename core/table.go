package core

import (
	"fmt"

	"github.com/encodeous/adcn/state"
)

// Entry states whether two switches of a network can reach each other. From <= To.
type Entry struct {
	From, To  state.SwitchId
	Reachable bool
	names     [2]string
}

func (e Entry) String() string {
	return fmt.Sprintf("%d<->%d: %t", e.From, e.To, e.Reachable)
}

// Table is the routing table of one network, stored as an upper triangular
// matrix: row i holds the entries (i, j) for j >= i.
type Table struct {
	Network state.NetworkId
	topo    *Topology
	rows    [][]Entry
}

func NewTable(network state.NetworkId, t *Topology) *Table {
	tbl := &Table{
		Network: network,
		topo:    t,
		rows:    make([][]Entry, t.Len()),
	}
	for i := range tbl.rows {
		row := make([]Entry, 0, t.Len()-i)
		for j := i; j < t.Len(); j++ {
			from, to := t.Id(i), t.Id(j)
			row = append(row, Entry{
				From:  from,
				To:    to,
				names: [2]string{ReachableSignal(from, to), ReachableSignal(to, from)},
			})
		}
		tbl.rows[i] = row
	}
	return tbl
}

// Recompute runs a full sweep over every pair and returns how many entries changed
func (t *Table) Recompute(r *Reach, avail []bool) int {
	flips := 0
	for i, row := range t.rows {
		for k := range row {
			reachable := r.Reachable(i, i+k, avail)
			if row[k].Reachable != reachable {
				flips++
				row[k].Reachable = reachable
			}
		}
	}
	return flips
}

// Publish writes every entry in both directions
func (t *Table) Publish(w SignalWriter) {
	for _, row := range t.rows {
		for _, e := range row {
			w.Write(e.names[0], e.Reachable)
			w.Write(e.names[1], e.Reachable)
		}
	}
}

func (t *Table) entry(a, b state.SwitchId) *Entry {
	i, j := t.topo.Index(a), t.topo.Index(b)
	if i > j {
		i, j = j, i
	}
	return &t.rows[i][j-i]
}

func (t *Table) Reachable(a, b state.SwitchId) bool {
	return t.entry(a, b).Reachable
}

// Len is the number of entries, n(n+1)/2 for n switches
func (t *Table) Len() int {
	n := t.topo.Len()
	return n * (n + 1) / 2
}

// Entries lists the entries row by row
func (t *Table) Entries() []Entry {
	entries := make([]Entry, 0, t.Len())
	for _, row := range t.rows {
		entries = append(entries, row...)
	}
	return entries
}
