package core

import (
	"fmt"
	"strings"

	"github.com/encodeous/adcn/state"
)

// RenderTable draws the upper triangular matrix, + for reachable and . for unreachable
func RenderTable(t *Table) string {
	ids := t.topo.Ids()
	sb := strings.Builder{}
	sb.WriteString("    ")
	for _, id := range ids {
		sb.WriteString(fmt.Sprintf("%3d", id))
	}
	sb.WriteString("\n")
	for i, row := range t.rows {
		sb.WriteString(fmt.Sprintf("%3d ", ids[i]))
		sb.WriteString(strings.Repeat("   ", i))
		for _, e := range row {
			if e.Reachable {
				sb.WriteString("  +")
			} else {
				sb.WriteString("  .")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatIds(ids []state.SwitchId) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprint(id))
	}
	return strings.Join(parts, ", ")
}

// Inspect describes the current state of every network
func Inspect(a *Adcn) string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("Tick: %d\n", a.Tick))
	for _, n := range a.Networks {
		sb.WriteString(fmt.Sprintf("\nNetwork %s:\n", n.Id))
		sb.WriteString(" Switches:\n")
		for i, sw := range n.Switches {
			neighs := make([]state.SwitchId, 0)
			for _, j := range n.Topology.Neighbours(i) {
				neighs = append(neighs, n.Topology.Id(j))
			}
			status := "available"
			if !sw.IsAvailable() {
				status = "unavailable"
				if a.Failures.IsFailed(sw.Id) {
					status += " (failed)"
				}
			}
			sb.WriteString(fmt.Sprintf(" - %d: %s, links [%s]\n", sw.Id, status, formatIds(neighs)))
		}
		sb.WriteString(" Partitions:\n")
		comps := n.Topology.Components(n.Availability())
		if len(comps) == 0 {
			sb.WriteString("  (none)\n")
		}
		for _, comp := range comps {
			sb.WriteString(fmt.Sprintf("  - [%s]\n", formatIds(comp)))
		}
		sb.WriteString(" Routing Table:\n")
		sb.WriteString(RenderTable(n.Table))
	}
	return sb.String()
}
