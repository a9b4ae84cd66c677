package core

import (
	"fmt"
	"log/slog"
	"net/netip"
	"time"

	"github.com/encodeous/adcn/perf"
	"github.com/encodeous/adcn/state"
)

// Network is one of the redundant AFDX networks
type Network struct {
	Id       state.NetworkId
	Topology *Topology
	Table    *Table
	// Switches are in dense index order
	Switches []*Switch
	reach    *Reach
	avail    []bool
}

// Availability is the per switch availability sampled during the last tick, in dense index order
func (n *Network) Availability() []bool {
	return n.avail
}

func (n *Network) recompute() int {
	for i, sw := range n.Switches {
		n.avail[i] = sw.IsAvailable()
	}
	return n.Table.Recompute(n.reach, n.avail)
}

// Controller owns the switches, the topologies and the routing tables of all
// networks and drives the per tick update and publish cycle.
type Controller struct {
	Networks  []*Network
	Directory *Directory
	power     PowerSource
	log       *slog.Logger
	publish   bool
}

func NewController(cfg state.AdcnCfg, power PowerSource, failures FailureSource, log *slog.Logger) (*Controller, error) {
	c := &Controller{
		Directory: NewDirectory(cfg),
		power:     power,
		log:       log,
		// the initial table must be published once
		publish: true,
	}
	for _, ncfg := range cfg.Networks {
		links, err := ncfg.GetLinks()
		if err != nil {
			return nil, err
		}
		t, err := NewTopology(ncfg.SwitchIds(), links)
		if err != nil {
			return nil, fmt.Errorf("network %s: %w", ncfg.Id, err)
		}
		if !t.IsConnected() {
			log.Warn("network is not fully connected even with every switch available", "network", ncfg.Id)
		}
		n := &Network{
			Id:       ncfg.Id,
			Topology: t,
			Table:    NewTable(ncfg.Id, t),
			Switches: make([]*Switch, t.Len()),
			reach:    NewReach(t),
			avail:    make([]bool, t.Len()),
		}
		for _, sw := range ncfg.Switches {
			n.Switches[t.Index(sw.Id)] = NewSwitch(sw, power, failures)
		}
		c.Networks = append(c.Networks, n)
	}
	return c, nil
}

// Update advances every switch by one tick and recomputes the routing table of
// each network in which a switch changed availability.
func (c *Controller) Update() {
	required := make([]bool, len(c.Networks))

	// every switch must be updated before any change flag is read
	for _, n := range c.Networks {
		for _, sw := range n.Switches {
			sw.Update()
		}
	}
	for i, n := range c.Networks {
		for _, sw := range n.Switches {
			if sw.RoutingUpdateRequired() {
				required[i] = true
				c.log.Debug("switch availability changed", "network", n.Id, "switch", sw.Id, "available", sw.IsAvailable())
			}
		}
	}

	c.publish = false
	for i, n := range c.Networks {
		if !required[i] {
			continue
		}
		start := time.Now()
		flips := n.recompute()
		perf.RecomputeLatency.Add(float64(time.Since(start).Microseconds()))
		perf.RecomputesPerSec.Add(1)
		perf.RouteFlipsPerSec.Add(float64(flips))
		dbgPrintRouteChanges(c.log, n, flips)
		c.publish = true
	}
}

// PublishPending is true if the last Update recomputed any network, or if
// nothing has been published yet
func (c *Controller) PublishPending() bool {
	return c.publish
}

// Publish writes the routing tables of all networks if any of them was
// recomputed during the last Update. It reports whether anything was written.
func (c *Controller) Publish(w SignalWriter) bool {
	if !c.publish {
		return false
	}
	for _, n := range c.Networks {
		n.Table.Publish(w)
	}
	perf.PublishesPerSec.Add(1)
	dbgPrintRouteTable(c.log, c.Networks)
	return true
}

func (c *Controller) network(id state.SwitchId) (*Network, bool) {
	for _, n := range c.Networks {
		if _, ok := n.Topology.Lookup(id); ok {
			return n, true
		}
	}
	return nil, false
}

func (c *Controller) Network(id state.NetworkId) *Network {
	for _, n := range c.Networks {
		if n.Id == id {
			return n
		}
	}
	return nil
}

func (c *Controller) Switch(id state.SwitchId) *Switch {
	n, ok := c.network(id)
	if !ok {
		panic(fmt.Sprintf("switch %d not found", id))
	}
	return n.Switches[n.Topology.Index(id)]
}

// SwitchesReachable looks up the routing table. Switches on different networks never reach each other.
func (c *Controller) SwitchesReachable(a, b state.SwitchId) bool {
	na, ok := c.network(a)
	if !ok {
		panic(fmt.Sprintf("switch %d not found", a))
	}
	nb, ok := c.network(b)
	if !ok {
		panic(fmt.Sprintf("switch %d not found", b))
	}
	if na != nb {
		return false
	}
	return na.Table.Reachable(a, b)
}

// SystemsReachable reports, for each network, whether the end systems at a and b can
// exchange data: both must be powered and attached, and their switches must reach each other.
func (c *Controller) SystemsReachable(a, b netip.Addr) ([]bool, error) {
	sysA, err := c.Directory.System(a)
	if err != nil {
		return nil, err
	}
	sysB, err := c.Directory.System(b)
	if err != nil {
		return nil, err
	}
	powered := c.power.IsPowered(sysA.Supply) && c.power.IsPowered(sysB.Supply)
	res := make([]bool, len(c.Networks))
	for i, n := range c.Networks {
		swA, okA := c.Directory.Attachment(i, a)
		swB, okB := c.Directory.Attachment(i, b)
		if !okA || !okB {
			continue
		}
		res[i] = powered && n.Table.Reachable(swA, swB)
	}
	return res, nil
}

func dbgPrintRouteChanges(log *slog.Logger, n *Network, flips int) {
	if state.DBG_log_route_changes {
		log.Debug(fmt.Sprintf("[rc] network %s recomputed, %d entries changed", n.Id, flips))
	}
}

func dbgPrintRouteTable(log *slog.Logger, networks []*Network) {
	if state.DBG_log_route_table {
		for _, n := range networks {
			log.Debug(fmt.Sprintf("--- route table %s ---\n%s", n.Id, RenderTable(n.Table)))
		}
	}
}
