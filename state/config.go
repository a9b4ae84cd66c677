package state

import (
	"fmt"
	"net/netip"
	"slices"
	"time"
)

// SwitchId labels an AFDX switch. Ids are not dense, e.g. network A uses 1-7 and 9.
type SwitchId uint8

// BusId names an electrical bus that can supply a switch or an end system
type BusId string

type NetworkId string

type SwitchCfg struct {
	Id       SwitchId
	Supplies []BusId       // the switch is powered if any of these is energized
	Prefixes []netip.Prefix `yaml:",omitempty"` // end system addresses served by this switch
}

// NetworkCfg describes one of the redundant networks
type NetworkCfg struct {
	Id       NetworkId
	Switches []SwitchCfg
	// Links describes the physical wiring, see ParseLinks
	Links []string
}

// SystemCfg describes an end system (CPIOM, IOM, ...) attached to the networks
type SystemCfg struct {
	Name   string
	Addr   netip.Addr
	Supply BusId
}

type AdcnCfg struct {
	Buses    []BusId
	Networks []NetworkCfg
	Systems  []SystemCfg `yaml:",omitempty"`
}

// EventCfg changes a bus or a switch at the start of a tick.
// Exactly one of Bus or Switch is set.
type EventCfg struct {
	Tick     uint64
	Bus      BusId         `yaml:",omitempty"`
	Powered  *bool         `yaml:",omitempty"`
	Switch   SwitchId      `yaml:",omitempty"`
	Failed   *bool         `yaml:",omitempty"`
	Duration time.Duration `yaml:",omitempty"` // a failure lapses after this long, 0 is permanent
}

type ChaosCfg struct {
	Stream      string  `yaml:",omitempty"` // name of the random stream
	Probability float64 // chance per tick that a switch fails
	MaxTicks    int     `yaml:"max_ticks,omitempty"` // longest injected failure
}

type ScenarioCfg struct {
	Interval     time.Duration `yaml:",omitempty"`
	Ticks        uint64        `yaml:",omitempty"` // stop after this many ticks, 0 runs until interrupted
	PoweredBuses []BusId       `yaml:"powered_buses,omitempty"`
	Events       []EventCfg    `yaml:",omitempty"`
	Chaos        *ChaosCfg     `yaml:",omitempty"`
}

func (n *NetworkCfg) SwitchIds() []SwitchId {
	ids := make([]SwitchId, 0, len(n.Switches))
	for _, sw := range n.Switches {
		ids = append(ids, sw.Id)
	}
	slices.Sort(ids)
	return ids
}

// GetLinks parses the wiring of the network into sorted, unique switch pairs
func (n *NetworkCfg) GetLinks() ([]Pair[SwitchId, SwitchId], error) {
	links, err := ParseLinks(n.Links, n.SwitchIds())
	if err != nil {
		return nil, fmt.Errorf("network %s: %w", n.Id, err)
	}
	return links, nil
}

func (c *AdcnCfg) TryGetSwitch(id SwitchId) *SwitchCfg {
	for i := range c.Networks {
		idx := slices.IndexFunc(c.Networks[i].Switches, func(cfg SwitchCfg) bool {
			return cfg.Id == id
		})
		if idx != -1 {
			return &c.Networks[i].Switches[idx]
		}
	}
	return nil
}

func (c *AdcnCfg) IsBus(bus BusId) bool {
	return slices.Contains(c.Buses, bus)
}

func (c *AdcnCfg) GetSystem(addr netip.Addr) (SystemCfg, bool) {
	idx := slices.IndexFunc(c.Systems, func(cfg SystemCfg) bool {
		return cfg.Addr == addr
	})
	if idx == -1 {
		return SystemCfg{}, false
	}
	return c.Systems[idx], true
}

func (s *ScenarioCfg) GetInterval() time.Duration {
	if s.Interval <= 0 {
		return TickInterval
	}
	return s.Interval
}

// EventsAt returns the events scheduled for the given tick in declaration order
func (s *ScenarioCfg) EventsAt(tick uint64) []EventCfg {
	events := make([]EventCfg, 0)
	for _, e := range s.Events {
		if e.Tick == tick {
			events = append(events, e)
		}
	}
	return events
}
