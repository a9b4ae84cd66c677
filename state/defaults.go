package state

import (
	"fmt"
	"net/netip"
)

const (
	BusDc1     BusId = "dc-1"
	BusDc2     BusId = "dc-2"
	BusDcEss   BusId = "dc-ess"
	BusDcGndFl BusId = "dc-gnd-flt-service"
)

// a380Links is the wiring shared by both networks, written for network A
var a380Links = [][2]SwitchId{
	{1, 2}, {1, 3}, {1, 9},
	{2, 4}, {2, 9},
	{3, 4}, {3, 5}, {3, 7}, {3, 9},
	{4, 6}, {4, 7}, {4, 9},
	{5, 6}, {5, 7},
	{6, 7},
}

// a380NetworkB maps a network A switch to its twin on network B
var a380NetworkB = map[SwitchId]SwitchId{
	1: 11, 2: 12, 3: 13, 4: 14, 5: 15, 6: 16, 7: 17, 9: 19,
}

// a380Systems lists the CPIOMs and IOMs. Each module of a CPIOM family shares
// one switch, the IOMs share switch 9.
var a380Systems = []struct {
	name   string
	sw     SwitchId // network A attachment, the twin serves network B
	host   byte
	supply BusId
}{
	{"cpiom-a1", 1, 11, BusDc1}, {"cpiom-a2", 1, 12, BusDcEss}, {"cpiom-a3", 1, 13, BusDcEss}, {"cpiom-a4", 1, 14, BusDc2},
	{"cpiom-b1", 2, 11, BusDc1}, {"cpiom-b2", 2, 12, BusDcEss}, {"cpiom-b3", 2, 13, BusDcEss}, {"cpiom-b4", 2, 14, BusDc2},
	{"cpiom-c1", 3, 11, BusDcEss}, {"cpiom-c2", 3, 12, BusDc2},
	{"cpiom-d1", 4, 11, BusDc1}, {"cpiom-d3", 4, 13, BusDc1},
	{"cpiom-e1", 5, 11, BusDc1}, {"cpiom-e2", 5, 12, BusDc2},
	{"cpiom-f1", 6, 11, BusDcEss}, {"cpiom-f2", 6, 12, BusDcGndFl}, {"cpiom-f3", 6, 13, BusDcEss}, {"cpiom-f4", 6, 14, BusDcGndFl},
	{"cpiom-g1", 7, 11, BusDc1}, {"cpiom-g2", 7, 12, BusDc2}, {"cpiom-g3", 7, 13, BusDc2}, {"cpiom-g4", 7, 14, BusDc2},
	{"iom-a1", 9, 11, BusDcEss}, {"iom-a2", 9, 12, BusDc2}, {"iom-a3", 9, 13, BusDcEss}, {"iom-a4", 9, 14, BusDc2},
	{"iom-a5", 9, 15, BusDcEss}, {"iom-a6", 9, 16, BusDc2}, {"iom-a7", 9, 17, BusDcEss}, {"iom-a8", 9, 18, BusDc2},
}

// switchPrefix is the subnet served by switch id of network A and by its twin
func switchPrefix(id SwitchId) netip.Prefix {
	return netip.PrefixFrom(netip.AddrFrom4([4]byte{10, 0, byte(id), 0}), 24)
}

func defaultSystems() []SystemCfg {
	systems := make([]SystemCfg, 0, len(a380Systems))
	for _, sys := range a380Systems {
		systems = append(systems, SystemCfg{
			Name:   sys.name,
			Addr:   netip.AddrFrom4([4]byte{10, 0, byte(sys.sw), sys.host}),
			Supply: sys.supply,
		})
	}
	return systems
}

// attach gives every switch of network A its prefix, and the same prefix to the twin on network B
func attach(cfg *AdcnCfg) {
	for a, b := range a380NetworkB {
		prefix := switchPrefix(a)
		for _, id := range []SwitchId{a, b} {
			sw := cfg.TryGetSwitch(id)
			sw.Prefixes = append(sw.Prefixes, prefix)
		}
	}
}

func formatLinks(offset map[SwitchId]SwitchId) []string {
	links := make([]string, 0, len(a380Links))
	for _, l := range a380Links {
		a, b := l[0], l[1]
		if offset != nil {
			a, b = offset[a], offset[b]
		}
		links = append(links, formatLink(a, b))
	}
	return links
}

func formatLink(a, b SwitchId) string {
	return fmt.Sprintf("%d, %d", a, b)
}

// DefaultConfig returns the A380 avionics data communication network: two
// identically wired networks of eight switches each, with the CPIOMs and IOMs attached.
func DefaultConfig() AdcnCfg {
	cfg := AdcnCfg{
		Buses: []BusId{BusDc1, BusDc2, BusDcEss, BusDcGndFl},
		Networks: []NetworkCfg{
			{
				Id: "a",
				Switches: []SwitchCfg{
					{Id: 1, Supplies: []BusId{BusDcEss}},
					{Id: 2, Supplies: []BusId{BusDc2}},
					{Id: 3, Supplies: []BusId{BusDcEss}},
					{Id: 4, Supplies: []BusId{BusDc2}},
					{Id: 5, Supplies: []BusId{BusDcEss}},
					{Id: 6, Supplies: []BusId{BusDc2}},
					{Id: 7, Supplies: []BusId{BusDc2}},
					{Id: 9, Supplies: []BusId{BusDcEss}},
				},
				Links: formatLinks(nil),
			},
			{
				Id: "b",
				Switches: []SwitchCfg{
					{Id: 11, Supplies: []BusId{BusDc1, BusDcEss}},
					{Id: 12, Supplies: []BusId{BusDc1}},
					{Id: 13, Supplies: []BusId{BusDc1, BusDcEss}},
					{Id: 14, Supplies: []BusId{BusDc1}},
					{Id: 15, Supplies: []BusId{BusDc1, BusDcEss}},
					{Id: 16, Supplies: []BusId{BusDc1}},
					{Id: 17, Supplies: []BusId{BusDc1}},
					{Id: 19, Supplies: []BusId{BusDc1, BusDcEss}},
				},
				Links: formatLinks(a380NetworkB),
			},
		},
		Systems: defaultSystems(),
	}
	attach(&cfg)
	return cfg
}

// DefaultScenario powers every bus and runs until interrupted
func DefaultScenario() ScenarioCfg {
	return ScenarioCfg{
		Interval:     TickInterval,
		PoweredBuses: []BusId{BusDc1, BusDc2, BusDcEss, BusDcGndFl},
	}
}
