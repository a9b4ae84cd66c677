package state

import (
	"net/netip"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNameValidator_Valid(t *testing.T) {
	assert.NoError(t, NameValidator("1"))
	assert.NoError(t, NameValidator("dc-ess"))
	assert.NoError(t, NameValidator("dc-gnd-flt-service"))
	assert.NoError(t, NameValidator("net_a.1"))
}

func TestNameValidator_Invalid(t *testing.T) {
	assert.Error(t, NameValidator("DC1"))
	assert.Error(t, NameValidator("dc 1"))
	assert.Error(t, NameValidator(""))
	assert.Error(t, NameValidator("\t"))
	assert.Error(t, NameValidator("dc-1\\hi"))
	assert.Error(t, NameValidator(strings.Repeat("a", 200)))
}

func validConfig() AdcnCfg {
	return AdcnCfg{
		Buses: []BusId{"main", "backup"},
		Networks: []NetworkCfg{
			{
				Id: "x",
				Switches: []SwitchCfg{
					{Id: 1, Supplies: []BusId{"main"}, Prefixes: []netip.Prefix{netip.MustParsePrefix("10.0.1.0/24")}},
					{Id: 2, Supplies: []BusId{"main", "backup"}},
				},
				Links: []string{"1, 2"},
			},
		},
		Systems: []SystemCfg{
			{Name: "iom-1", Addr: netip.MustParseAddr("10.0.1.1"), Supply: "main"},
		},
	}
}

func TestConfigValidator_Valid(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, ConfigValidator(&cfg))
}

func TestConfigValidator_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		modify func(cfg *AdcnCfg)
		err    string
	}{
		{"bus name", func(cfg *AdcnCfg) { cfg.Buses = append(cfg.Buses, "Main") }, "Main is not a valid name"},
		{"no networks", func(cfg *AdcnCfg) { cfg.Networks = nil }, "at least one network"},
		{"duplicate network", func(cfg *AdcnCfg) {
			n := cfg.Networks[0]
			n.Switches = []SwitchCfg{{Id: 3, Supplies: []BusId{"main"}}}
			n.Links = nil
			cfg.Networks = append(cfg.Networks, n)
		}, "duplicate network: x"},
		{"empty network", func(cfg *AdcnCfg) { cfg.Networks[0].Switches = nil; cfg.Networks[0].Links = nil }, "network x has no switches"},
		{"duplicate switch", func(cfg *AdcnCfg) {
			cfg.Networks = append(cfg.Networks, NetworkCfg{
				Id:       "y",
				Switches: []SwitchCfg{{Id: 2, Supplies: []BusId{"main"}}},
			})
		}, "duplicate switch: 2"},
		{"reserved id", func(cfg *AdcnCfg) { cfg.Networks[0].Switches[0].Id = 0 }, "switch id 0 is reserved"},
		{"no supply", func(cfg *AdcnCfg) { cfg.Networks[0].Switches[1].Supplies = nil }, "switch 2 has no power supply"},
		{"undefined supply", func(cfg *AdcnCfg) { cfg.Networks[0].Switches[1].Supplies = []BusId{"apu"} }, "undefined bus apu"},
		{"bad link", func(cfg *AdcnCfg) { cfg.Networks[0].Links = []string{"1, 5"} }, "5 is not a valid switch/group"},
		{"unnamed system", func(cfg *AdcnCfg) { cfg.Systems[0].Name = "" }, "has no name"},
		{"duplicate system", func(cfg *AdcnCfg) {
			cfg.Systems = append(cfg.Systems, SystemCfg{Name: "iom-1", Addr: netip.MustParseAddr("10.0.1.2"), Supply: "main"})
		}, "duplicate end system: iom-1"},
		{"shared address", func(cfg *AdcnCfg) {
			cfg.Systems = append(cfg.Systems, SystemCfg{Name: "iom-2", Addr: netip.MustParseAddr("10.0.1.1"), Supply: "main"})
		}, "share address 10.0.1.1"},
		{"invalid address", func(cfg *AdcnCfg) { cfg.Systems[0].Addr = netip.Addr{} }, "invalid address"},
		{"system supply", func(cfg *AdcnCfg) { cfg.Systems[0].Supply = "apu" }, "end system iom-1 is supplied by undefined bus apu"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)
			assert.ErrorContains(t, ConfigValidator(&cfg), tt.err)
		})
	}
}

func TestScenarioValidator(t *testing.T) {
	on := true
	cfg := validConfig()
	tests := []struct {
		name string
		scn  ScenarioCfg
		err  string
	}{
		{"negative interval", ScenarioCfg{Interval: -time.Second}, "tick interval"},
		{"undefined powered bus", ScenarioCfg{PoweredBuses: []BusId{"apu"}}, "powered bus apu is not defined"},
		{"both", ScenarioCfg{Events: []EventCfg{{Bus: "main", Switch: 1, Powered: &on}}}, "either a bus or a switch"},
		{"nothing", ScenarioCfg{Events: []EventCfg{{Tick: 4}}}, "event at tick 4 changes nothing"},
		{"undefined bus", ScenarioCfg{Events: []EventCfg{{Bus: "apu", Powered: &on}}}, "bus apu is not defined"},
		{"bus without powered", ScenarioCfg{Events: []EventCfg{{Bus: "main"}}}, "needs powered"},
		{"undefined switch", ScenarioCfg{Events: []EventCfg{{Switch: 9, Failed: &on}}}, "switch 9 is not defined"},
		{"switch without failed", ScenarioCfg{Events: []EventCfg{{Switch: 1}}}, "needs failed"},
		{"negative duration", ScenarioCfg{Events: []EventCfg{{Switch: 1, Failed: &on, Duration: -1}}}, "duration must not be negative"},
		{"probability", ScenarioCfg{Chaos: &ChaosCfg{Probability: 1.5}}, "not within [0, 1]"},
		{"max ticks", ScenarioCfg{Chaos: &ChaosCfg{Probability: 0.5, MaxTicks: -1}}, "max_ticks"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorContains(t, ScenarioValidator(&cfg, &tt.scn), tt.err)
		})
	}

	valid := ScenarioCfg{
		Ticks:        10,
		PoweredBuses: []BusId{"main"},
		Events: []EventCfg{
			{Tick: 1, Bus: "backup", Powered: &on},
			{Tick: 2, Switch: 2, Failed: &on, Duration: time.Second},
		},
		Chaos: &ChaosCfg{Probability: 0.1},
	}
	assert.NoError(t, ScenarioValidator(&cfg, &valid))
}
