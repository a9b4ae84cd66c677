package state

import (
	"fmt"
	"regexp"
	"slices"
)

var namePattern, _ = regexp.Compile("^[0-9a-z._-]+$")

func NameValidator(s string) error {
	if !namePattern.MatchString(s) {
		return fmt.Errorf("%s is not a valid name, must match pattern %s", s, namePattern.String())
	}
	if len(s) > 100 {
		return fmt.Errorf("len(\"%s\") = %d > 100 is too long", s, len(s))
	}
	return nil
}

func SwitchConfigValidator(cfg *AdcnCfg, sw *SwitchCfg) error {
	if sw.Id == 0 {
		return fmt.Errorf("switch id 0 is reserved")
	}
	if len(sw.Supplies) == 0 {
		return fmt.Errorf("switch %d has no power supply", sw.Id)
	}
	for _, bus := range sw.Supplies {
		if !cfg.IsBus(bus) {
			return fmt.Errorf("switch %d is supplied by undefined bus %s", sw.Id, bus)
		}
	}
	for _, prefix := range sw.Prefixes {
		if !prefix.IsValid() {
			return fmt.Errorf("switch %d has an invalid prefix", sw.Id)
		}
	}
	return nil
}

func ConfigValidator(cfg *AdcnCfg) error {
	for _, bus := range cfg.Buses {
		err := NameValidator(string(bus))
		if err != nil {
			return err
		}
	}
	if len(cfg.Networks) == 0 {
		return fmt.Errorf("at least one network must be defined")
	}
	networks := make([]NetworkId, 0)
	switches := make([]SwitchId, 0)
	for _, network := range cfg.Networks {
		err := NameValidator(string(network.Id))
		if err != nil {
			return err
		}
		if slices.Contains(networks, network.Id) {
			return fmt.Errorf("duplicate network: %s", network.Id)
		}
		networks = append(networks, network.Id)
		if len(network.Switches) == 0 {
			return fmt.Errorf("network %s has no switches", network.Id)
		}
		for _, sw := range network.Switches {
			if slices.Contains(switches, sw.Id) {
				return fmt.Errorf("duplicate switch: %d", sw.Id)
			}
			switches = append(switches, sw.Id)
			err = SwitchConfigValidator(cfg, &sw)
			if err != nil {
				return fmt.Errorf("network %s: %w", network.Id, err)
			}
		}
		_, err = network.GetLinks()
		if err != nil {
			return err
		}
	}
	names := make([]string, 0)
	for _, sys := range cfg.Systems {
		if sys.Name == "" {
			return fmt.Errorf("end system at %s has no name", sys.Addr)
		}
		if slices.Contains(names, sys.Name) {
			return fmt.Errorf("duplicate end system: %s", sys.Name)
		}
		names = append(names, sys.Name)
		if !sys.Addr.IsValid() {
			return fmt.Errorf("end system %s has an invalid address", sys.Name)
		}
		if other, ok := cfg.GetSystem(sys.Addr); ok && other.Name != sys.Name {
			return fmt.Errorf("end systems %s and %s share address %s", other.Name, sys.Name, sys.Addr)
		}
		if !cfg.IsBus(sys.Supply) {
			return fmt.Errorf("end system %s is supplied by undefined bus %s", sys.Name, sys.Supply)
		}
	}
	return nil
}

func ScenarioValidator(cfg *AdcnCfg, scn *ScenarioCfg) error {
	if scn.Interval < 0 {
		return fmt.Errorf("tick interval must not be negative")
	}
	for _, bus := range scn.PoweredBuses {
		if !cfg.IsBus(bus) {
			return fmt.Errorf("powered bus %s is not defined", bus)
		}
	}
	for _, e := range scn.Events {
		switch {
		case e.Bus != "" && e.Switch != 0:
			return fmt.Errorf("event at tick %d must change either a bus or a switch", e.Tick)
		case e.Bus != "":
			if !cfg.IsBus(e.Bus) {
				return fmt.Errorf("event at tick %d: bus %s is not defined", e.Tick, e.Bus)
			}
			if e.Powered == nil {
				return fmt.Errorf("event at tick %d: bus %s needs powered", e.Tick, e.Bus)
			}
		case e.Switch != 0:
			if cfg.TryGetSwitch(e.Switch) == nil {
				return fmt.Errorf("event at tick %d: switch %d is not defined", e.Tick, e.Switch)
			}
			if e.Failed == nil {
				return fmt.Errorf("event at tick %d: switch %d needs failed", e.Tick, e.Switch)
			}
			if e.Duration < 0 {
				return fmt.Errorf("event at tick %d: duration must not be negative", e.Tick)
			}
		default:
			return fmt.Errorf("event at tick %d changes nothing", e.Tick)
		}
	}
	if scn.Chaos != nil {
		if scn.Chaos.Probability < 0 || scn.Chaos.Probability > 1 {
			return fmt.Errorf("chaos probability %f is not within [0, 1]", scn.Chaos.Probability)
		}
		if scn.Chaos.MaxTicks < 0 {
			return fmt.Errorf("chaos max_ticks must not be negative")
		}
	}
	return nil
}
