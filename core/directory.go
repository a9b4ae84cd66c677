package core

import (
	"fmt"
	"net/netip"

	"github.com/encodeous/adcn/state"
	"github.com/gaissmai/bart"
)

// Directory resolves end system addresses to the switch serving them on each network
type Directory struct {
	systems map[netip.Addr]state.SystemCfg
	// one prefix table per network, in configuration order
	tables []*bart.Table[state.SwitchId]
}

func NewDirectory(cfg state.AdcnCfg) *Directory {
	d := &Directory{
		systems: make(map[netip.Addr]state.SystemCfg),
		tables:  make([]*bart.Table[state.SwitchId], 0, len(cfg.Networks)),
	}
	for _, sys := range cfg.Systems {
		d.systems[sys.Addr] = sys
	}
	for _, network := range cfg.Networks {
		tbl := new(bart.Table[state.SwitchId])
		for _, sw := range network.Switches {
			for _, prefix := range sw.Prefixes {
				tbl.Insert(prefix.Masked(), sw.Id)
			}
		}
		d.tables = append(d.tables, tbl)
	}
	return d
}

func (d *Directory) System(addr netip.Addr) (state.SystemCfg, error) {
	sys, ok := d.systems[addr]
	if !ok {
		return state.SystemCfg{}, fmt.Errorf("no end system at %s", addr)
	}
	return sys, nil
}

// Attachment returns the switch serving addr on the given network
func (d *Directory) Attachment(network int, addr netip.Addr) (state.SwitchId, bool) {
	return d.tables[network].Lookup(addr)
}
