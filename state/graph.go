package state

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

type linkParser struct {
	switches map[string]SwitchId
	// group -> sorted member symbols
	groups   map[string][]string
	expanded map[string][]SwitchId
}

func (p *linkParser) symbols(s string) ([]string, error) {
	line := make([]string, 0)
	for _, x := range strings.Split(s, ",") {
		x = strings.TrimSpace(x)
		if x == "" {
			continue
		}
		_, isSwitch := p.switches[x]
		_, isGroup := p.groups[x]
		if !isSwitch && !isGroup {
			return nil, fmt.Errorf(`%s is not a valid switch/group`, x)
		}
		line = append(line, x)
	}
	if len(line) == 0 {
		return nil, fmt.Errorf(`switch/group list must not be empty`)
	}
	slices.Sort(line)
	return line, nil
}

// expand resolves a symbol to the switches it stands for. stack holds the groups being resolved.
func (p *linkParser) expand(sym string, stack []string) ([]SwitchId, error) {
	if id, ok := p.switches[sym]; ok {
		return []SwitchId{id}, nil
	}
	if ids, ok := p.expanded[sym]; ok {
		return ids, nil
	}
	if i := slices.Index(stack, sym); i != -1 {
		return nil, fmt.Errorf("cycle detected in links: %v", stack[i:])
	}
	stack = append(stack, sym)
	ids := make([]SwitchId, 0)
	for _, member := range p.groups[sym] {
		sub, err := p.expand(member, stack)
		if err != nil {
			return nil, err
		}
		ids = append(ids, sub...)
	}
	slices.Sort(ids)
	ids = slices.Compact(ids)
	p.expanded[sym] = ids
	return ids, nil
}

/*
ParseLinks reads the wiring of a network. The syntax is:

	ring = 4, 5, 6

	1, 2 // switch 1 and switch 2 are wired to each other

	3, ring // switch 3 is wired to 4, 5 and 6, but 4, 5 and 6 are not wired together

	ring, ring // every member of ring is wired to every other member

	1, 3, 9 // 1, 3 and 9 are all wired to each other

Self links are dropped. The result is sorted and free of duplicates.
*/
func ParseLinks(links []string, switches []SwitchId) ([]Pair[SwitchId, SwitchId], error) {
	p := &linkParser{
		switches: make(map[string]SwitchId, len(switches)),
		groups:   make(map[string][]string),
		expanded: make(map[string][]SwitchId),
	}
	for _, id := range switches {
		p.switches[strconv.Itoa(int(id))] = id
	}

	// pass 0, collect group names so that groups may reference each other in any order
	defs := make(map[string]string)
	lines := make([]string, 0)
	for _, line := range links {
		line = strings.ToLower(strings.TrimSpace(line))
		name, members, ok := strings.Cut(line, "=")
		if !ok {
			lines = append(lines, line)
			continue
		}
		if strings.Contains(members, "=") {
			return nil, fmt.Errorf("invalid link: %s. group definition must contain one '='", line)
		}
		name = strings.TrimSpace(name)
		if _, err := strconv.Atoi(name); err == nil {
			return nil, fmt.Errorf("group name must not be a switch id: %s", name)
		}
		if err := NameValidator(name); err != nil {
			return nil, fmt.Errorf("invalid link: %s. %w", line, err)
		}
		if _, ok := defs[name]; ok {
			return nil, fmt.Errorf("duplicate group name: %s", name)
		}
		defs[name] = members
		p.groups[name] = nil
	}

	// pass 1, check members and expand every group, used or not
	for _, name := range slices.Sorted(maps.Keys(defs)) {
		members, err := p.symbols(defs[name])
		if err != nil {
			return nil, err
		}
		p.groups[name] = members
	}
	for _, name := range slices.Sorted(maps.Keys(defs)) {
		if _, err := p.expand(name, nil); err != nil {
			return nil, err
		}
	}

	// pass 2, every symbol on a line is wired to every other
	pairs := make([]Pair[SwitchId, SwitchId], 0)
	for _, line := range lines {
		syms, err := p.symbols(line)
		if err != nil {
			return nil, err
		}
		if len(syms) < 2 {
			return nil, fmt.Errorf("invalid link, %v", syms)
		}
		for i, a := range syms {
			xs, _ := p.expand(a, nil)
			for _, b := range syms[:i] {
				ys, _ := p.expand(b, nil)
				for _, x := range xs {
					for _, y := range ys {
						if x != y {
							pairs = append(pairs, MakeSortedPair(x, y))
						}
					}
				}
			}
		}
	}
	SortPairs(pairs)
	return slices.Compact(pairs), nil
}
