// Package wiring collects the generated stat entries of a run and the tree
// that tells the game which child spells to attach beneath each container
// spell, per module.
package wiring

import "sort"

// Tier maps a normalized module name to the spells it contributes beneath
// one parent spell. A module with an empty list is still recorded so that it
// overrides earlier modules that did contribute spells.
type Tier map[string][]string

// Add records the module and appends any non-empty spell names
func (t Tier) Add(module string, spells ...string) {
	list, ok := t[module]
	if !ok {
		list = []string{}
	}
	for _, spell := range spells {
		if spell != "" {
			list = append(list, spell)
		}
	}
	t[module] = list
}

// HasEntries reports whether any module contributes at least one spell
func (t Tier) HasEntries() bool {
	for _, spells := range t {
		if len(spells) > 0 {
			return true
		}
	}
	return false
}

// Modules returns the recorded module names, sorted
func (t Tier) Modules() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SpellWiring maps a parent spell to its tiers
type SpellWiring map[string][]Tier

// Add appends a tier beneath a parent spell
func (w SpellWiring) Add(parent string, tier Tier) {
	w[parent] = append(w[parent], tier)
}

// Clean removes tiers without entries, then parents left without tiers.
func (w SpellWiring) Clean() {
	for parent, tiers := range w {
		kept := tiers[:0]
		for _, tier := range tiers {
			if tier.HasEntries() {
				kept = append(kept, tier)
			}
		}
		if len(kept) == 0 {
			delete(w, parent)
			continue
		}
		w[parent] = kept
	}
}
