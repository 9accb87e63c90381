package wiring

import (
	"sort"

	"github.com/KirkDiggler/feat-weaver/internal/stats"
)

// Collector is the build context of one weaving run. It is not safe for
// concurrent use.
type Collector struct {
	wiring SpellWiring
	boosts map[string][]*stats.Entry
	spells map[string][]*stats.Entry
}

// NewCollector creates an empty collector
func NewCollector() *Collector {
	return &Collector{
		wiring: make(SpellWiring),
		boosts: make(map[string][]*stats.Entry),
		spells: make(map[string][]*stats.Entry),
	}
}

// NewTier creates a tier beneath parent and returns it for filling
func (c *Collector) NewTier(parent string) Tier {
	tier := make(Tier)
	c.wiring.Add(parent, tier)
	return tier
}

// AddSpell records a generated spell for a module
func (c *Collector) AddSpell(module string, entry *stats.Entry) {
	c.spells[module] = append(c.spells[module], entry)
}

// AddBoost records a generated boost for a module
func (c *Collector) AddBoost(module string, entry *stats.Entry) {
	c.boosts[module] = append(c.boosts[module], entry)
}

// Wiring returns the collected wiring tree
func (c *Collector) Wiring() SpellWiring {
	return c.wiring
}

// Spells returns the spells generated for a module in generation order
func (c *Collector) Spells(module string) []*stats.Entry {
	return c.spells[module]
}

// Boosts returns the boosts generated for a module in generation order
func (c *Collector) Boosts(module string) []*stats.Entry {
	return c.boosts[module]
}

// SpellCount is the number of spells generated across all modules
func (c *Collector) SpellCount() int {
	return countEntries(c.spells)
}

// BoostCount is the number of boosts generated across all modules
func (c *Collector) BoostCount() int {
	return countEntries(c.boosts)
}

// Modules returns every module with generated entries, sorted
func (c *Collector) Modules() []string {
	seen := make(map[string]struct{}, len(c.spells))
	for module := range c.spells {
		seen[module] = struct{}{}
	}
	for module := range c.boosts {
		seen[module] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for module := range seen {
		names = append(names, module)
	}
	sort.Strings(names)
	return names
}

func countEntries(byModule map[string][]*stats.Entry) int {
	total := 0
	for _, entries := range byModule {
		total += len(entries)
	}
	return total
}
