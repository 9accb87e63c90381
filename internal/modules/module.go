// Package modules reads module snapshots out of mod packages and merges them
// into one canonical Module per name, in load order.
package modules

import (
	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/google/uuid"

	"github.com/KirkDiggler/feat-weaver/internal/entities/bg3"
	"github.com/KirkDiggler/feat-weaver/internal/stats"
)

// EntityTypeModule is the core.Entity type of a Module
const EntityTypeModule = "module"

// Lists maps a candidate list id to its entries, per list category
type Lists map[bg3.ListType]map[uuid.UUID][]string

// Lookup returns the entries of one list
func (l Lists) Lookup(listType bg3.ListType, id uuid.UUID) ([]string, bool) {
	entries, ok := l[listType][id]
	return entries, ok
}

func (l Lists) set(listType bg3.ListType, id uuid.UUID, entries []string) {
	byID, ok := l[listType]
	if !ok {
		byID = make(map[uuid.UUID][]string)
		l[listType] = byID
	}
	byID[id] = entries
}

// Module is one mod's content. Before merging it is a snapshot of a single
// package; after merging it is the authoritative record for its name and is
// treated as read-only.
type Module struct {
	bg3.ModuleID

	// Package is the package the snapshot came from, empty once merged
	Package      string
	Descriptions map[uuid.UUID]bg3.FeatDescription
	Feats        []*bg3.Feat
	Dependencies []bg3.ModuleID
	Stats        map[string]*stats.Entry
	Lists        Lists
}

// New creates an empty module named after its package folder
func New(pkg, name string) *Module {
	return &Module{
		ModuleID:     bg3.ModuleID{Name: name},
		Package:      pkg,
		Descriptions: make(map[uuid.UUID]bg3.FeatDescription),
		Stats:        make(map[string]*stats.Entry),
		Lists:        make(Lists),
	}
}

// GetID implements core.Entity
func (m *Module) GetID() string {
	return m.ID.String()
}

// GetType implements core.Entity
func (m *Module) GetType() string {
	return EntityTypeModule
}

// IsInteresting reports whether the module is valid and contributes
// descriptions, feats or candidate lists.
func (m *Module) IsInteresting() bool {
	return m.IsValid() &&
		(len(m.Descriptions) > 0 || len(m.Feats) > 0 || len(m.Lists) > 0)
}

// NormalizedName is the module name made safe for stat entry names
func (m *Module) NormalizedName() string {
	return bg3.Normalize(m.Name)
}

var _ core.Entity = (*Module)(nil)
