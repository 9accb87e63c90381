package bg3

import (
	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/google/uuid"

	"github.com/KirkDiggler/feat-weaver/internal/selectors"
)

// EntityTypeFeat is the core.Entity type of a Feat
const EntityTypeFeat = "feat"

// Feat is one selectable feat as defined by a module. It is never modified
// after it has been read.
type Feat struct {
	ID           uuid.UUID
	Name         string
	Repeatable   bool
	Passives     []string
	Requirements string
	Selectors    []selectors.Selector
}

// GetID implements core.Entity
func (f *Feat) GetID() string {
	return f.ID.String()
}

// GetType implements core.Entity
func (f *Feat) GetType() string {
	return EntityTypeFeat
}

// IsSupported reports whether the feat can be expanded, meaning its selector
// chain only holds Ability selectors.
func (f *Feat) IsSupported() bool {
	return selectors.Supported(f.Selectors)
}

var _ core.Entity = (*Feat)(nil)
