package builders

import (
	"github.com/google/uuid"

	"github.com/KirkDiggler/feat-weaver/internal/entities/bg3"
	"github.com/KirkDiggler/feat-weaver/internal/modules"
	"github.com/KirkDiggler/feat-weaver/internal/stats"
)

// AbilityNames is the standard six-ability candidate list
var AbilityNames = []string{"Strength", "Dexterity", "Constitution", "Intelligence", "Wisdom", "Charisma"}

// ModuleBuilder provides a fluent interface for building test Module instances
type ModuleBuilder struct {
	module *modules.Module
}

// NewModuleBuilder creates a valid module at version 1.0.0.0 with an id
// derived from its name
func NewModuleBuilder(name string) *ModuleBuilder {
	m := modules.New("test.zip", name)
	m.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte("module:"+name))
	m.Version = bg3.NewVersion(1, 0, 0, 0)
	return &ModuleBuilder{module: m}
}

// WithID sets the module ID
func (b *ModuleBuilder) WithID(id uuid.UUID) *ModuleBuilder {
	b.module.ID = id
	return b
}

// WithVersion sets the packed version
func (b *ModuleBuilder) WithVersion(version bg3.Version) *ModuleBuilder {
	b.module.Version = version
	return b
}

// WithPackage sets the package the snapshot came from
func (b *ModuleBuilder) WithPackage(pkg string) *ModuleBuilder {
	b.module.Package = pkg
	return b
}

// DependsOn adds dependencies by name
func (b *ModuleBuilder) DependsOn(names ...string) *ModuleBuilder {
	for _, name := range names {
		b.module.Dependencies = append(b.module.Dependencies, bg3.ModuleID{
			ID:   uuid.NewSHA1(uuid.NameSpaceOID, []byte("module:"+name)),
			Name: name,
		})
	}
	return b
}

// WithFeats appends feats
func (b *ModuleBuilder) WithFeats(feats ...*bg3.Feat) *ModuleBuilder {
	b.module.Feats = append(b.module.Feats, feats...)
	return b
}

// WithDescription attaches a description to a feat id
func (b *ModuleBuilder) WithDescription(featID uuid.UUID, displayName, description string) *ModuleBuilder {
	b.module.Descriptions[featID] = bg3.FeatDescription{
		DisplayName: bg3.LocalizedString{Handle: displayName, Version: 1},
		Description: bg3.LocalizedString{Handle: description, Version: 1},
	}
	return b
}

// WithList sets a candidate list
func (b *ModuleBuilder) WithList(listType bg3.ListType, id uuid.UUID, entries ...string) *ModuleBuilder {
	byID, ok := b.module.Lists[listType]
	if !ok {
		byID = make(map[uuid.UUID][]string)
		b.module.Lists[listType] = byID
	}
	byID[id] = entries
	return b
}

// WithAbilityList sets an ability list holding all six abilities
func (b *ModuleBuilder) WithAbilityList(id uuid.UUID) *ModuleBuilder {
	return b.WithList(bg3.ListTypeAbility, id, AbilityNames...)
}

// WithStat adds a stat entry
func (b *ModuleBuilder) WithStat(entry *stats.Entry) *ModuleBuilder {
	b.module.Stats[entry.Name] = entry
	return b
}

// Build returns the module
func (b *ModuleBuilder) Build() *modules.Module {
	return b.module
}
