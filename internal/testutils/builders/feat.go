// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/google/uuid"

	"github.com/KirkDiggler/feat-weaver/internal/entities/bg3"
	"github.com/KirkDiggler/feat-weaver/internal/selectors"
)

// FeatBuilder provides a fluent interface for building test Feat instances
type FeatBuilder struct {
	feat *bg3.Feat
}

// NewFeatBuilder creates a builder for a feat with no selectors
func NewFeatBuilder(name string) *FeatBuilder {
	return &FeatBuilder{
		feat: &bg3.Feat{
			ID:   uuid.NewSHA1(uuid.NameSpaceOID, []byte("feat:"+name)),
			Name: name,
		},
	}
}

// WithID sets the feat ID
func (b *FeatBuilder) WithID(id uuid.UUID) *FeatBuilder {
	b.feat.ID = id
	return b
}

// Repeatable marks the feat as takeable more than once
func (b *FeatBuilder) Repeatable() *FeatBuilder {
	b.feat.Repeatable = true
	return b
}

// WithPassives sets the passives the feat grants
func (b *FeatBuilder) WithPassives(passives ...string) *FeatBuilder {
	b.feat.Passives = passives
	return b
}

// WithRequirements sets the feat requirement expression
func (b *FeatBuilder) WithRequirements(requirements string) *FeatBuilder {
	b.feat.Requirements = requirements
	return b
}

// WithAbilitySelector appends a SelectAbilities selector
func (b *FeatBuilder) WithAbilitySelector(list uuid.UUID, count, maxIncrement int, label string) *FeatBuilder {
	b.feat.Selectors = append(b.feat.Selectors, selectors.Ability{List: list, Count: count, Max: maxIncrement, Label: label})
	return b
}

// WithSelector appends an arbitrary selector
func (b *FeatBuilder) WithSelector(sel selectors.Selector) *FeatBuilder {
	b.feat.Selectors = append(b.feat.Selectors, sel)
	return b
}

// Build returns the feat
func (b *FeatBuilder) Build() *bg3.Feat {
	return b.feat
}
