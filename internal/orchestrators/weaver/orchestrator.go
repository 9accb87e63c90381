// Package weaver turns merged modules into generated feat spells. Every feat
// becomes a tree of shouts: containers for each pending selector and one
// actionable spell plus boost per fully resolved choice path.
package weaver

//go:generate mockgen -destination=mock/mock_service.go -package=weavermock github.com/KirkDiggler/feat-weaver/internal/orchestrators/weaver Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/google/uuid"

	"github.com/KirkDiggler/feat-weaver/internal/entities/bg3"
	"github.com/KirkDiggler/feat-weaver/internal/errors"
	"github.com/KirkDiggler/feat-weaver/internal/expansion"
	"github.com/KirkDiggler/feat-weaver/internal/modules"
	"github.com/KirkDiggler/feat-weaver/internal/stats"
	"github.com/KirkDiggler/feat-weaver/internal/wiring"
)

// DefaultMaxLeaves bounds the number of spells generated per run, containers
// included, so a choice tree that never completes is bounded too
const DefaultMaxLeaves = 100000

// Service defines the interface for feat weaving
type Service interface {
	Weave(ctx context.Context, input *WeaveInput) (*WeaveOutput, error)
}

// Config holds the settings for the weaver
type Config struct {
	MaxLeaves int
	// EventBus receives one event per woven feat and per inert registration
	EventBus events.EventBus
}

// Validate ensures the settings are usable
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidatePositive("MaxLeaves", c.MaxLeaves, vb)
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	return vb.Build()
}

type orchestrator struct {
	maxLeaves int
	eventBus  events.EventBus
}

// NewOrchestrator creates a new weaver
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		maxLeaves: cfg.MaxLeaves,
		eventBus:  cfg.EventBus,
	}, nil
}

// run is the build context of a single Weave call
type run struct {
	ctx       context.Context
	eventBus  events.EventBus
	modules   []*modules.Module
	collector *wiring.Collector
	maxLeaves int
	generated int
	output    *WeaveOutput
}

// Weave generates spells, boosts and wiring for every feat. Modules are
// visited latest-loaded first so every forward scan walks from a module
// towards the modules it builds on.
func (o *orchestrator) Weave(ctx context.Context, input *WeaveInput) (*WeaveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	ordered := make([]*modules.Module, len(input.LoadOrder))
	for i, module := range input.LoadOrder {
		ordered[len(ordered)-1-i] = module
	}

	collector := wiring.NewCollector()
	r := &run{
		ctx:       ctx,
		eventBus:  o.eventBus,
		modules:   ordered,
		collector: collector,
		maxLeaves: o.maxLeaves,
		output:    &WeaveOutput{Collector: collector},
	}

	for _, featID := range r.featIDs() {
		if err := ctx.Err(); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeCanceled, "weave canceled")
		}
		if err := r.weaveFeat(featID); err != nil {
			return nil, err
		}
	}

	r.output.Spells = collector.SpellCount()
	r.output.Boosts = collector.BoostCount()

	slog.InfoContext(ctx, "Woven feats",
		"feats", r.output.Feats,
		"unsupported", r.output.FeatsUnsupported,
		"spells", r.output.Spells,
		"boosts", r.output.Boosts,
		"pruned", r.output.CandidatesPruned)

	return r.output, nil
}

// featIDs returns every feat id once, in module then feat order
func (r *run) featIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, module := range r.modules {
		for _, feat := range module.Feats {
			if _, ok := seen[feat.ID]; ok {
				continue
			}
			seen[feat.ID] = struct{}{}
			ids = append(ids, feat.ID)
		}
	}
	return ids
}

func (r *run) weaveFeat(featID uuid.UUID) error {
	r.output.Feats++
	tier := r.collector.NewTier(BaseContainer)

	var first *bg3.Feat
	for index, module := range r.modules {
		feat := findFeat(module, featID)
		if feat == nil {
			continue
		}
		if first == nil {
			first = feat
		}

		if !feat.IsSupported() {
			slog.DebugContext(r.ctx, "Registering unsupported feat",
				"feat", feat.Name,
				"module", module.Name)
			r.output.FeatsUnsupported++
			tier.Add(module.NormalizedName())
			if err := r.publish(bg3.EventFeatUnsupported, feat, module); err != nil {
				return err
			}
			continue
		}

		prefix := feat.Name + "_" + module.NormalizedName()
		description := r.describe(index, feat)
		state := expansion.NewState(feat.Selectors)
		if err := r.generate(prefix, index, feat, description, BaseContainer, tier, state); err != nil {
			return errors.Wrapf(err, "failed to weave feat %s from %s", feat.Name, module.Name).
				WithMeta("feat", feat.ID.String())
		}
	}
	return r.publish(bg3.EventFeatWoven, first, nil)
}

// publish sends a feat event with the feat as source and, when set, the
// defining module as target
func (r *run) publish(eventType string, feat *bg3.Feat, module *modules.Module) error {
	var target core.Entity
	if module != nil {
		target = module
	}
	if err := r.eventBus.Publish(r.ctx, events.NewGameEvent(eventType, feat, target)); err != nil {
		return errors.Wrapf(err, "failed to publish %s", eventType).
			WithMeta("feat", feat.Name)
	}
	return nil
}

func findFeat(module *modules.Module, featID uuid.UUID) *bg3.Feat {
	for _, feat := range module.Feats {
		if feat.ID == featID {
			return feat
		}
	}
	return nil
}

func (r *run) generate(
	prefix string,
	moduleIndex int,
	feat *bg3.Feat,
	description bg3.FeatDescription,
	container string,
	tier wiring.Tier,
	state *expansion.State,
) error {
	module := r.modules[moduleIndex]
	moduleName := module.NormalizedName()

	r.generated++
	if r.generated > r.maxLeaves {
		return errors.ResourceExhaustedf("feat expansion exceeded %d generated spells", r.maxLeaves).
			WithMeta("feat", feat.Name)
	}

	spell := r.spell(spellPrefix+prefix, container, feat, description, state)
	r.collector.AddSpell(moduleName, spell)
	tier.Add(moduleName, spell.Name)

	if state.IsComplete() {
		boostName := boostPrefix + prefix
		boost := newBoost(boostName).
			Add(stats.KeyPassives, feat.Passives...).
			Add(stats.KeyBoosts, state.Boosts()...)
		r.collector.AddBoost(moduleName, boost)
		spell.Add(stats.KeySpellProperties, applyStatus(boostName))
		return nil
	}

	head := state.Head()
	listType, err := bg3.ListTypeFor(head)
	if err != nil {
		return err
	}

	childTier := r.collector.NewTier(spell.Name)

	supplierIndex, candidates, ok := r.candidates(moduleIndex, listType, head.ListID())
	if !ok {
		slog.WarnContext(r.ctx, "No module supplies the candidate list",
			"feat", feat.Name,
			"module", module.Name,
			"list", head.ListID().String())
		return nil
	}
	supplier := r.modules[supplierIndex].NormalizedName()

	choices, err := state.Expand(candidates)
	if err != nil {
		return err
	}
	r.output.CandidatesPruned += len(candidates) - len(choices)

	for _, choice := range choices {
		childDescription, ok := abilityDescriptions[choice.Label]
		if !ok {
			return errors.Unimplementedf("no description for ability %q", choice.Label).
				WithMeta("candidate", choice.Label)
		}

		childPrefix := prefix + "_" + choice.Label + "_" + supplier
		if err := r.generate(childPrefix, supplierIndex, feat, childDescription, spell.Name, childTier, choice.State); err != nil {
			return err
		}
	}
	return nil
}

func (r *run) spell(name, container string, feat *bg3.Feat, description bg3.FeatDescription, state *expansion.State) *stats.Entry {
	var spell *stats.Entry
	if state.IsComplete() {
		spell = newSpell(name)
	} else {
		spell = newSpellContainer(name)
	}

	spell.Add(stats.KeySpellContainerID, container)
	spell.Add(stats.KeyRequirementConditions, feat.Requirements)
	spell.Add(stats.KeyRequirementConditions, state.Requirements()...)
	if !feat.Repeatable {
		for _, passive := range feat.Passives {
			spell.Add(stats.KeyRequirementConditions, passiveGuard(passive))
		}
	}

	spell.Add(stats.KeyDisplayName, description.DisplayName.String())
	spell.Add(stats.KeyDescription, description.Description.String())
	spell.Add(stats.KeyIcon, description.Icon)
	return spell
}

// candidates finds the first module, scanning forward from moduleIndex, that
// defines the list. Later modules defining the same list are not consulted.
func (r *run) candidates(moduleIndex int, listType bg3.ListType, listID uuid.UUID) (int, []string, bool) {
	for index := moduleIndex; index < len(r.modules); index++ {
		if entries, ok := r.modules[index].Lists.Lookup(listType, listID); ok {
			return index, entries, true
		}
	}
	return 0, nil, false
}
