package weaver

import (
	"context"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/feat-weaver/internal/entities/bg3"
	"github.com/KirkDiggler/feat-weaver/internal/errors"
	"github.com/KirkDiggler/feat-weaver/internal/modules"
	"github.com/KirkDiggler/feat-weaver/internal/selectors"
	"github.com/KirkDiggler/feat-weaver/internal/stats"
	"github.com/KirkDiggler/feat-weaver/internal/testutils/builders"
	"github.com/KirkDiggler/feat-weaver/internal/wiring"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctx           context.Context
	bus           events.EventBus
	weaver        Service
	abilityListID uuid.UUID
	shared        *modules.Module
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.bus = events.NewBus()

	weaver, err := NewOrchestrator(&Config{MaxLeaves: DefaultMaxLeaves, EventBus: s.bus})
	s.Require().NoError(err)
	s.weaver = weaver

	s.abilityListID = uuid.MustParse("b9149c8e-52c8-46e5-9cb6-fc39301c05fe")
	s.shared = builders.NewModuleBuilder(bg3.ModuleShared).
		WithAbilityList(s.abilityListID).
		Build()
}

func (s *OrchestratorTestSuite) weave(loadOrder ...*modules.Module) *WeaveOutput {
	output, err := s.weaver.Weave(s.ctx, &WeaveInput{LoadOrder: loadOrder})
	s.Require().NoError(err)
	return output
}

func (s *OrchestratorTestSuite) entry(entries []*stats.Entry, name string) *stats.Entry {
	for _, e := range entries {
		if e.Name == name {
			return e
		}
	}
	s.Failf("entry not found", "no entry named %s", name)
	return nil
}

func (s *OrchestratorTestSuite) TestFeatWithoutSelectors() {
	feat := builders.NewFeatBuilder("Alert").WithPassives("Alert", "Alert_Initiative").Build()
	mod := builders.NewModuleBuilder("My Feats").WithFeats(feat).Build()

	output := s.weave(s.shared, mod)
	collector := output.Collector

	s.Equal(1, output.Feats)
	s.Equal(1, output.Spells)
	s.Equal(1, output.Boosts)

	spell := s.entry(collector.Spells("My_Feats"), "E6_Shout_Alert_My_Feats")
	s.Equal(stats.TypeSpellData, spell.Type)
	s.Equal([]string{"IgnoreSilence"}, spell.Get(stats.KeySpellFlags))
	s.Equal([]string{BaseContainer}, spell.Get(stats.KeySpellContainerID))
	s.Equal([]string{"ApplyStatus(E6_FEAT_Alert_My_Feats,-1,-1)"}, spell.Get(stats.KeySpellProperties))
	s.Equal([]string{
		"not HasPassive('Alert', context.Source)",
		"not HasPassive('Alert_Initiative', context.Source)",
	}, spell.Get(stats.KeyRequirementConditions))
	s.Equal([]string{bg3.DefaultIcon}, spell.Get(stats.KeyIcon))
	s.Nil(spell.Get("Level"))

	boost := s.entry(collector.Boosts("My_Feats"), "E6_FEAT_Alert_My_Feats")
	s.Equal([]string{"Alert", "Alert_Initiative"}, boost.Get(stats.KeyPassives))
	s.Equal([]string{"ActionResource(UsedFeatPoints,1,0)"}, boost.Get(stats.KeyBoosts))
	s.Equal("BOOST", boost.First("StatusType"))

	tiers := collector.Wiring()[BaseContainer]
	s.Require().Len(tiers, 1)
	s.Equal(wiring.Tier{"My_Feats": {"E6_Shout_Alert_My_Feats"}}, tiers[0])
}

func (s *OrchestratorTestSuite) TestRepeatableFeatHasNoPassiveGuard() {
	feat := builders.NewFeatBuilder("Lucky").
		Repeatable().
		WithPassives("Lucky").
		WithRequirements("not HasPassive('Unlucky', context.Source)").
		Build()
	mod := builders.NewModuleBuilder("Mod").WithFeats(feat).Build()

	output := s.weave(s.shared, mod)

	spell := s.entry(output.Collector.Spells("Mod"), "E6_Shout_Lucky_Mod")
	s.Equal([]string{"not HasPassive('Unlucky', context.Source)"}, spell.Get(stats.KeyRequirementConditions))
}

func (s *OrchestratorTestSuite) TestAbilitySelectorExpands() {
	feat := builders.NewFeatBuilder("ASI").
		Repeatable().
		WithAbilitySelector(s.abilityListID, 1, 1, "FeatASI").
		Build()
	mod := builders.NewModuleBuilder("Mod").WithFeats(feat).Build()

	output := s.weave(s.shared, mod)
	collector := output.Collector

	s.Equal(7, output.Spells)
	s.Equal(6, output.Boosts)

	container := s.entry(collector.Spells("Mod"), "E6_Shout_ASI_Mod")
	s.Equal([]string{"IsLinkedSpellContainer"}, container.Get(stats.KeySpellFlags))
	s.Nil(container.Get(stats.KeySpellProperties))

	strength := s.entry(collector.Spells("Shared"), "E6_Shout_ASI_Mod_Strength_Shared")
	s.Equal([]string{"E6_Shout_ASI_Mod"}, strength.Get(stats.KeySpellContainerID))
	s.Equal([]string{"not AbilityGreaterThan('Strength',19)"}, strength.Get(stats.KeyRequirementConditions))
	s.Equal([]string{"h6c83537fg6358g41e0g8a18g32cc8316ced2_1;1"}, strength.Get(stats.KeyDisplayName))

	boost := s.entry(collector.Boosts("Shared"), "E6_FEAT_ASI_Mod_Strength_Shared")
	s.Equal([]string{"ActionResource(UsedFeatPoints,1,0)", "Ability(Strength,1)"}, boost.Get(stats.KeyBoosts))

	childTiers := collector.Wiring()["E6_Shout_ASI_Mod"]
	s.Require().Len(childTiers, 1)
	s.Len(childTiers[0]["Shared"], 6)
	s.Equal(wiring.Tier{"Mod": {"E6_Shout_ASI_Mod"}}, collector.Wiring()[BaseContainer][0])
}

func (s *OrchestratorTestSuite) TestSkillOnlyFeatRegistersEmptyTiers() {
	skillListID := uuid.New()
	feat := builders.NewFeatBuilder("Skilled").
		WithSelector(selectors.Skill{List: skillListID, Count: 3}).
		Build()
	first := builders.NewModuleBuilder("First").WithFeats(feat).Build()
	second := builders.NewModuleBuilder("Second").DependsOn("First").WithFeats(feat).Build()

	output := s.weave(s.shared, first, second)

	s.Equal(0, output.Spells)
	s.Equal(0, output.Boosts)
	s.Equal(2, output.FeatsUnsupported)

	tiers := output.Collector.Wiring()[BaseContainer]
	s.Require().Len(tiers, 1)
	s.Equal(wiring.Tier{"First": {}, "Second": {}}, tiers[0])
}

func (s *OrchestratorTestSuite) TestOverridingModulesShareTier() {
	id := uuid.New()
	base := builders.NewFeatBuilder("Tough").WithID(id).Build()
	override := builders.NewFeatBuilder("Tough").WithID(id).
		WithSelector(selectors.Unknown{Text: "SelectSpells()"}).
		Build()
	early := builders.NewModuleBuilder("Early").WithFeats(base).Build()
	late := builders.NewModuleBuilder("Late").WithFeats(override).Build()

	output := s.weave(s.shared, early, late)

	tiers := output.Collector.Wiring()[BaseContainer]
	s.Require().Len(tiers, 1)
	s.Equal(wiring.Tier{"Late": {}, "Early": {"E6_Shout_Tough_Early"}}, tiers[0])
	s.Equal(1, output.Feats)
}

func (s *OrchestratorTestSuite) TestFeatOrderFollowsLatestModuleFirst() {
	early := builders.NewModuleBuilder("Early").WithFeats(builders.NewFeatBuilder("A").Build()).Build()
	late := builders.NewModuleBuilder("Late").WithFeats(builders.NewFeatBuilder("B").Build()).Build()

	output := s.weave(s.shared, early, late)

	tiers := output.Collector.Wiring()[BaseContainer]
	s.Require().Len(tiers, 2)
	s.Contains(tiers[0], "Late")
	s.Contains(tiers[1], "Early")
}

func (s *OrchestratorTestSuite) TestDescriptionAndIconScanForward() {
	feat := builders.NewFeatBuilder("Athlete").WithPassives("Athlete_Missing", "Athlete_StandUp").Build()
	base := builders.NewModuleBuilder("Base").
		WithDescription(feat.ID, "hname", "hdesc").
		WithStat(stats.NewEntry("Athlete_Base", "PassiveData").Add(stats.KeyIcon, "PassiveFeature_Athlete")).
		Build()
	looped := stats.NewEntry("Athlete_StandUp", "PassiveData")
	looped.Using = "Athlete_Loop"
	loop := stats.NewEntry("Athlete_Loop", "PassiveData")
	loop.Using = "Athlete_StandUp"
	mod := builders.NewModuleBuilder("Mod").
		WithFeats(feat).
		WithStat(looped).
		WithStat(loop).
		Build()

	s.Run("description from the module built upon", func() {
		output := s.weave(s.shared, base, mod)
		spell := s.entry(output.Collector.Spells("Mod"), "E6_Shout_Athlete_Mod")
		s.Equal([]string{"hname;1"}, spell.Get(stats.KeyDisplayName))
		s.Equal([]string{"hdesc;1"}, spell.Get(stats.KeyDescription))
		s.Equal([]string{bg3.DefaultIcon}, spell.Get(stats.KeyIcon))
	})

	s.Run("icon follows using chain", func() {
		loop.Using = "Athlete_Base"
		output := s.weave(s.shared, base, mod)
		spell := s.entry(output.Collector.Spells("Mod"), "E6_Shout_Athlete_Mod")
		s.Equal([]string{"PassiveFeature_Athlete"}, spell.Get(stats.KeyIcon))
	})
}

func (s *OrchestratorTestSuite) TestMissingCandidateListLeavesContainer() {
	feat := builders.NewFeatBuilder("ASI").WithAbilitySelector(uuid.New(), 1, 1, "x").Build()
	mod := builders.NewModuleBuilder("Mod").WithFeats(feat).Build()

	output := s.weave(s.shared, mod)

	s.Equal(1, output.Spells)
	s.Equal(0, output.Boosts)
	s.Contains(output.Collector.Wiring(), "E6_Shout_ASI_Mod")
}

func (s *OrchestratorTestSuite) TestPrunedCandidatesAreCounted() {
	feat := builders.NewFeatBuilder("ASI").WithAbilitySelector(s.abilityListID, 2, 1, "x").Build()
	mod := builders.NewModuleBuilder("Mod").WithFeats(feat).Build()

	output := s.weave(s.shared, mod)

	// 6 first picks, then each prunes the ability it already raised.
	s.Equal(6, output.CandidatesPruned)
	s.Equal(30, output.Boosts)
}

func (s *OrchestratorTestSuite) TestLeafBudget() {
	weaver, err := NewOrchestrator(&Config{MaxLeaves: 5, EventBus: s.bus})
	s.Require().NoError(err)

	feat := builders.NewFeatBuilder("ASI").WithAbilitySelector(s.abilityListID, 1, 1, "x").Build()
	mod := builders.NewModuleBuilder("Mod").WithFeats(feat).Build()

	_, err = weaver.Weave(s.ctx, &WeaveInput{LoadOrder: []*modules.Module{s.shared, mod}})
	s.Require().Error(err)
	s.True(errors.IsResourceExhausted(err))
}

func (s *OrchestratorTestSuite) TestLeafBudgetCountsContainers() {
	weaver, err := NewOrchestrator(&Config{MaxLeaves: 3, EventBus: s.bus})
	s.Require().NoError(err)

	// two single picks over one candidate: three spells, one boost
	listID := uuid.New()
	feat := builders.NewFeatBuilder("Deep").
		WithAbilitySelector(listID, 1, 2, "x").
		WithAbilitySelector(listID, 1, 2, "y").
		Build()
	mod := builders.NewModuleBuilder("Mod").
		WithFeats(feat).
		WithList(bg3.ListTypeAbility, listID, "Strength").
		Build()

	output, err := weaver.Weave(s.ctx, &WeaveInput{LoadOrder: []*modules.Module{mod}})
	s.Require().NoError(err)
	s.Equal(3, output.Spells)
	s.Equal(1, output.Boosts)

	weaver, err = NewOrchestrator(&Config{MaxLeaves: 2, EventBus: s.bus})
	s.Require().NoError(err)
	_, err = weaver.Weave(s.ctx, &WeaveInput{LoadOrder: []*modules.Module{mod}})
	s.True(errors.IsResourceExhausted(err))
}

func (s *OrchestratorTestSuite) TestUnreachableCountGeneratesNoChoices() {
	weaver, err := NewOrchestrator(&Config{MaxLeaves: 1, EventBus: s.bus})
	s.Require().NoError(err)

	feat := builders.NewFeatBuilder("Greedy").WithAbilitySelector(s.abilityListID, 7, 1, "x").Build()
	mod := builders.NewModuleBuilder("Mod").WithFeats(feat).Build()

	output, err := weaver.Weave(s.ctx, &WeaveInput{LoadOrder: []*modules.Module{s.shared, mod}})
	s.Require().NoError(err)

	// only the root container, no choice can ever complete
	s.Equal(1, output.Spells)
	s.Zero(output.Boosts)
	s.Equal(6, output.CandidatesPruned)
}

func (s *OrchestratorTestSuite) TestZeroCountSelectorIsUnsupported() {
	feat := builders.NewFeatBuilder("Empty").WithAbilitySelector(s.abilityListID, 0, 1, "x").Build()
	mod := builders.NewModuleBuilder("Mod").WithFeats(feat).Build()

	output := s.weave(s.shared, mod)

	s.Equal(1, output.FeatsUnsupported)
	s.Zero(output.Spells)
	s.Zero(output.Boosts)
}

func (s *OrchestratorTestSuite) TestUnknownAbilityCandidate() {
	listID := uuid.New()
	feat := builders.NewFeatBuilder("Odd").WithAbilitySelector(listID, 1, 1, "x").Build()
	mod := builders.NewModuleBuilder("Mod").
		WithFeats(feat).
		WithList(bg3.ListTypeAbility, listID, "Luck").
		Build()

	_, err := s.weaver.Weave(s.ctx, &WeaveInput{LoadOrder: []*modules.Module{s.shared, mod}})
	s.Require().Error(err)
	s.True(errors.IsUnimplemented(err))
}

func (s *OrchestratorTestSuite) TestCanceledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	mod := builders.NewModuleBuilder("Mod").WithFeats(builders.NewFeatBuilder("A").Build()).Build()
	_, err := s.weaver.Weave(ctx, &WeaveInput{LoadOrder: []*modules.Module{mod}})
	s.True(errors.IsCanceled(err))
}

func (s *OrchestratorTestSuite) TestPublishesFeatEvents() {
	type published struct {
		eventType string
		source    string
		target    string
	}
	var got []published
	record := func(_ context.Context, e events.Event) error {
		p := published{eventType: e.Type(), source: e.Source().GetType() + ":" + e.Source().GetID()}
		if e.Target() != nil {
			p.target = e.Target().GetType() + ":" + e.Target().GetID()
		}
		got = append(got, p)
		return nil
	}
	s.bus.SubscribeFunc(bg3.EventFeatWoven, 0, record)
	s.bus.SubscribeFunc(bg3.EventFeatUnsupported, 0, record)

	alert := builders.NewFeatBuilder("Alert").Build()
	skilled := builders.NewFeatBuilder("Skilled").WithSelector(selectors.Skill{List: uuid.New(), Count: 2}).Build()
	mod := builders.NewModuleBuilder("Mod").WithFeats(alert, skilled).Build()

	s.weave(s.shared, mod)

	s.Equal([]published{
		{eventType: bg3.EventFeatWoven, source: "feat:" + alert.ID.String()},
		{eventType: bg3.EventFeatUnsupported, source: "feat:" + skilled.ID.String(), target: "module:" + mod.ID.String()},
		{eventType: bg3.EventFeatWoven, source: "feat:" + skilled.ID.String()},
	}, got)
}

func (s *OrchestratorTestSuite) TestNewOrchestratorValidation() {
	_, err := NewOrchestrator(&Config{})
	s.Error(err)

	_, err = NewOrchestrator(&Config{MaxLeaves: 1})
	s.True(errors.IsInvalidArgument(err))

	_, err = NewOrchestrator(nil)
	s.Error(err)

	_, err = s.weaver.Weave(s.ctx, nil)
	s.Error(err)
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
