package weaver

import (
	"github.com/KirkDiggler/feat-weaver/internal/entities/bg3"
	"github.com/KirkDiggler/feat-weaver/internal/stats"
)

const (
	// BaseContainer is the spell every feat tier hangs beneath
	BaseContainer = "E6_Shout_EpicFeats"

	spellPrefix = "E6_Shout_"
	boostPrefix = "E6_FEAT_"

	spellAnimation = "b3b2d16b-61c7-4082-8394-0c04fb9ffdec,,;81c58c55-625d-46c3-bbb7-179b23ef725e,,;" +
		"3c35a4e1-4441-4603-9c71-82179057d452,,;18c8ab7a-cfef-45b9-851d-e2bc52c9ebc3,,;" +
		"e601e8fd-4017-4d26-a63a-e1d7362c99b3,,;,,;0b07883a-08b8-43b6-ac18-84dc9e84ff50,,;,,;,,"
)

// abilityDescriptions are the display strings of the six ability candidates
var abilityDescriptions = map[string]bg3.FeatDescription{
	"Strength":     abilityDescription("h6c83537fg6358g41e0g8a18g32cc8316ced2_1", "haaf3959ag320eg4f68ga9c9gc143d7f64a8c"),
	"Dexterity":    abilityDescription("h6c83537fg6358g41e0g8a18g32cc8316ced2_2", "hbf128ebdgdfffg4ea9gbf4bg1659ccefd287"),
	"Constitution": abilityDescription("h6c83537fg6358g41e0g8a18g32cc8316ced2_3", "h7a02f64dg4593g408fgbf93gb0dbabc182c9"),
	"Intelligence": abilityDescription("h6c83537fg6358g41e0g8a18g32cc8316ced2_4", "h411a732ag4b4cg4094g9a5egd325fecf4645"),
	"Wisdom":       abilityDescription("h6c83537fg6358g41e0g8a18g32cc8316ced2_5", "h35233e68gf68ag461cgac5fgc15806be3dc7"),
	"Charisma":     abilityDescription("h6c83537fg6358g41e0g8a18g32cc8316ced2_6", "h441085efge3a5g4004gba8dgf2378e8986c8"),
}

func abilityDescription(displayName, description string) bg3.FeatDescription {
	return bg3.FeatDescription{
		DisplayName: bg3.LocalizedString{Handle: displayName, Version: 1},
		Description: bg3.LocalizedString{Handle: description, Version: 1},
		Icon:        bg3.DefaultIcon,
	}
}

// newSpell is the actionable shout that applies a feat's boost
func newSpell(name string) *stats.Entry {
	return stats.NewEntry(name, stats.TypeSpellData).
		Add("SpellType", "Shout").
		Add("AIFlags", "CanNotUse").
		Add("TargetConditions", "Self()").
		Add("CastTextEvent", "Cast").
		Add("SpellAnimation", spellAnimation).
		Add(stats.KeySpellFlags, "IgnoreSilence").
		Add("DamageType", "None").
		Add("PrepareEffect", "c520a0bf-adc6-44f6-abcd-94bc0925b881").
		Add("VerbalIntent", "Utility").
		Add("UseCosts", "FeatPoint:1").
		Add("Requirements", "!Combat")
}

// newSpellContainer is the shout that opens the next layer of choices
func newSpellContainer(name string) *stats.Entry {
	return stats.NewEntry(name, stats.TypeSpellData).
		Add("SpellType", "Shout").
		Add("AIFlags", "CanNotUse").
		Add("TargetConditions", "Self()").
		Add("CastTextEvent", "Cast").
		Add("UseCosts", "FeatPoint:1").
		Add("Requirements", "!Combat").
		Add(stats.KeySpellFlags, "IsLinkedSpellContainer")
}

// newBoost is the status that carries a feat's passives and ability boosts
func newBoost(name string) *stats.Entry {
	return stats.NewEntry(name, stats.TypeStatusData).
		Add("StatusType", "BOOST").
		Add("StatusPropertyFlags",
			"IgnoreResting",
			"DisableCombatlog",
			"ApplyToDead",
			"DisableOverhead",
			"ExcludeFromPortraitRendering",
			"DisablePortraitIndicator").
		Add("StatusGroups", "SG_RemoveOnRespec").
		Add("HideOverheadUI", "1").
		Add("IsUnique", "1").
		Add(stats.KeyBoosts, "ActionResource(UsedFeatPoints,1,0)")
}

func applyStatus(boost string) string {
	return "ApplyStatus(" + boost + ",-1,-1)"
}

func passiveGuard(passive string) string {
	return "not HasPassive('" + passive + "', context.Source)"
}
