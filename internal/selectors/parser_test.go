package selectors

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/feat-weaver/internal/errors"
)

const abilityListID = "b9149c8e-52c8-46e5-9cb6-fc39301c05fe"

type ParserTestSuite struct {
	suite.Suite
	listID uuid.UUID
}

func (s *ParserTestSuite) SetupTest() {
	s.listID = uuid.MustParse(abilityListID)
}

func (s *ParserTestSuite) TestParseAbility() {
	testCases := []struct {
		name     string
		input    string
		expected Selector
	}{
		{
			name:     "canonical form",
			input:    "SelectAbilities(" + abilityListID + ",2,2,FeatASI)",
			expected: Ability{List: s.listID, Count: 2, Max: 2, Label: "FeatASI"},
		},
		{
			name:     "whitespace around arguments",
			input:    "SelectAbilities ( " + abilityListID + " , 1 , 1 , Athlete )",
			expected: Ability{List: s.listID, Count: 1, Max: 1, Label: "Athlete"},
		},
		{
			name:     "uppercase guid without hyphens",
			input:    "SelectAbilities(B9149C8E52C846E59CB6FC39301C05FE,2,1,FeatASI)",
			expected: Ability{List: s.listID, Count: 2, Max: 1, Label: "FeatASI"},
		},
		{
			name:     "lowercase function name",
			input:    "selectabilities(" + abilityListID + ",1,1,x)",
			expected: Ability{List: s.listID, Count: 1, Max: 1, Label: "x"},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, Parse(tc.input))
		})
	}
}

func (s *ParserTestSuite) TestParseSkillVariants() {
	s.Run("skill without label", func() {
		s.Equal(Skill{List: s.listID, Count: 2}, Parse("SelectSkills("+abilityListID+",2)"))
	})

	s.Run("skill with label", func() {
		s.Equal(Skill{List: s.listID, Count: 1, Label: "Skilled"}, Parse("SelectSkills("+abilityListID+",1,Skilled)"))
	})

	s.Run("expertise with flag", func() {
		sel := Parse("SelectSkillsExpertise(" + abilityListID + ",1,true)")
		expertise, ok := sel.(Expertise)
		s.Require().True(ok)
		s.Equal(1, expertise.Count)
		s.Require().NotNil(expertise.Flag)
		s.True(*expertise.Flag)
	})

	s.Run("expertise without flag", func() {
		sel := Parse("SelectSkillsExpertise(" + abilityListID + ",2)")
		expertise, ok := sel.(Expertise)
		s.Require().True(ok)
		s.Nil(expertise.Flag)
	})

	s.Run("passive with category", func() {
		s.Equal(Passive{List: s.listID, Count: 1, Category: "Feats"}, Parse("SelectPassives("+abilityListID+",1,Feats)"))
	})
}

func (s *ParserTestSuite) TestParseUnknown() {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "missing max and label", input: "SelectAbilities(" + abilityListID + ",2)"},
		{name: "spell selectors are not parsed", input: "SelectSpells(" + abilityListID + ",0,1,,,,AlwaysPrepared)"},
		{name: "bad guid", input: "SelectAbilities(not-a-guid,1,1,x)"},
		{name: "unknown function", input: "AddSpells(" + abilityListID + ")"},
		{name: "trailing garbage", input: "SelectPassives(" + abilityListID + ",1) extra"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			sel := Parse(tc.input)
			s.Equal(KindUnknown, sel.Kind())
			s.Equal(tc.input, sel.String())
		})
	}
}

func (s *ParserTestSuite) TestRoundTrip() {
	inputs := []string{
		"SelectAbilities(" + abilityListID + ",2,2,FeatASI)",
		"SelectSkills(" + abilityListID + ",3)",
		"SelectSkills(" + abilityListID + ",1,Skilled)",
		"SelectSkillsExpertise(" + abilityListID + ",1,false)",
		"SelectPassives(" + abilityListID + ",1,Feats)",
	}

	for _, input := range inputs {
		s.Run(input, func() {
			s.Equal(input, Parse(input).String())
		})
	}
}

func (s *ParserTestSuite) TestParseList() {
	list := " SelectAbilities(" + abilityListID + ",1,1,a) ;; SelectSkills(" + abilityListID + ",1);"
	chain := ParseList(list)

	s.Require().Len(chain, 2)
	s.Equal(KindAbility, chain[0].Kind())
	s.Equal(KindSkill, chain[1].Kind())
	s.Empty(ParseList(""))
}

func (s *ParserTestSuite) TestSupported() {
	ability := Ability{List: s.listID, Count: 1, Max: 1}

	s.True(Supported(nil))
	s.True(Supported([]Selector{ability, ability}))
	s.False(Supported([]Selector{ability, Skill{List: s.listID, Count: 1}}))
	s.False(Supported([]Selector{Unknown{Text: "x"}}))
	s.False(Supported([]Selector{ability, Ability{List: s.listID, Count: 0, Max: 1}}))
}

func (s *ParserTestSuite) TestValidate() {
	s.NoError(Validate([]Selector{Ability{List: s.listID, Count: 1, Max: 1}}))

	err := Validate([]Selector{Unknown{Text: "Bogus()"}})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "Bogus()")
}

func TestParserSuite(t *testing.T) {
	suite.Run(t, new(ParserTestSuite))
}
