package expansion

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/feat-weaver/internal/errors"
	"github.com/KirkDiggler/feat-weaver/internal/selectors"
)

type StateTestSuite struct {
	suite.Suite
	listID uuid.UUID
}

func (s *StateTestSuite) SetupTest() {
	s.listID = uuid.New()
}

func (s *StateTestSuite) ability(count, maxIncrement int) selectors.Selector {
	return selectors.Ability{List: s.listID, Count: count, Max: maxIncrement, Label: "Test"}
}

// leaves expands until every branch completes and returns the chosen path of
// each complete leaf.
func (s *StateTestSuite) leaves(state *State, candidates []string, path []string) [][]string {
	if state.IsComplete() {
		return [][]string{path}
	}

	choices, err := state.Expand(candidates)
	s.Require().NoError(err)

	var result [][]string
	for _, choice := range choices {
		next := append(append([]string{}, path...), choice.Label)
		result = append(result, s.leaves(choice.State, candidates, next)...)
	}
	return result
}

func (s *StateTestSuite) TestLeafCounts() {
	testCases := []struct {
		name       string
		chain      []selectors.Selector
		candidates []string
		expected   [][]string
	}{
		{
			name:       "count 2 max 1",
			chain:      []selectors.Selector{s.ability(2, 1)},
			candidates: []string{"A", "B"},
			expected:   [][]string{{"A", "B"}, {"B", "A"}},
		},
		{
			name:       "count 2 max 2",
			chain:      []selectors.Selector{s.ability(2, 2)},
			candidates: []string{"A", "B"},
			expected:   [][]string{{"A", "A"}, {"A", "B"}, {"B", "A"}, {"B", "B"}},
		},
		{
			name:       "two single choice selectors share the cap",
			chain:      []selectors.Selector{s.ability(1, 1), s.ability(1, 1)},
			candidates: []string{"A", "B"},
			expected:   [][]string{{"A", "B"}, {"B", "A"}},
		},
		{
			name:       "second selector needs its full count",
			chain:      []selectors.Selector{s.ability(1, 2), s.ability(2, 2)},
			candidates: []string{"A"},
			expected:   nil,
		},
		{
			name:       "no candidates",
			chain:      []selectors.Selector{s.ability(1, 1)},
			candidates: nil,
			expected:   nil,
		},
		{
			name:       "zero count selector never resolves",
			chain:      []selectors.Selector{s.ability(0, 1)},
			candidates: []string{"A"},
			expected:   nil,
		},
		{
			name:       "count beyond what the candidates can supply",
			chain:      []selectors.Selector{s.ability(3, 1)},
			candidates: []string{"A", "B"},
			expected:   nil,
		},
		{
			name:       "count exactly what the candidates can supply",
			chain:      []selectors.Selector{s.ability(3, 1)},
			candidates: []string{"A", "B", "C"},
			expected: [][]string{
				{"A", "B", "C"}, {"A", "C", "B"},
				{"B", "A", "C"}, {"B", "C", "A"},
				{"C", "A", "B"}, {"C", "B", "A"},
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			got := s.leaves(NewState(tc.chain), tc.candidates, nil)
			s.Equal(tc.expected, got)
		})
	}
}

func (s *StateTestSuite) TestUnreachableCountYieldsNoChildren() {
	abilities := []string{"Strength", "Dexterity", "Constitution", "Intelligence", "Wisdom", "Charisma"}

	testCases := []struct {
		name  string
		count int
		max   int
	}{
		{name: "seven picks capped at one", count: 7, max: 1},
		{name: "thirteen picks capped at two", count: 13, max: 2},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			choices, err := NewState([]selectors.Selector{s.ability(tc.count, tc.max)}).Expand(abilities)
			s.Require().NoError(err)
			s.Empty(choices)
		})
	}
}

func (s *StateTestSuite) TestIncrementNeverExceedsMax() {
	chain := []selectors.Selector{s.ability(3, 2), s.ability(2, 2)}
	candidates := []string{"Strength", "Dexterity", "Constitution"}

	var walk func(state *State)
	walk = func(state *State) {
		for _, c := range candidates {
			s.LessOrEqual(state.Increment(c), 2)
		}
		if state.IsComplete() {
			return
		}
		choices, err := state.Expand(candidates)
		s.Require().NoError(err)
		for _, choice := range choices {
			walk(choice.State)
		}
	}
	walk(NewState(chain))
}

func (s *StateTestSuite) TestExpandDoesNotShareState() {
	state := NewState([]selectors.Selector{s.ability(2, 2)})

	choices, err := state.Expand([]string{"A", "B"})
	s.Require().NoError(err)
	s.Require().Len(choices, 2)

	s.Equal(0, state.Increment("A"))
	s.Empty(state.Choices())
	s.Equal([]string{"A"}, choices[0].State.Choices())
	s.Equal([]string{"B"}, choices[1].State.Choices())

	grandchildren, err := choices[0].State.Expand([]string{"A"})
	s.Require().NoError(err)
	s.Require().Len(grandchildren, 1)
	s.Equal(2, grandchildren[0].State.Increment("A"))
	s.Equal(1, choices[0].State.Increment("A"))
	s.True(grandchildren[0].State.IsComplete())
	s.False(choices[0].State.IsComplete())
}

func (s *StateTestSuite) TestBoostsAndRequirements() {
	state := NewState([]selectors.Selector{s.ability(2, 2)})
	choices, err := state.Expand([]string{"Strength"})
	s.Require().NoError(err)
	choices, err = choices[0].State.Expand([]string{"Strength"})
	s.Require().NoError(err)
	leaf := choices[0].State

	s.Equal([]string{"Ability(Strength,2)"}, leaf.Boosts())
	s.Equal([]string{"not AbilityGreaterThan('Strength',18)"}, leaf.Requirements())
}

func (s *StateTestSuite) TestBoostsKeepChoiceOrder() {
	state := NewState([]selectors.Selector{s.ability(2, 1)})
	choices, err := state.Expand([]string{"Wisdom", "Charisma"})
	s.Require().NoError(err)

	second, err := choices[0].State.Expand([]string{"Wisdom", "Charisma"})
	s.Require().NoError(err)
	s.Require().Len(second, 1)

	s.Equal([]string{"Ability(Wisdom,1)", "Ability(Charisma,1)"}, second[0].State.Boosts())
	s.Equal("not AbilityGreaterThan('Wisdom',19) and not AbilityGreaterThan('Charisma',19)",
		strings.Join(second[0].State.Requirements(), " and "))
}

func (s *StateTestSuite) TestUnimplementedKinds() {
	testCases := []struct {
		name string
		sel  selectors.Selector
	}{
		{name: "skill", sel: selectors.Skill{List: s.listID, Count: 1}},
		{name: "expertise", sel: selectors.Expertise{List: s.listID, Count: 1}},
		{name: "passive", sel: selectors.Passive{List: s.listID, Count: 1}},
		{name: "spell", sel: selectors.Spell{}},
		{name: "unknown", sel: selectors.Unknown{Text: "Bogus()"}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := NewState([]selectors.Selector{tc.sel}).Expand([]string{"A"})
			s.Require().Error(err)
			s.True(errors.IsUnimplemented(err))
			s.False(errors.IsInvalidArgument(err))
		})
	}
}

func (s *StateTestSuite) TestCompleteStateExpandsToNothing() {
	choices, err := NewState(nil).Expand([]string{"A"})
	s.NoError(err)
	s.Empty(choices)
	s.Nil(NewState(nil).Head())
}

func TestStateSuite(t *testing.T) {
	suite.Run(t, new(StateTestSuite))
}
