// Package expansion walks a feat's selector chain one choice at a time. Each
// State is an independent value: expanding it never changes it, and children
// share nothing with their parent or their siblings.
package expansion

import (
	"fmt"

	"github.com/KirkDiggler/feat-weaver/internal/errors"
	"github.com/KirkDiggler/feat-weaver/internal/selectors"
)

// ErrUnimplementedKind is returned when a selector other than Ability reaches
// the expander. It is distinct from selectors.ErrUnknownSelector.
var ErrUnimplementedKind = errors.Unimplemented("selector kind cannot be expanded")

// maxAbilityScore is the score an ability boost may never push past
const maxAbilityScore = 20

// State is the expansion state of one feat
type State struct {
	pending []selectors.Selector
	// order keeps increments in first-chosen order so output is stable
	order      []string
	increments map[string]int
	choices    []string
}

// Choice pairs a candidate with the state that results from choosing it
type Choice struct {
	Label string
	State *State
}

// NewState starts an expansion over a selector chain
func NewState(chain []selectors.Selector) *State {
	pending := make([]selectors.Selector, len(chain))
	copy(pending, chain)
	return &State{
		pending:    pending,
		increments: make(map[string]int),
	}
}

// IsComplete reports whether every selector has been resolved
func (s *State) IsComplete() bool {
	return len(s.pending) == 0
}

// Head returns the selector currently being resolved, or nil when complete
func (s *State) Head() selectors.Selector {
	if len(s.pending) == 0 {
		return nil
	}
	return s.pending[0]
}

// Increment returns the accumulated increment of an ability
func (s *State) Increment(ability string) int {
	return s.increments[ability]
}

// Choices returns the choices made so far for the head selector
func (s *State) Choices() []string {
	result := make([]string, len(s.choices))
	copy(result, s.choices)
	return result
}

func (s *State) clone(popHead bool) *State {
	next := &State{
		order:      make([]string, len(s.order)),
		increments: make(map[string]int, len(s.increments)),
	}
	copy(next.order, s.order)
	for ability, count := range s.increments {
		next.increments[ability] = count
	}

	if popHead {
		next.pending = make([]selectors.Selector, len(s.pending)-1)
		copy(next.pending, s.pending[1:])
		return next
	}

	next.pending = make([]selectors.Selector, len(s.pending))
	copy(next.pending, s.pending)
	next.choices = make([]string, len(s.choices))
	copy(next.choices, s.choices)
	return next
}

func (s *State) increment(ability string) {
	if _, ok := s.increments[ability]; !ok {
		s.order = append(s.order, ability)
	}
	s.increments[ability]++
}

// Expand produces one child per candidate that can still be raised. A
// candidate whose increment already reached the selector's max is skipped, as
// is any choice after which the candidates can no longer supply the picks the
// selector still needs. When the choice completes the selector's count the
// child moves on to the next selector with an empty choice history. A selector
// that asks for no picks never resolves and yields no children.
func (s *State) Expand(candidates []string) ([]Choice, error) {
	head := s.Head()
	if head == nil {
		return nil, nil
	}

	ability, ok := head.(selectors.Ability)
	if !ok {
		return nil, errors.Wrapf(ErrUnimplementedKind, "cannot expand %s selector", head.Kind()).
			WithMeta("selector", head.String())
	}

	if ability.Count <= 0 {
		return nil, nil
	}

	// picks still owed after this one, against the raises the candidates allow
	remaining := ability.Count - len(s.choices) - 1
	if remaining > s.headroom(candidates, ability.Max)-1 {
		return nil, nil
	}

	done := remaining == 0
	var result []Choice
	for _, candidate := range candidates {
		if s.increments[candidate] >= ability.Max {
			continue
		}

		child := s.clone(done)
		if !done {
			child.choices = append(child.choices, candidate)
		}
		child.increment(candidate)
		result = append(result, Choice{Label: candidate, State: child})
	}

	return result, nil
}

// headroom is the number of raises the candidates can still take before all
// of them reach max
func (s *State) headroom(candidates []string, limit int) int {
	total := 0
	for _, candidate := range candidates {
		if left := limit - s.increments[candidate]; left > 0 {
			total += left
		}
	}
	return total
}

// Boosts returns one ability boost per raised ability
func (s *State) Boosts() []string {
	result := make([]string, 0, len(s.order))
	for _, ability := range s.order {
		result = append(result, fmt.Sprintf("Ability(%s,%d)", ability, s.increments[ability]))
	}
	return result
}

// Requirements returns one condition per raised ability that keeps the
// boosted score at or below 20.
func (s *State) Requirements() []string {
	result := make([]string, 0, len(s.order))
	for _, ability := range s.order {
		result = append(result, fmt.Sprintf("not AbilityGreaterThan('%s',%d)", ability, maxAbilityScore-s.increments[ability]))
	}
	return result
}
