// Package selectors parses the selector expressions that feats embed to
// describe the nested choices they require, for example
// SelectAbilities(b9149c8e-52c8-46e5-9cb6-fc39301c05fe,2,2,FeatASI).
package selectors

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind identifies the variant of a Selector
type Kind string

// Selector kinds
const (
	KindUnknown   Kind = "unknown"
	KindAbility   Kind = "ability"
	KindSkill     Kind = "skill"
	KindExpertise Kind = "expertise"
	KindPassive   Kind = "passive"
	KindSpell     Kind = "spell"
)

// Selector is one parsed selector expression. The set of implementations is
// closed: Ability, Skill, Expertise, Passive, Spell and Unknown.
type Selector interface {
	Kind() Kind
	// ListID is the candidate list the selector draws from, uuid.Nil when the
	// selector has none.
	ListID() uuid.UUID
	String() string

	isSelector()
}

// Ability raises Count abilities picked from List, never past Max increments
// for any single ability. Label is shown by the game next to the boost.
type Ability struct {
	List  uuid.UUID
	Count int
	Max   int
	Label string
}

// Skill grants proficiency in Count skills picked from List.
type Skill struct {
	List  uuid.UUID
	Count int
	Label string
}

// Expertise grants expertise in Count skills picked from List. Flag is nil
// when the expression omits the trailing boolean.
type Expertise struct {
	List  uuid.UUID
	Count int
	Flag  *bool
}

// Passive grants Count passives picked from List.
type Passive struct {
	List     uuid.UUID
	Count    int
	Category string
}

// Spell is recognized by name but has no grammar; the parser never produces
// one, so it only exists so callers can switch over every kind.
type Spell struct{}

// Unknown holds selector text that no grammar accepted.
type Unknown struct {
	Text string
}

// Kind returns KindAbility
func (Ability) Kind() Kind { return KindAbility }

// ListID returns the ability list id
func (a Ability) ListID() uuid.UUID { return a.List }

func (a Ability) String() string {
	return fmt.Sprintf("SelectAbilities(%s,%d,%d,%s)", a.List, a.Count, a.Max, a.Label)
}

func (Ability) isSelector() {}

// Kind returns KindSkill
func (Skill) Kind() Kind { return KindSkill }

// ListID returns the skill list id
func (s Skill) ListID() uuid.UUID { return s.List }

func (s Skill) String() string {
	if s.Label == "" {
		return fmt.Sprintf("SelectSkills(%s,%d)", s.List, s.Count)
	}
	return fmt.Sprintf("SelectSkills(%s,%d,%s)", s.List, s.Count, s.Label)
}

func (Skill) isSelector() {}

// Kind returns KindExpertise
func (Expertise) Kind() Kind { return KindExpertise }

// ListID returns the skill list id
func (e Expertise) ListID() uuid.UUID { return e.List }

func (e Expertise) String() string {
	if e.Flag == nil {
		return fmt.Sprintf("SelectSkillsExpertise(%s,%d)", e.List, e.Count)
	}
	return fmt.Sprintf("SelectSkillsExpertise(%s,%d,%t)", e.List, e.Count, *e.Flag)
}

func (Expertise) isSelector() {}

// Kind returns KindPassive
func (Passive) Kind() Kind { return KindPassive }

// ListID returns the passive list id
func (p Passive) ListID() uuid.UUID { return p.List }

func (p Passive) String() string {
	if p.Category == "" {
		return fmt.Sprintf("SelectPassives(%s,%d)", p.List, p.Count)
	}
	return fmt.Sprintf("SelectPassives(%s,%d,%s)", p.List, p.Count, p.Category)
}

func (Passive) isSelector() {}

// Kind returns KindSpell
func (Spell) Kind() Kind { return KindSpell }

// ListID returns uuid.Nil
func (Spell) ListID() uuid.UUID { return uuid.Nil }

func (Spell) String() string { return "SelectSpells(...)" }

func (Spell) isSelector() {}

// Kind returns KindUnknown
func (Unknown) Kind() Kind { return KindUnknown }

// ListID returns uuid.Nil
func (Unknown) ListID() uuid.UUID { return uuid.Nil }

func (u Unknown) String() string { return u.Text }

func (Unknown) isSelector() {}
