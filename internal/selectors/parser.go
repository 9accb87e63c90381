package selectors

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/KirkDiggler/feat-weaver/internal/errors"
)

const (
	guidPattern       = `[0-9A-F]{8}-?(?:[0-9A-F]{4}-?){3}[0-9A-F]{12}`
	identifierPattern = `[A-Za-z0-9_]+`
)

// ErrUnknownSelector is reported by callers that require every selector of a
// chain to be understood. Parse itself never fails.
var ErrUnknownSelector = errors.InvalidArgument("unknown selector")

var (
	abilityGrammar = regexp.MustCompile(`(?i)^SelectAbilities\s*\(\s*(` + guidPattern + `)\s*,\s*(\d+)\s*,\s*(\d+)\s*,\s*(` + identifierPattern + `)\s*\)$`)
	skillGrammar   = regexp.MustCompile(`(?i)^SelectSkills\s*\(\s*(` + guidPattern + `)\s*,\s*(\d+)\s*(?:,\s*(` + identifierPattern + `)\s*)?\)$`)
	expertGrammar  = regexp.MustCompile(`(?i)^SelectSkillsExpertise\s*\(\s*(` + guidPattern + `)\s*,\s*(\d+)\s*(?:,\s*(true|false)\s*)?\)$`)
	passiveGrammar = regexp.MustCompile(`(?i)^SelectPassives\s*\(\s*(` + guidPattern + `)\s*,\s*(\d+)\s*(?:,\s*(` + identifierPattern + `)\s*)?\)$`)
)

// grammar pairs the cheap prefix check with the strict matcher for one
// selector function.
type grammar struct {
	prefix string
	match  func(input string) (Selector, bool)
}

// grammars is ordered by priority; the first grammar that matches wins.
var grammars = []grammar{
	{prefix: "selectabilities", match: matchAbility},
	{prefix: "selectskills", match: matchSkill},
	{prefix: "selectskillsexpertise", match: matchExpertise},
	{prefix: "selectpassives", match: matchPassive},
	{prefix: "selectspells", match: matchSpell},
}

// Parse converts one selector expression into a Selector. Text that no
// grammar accepts comes back as Unknown and is logged.
func Parse(input string) Selector {
	input = strings.TrimSpace(input)
	lower := strings.ToLower(input)
	for _, g := range grammars {
		if !strings.HasPrefix(lower, g.prefix) {
			continue
		}
		if sel, ok := g.match(input); ok {
			return sel
		}
	}

	slog.Warn("Failed to parse selector", "selector", input)
	return Unknown{Text: input}
}

// ParseList splits a semicolon separated selector attribute and parses each
// non-empty entry in order.
func ParseList(list string) []Selector {
	var result []Selector
	for _, item := range strings.Split(list, ";") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		result = append(result, Parse(item))
	}
	return result
}

func matchAbility(input string) (Selector, bool) {
	m := abilityGrammar.FindStringSubmatch(input)
	if m == nil {
		return nil, false
	}
	id, ok := parseGUID(m[1])
	if !ok {
		return nil, false
	}
	count, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, false
	}
	maxIncrement, err := strconv.Atoi(m[3])
	if err != nil {
		return nil, false
	}
	return Ability{List: id, Count: count, Max: maxIncrement, Label: m[4]}, true
}

func matchSkill(input string) (Selector, bool) {
	m := skillGrammar.FindStringSubmatch(input)
	if m == nil {
		return nil, false
	}
	id, ok := parseGUID(m[1])
	if !ok {
		return nil, false
	}
	count, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, false
	}
	return Skill{List: id, Count: count, Label: m[3]}, true
}

func matchExpertise(input string) (Selector, bool) {
	m := expertGrammar.FindStringSubmatch(input)
	if m == nil {
		return nil, false
	}
	id, ok := parseGUID(m[1])
	if !ok {
		return nil, false
	}
	count, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, false
	}
	result := Expertise{List: id, Count: count}
	if m[3] != "" {
		flag := strings.EqualFold(m[3], "true")
		result.Flag = &flag
	}
	return result, true
}

func matchPassive(input string) (Selector, bool) {
	m := passiveGrammar.FindStringSubmatch(input)
	if m == nil {
		return nil, false
	}
	id, ok := parseGUID(m[1])
	if !ok {
		return nil, false
	}
	count, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, false
	}
	return Passive{List: id, Count: count, Category: m[3]}, true
}

// matchSpell never matches. SelectSpells takes up to nine positional
// arguments whose meaning is not settled yet, so its expressions stay Unknown.
func matchSpell(string) (Selector, bool) {
	return nil, false
}

// parseGUID accepts 32 hex digits with any subset of the usual separators.
func parseGUID(text string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.ReplaceAll(text, "-", ""))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Supported reports whether every selector in the chain is an Ability
// selector that asks for at least one pick. An empty chain is supported.
func Supported(chain []Selector) bool {
	for _, sel := range chain {
		ability, ok := sel.(Ability)
		if !ok || ability.Count <= 0 {
			return false
		}
	}
	return true
}

// Validate returns ErrUnknownSelector wrapped with the offending text when the
// chain contains a selector that did not parse.
func Validate(chain []Selector) error {
	for _, sel := range chain {
		if u, ok := sel.(Unknown); ok {
			return errors.Wrapf(ErrUnknownSelector, "unknown selector %q", u.Text).
				WithMeta("selector", u.Text)
		}
	}
	return nil
}
