package bg3

import (
	"github.com/KirkDiggler/feat-weaver/internal/errors"
	"github.com/KirkDiggler/feat-weaver/internal/selectors"
)

// ListType is the category of a candidate list file
type ListType string

// Candidate list categories
const (
	ListTypePassive ListType = "passive"
	ListTypeAbility ListType = "ability"
	ListTypeSkill   ListType = "skill"
	ListTypeSpell   ListType = "spell"
)

// ListTypes is every list category in a stable order
var ListTypes = []ListType{ListTypePassive, ListTypeAbility, ListTypeSkill, ListTypeSpell}

// ListTypeFor returns the candidate list category a selector draws from.
func ListTypeFor(sel selectors.Selector) (ListType, error) {
	switch sel.Kind() {
	case selectors.KindAbility:
		return ListTypeAbility, nil
	case selectors.KindSkill, selectors.KindExpertise:
		return ListTypeSkill, nil
	case selectors.KindPassive:
		return ListTypePassive, nil
	case selectors.KindSpell:
		return ListTypeSpell, nil
	default:
		return "", errors.InvalidArgumentf("selector %q has no candidate list", sel.String())
	}
}
