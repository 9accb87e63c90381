package bg3

import "strings"

// Anchor modules are always first in the load order.
const (
	ModuleShared    = "Shared"
	ModuleSharedDev = "SharedDev"
)

// DefaultIcon is used when no granted passive names an icon
const DefaultIcon = "PassiveFeature_Generic_Magical"

// AnchorModules returns the anchor module names in load order.
func AnchorModules() []string {
	return []string{ModuleShared, ModuleSharedDev}
}

// Normalize replaces every rune that is not an ASCII letter or digit with an
// underscore so a module name can be embedded in a stat entry name.
func Normalize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, name)
}

// SplitList splits a separated attribute value, trimming entries and dropping
// empty ones.
func SplitList(value, sep string) []string {
	var result []string
	for _, item := range strings.Split(value, sep) {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}

// SplitUnique is SplitList with duplicates removed, keeping first-seen order.
func SplitUnique(value, sep string) []string {
	items := SplitList(value, sep)
	seen := make(map[string]struct{}, len(items))
	result := items[:0]
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		result = append(result, item)
	}
	return result
}
