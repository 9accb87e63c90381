package weaver

import (
	"github.com/KirkDiggler/feat-weaver/internal/entities/bg3"
	"github.com/KirkDiggler/feat-weaver/internal/stats"
)

// describe resolves the display name, description and icon of a feat as seen
// from the module at moduleIndex.
func (r *run) describe(moduleIndex int, feat *bg3.Feat) bg3.FeatDescription {
	result := bg3.FeatDescription{Icon: bg3.DefaultIcon}

	for _, module := range r.modules[moduleIndex:] {
		if description, ok := module.Descriptions[feat.ID]; ok {
			result.DisplayName = description.DisplayName
			result.Description = description.Description
			break
		}
	}

	for _, passive := range feat.Passives {
		if icon := r.statValue(moduleIndex, passive, stats.KeyIcon, map[string]bool{}); icon != "" {
			result.Icon = icon
			break
		}
	}

	return result
}

// statValue reads the first value of field from the named stat entry,
// following using references until one defines it.
func (r *run) statValue(moduleIndex int, name, field string, visited map[string]bool) string {
	if name == "" || visited[name] {
		return ""
	}
	visited[name] = true

	entry := r.stat(moduleIndex, name)
	if entry == nil {
		return ""
	}
	if values := entry.Get(field); values != nil {
		return values[0]
	}
	return r.statValue(moduleIndex, entry.Using, field, visited)
}

func (r *run) stat(moduleIndex int, name string) *stats.Entry {
	for _, module := range r.modules[moduleIndex:] {
		if entry, ok := module.Stats[name]; ok {
			return entry
		}
	}
	return nil
}
