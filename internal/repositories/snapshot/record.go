package snapshot

import (
	"time"

	"github.com/google/uuid"

	"github.com/KirkDiggler/feat-weaver/internal/entities/bg3"
	"github.com/KirkDiggler/feat-weaver/internal/errors"
	"github.com/KirkDiggler/feat-weaver/internal/modules"
	"github.com/KirkDiggler/feat-weaver/internal/selectors"
	"github.com/KirkDiggler/feat-weaver/internal/stats"
)

// packageRecord is the JSON document stored per package. Selectors are kept
// as their source text and parsed again on load.
type packageRecord struct {
	CachedAt time.Time      `json:"cached_at"`
	Modules  []moduleRecord `json:"modules"`
}

type moduleIDRecord struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Version uint64    `json:"version"`
}

type moduleRecord struct {
	moduleIDRecord
	Package      string                         `json:"package"`
	Descriptions map[string]descriptionRecord   `json:"descriptions,omitempty"`
	Feats        []featRecord                   `json:"feats,omitempty"`
	Dependencies []moduleIDRecord               `json:"dependencies,omitempty"`
	Stats        []statRecord                   `json:"stats,omitempty"`
	Lists        map[string]map[string][]string `json:"lists,omitempty"`
}

type descriptionRecord struct {
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
}

type featRecord struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Repeatable   bool      `json:"repeatable,omitempty"`
	Passives     []string  `json:"passives,omitempty"`
	Requirements string    `json:"requirements,omitempty"`
	Selectors    []string  `json:"selectors,omitempty"`
}

type statRecord struct {
	Name  string       `json:"name"`
	Type  string       `json:"type"`
	Using string       `json:"using,omitempty"`
	Data  []dataRecord `json:"data,omitempty"`
}

type dataRecord struct {
	Key    string   `json:"key"`
	Values []string `json:"values"`
}

func toIDRecord(id bg3.ModuleID) moduleIDRecord {
	return moduleIDRecord{ID: id.ID, Name: id.Name, Version: uint64(id.Version)}
}

func (r moduleIDRecord) toModuleID() bg3.ModuleID {
	return bg3.ModuleID{ID: r.ID, Name: r.Name, Version: bg3.Version(r.Version)}
}

func toRecord(m *modules.Module) moduleRecord {
	record := moduleRecord{
		moduleIDRecord: toIDRecord(m.ModuleID),
		Package:        m.Package,
		Descriptions:   make(map[string]descriptionRecord, len(m.Descriptions)),
		Lists:          make(map[string]map[string][]string, len(m.Lists)),
	}

	for id, description := range m.Descriptions {
		record.Descriptions[id.String()] = descriptionRecord{
			DisplayName: description.DisplayName.String(),
			Description: description.Description.String(),
			Icon:        description.Icon,
		}
	}

	for _, feat := range m.Feats {
		fr := featRecord{
			ID:           feat.ID,
			Name:         feat.Name,
			Repeatable:   feat.Repeatable,
			Passives:     feat.Passives,
			Requirements: feat.Requirements,
		}
		for _, sel := range feat.Selectors {
			fr.Selectors = append(fr.Selectors, sel.String())
		}
		record.Feats = append(record.Feats, fr)
	}

	for _, dep := range m.Dependencies {
		record.Dependencies = append(record.Dependencies, toIDRecord(dep))
	}

	for _, entry := range m.Stats {
		sr := statRecord{Name: entry.Name, Type: entry.Type, Using: entry.Using}
		for _, key := range entry.Keys() {
			sr.Data = append(sr.Data, dataRecord{Key: key, Values: entry.Get(key)})
		}
		record.Stats = append(record.Stats, sr)
	}

	for listType, byID := range m.Lists {
		lists := make(map[string][]string, len(byID))
		for id, entries := range byID {
			lists[id.String()] = entries
		}
		record.Lists[string(listType)] = lists
	}

	return record
}

func (r moduleRecord) toModule() (*modules.Module, error) {
	m := modules.New(r.Package, r.Name)
	m.ModuleID = r.moduleIDRecord.toModuleID()

	for key, description := range r.Descriptions {
		id, err := uuid.Parse(key)
		if err != nil {
			return nil, errors.WrapWithCodef(err, errors.CodeDataLoss, "invalid feat id %q", key)
		}
		displayName, err := parseLocalized(description.DisplayName)
		if err != nil {
			return nil, err
		}
		text, err := parseLocalized(description.Description)
		if err != nil {
			return nil, err
		}
		m.Descriptions[id] = bg3.FeatDescription{
			DisplayName: displayName,
			Description: text,
			Icon:        description.Icon,
		}
	}

	for _, fr := range r.Feats {
		feat := &bg3.Feat{
			ID:           fr.ID,
			Name:         fr.Name,
			Repeatable:   fr.Repeatable,
			Passives:     fr.Passives,
			Requirements: fr.Requirements,
		}
		for _, text := range fr.Selectors {
			feat.Selectors = append(feat.Selectors, selectors.Parse(text))
		}
		m.Feats = append(m.Feats, feat)
	}

	for _, dep := range r.Dependencies {
		m.Dependencies = append(m.Dependencies, dep.toModuleID())
	}

	for _, sr := range r.Stats {
		entry := stats.NewEntry(sr.Name, sr.Type)
		entry.Using = sr.Using
		for _, data := range sr.Data {
			entry.Add(data.Key, data.Values...)
		}
		m.Stats[entry.Name] = entry
	}

	for listType, lists := range r.Lists {
		byID := make(map[uuid.UUID][]string, len(lists))
		for key, entries := range lists {
			id, err := uuid.Parse(key)
			if err != nil {
				return nil, errors.WrapWithCodef(err, errors.CodeDataLoss, "invalid list id %q", key)
			}
			byID[id] = entries
		}
		m.Lists[bg3.ListType(listType)] = byID
	}

	return m, nil
}

func parseLocalized(text string) (bg3.LocalizedString, error) {
	if text == "" {
		return bg3.LocalizedString{}, nil
	}
	value, err := bg3.ParseLocalizedString(text)
	if err != nil {
		return bg3.LocalizedString{}, errors.WrapWithCode(err, errors.CodeDataLoss, "invalid cached description")
	}
	return value, nil
}
