package modules

import (
	"context"
	"io/fs"
	"log/slog"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/KirkDiggler/feat-weaver/internal/entities/bg3"
	"github.com/KirkDiggler/feat-weaver/internal/errors"
	"github.com/KirkDiggler/feat-weaver/internal/lsx"
	"github.com/KirkDiggler/feat-weaver/internal/selectors"
	"github.com/KirkDiggler/feat-weaver/internal/stats"
)

var moduleNameFromPath = regexp.MustCompile(`^[^/]+/([^/]+)/.*$`)

const (
	statsDirectory = "/stats/generated/data/"
	listsDirectory = "/lists/"
)

type fileProcessor func(m *Module, fsys fs.FS, name string) error

// fileProcessors is keyed by lower-cased base file name
var fileProcessors = map[string]fileProcessor{
	"meta.lsx":             readMeta,
	"feats.lsx":            readFeats,
	"featdescriptions.lsx": readFeatDescriptions,
}

type listNodes struct {
	region  string
	node    string
	entries string
}

var listFiles = map[bg3.ListType]listNodes{
	bg3.ListTypePassive: {region: "PassiveLists", node: "PassiveList", entries: "Passives"},
	bg3.ListTypeAbility: {region: "AbilityLists", node: "AbilityList", entries: "Abilities"},
	bg3.ListTypeSkill:   {region: "SkillLists", node: "SkillList", entries: "Skills"},
	bg3.ListTypeSpell:   {region: "SpellLists", node: "SpellList", entries: "Spells"},
}

// ReadPackageInput names the package to read
type ReadPackageInput struct {
	Package string
	FS      fs.FS
	Files   []string
}

// ReadPackageOutput holds the interesting module snapshots found in a package
type ReadPackageOutput struct {
	Modules      []*Module
	FilesRead    int
	FilesSkipped int
}

// ReadPackage builds one snapshot per module folder in the package. A file
// that fails to parse is logged and skipped; the rest of the package is still
// read. Only interesting snapshots are returned, ordered by name.
func ReadPackage(ctx context.Context, input *ReadPackageInput) (*ReadPackageOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.FS == nil {
		return nil, errors.InvalidArgument("package filesystem is required")
	}

	output := &ReadPackageOutput{}
	byName := make(map[string]*Module)

	for _, name := range input.Files {
		if err := ctx.Err(); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeCanceled, "package read canceled")
		}

		m := moduleNameFromPath.FindStringSubmatch(name)
		if m == nil {
			slog.DebugContext(ctx, "Skipping file outside a module folder", "package", input.Package, "file", name)
			continue
		}
		folder := m[1]

		module, ok := byName[folder]
		if !ok {
			module = New(input.Package, folder)
			byName[folder] = module
		}

		processed, err := processFile(module, folder, input.FS, name)
		if err != nil {
			slog.WarnContext(ctx, "Skipping unreadable file",
				"package", input.Package,
				"file", name,
				"error", err)
			output.FilesSkipped++
			continue
		}
		if processed {
			output.FilesRead++
		}
	}

	for folder, module := range byName {
		if !module.IsInteresting() {
			continue
		}
		slog.DebugContext(ctx, "Found module",
			"package", input.Package,
			"folder", folder,
			"module", module.Name,
			"version", module.Version.String(),
			"dependencies", len(module.Dependencies))
		output.Modules = append(output.Modules, module)
	}
	sort.Slice(output.Modules, func(i, j int) bool {
		return output.Modules[i].Name < output.Modules[j].Name
	})

	return output, nil
}

func processFile(module *Module, folder string, fsys fs.FS, name string) (bool, error) {
	lowerPath := strings.ToLower(name)
	lookup := path.Base(lowerPath)
	processed := false

	if processor, ok := fileProcessors[lookup]; ok {
		if err := processor(module, fsys, name); err != nil {
			return false, err
		}
		processed = true
	}

	switch path.Ext(lookup) {
	case ".txt":
		if strings.Contains(lowerPath, statsDirectory) {
			if err := readStats(module, fsys, name); err != nil {
				return false, err
			}
			processed = true
		}
	case ".lsx":
		if strings.Contains(lowerPath, "public/"+strings.ToLower(folder)+listsDirectory) {
			if err := readLists(module, fsys, name); err != nil {
				return false, err
			}
			processed = true
		}
	}

	return processed, nil
}

func openDocument(fsys fs.FS, name string) (*lsx.Document, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", name)
	}
	defer func() { _ = f.Close() }()

	doc, err := lsx.Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", name)
	}
	return doc, nil
}

func readModuleID(node *lsx.Node) (bg3.ModuleID, error) {
	id, err := node.GUID("UUID")
	if err != nil {
		return bg3.ModuleID{}, err
	}
	name, err := node.String("Name")
	if err != nil {
		return bg3.ModuleID{}, err
	}
	version, err := node.Uint64("Version64")
	if err != nil {
		return bg3.ModuleID{}, err
	}
	return bg3.ModuleID{ID: id, Name: name, Version: bg3.Version(version)}, nil
}

func readMeta(module *Module, fsys fs.FS, name string) error {
	doc, err := openDocument(fsys, name)
	if err != nil {
		return err
	}

	config := doc.Region("Config")
	info := config.Child("ModuleInfo")
	if info == nil {
		return errors.DataLossf("%s has no ModuleInfo node", name)
	}

	id, err := readModuleID(info)
	if err != nil {
		return err
	}
	if !id.IsValid() {
		module.ModuleID = id
		return nil
	}

	var dependencies []bg3.ModuleID
	for _, node := range config.Child("Dependencies").Children("ModuleShortDesc") {
		dep, err := readModuleID(node)
		if err != nil {
			return errors.Wrapf(err, "invalid dependency of %s", id.Name)
		}
		if dep.IsValid() {
			dependencies = append(dependencies, dep)
		}
	}

	module.ModuleID = id
	module.Dependencies = dependencies
	return nil
}

func readFeats(module *Module, fsys fs.FS, name string) error {
	doc, err := openDocument(fsys, name)
	if err != nil {
		return err
	}

	var feats []*bg3.Feat
	for _, node := range doc.Region("Feats").Children("Feat") {
		id, err := node.GUID("UUID")
		if err != nil {
			return err
		}
		featName, err := node.String("Name")
		if err != nil {
			return err
		}
		repeatable, err := node.Bool("CanBeTakenMultipleTimes", false)
		if err != nil {
			return err
		}

		feats = append(feats, &bg3.Feat{
			ID:           id,
			Name:         featName,
			Repeatable:   repeatable,
			Passives:     bg3.SplitList(node.StringOr("PassivesAdded", ""), ";"),
			Requirements: node.StringOr("Requirements", ""),
			Selectors:    selectors.ParseList(node.StringOr("Selectors", "")),
		})
	}

	module.Feats = append(module.Feats, feats...)
	return nil
}

func readFeatDescriptions(module *Module, fsys fs.FS, name string) error {
	doc, err := openDocument(fsys, name)
	if err != nil {
		return err
	}

	descriptions := make(map[uuid.UUID]bg3.FeatDescription)
	for _, node := range doc.Region("FeatDescriptions").Children("FeatDescription") {
		id, err := node.GUID("FeatId")
		if err != nil {
			return err
		}
		displayName, err := readLocalized(node, "DisplayName")
		if err != nil {
			return err
		}
		description, err := readLocalized(node, "Description")
		if err != nil {
			return err
		}
		descriptions[id] = bg3.FeatDescription{DisplayName: displayName, Description: description}
	}

	for id, description := range descriptions {
		module.Descriptions[id] = description
	}
	return nil
}

func readLocalized(node *lsx.Node, attribute string) (bg3.LocalizedString, error) {
	text, err := node.String(attribute)
	if err != nil {
		return bg3.LocalizedString{}, err
	}
	return bg3.ParseLocalizedString(text)
}

func readStats(module *Module, fsys fs.FS, name string) error {
	f, err := fsys.Open(name)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", name)
	}
	defer func() { _ = f.Close() }()

	entries, err := stats.Parse(f)
	if err != nil {
		return errors.Wrapf(err, "failed to parse %s", name)
	}
	for _, entry := range entries {
		module.Stats[entry.Name] = entry
	}
	return nil
}

func readLists(module *Module, fsys fs.FS, name string) error {
	doc, err := openDocument(fsys, name)
	if err != nil {
		return err
	}

	parsed := make(Lists)
	for _, listType := range bg3.ListTypes {
		info := listFiles[listType]
		for _, node := range doc.Region(info.region).Children(info.node) {
			id, err := node.GUID("UUID")
			if err != nil {
				return err
			}
			entries, err := node.String(info.entries)
			if err != nil {
				return err
			}
			parsed.set(listType, id, bg3.SplitUnique(entries, ","))
		}
	}

	for listType, byID := range parsed {
		for id, entries := range byID {
			module.Lists.set(listType, id, entries)
		}
	}
	return nil
}
