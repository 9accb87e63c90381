package testutils

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/feat-weaver/internal/entities/bg3"
)

// Fixture ids shared by the package fixtures
var (
	SharedModuleID  = uuid.MustParse("28ac9ce2-2aba-8cda-b3b5-6e922f71b6b8")
	AthleteModuleID = uuid.MustParse("5a6c2c8e-7f4d-4b1d-9b8e-0f2e3c4d5a6b")
	AthleteFeatID   = uuid.MustParse("d215b9ad-9753-4d74-f98f-bf24ce1dd653")
	AbilityListID   = uuid.MustParse("b9149c8e-52c8-46e5-9cb6-fc39301c05fe")
)

// Abilities is the content of the fixture ability list
const Abilities = "Strength,Dexterity,Constitution,Intelligence,Wisdom,Charisma"

// ModuleRef identifies a module in a meta.lsx fixture
type ModuleRef struct {
	ID      uuid.UUID
	Name    string
	Version bg3.Version
}

// FeatFixture is one feat in a Feats.lsx fixture
type FeatFixture struct {
	ID        uuid.UUID
	Name      string
	Passives  string
	Selectors string
}

// MetaLSX renders a meta.lsx document
func MetaLSX(module ModuleRef, deps ...ModuleRef) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>
<save>
  <region id="Config">
    <node id="root">
      <children>
        <node id="Dependencies">
          <children>
`)
	for _, dep := range deps {
		b.WriteString(moduleNode("ModuleShortDesc", dep))
	}
	b.WriteString(`          </children>
        </node>
`)
	b.WriteString(moduleNode("ModuleInfo", module))
	b.WriteString(`      </children>
    </node>
  </region>
</save>`)
	return b.String()
}

func moduleNode(id string, module ModuleRef) string {
	return fmt.Sprintf(`<node id=%q>
  <attribute id="Name" type="LSString" value=%q />
  <attribute id="UUID" type="FixedString" value=%q />
  <attribute id="Version64" type="int64" value="%d" />
</node>
`, id, module.Name, module.ID.String(), uint64(module.Version))
}

// FeatsLSX renders a Feats.lsx document
func FeatsLSX(feats ...FeatFixture) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>
<save>
  <region id="Feats">
    <node id="root">
      <children>
`)
	for _, feat := range feats {
		fmt.Fprintf(&b, `<node id="Feat">
  <attribute id="Name" type="FixedString" value=%q />
  <attribute id="PassivesAdded" type="LSString" value=%q />
  <attribute id="Selectors" type="LSString" value=%q />
  <attribute id="UUID" type="guid" value=%q />
</node>
`, feat.Name, feat.Passives, feat.Selectors, feat.ID.String())
	}
	b.WriteString(`      </children>
    </node>
  </region>
</save>`)
	return b.String()
}

// AbilityListLSX renders a list file holding one ability list
func AbilityListLSX(id uuid.UUID, entries string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<save>
  <region id="AbilityLists">
    <node id="root">
      <children>
        <node id="AbilityList">
          <attribute id="Abilities" type="LSString" value=%q />
          <attribute id="UUID" type="guid" value=%q />
        </node>
      </children>
    </node>
  </region>
</save>`, entries, id.String())
}

// SharedPackage is an unpacked Shared module defining the ability list
func SharedPackage() map[string]string {
	shared := ModuleRef{ID: SharedModuleID, Name: bg3.ModuleShared, Version: bg3.NewVersion(1, 0, 0, 0)}
	return map[string]string{
		"Mods/Shared/meta.lsx":                     MetaLSX(shared),
		"Public/Shared/Lists/AbilityLists.lsx":     AbilityListLSX(AbilityListID, Abilities),
		"Public/Shared/Assets/Textures/readme.txt": "ignored",
	}
}

// AthletePackage is a mod adding one feat that raises a single ability
func AthletePackage() map[string]string {
	athlete := ModuleRef{ID: AthleteModuleID, Name: "Athlete", Version: bg3.NewVersion(1, 0, 0, 1)}
	shared := ModuleRef{ID: SharedModuleID, Name: bg3.ModuleShared, Version: bg3.NewVersion(1, 0, 0, 0)}
	return map[string]string{
		"Mods/Athlete/meta.lsx": MetaLSX(athlete, shared),
		"Public/Athlete/Feats/Feats.lsx": FeatsLSX(FeatFixture{
			ID:        AthleteFeatID,
			Name:      "Athlete",
			Passives:  "Athlete_StandUp",
			Selectors: fmt.Sprintf("SelectAbilities(%s,1,1,Athlete)", AbilityListID),
		}),
	}
}

// WritePackageDir writes files as an unpacked package under dir
func WritePackageDir(t *testing.T, dir string, files map[string]string) string {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return dir
}

// WritePackageZip writes files as a zip package at path
func WritePackageZip(t *testing.T, path string, files map[string]string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, f.Close()) }()

	w := zip.NewWriter(f)
	for name, content := range files {
		entry, err := w.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return path
}
