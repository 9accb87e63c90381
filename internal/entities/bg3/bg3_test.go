package bg3

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/feat-weaver/internal/selectors"
)

func TestVersion(t *testing.T) {
	t.Run("round trips components", func(t *testing.T) {
		v := NewVersion(1, 2, 3, 4)
		assert.Equal(t, uint64(1), v.Major())
		assert.Equal(t, uint64(2), v.Minor())
		assert.Equal(t, uint64(3), v.Revision())
		assert.Equal(t, uint64(4), v.Build())
		assert.Equal(t, "1.2.3.4", v.String())
	})

	t.Run("decodes a meta.lsx value", func(t *testing.T) {
		// 36028797018963968 is 1.0.0.0
		v := Version(36028797018963968)
		assert.Equal(t, "1.0.0.0", v.String())
	})

	t.Run("build keeps 31 bits", func(t *testing.T) {
		v := NewVersion(0, 0, 0, 0xFFFFFFFF)
		assert.Equal(t, uint64(0x7FFFFFFF), v.Build())
		assert.Equal(t, uint64(0), v.Revision())
	})

	t.Run("orders by component", func(t *testing.T) {
		assert.Less(t, uint64(NewVersion(1, 9, 9, 9)), uint64(NewVersion(2, 0, 0, 0)))
		assert.Less(t, uint64(NewVersion(1, 0, 1, 0)), uint64(NewVersion(1, 0, 1, 1)))
	})
}

func TestModuleIDIsValid(t *testing.T) {
	assert.False(t, ModuleID{}.IsValid())
	assert.False(t, ModuleID{Name: "Shared"}.IsValid())
	assert.False(t, ModuleID{ID: uuid.New()}.IsValid())
	assert.True(t, ModuleID{ID: uuid.New(), Name: "Shared"}.IsValid())
}

func TestParseLocalizedString(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected LocalizedString
		wantErr  bool
	}{
		{name: "handle only", input: "h1234", expected: LocalizedString{Handle: "h1234"}},
		{name: "handle and version", input: "h1234;3", expected: LocalizedString{Handle: "h1234", Version: 3}},
		{name: "empty", input: "", wantErr: true},
		{name: "bad version", input: "h1234;x", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseLocalizedString(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}

	assert.Equal(t, "h1;2", LocalizedString{Handle: "h1", Version: 2}.String())
	assert.Equal(t, "h1", LocalizedString{Handle: "h1"}.String())
	assert.Equal(t, "", LocalizedString{}.String())
	assert.Equal(t, "", LocalizedString{Version: 1}.String())
	assert.True(t, LocalizedString{Version: 1}.IsZero())
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "My_Cool_Mod_2", Normalize("My Cool-Mod.2"))
	assert.Equal(t, "Shared", Normalize("Shared"))
	assert.Equal(t, "caf_", Normalize("café"))
}

func TestSplitUnique(t *testing.T) {
	assert.Equal(t, []string{"Strength", "Dexterity"}, SplitUnique(" Strength, Dexterity ,,Strength", ","))
	assert.Empty(t, SplitUnique("", ","))
	assert.Equal(t, []string{"a", "b", "a"}, SplitList("a; b ;a;", ";"))
}

func TestListTypeFor(t *testing.T) {
	id := uuid.New()

	lt, err := ListTypeFor(selectors.Ability{List: id})
	require.NoError(t, err)
	assert.Equal(t, ListTypeAbility, lt)

	lt, err = ListTypeFor(selectors.Expertise{List: id})
	require.NoError(t, err)
	assert.Equal(t, ListTypeSkill, lt)

	lt, err = ListTypeFor(selectors.Passive{List: id})
	require.NoError(t, err)
	assert.Equal(t, ListTypePassive, lt)

	_, err = ListTypeFor(selectors.Unknown{Text: "x"})
	assert.Error(t, err)
}

func TestFeatEntity(t *testing.T) {
	id := uuid.New()
	feat := &Feat{ID: id, Name: "Athlete", Selectors: []selectors.Selector{selectors.Ability{List: id, Count: 1, Max: 1}}}

	assert.Equal(t, id.String(), feat.GetID())
	assert.Equal(t, EntityTypeFeat, feat.GetType())
	assert.True(t, feat.IsSupported())

	feat.Selectors = append(feat.Selectors, selectors.Skill{List: id, Count: 1})
	assert.False(t, feat.IsSupported())
}
