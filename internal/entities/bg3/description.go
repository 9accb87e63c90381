package bg3

import (
	"strconv"
	"strings"

	"github.com/KirkDiggler/feat-weaver/internal/errors"
)

// LocalizedString references a translated string by handle and, optionally,
// version. A zero Version means the reference carries no version.
type LocalizedString struct {
	Handle  string
	Version int
}

// ParseLocalizedString accepts "handle" or "handle;version".
func ParseLocalizedString(text string) (LocalizedString, error) {
	handle, version, found := strings.Cut(strings.TrimSpace(text), ";")
	if handle == "" {
		return LocalizedString{}, errors.InvalidArgumentf("empty localized string %q", text)
	}
	if !found {
		return LocalizedString{Handle: handle}, nil
	}

	v, err := strconv.Atoi(strings.TrimSpace(version))
	if err != nil {
		return LocalizedString{}, errors.InvalidArgumentf("invalid localized string version %q", text)
	}
	return LocalizedString{Handle: handle, Version: v}, nil
}

// IsZero reports whether the string has no handle
func (l LocalizedString) IsZero() bool {
	return l.Handle == ""
}

// String renders the form used in stat data lines. A string without a handle
// renders empty whatever its version.
func (l LocalizedString) String() string {
	if l.IsZero() {
		return ""
	}
	if l.Version == 0 {
		return l.Handle
	}
	return l.Handle + ";" + strconv.Itoa(l.Version)
}

// FeatDescription is the display metadata a module attaches to a feat.
type FeatDescription struct {
	DisplayName LocalizedString
	Description LocalizedString
	Icon        string
}
