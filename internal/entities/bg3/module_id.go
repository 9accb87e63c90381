package bg3

import (
	"fmt"

	"github.com/google/uuid"
)

// ModuleID identifies one mod: its uuid, folder name and packed version.
type ModuleID struct {
	ID      uuid.UUID
	Name    string
	Version Version
}

// IsValid reports whether both the uuid and the name are set
func (m ModuleID) IsValid() bool {
	return m.ID != uuid.Nil && m.Name != ""
}

func (m ModuleID) String() string {
	return fmt.Sprintf("%s (%s) v%s", m.Name, m.ID, m.Version)
}
