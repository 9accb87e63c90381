// Package stats models the entries of Stats/Generated/Data text files and
// reads and writes their line format.
package stats

import (
	"fmt"
	"io"
	"strings"
)

// Entry types written by the generator
const (
	TypeSpellData  = "SpellData"
	TypeStatusData = "StatusData"
)

// Data keys the generator reads or writes
const (
	KeyRequirementConditions = "RequirementConditions"
	KeyIcon                  = "Icon"
	KeyBoosts                = "Boosts"
	KeyPassives              = "Passives"
	KeyDisplayName           = "DisplayName"
	KeyDescription           = "Description"
	KeySpellContainerID      = "SpellContainerID"
	KeySpellProperties       = "SpellProperties"
	KeySpellFlags            = "SpellFlags"
)

const defaultSeparator = ";"

// separators holds the keys that do not join with a semicolon
var separators = map[string]string{
	KeyRequirementConditions: " and ",
}

// Entry is one stat entry. Data keys keep the order they were first added in.
type Entry struct {
	Name  string
	Type  string
	Using string

	keys []string
	data map[string][]string
}

// NewEntry creates an empty entry
func NewEntry(name, entryType string) *Entry {
	return &Entry{
		Name: name,
		Type: entryType,
		data: make(map[string][]string),
	}
}

// Add appends the non-empty values to key. The key is only created when at
// least one value is non-empty.
func (e *Entry) Add(key string, values ...string) *Entry {
	for _, value := range values {
		if value == "" {
			continue
		}
		if e.data == nil {
			e.data = make(map[string][]string)
		}
		if _, ok := e.data[key]; !ok {
			e.keys = append(e.keys, key)
		}
		e.data[key] = append(e.data[key], value)
	}
	return e
}

// Get returns the values stored under key, or nil when the key is absent
func (e *Entry) Get(key string) []string {
	return e.data[key]
}

// First returns the first value stored under key
func (e *Entry) First(key string) string {
	values := e.data[key]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// Keys returns the data keys in insertion order
func (e *Entry) Keys() []string {
	result := make([]string, len(e.keys))
	copy(result, e.keys)
	return result
}

// Clone returns a deep copy of the entry
func (e *Entry) Clone() *Entry {
	clone := NewEntry(e.Name, e.Type)
	clone.Using = e.Using
	for _, key := range e.keys {
		clone.Add(key, e.data[key]...)
	}
	return clone
}

// WriteTo writes the entry in stat file format.
func (e *Entry) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "new entry \"%s\"\n", e.Name)
	fmt.Fprintf(&b, "type \"%s\"\n", e.Type)
	if e.Using != "" {
		fmt.Fprintf(&b, "using \"%s\"\n", e.Using)
	}
	for _, key := range e.keys {
		sep, ok := separators[key]
		if !ok {
			sep = defaultSeparator
		}
		fmt.Fprintf(&b, "data \"%s\" \"%s\"\n", key, strings.Join(e.data[key], sep))
	}

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

func (e *Entry) String() string {
	var b strings.Builder
	_, _ = e.WriteTo(&b)
	return b.String()
}

// WriteAll writes the entries separated by blank lines
func WriteAll(w io.Writer, entries []*Entry) error {
	for i, entry := range entries {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := entry.WriteTo(w); err != nil {
			return err
		}
	}
	return nil
}
