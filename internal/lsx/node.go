package lsx

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/KirkDiggler/feat-weaver/internal/errors"
)

// Attribute is one typed node attribute. Translated strings carry a handle and
// version instead of a value.
type Attribute struct {
	ID      string
	Type    string
	Value   string
	Handle  string
	Version int
}

// String returns the value, or "handle;version" for translated strings
func (a Attribute) String() string {
	if a.Handle != "" {
		if a.Version == 0 {
			return a.Handle
		}
		return a.Handle + ";" + strconv.Itoa(a.Version)
	}
	return a.Value
}

// Node is an attribute-bearing node of an LSX tree
type Node struct {
	ID         string
	Attributes map[string]Attribute

	children map[string][]*Node
}

// Children returns the child nodes with the given id in document order
func (n *Node) Children(id string) []*Node {
	if n == nil {
		return nil
	}
	return n.children[id]
}

// Child returns the first child node with the given id, or nil
func (n *Node) Child(id string) *Node {
	children := n.Children(id)
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

// Has reports whether the attribute is present
func (n *Node) Has(name string) bool {
	_, ok := n.Attributes[name]
	return ok
}

func (n *Node) missing(name string) error {
	return errors.DataLossf("missing the attribute %s for the node %s", name, n.ID).
		WithMeta("attribute", name).
		WithMeta("node", n.ID)
}

// String returns a required attribute as a string
func (n *Node) String(name string) (string, error) {
	attr, ok := n.Attributes[name]
	if !ok {
		return "", n.missing(name)
	}
	return attr.String(), nil
}

// StringOr returns the attribute as a string, or def when absent
func (n *Node) StringOr(name, def string) string {
	attr, ok := n.Attributes[name]
	if !ok {
		return def
	}
	return attr.String()
}

// Bool returns the attribute as a bool, or def when absent
func (n *Node) Bool(name string, def bool) (bool, error) {
	attr, ok := n.Attributes[name]
	if !ok {
		return def, nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(attr.Value))
	if err != nil {
		return false, errors.WrapWithCodef(err, errors.CodeDataLoss, "attribute %s of node %s is not a bool", name, n.ID)
	}
	return v, nil
}

// GUID returns a required attribute as a uuid
func (n *Node) GUID(name string) (uuid.UUID, error) {
	attr, ok := n.Attributes[name]
	if !ok {
		return uuid.Nil, n.missing(name)
	}
	id, err := uuid.Parse(strings.TrimSpace(attr.Value))
	if err != nil {
		return uuid.Nil, errors.WrapWithCodef(err, errors.CodeDataLoss, "attribute %s of node %s is not a guid", name, n.ID)
	}
	return id, nil
}

// GUIDOr returns the attribute as a uuid, or def when absent
func (n *Node) GUIDOr(name string, def uuid.UUID) (uuid.UUID, error) {
	if !n.Has(name) {
		return def, nil
	}
	return n.GUID(name)
}

// Uint64 returns a required numeric attribute
func (n *Node) Uint64(name string) (uint64, error) {
	attr, ok := n.Attributes[name]
	if !ok {
		return 0, n.missing(name)
	}
	v, err := strconv.ParseUint(strings.TrimSpace(attr.Value), 10, 64)
	if err != nil {
		return 0, errors.WrapWithCodef(err, errors.CodeDataLoss, "attribute %s of node %s is not numeric", name, n.ID)
	}
	return v, nil
}

// Uint64Or returns the numeric attribute, or def when absent
func (n *Node) Uint64Or(name string, def uint64) (uint64, error) {
	if !n.Has(name) {
		return def, nil
	}
	return n.Uint64(name)
}
