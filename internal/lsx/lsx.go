// Package lsx reads the LSX resource files found in mod packages. An LSX file
// is an XML tree of regions; each region holds a root node whose children are
// attribute-bearing nodes.
package lsx

import (
	"encoding/xml"
	"io"
	"strconv"

	"github.com/KirkDiggler/feat-weaver/internal/errors"
)

type xmlSave struct {
	Regions []xmlRegion `xml:"region"`
}

type xmlRegion struct {
	ID    string    `xml:"id,attr"`
	Nodes []xmlNode `xml:"node"`
}

type xmlNode struct {
	ID         string         `xml:"id,attr"`
	Attributes []xmlAttribute `xml:"attribute"`
	Children   []xmlNode      `xml:"children>node"`
}

type xmlAttribute struct {
	ID      string `xml:"id,attr"`
	Type    string `xml:"type,attr"`
	Value   string `xml:"value,attr"`
	Handle  string `xml:"handle,attr"`
	Version string `xml:"version,attr"`
}

// Document is a parsed LSX file
type Document struct {
	regions map[string]*Node
}

// Read parses an LSX document. The first node of each region becomes the
// region's root.
func Read(r io.Reader) (*Document, error) {
	var save xmlSave
	if err := xml.NewDecoder(r).Decode(&save); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "failed to decode lsx")
	}

	doc := &Document{regions: make(map[string]*Node, len(save.Regions))}
	for _, region := range save.Regions {
		if len(region.Nodes) == 0 {
			continue
		}
		if _, exists := doc.regions[region.ID]; exists {
			continue
		}
		doc.regions[region.ID] = convertNode(region.Nodes[0])
	}

	return doc, nil
}

// Region returns the root node of the region with the given id, or nil.
func (d *Document) Region(id string) *Node {
	return d.regions[id]
}

func convertNode(n xmlNode) *Node {
	node := &Node{
		ID:         n.ID,
		Attributes: make(map[string]Attribute, len(n.Attributes)),
		children:   make(map[string][]*Node),
	}
	for _, a := range n.Attributes {
		attr := Attribute{ID: a.ID, Type: a.Type, Value: a.Value, Handle: a.Handle}
		if a.Version != "" {
			if v, err := strconv.Atoi(a.Version); err == nil {
				attr.Version = v
			}
		}
		node.Attributes[a.ID] = attr
	}
	for _, c := range n.Children {
		child := convertNode(c)
		node.children[child.ID] = append(node.children[child.ID], child)
	}
	return node
}
