// Package model defines the renderer-agnostic document produced by
// interface extraction: resolved type nodes, ports, parameters, and the
// document that ties one module's interface together.
//
// A named composite type is resolved once and every occurrence holds the
// same *TypeNode, so the field tree forms a DAG of shared, read-only
// nodes. Nothing in this package mutates a node after construction.
package model

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind classifies a resolved type node.
type Kind int

const (
	// KindScalar covers scalars and packed vectors (logic, wire, bit [7:0], ...).
	KindScalar Kind = iota
	// KindStruct is a packed struct with ordered member fields.
	KindStruct
	// KindUnion is a packed union with ordered member fields.
	KindUnion
	// KindAlias is a named typedef of another resolved type.
	KindAlias
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindStruct:
		return "struct"
	case KindUnion:
		return "union"
	case KindAlias:
		return "alias"
	default:
		return "unknown"
	}
}

// TypeNode is one resolved type occurrence. Scalars carry base name,
// signedness and packed range; composites carry ordered fields; aliases
// point at their resolved target.
type TypeNode struct {
	Kind     Kind
	Name     string
	BitRange string
	Signed   bool
	Fields   []Field
	Target   *TypeNode
}

// Field is one member of a composite type. Type references the shared
// resolved node for the member's type.
type Field struct {
	Name        string
	Type        *TypeNode
	Default     string
	Description string
}

// Port is one module boundary signal.
type Port struct {
	Name         string
	Direction    string
	Type         *TypeNode
	ResetValue   string
	DefaultValue string
	ClkDomain    string
	Description  string
}

// Parameter is one module parameter (generic).
type Parameter struct {
	Name        string
	Type        string
	Default     string
	Description string
}

// Document is the extracted interface of one module. Ports and
// parameters keep their source declaration order.
type Document struct {
	Module     string
	Ports      []Port
	Parameters []Parameter
}

// Scalar builds a leaf node. The base name, signedness and packed range
// together form the display name, e.g. "logic signed [7:0]".
func Scalar(base, bitRange string, signed bool) *TypeNode {
	return &TypeNode{Kind: KindScalar, Name: base, BitRange: bitRange, Signed: signed}
}

// widthUnknown lists scalar bases whose width depends on the
// implementation rather than a packed range.
var widthUnknown = map[string]bool{
	"integer":  true,
	"int":      true,
	"time":     true,
	"real":     true,
	"realtime": true,
}

var rangeRe = regexp.MustCompile(`\[(-?\d+)\s*:\s*(-?\d+)\]`)

// Width returns the bit width of the node and whether it is known.
// Struct width is the sum of its field widths, union width the maximum;
// one unknown member makes the whole width unknown.
func (t *TypeNode) Width() (int, bool) {
	switch t.Kind {
	case KindScalar:
		if t.BitRange != "" {
			if m := rangeRe.FindStringSubmatch(t.BitRange); m != nil {
				msb, _ := strconv.Atoi(m[1])
				lsb, _ := strconv.Atoi(m[2])
				if msb >= lsb {
					return msb - lsb + 1, true
				}
				return lsb - msb + 1, true
			}
			return 0, false
		}
		if widthUnknown[strings.ToLower(t.Name)] {
			return 0, false
		}
		return 1, true
	case KindStruct:
		total := 0
		for _, f := range t.Fields {
			w, ok := f.Type.Width()
			if !ok {
				return 0, false
			}
			total += w
		}
		return total, true
	case KindUnion:
		max := 0
		for _, f := range t.Fields {
			w, ok := f.Type.Width()
			if !ok {
				return 0, false
			}
			if w > max {
				max = w
			}
		}
		return max, true
	case KindAlias:
		if t.Target == nil {
			return 0, false
		}
		return t.Target.Width()
	default:
		return 0, false
	}
}

// IsComposite reports whether the node carries member fields.
func (t *TypeNode) IsComposite() bool {
	return t.Kind == KindStruct || t.Kind == KindUnion
}

// Resolve follows alias targets to the underlying node. Non-alias nodes
// resolve to themselves.
func (t *TypeNode) Resolve() *TypeNode {
	n := t
	for n.Kind == KindAlias && n.Target != nil {
		n = n.Target
	}
	return n
}

// String returns the display name: scalars include signedness and range,
// composites and aliases display their type name.
func (t *TypeNode) String() string {
	if t.Kind != KindScalar {
		return t.Name
	}
	parts := []string{t.Name}
	if t.Signed {
		parts = append(parts, "signed")
	}
	if t.BitRange != "" {
		parts = append(parts, t.BitRange)
	}
	return strings.Join(parts, " ")
}

func (f Field) String() string {
	return f.Type.String() + " " + f.Name
}

func (p Port) String() string {
	return p.Direction + " " + p.Type.String() + " " + p.Name
}

// LeafField pairs a dotted member path with its resolved leaf type.
type LeafField struct {
	Path string
	Type *TypeNode
}

// LeafFields flattens the node into its scalar leaves with
// fully-qualified dotted paths. A scalar node yields itself under the
// given prefix; an alias yields its target's leaves.
func (t *TypeNode) LeafFields(prefix string) []LeafField {
	switch t.Kind {
	case KindAlias:
		if t.Target == nil {
			return []LeafField{{Path: prefix, Type: t}}
		}
		return t.Target.LeafFields(prefix)
	case KindStruct, KindUnion:
		var leaves []LeafField
		for _, f := range t.Fields {
			path := f.Name
			if prefix != "" {
				path = prefix + "." + f.Name
			}
			leaves = append(leaves, f.Type.LeafFields(path)...)
		}
		return leaves
	default:
		return []LeafField{{Path: prefix, Type: t}}
	}
}

// Port looks up a port by name.
func (d *Document) Port(name string) *Port {
	for i := range d.Ports {
		if d.Ports[i].Name == name {
			return &d.Ports[i]
		}
	}
	return nil
}

// Parameter looks up a parameter by name.
func (d *Document) Parameter(name string) *Parameter {
	for i := range d.Parameters {
		if d.Parameters[i].Name == name {
			return &d.Parameters[i]
		}
	}
	return nil
}
