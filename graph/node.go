// Package graph is the read-only document graph produced by deserializers
// and the path accessor used to navigate it.
//
// A node is one of:
//   - nil (Null), a branch the document or its profile does not populate
//   - Scalar, a leaf value with an optional unit (currency, unit code, scheme)
//   - *Record, an element whose named children are defined by the active
//     profile variant
//   - Group, an ordered list of sibling records of the same type
//
// Records never expose their children generically. Every child is reached
// through a segment registered on the record's Variant, so a segment that one
// profile defines and another omits simply does not resolve under the latter.
package graph

import (
	"errors"

	"github.com/beevik/etree"
)

// ErrMalformedDocument is returned when raw text cannot be parsed at all.
var ErrMalformedDocument = errors.New("malformed document")

// Kind identifies the shape of a node.
type Kind int

const (
	KindScalar Kind = iota + 1
	KindRecord
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindRecord:
		return "record"
	case KindGroup:
		return "group"
	default:
		return "null"
	}
}

// Node is a document graph node. A nil Node is Null.
type Node interface {
	Kind() Kind
}

// Scalar is a leaf value.
type Scalar struct {
	Value string
	// Unit qualifies Value: currencyID, unitCode, schemeID or a date format code.
	Unit string
}

// Kind implements Node.
func (Scalar) Kind() Kind { return KindScalar }

// Record is an element whose children are resolved through its variant.
type Record struct {
	typ     string
	el      *etree.Element
	variant *Variant
}

// Kind implements Node.
func (*Record) Kind() Kind { return KindRecord }

// Type returns the record type name used by the variant's dispatch table.
func (r *Record) Type() string {
	return r.typ
}

// Element returns the underlying XML element.
func (r *Record) Element() *etree.Element {
	return r.el
}

// Variant returns the profile variant that defines this record's segments.
func (r *Record) Variant() *Variant {
	return r.variant
}

// Field resolves one segment. ok is false when the segment is not defined
// for this record type under the active variant; a defined segment whose
// branch is absent returns (nil, true).
func (r *Record) Field(segment string) (Node, bool) {
	fn, ok := r.variant.accessor(r.typ, segment)
	if !ok {
		return nil, false
	}
	return fn(r.el), true
}

// Segments lists the segments defined for this record type.
func (r *Record) Segments() []string {
	return r.variant.Segments(r.typ)
}

// Group is a repeating group of records.
type Group struct {
	typ   string
	items []*Record
}

// Kind implements Node.
func (Group) Kind() Kind { return KindGroup }

// Type returns the record type of the group's elements.
func (g Group) Type() string {
	return g.typ
}

// Len returns the number of elements.
func (g Group) Len() int {
	return len(g.items)
}

// At returns element i, or nil when i is out of range.
func (g Group) At(i int) *Record {
	if i < 0 || i >= len(g.items) {
		return nil
	}
	return g.items[i]
}

// Records returns the group's elements.
func (g Group) Records() []*Record {
	return g.items
}

// Len returns the length of a repeating group node. Any other node,
// including Null, has length 0.
func Len(n Node) int {
	g, ok := n.(Group)
	if !ok {
		return 0
	}
	return g.Len()
}

// Index returns element i of a repeating group node, or Null.
func Index(n Node, i int) Node {
	g, ok := n.(Group)
	if !ok {
		return nil
	}
	r := g.At(i)
	if r == nil {
		return nil
	}
	return r
}
