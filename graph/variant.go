package graph

import (
	"fmt"
	"slices"

	"github.com/beevik/etree"
)

// Accessor resolves one named segment against a record's element.
// It returns nil when the branch is absent from the document.
type Accessor func(el *etree.Element) Node

// Variant is the dispatch table of one profile: for every record type, the
// segments it defines and the accessor that resolves each. A variant is
// populated once at construction and read-only after Seal.
type Variant struct {
	name   string
	root   string
	ops    map[string]map[string]Accessor
	sealed bool
}

// NewVariant creates an empty variant whose document root has type root.
func NewVariant(name, root string) *Variant {
	return &Variant{
		name: name,
		root: root,
		ops:  make(map[string]map[string]Accessor),
	}
}

// Name returns the profile name of the variant.
func (v *Variant) Name() string {
	return v.name
}

// RootType returns the record type of the document root.
func (v *Variant) RootType() string {
	return v.root
}

// Define registers segment on record type typ. It panics after Seal.
func (v *Variant) Define(typ, segment string, fn Accessor) {
	if v.sealed {
		panic(fmt.Sprintf("graph: define %s.%s on sealed variant %s", typ, segment, v.name))
	}
	if v.ops[typ] == nil {
		v.ops[typ] = make(map[string]Accessor)
	}
	v.ops[typ][segment] = fn
}

// Seal freezes the dispatch table.
func (v *Variant) Seal() {
	v.sealed = true
}

// Defines reports whether segment exists on record type typ.
func (v *Variant) Defines(typ, segment string) bool {
	_, ok := v.accessor(typ, segment)
	return ok
}

// Types returns the defined record types, sorted.
func (v *Variant) Types() []string {
	types := make([]string, 0, len(v.ops))
	for t := range v.ops {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

// Segments returns the segments of record type typ, sorted.
func (v *Variant) Segments(typ string) []string {
	segs := make([]string, 0, len(v.ops[typ]))
	for s := range v.ops[typ] {
		segs = append(segs, s)
	}
	slices.Sort(segs)
	return segs
}

func (v *Variant) accessor(typ, segment string) (Accessor, bool) {
	fn, ok := v.ops[typ][segment]
	return fn, ok
}

// Record wraps el as a record of type typ. A nil element yields Null.
func (v *Variant) Record(typ string, el *etree.Element) Node {
	if el == nil {
		return nil
	}
	return &Record{typ: typ, el: el, variant: v}
}

// Group wraps els as a repeating group of typ. No elements yields Null.
func (v *Variant) Group(typ string, els []*etree.Element) Node {
	if len(els) == 0 {
		return nil
	}
	items := make([]*Record, 0, len(els))
	for _, el := range els {
		items = append(items, &Record{typ: typ, el: el, variant: v})
	}
	return Group{typ: typ, items: items}
}

// Root wraps the document element as the root record.
func (v *Variant) Root(el *etree.Element) *Record {
	return &Record{typ: v.root, el: el, variant: v}
}
