// Package schema declares, per profile, which segments each record type of
// the document graph exposes and where in the XML each segment lives.
//
// Definitions are YAML. A definition may extend another one, so Comfort
// only lists what it adds to Basic and Extended only what it adds to
// Comfort. Compiling a definition produces a sealed graph.Variant whose
// dispatch table is fixed for the life of the process.
package schema

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/lehigh-university-libraries/zugferd/graph"
)

// FieldKind identifies the node shape a segment resolves to.
type FieldKind string

const (
	FieldScalar FieldKind = "scalar"
	FieldRecord FieldKind = "record"
	FieldGroup  FieldKind = "group"
)

// Field describes one segment of a record type.
type Field struct {
	// Element is the child path relative to the record, "/"-separated local
	// names. Defaults to the segment name.
	Element string `yaml:"element,omitempty" json:"element,omitempty"`

	// Self targets the record's own element instead of a child
	Self bool `yaml:"self,omitempty" json:"self,omitempty"`

	// Attr reads a scalar from this attribute instead of the element text
	Attr string `yaml:"attr,omitempty" json:"attr,omitempty"`

	// Unit is the attribute that qualifies a scalar (currencyID, unitCode, format)
	Unit string `yaml:"unit,omitempty" json:"unit,omitempty"`

	// Record makes the segment a nested record of this type
	Record string `yaml:"record,omitempty" json:"record,omitempty"`

	// Group makes the segment a repeating group of records of this type
	Group string `yaml:"group,omitempty" json:"group,omitempty"`
}

// Kind returns the node shape of the field.
func (f Field) Kind() FieldKind {
	switch {
	case f.Group != "":
		return FieldGroup
	case f.Record != "":
		return FieldRecord
	default:
		return FieldScalar
	}
}

// Target returns the record type of a record or group field.
func (f Field) Target() string {
	if f.Group != "" {
		return f.Group
	}
	return f.Record
}

// Definition is the YAML form of one profile variant.
type Definition struct {
	Name    string                      `yaml:"name" json:"name"`
	Extends string                      `yaml:"extends,omitempty" json:"extends,omitempty"`
	Root    string                      `yaml:"root,omitempty" json:"root,omitempty"`
	Types   map[string]map[string]Field `yaml:"types" json:"types"`
}

// Validate checks that every field is well formed and that every nested
// type it references is defined.
func (d *Definition) Validate() []string {
	var problems []string
	if d.Root == "" {
		problems = append(problems, "missing root type")
	} else if _, ok := d.Types[d.Root]; !ok {
		problems = append(problems, fmt.Sprintf("root type %q not defined", d.Root))
	}

	for typ, fields := range d.Types {
		for seg, f := range fields {
			where := typ + "." + seg
			if f.Record != "" && f.Group != "" {
				problems = append(problems, where+": both record and group set")
			}
			if f.Kind() != FieldScalar && (f.Attr != "" || f.Unit != "") {
				problems = append(problems, where+": attr/unit only apply to scalars")
			}
			if f.Self && f.Element != "" {
				problems = append(problems, where+": self and element are exclusive")
			}
			if t := f.Target(); t != "" {
				if _, ok := d.Types[t]; !ok {
					problems = append(problems, fmt.Sprintf("%s: type %q not defined", where, t))
				}
			}
		}
	}
	return problems
}

// Compile builds the sealed dispatch table for a fully merged definition.
func Compile(d *Definition) (*graph.Variant, error) {
	if problems := d.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("schema %s: %s", d.Name, strings.Join(problems, "; "))
	}

	v := graph.NewVariant(d.Name, d.Root)
	for typ, fields := range d.Types {
		for seg, f := range fields {
			v.Define(typ, seg, accessor(v, seg, f))
		}
	}
	v.Seal()
	return v, nil
}

func accessor(v *graph.Variant, seg string, f Field) graph.Accessor {
	path := f.Element
	if path == "" && !f.Self {
		path = seg
	}

	switch f.Kind() {
	case FieldGroup:
		typ := f.Group
		return func(el *etree.Element) graph.Node {
			return v.Group(typ, el.FindElements(path))
		}
	case FieldRecord:
		typ := f.Record
		return func(el *etree.Element) graph.Node {
			return v.Record(typ, find(el, path))
		}
	}

	attr, unit := f.Attr, f.Unit
	return func(el *etree.Element) graph.Node {
		t := find(el, path)
		if t == nil {
			return nil
		}
		if attr != "" {
			a := t.SelectAttr(attr)
			if a == nil {
				return nil
			}
			return graph.Scalar{Value: a.Value}
		}
		s := graph.Scalar{Value: strings.TrimSpace(t.Text())}
		if unit != "" {
			s.Unit = t.SelectAttrValue(unit, "")
		}
		return s
	}
}

func find(el *etree.Element, path string) *etree.Element {
	if path == "" {
		return el
	}
	return el.FindElement(path)
}
