// Package collection flattens repeating groups of the document graph into
// plain slices and maps.
package collection

import (
	"strconv"

	"github.com/samber/lo"

	"github.com/lehigh-university-libraries/zugferd/graph"
)

// Extractor reads one field from every element of a group.
type Extractor struct {
	// Name keys the field in Table rows. Empty names fall back to the
	// extractor's position ("0", "1", ...).
	Name string

	// Path is resolved against each element.
	Path string

	// Default replaces the field when Path does not resolve.
	Default string
}

// Field is shorthand for an Extractor.
func Field(name, path, def string) Extractor {
	return Extractor{Name: name, Path: path, Default: def}
}

func (e Extractor) key(i int) string {
	if e.Name != "" {
		return e.Name
	}
	return strconv.Itoa(i)
}

// Flat applies one extractor to every element of group.
func Flat(group graph.Node, ex Extractor) []string {
	return lo.Map(records(group), func(r *graph.Record, _ int) string {
		return graph.Resolve(r, ex.Path, ex.Default)
	})
}

// Table applies every extractor to every element of group. A field that
// does not resolve takes its own default without affecting the other
// fields of the row.
func Table(group graph.Node, extractors ...Extractor) []map[string]string {
	return lo.Map(records(group), func(r *graph.Record, _ int) map[string]string {
		row := make(map[string]string, len(extractors))
		for i, ex := range extractors {
			row[ex.key(i)] = graph.Resolve(r, ex.Path, ex.Default)
		}
		return row
	})
}

// Positional returns Flat for a single extractor ([]string) and Table
// otherwise ([]map[string]string).
func Positional(group graph.Node, extractors ...Extractor) any {
	if len(extractors) == 1 {
		return Flat(group, extractors[0])
	}
	return Table(group, extractors...)
}

// Associative maps keyPath to valuePath over the elements of group.
// Elements whose key or value is absent or empty are skipped; a repeated
// key keeps the value of the last element carrying it.
func Associative(group graph.Node, keyPath, valuePath string) map[string]string {
	out := make(map[string]string)
	for _, r := range records(group) {
		k := graph.Resolve(r, keyPath, "")
		v := graph.Resolve(r, valuePath, "")
		if k == "" || v == "" {
			continue
		}
		out[k] = v
	}
	return out
}

func records(group graph.Node) []*graph.Record {
	g, ok := group.(graph.Group)
	if !ok {
		return nil
	}
	return g.Records()
}
