package profile

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/lehigh-university-libraries/zugferd/graph"
)

// DiscriminatorPath locates the guideline context parameter of a
// CrossIndustryDocument. Namespace prefixes vary between producers, so the
// query matches on local names only.
const DiscriminatorPath = "/*[local-name()='CrossIndustryDocument']" +
	"/*[local-name()='SpecifiedExchangedDocumentContext']" +
	"/*[local-name()='GuidelineSpecifiedDocumentContextParameter']" +
	"/*[local-name()='ID']"

// Resolver detects the profile of raw documents against a fixed table.
type Resolver struct {
	table *Table
	query *xpath.Expr
}

// NewResolver creates a resolver over table using the standard
// discriminator location. A nil table selects Default.
func NewResolver(table *Table) *Resolver {
	if table == nil {
		table = Default
	}
	return &Resolver{
		table: table,
		query: xpath.MustCompile(DiscriminatorPath),
	}
}

// NewResolverAt creates a resolver that reads the discriminator from a
// custom XPath location.
func NewResolverAt(table *Table, expr string) (*Resolver, error) {
	q, err := xpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling discriminator query: %w", err)
	}
	r := NewResolver(table)
	r.query = q
	return r, nil
}

// Table returns the table this resolver matches against.
func (r *Resolver) Table() *Table {
	return r.table
}

// Resolve parses raw and returns the matching profile.
func (r *Resolver) Resolve(raw []byte) (*Profile, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("%w: empty input", graph.ErrMalformedDocument)
	}

	doc, err := xmlquery.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", graph.ErrMalformedDocument, err)
	}
	if !hasElement(doc) {
		return nil, fmt.Errorf("%w: no root element", graph.ErrMalformedDocument)
	}

	return r.ResolveNode(doc)
}

// ResolveNode resolves the profile of an already parsed document.
// The first result of the discriminator query is compared byte for byte
// against the table; surrounding whitespace is significant.
func (r *Resolver) ResolveNode(doc *xmlquery.Node) (*Profile, error) {
	nodes := xmlquery.QuerySelectorAll(doc, r.query)
	if len(nodes) == 0 {
		return nil, ErrDiscriminatorNotFound
	}

	value := nodes[0].InnerText()
	p, ok := r.table.Match(value)
	if !ok {
		return nil, &UnknownProfileError{Value: value}
	}

	slog.Debug("resolved profile", "profile", p.name, "discriminator", value)
	return p, nil
}

func hasElement(doc *xmlquery.Node) bool {
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return true
		}
	}
	return false
}
