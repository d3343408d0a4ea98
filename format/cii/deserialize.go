package cii

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/lehigh-university-libraries/zugferd/graph"
)

// Deserialize parses raw XML into the document graph of profileName.
func (f *Format) Deserialize(profileName string, raw []byte) (*graph.Record, error) {
	v, err := f.registry().Variant(profileName)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", graph.ErrMalformedDocument, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", graph.ErrMalformedDocument)
	}
	if root.Tag != v.RootType() {
		return nil, fmt.Errorf("%w: root element %q, want %q", graph.ErrMalformedDocument, root.Tag, v.RootType())
	}

	return v.Root(root), nil
}
