// Package format defines the interface for document format plugins.
package format

import (
	"github.com/lehigh-university-libraries/zugferd/graph"
)

// Format defines the interface that all format plugins must implement.
type Format interface {
	// Name returns the format identifier (e.g., "cii", "pdf")
	Name() string

	// Description returns a human-readable format description
	Description() string

	// Extensions returns file extensions associated with this format
	Extensions() []string

	// CanParse returns true if this format can parse the given input
	CanParse(peek []byte) bool
}

// Deserializer is a format that turns raw text into a document graph.
type Deserializer interface {
	Format

	// Deserialize builds the document graph of raw using the schema variant
	// registered for profileName. Unparsable text fails with
	// graph.ErrMalformedDocument.
	Deserialize(profileName string, raw []byte) (*graph.Record, error)
}

// Container is a format that wraps the actual document, such as a PDF
// carrying the invoice XML as an embedded file.
type Container interface {
	Format

	// Payload returns the wrapped document.
	Payload(raw []byte) ([]byte, error)
}
