// Package cii provides the format plugin for ZUGFeRD 1.0
// CrossIndustryDocument XML.
package cii

import (
	"bytes"

	"github.com/lehigh-university-libraries/zugferd/format"
	"github.com/lehigh-university-libraries/zugferd/schema"
)

// Version documents the ZUGFeRD release this implementation targets.
const Version = "1.0"

// Format implements the CrossIndustryDocument format.
type Format struct {
	// Schemas supplies the per-profile variants. Nil selects schema.Default().
	Schemas *schema.Registry
}

// Ensure Format implements the interfaces
var (
	_ format.Format       = (*Format)(nil)
	_ format.Deserializer = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "cii"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "ZUGFeRD " + Version + " CrossIndustryDocument XML"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"xml"}
}

// CanParse returns true if the input looks like a CrossIndustryDocument.
func (f *Format) CanParse(peek []byte) bool {
	peek = bytes.TrimSpace(peek)
	if len(peek) == 0 || peek[0] != '<' {
		return false
	}
	return bytes.Contains(peek, []byte("CrossIndustryDocument"))
}

func (f *Format) registry() *schema.Registry {
	if f.Schemas != nil {
		return f.Schemas
	}
	return schema.Default()
}

func init() {
	format.Register(&Format{})
}
