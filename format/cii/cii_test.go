package cii

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lehigh-university-libraries/zugferd/graph"
)

func TestCanParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"cross industry document", `<?xml version="1.0"?><rsm:CrossIndustryDocument/>`, true},
		{"leading whitespace", "\n  <rsm:CrossIndustryDocument/>", true},
		{"other xml", `<resource xmlns="http://datacite.org/schema/kernel-4"/>`, false},
		{"pdf", "%PDF-1.7", false},
		{"empty", "", false},
	}

	f := &Format{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.CanParse([]byte(tt.input)); got != tt.want {
				t.Errorf("CanParse() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeserialize(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("..", "..", "testdata", "extended.xml"))
	if err != nil {
		t.Fatal(err)
	}

	root, err := (&Format{}).Deserialize("extended", raw)
	if err != nil {
		t.Fatalf("Deserialize() error = %v", err)
	}
	if root.Type() != "CrossIndustryDocument" || root.Variant().Name() != "extended" {
		t.Errorf("root = %s/%s", root.Type(), root.Variant().Name())
	}
	if got := graph.Resolve(root, "HeaderExchangedDocument.ID.value", ""); got != "RE1337" {
		t.Errorf("ID = %q, want RE1337", got)
	}
}

func TestDeserializeMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not xml", "<<<"},
		{"unterminated", "<rsm:CrossIndustryDocument><rsm:HeaderExchangedDocument>"},
		{"no root", ""},
		{"wrong root", `<Invoice xmlns="urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"/>`},
	}

	f := &Format{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.Deserialize("basic", []byte(tt.raw))
			if !errors.Is(err, graph.ErrMalformedDocument) {
				t.Errorf("Deserialize() error = %v, want ErrMalformedDocument", err)
			}
		})
	}
}

func TestDeserializeUnknownProfile(t *testing.T) {
	_, err := (&Format{}).Deserialize("xrechnung", []byte("<rsm:CrossIndustryDocument/>"))
	if err == nil {
		t.Error("Deserialize() error = nil")
	}
}
