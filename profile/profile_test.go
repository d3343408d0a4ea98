package profile

import (
	"errors"
	"testing"

	"github.com/lehigh-university-libraries/zugferd/graph"
)

func doc(discriminator string) []byte {
	return []byte(`<?xml version="1.0" encoding="UTF-8"?>
<rsm:CrossIndustryDocument xmlns:rsm="urn:ferd:CrossIndustryDocument:invoice:1p0"
    xmlns:ram="urn:un:unece:uncefact:data:standard:ReusableAggregateBusinessInformationEntity:12">
  <rsm:SpecifiedExchangedDocumentContext>
    <ram:GuidelineSpecifiedDocumentContextParameter>
      <ram:ID>` + discriminator + `</ram:ID>
    </ram:GuidelineSpecifiedDocumentContextParameter>
  </rsm:SpecifiedExchangedDocumentContext>
</rsm:CrossIndustryDocument>`)
}

func TestResolveKnownProfiles(t *testing.T) {
	tests := []struct {
		discriminator string
		want          string
	}{
		{"urn:ferd:CrossIndustryDocument:invoice:1p0:basic", "basic"},
		{"urn:ferd:CrossIndustryDocument:invoice:1p0:comfort", "comfort"},
		{"urn:ferd:CrossIndustryDocument:invoice:1p0:extended", "extended"},
	}

	r := NewResolver(nil)
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			p, err := r.Resolve(doc(tt.discriminator))
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if p.Name() != tt.want {
				t.Errorf("Name() = %q, want %q", p.Name(), tt.want)
			}
			if p.Discriminator() != tt.discriminator {
				t.Errorf("Discriminator() = %q, want %q", p.Discriminator(), tt.discriminator)
			}
			if !p.Is(tt.want) {
				t.Errorf("Is(%q) = false", tt.want)
			}
		})
	}
}

func TestResolveUnknownProfile(t *testing.T) {
	tests := []struct {
		name          string
		discriminator string
	}{
		{"foreign value", "X"},
		{"trailing whitespace", "urn:ferd:CrossIndustryDocument:invoice:1p0:basic "},
		{"other case", "URN:FERD:CrossIndustryDocument:invoice:1p0:basic"},
		{"empty", ""},
	}

	r := NewResolver(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(doc(tt.discriminator))
			if !errors.Is(err, ErrUnknownProfile) {
				t.Fatalf("Resolve() error = %v, want ErrUnknownProfile", err)
			}
			var upe *UnknownProfileError
			if !errors.As(err, &upe) {
				t.Fatalf("error %T is not *UnknownProfileError", err)
			}
			if upe.Value != tt.discriminator {
				t.Errorf("Value = %q, want %q", upe.Value, tt.discriminator)
			}
		})
	}
}

func TestResolveNotFound(t *testing.T) {
	raw := []byte(`<rsm:CrossIndustryDocument xmlns:rsm="urn:ferd:CrossIndustryDocument:invoice:1p0">
  <rsm:HeaderExchangedDocument/>
</rsm:CrossIndustryDocument>`)

	_, err := NewResolver(nil).Resolve(raw)
	if !errors.Is(err, ErrDiscriminatorNotFound) {
		t.Errorf("Resolve() error = %v, want ErrDiscriminatorNotFound", err)
	}
}

func TestResolveMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace", "  \n\t"},
		{"unterminated", "<rsm:CrossIndustryDocument><unclosed"},
		{"no element", "just some text"},
	}

	r := NewResolver(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve([]byte(tt.raw))
			if !errors.Is(err, graph.ErrMalformedDocument) {
				t.Errorf("Resolve() error = %v, want ErrMalformedDocument", err)
			}
		})
	}
}

func TestResolveCustomTable(t *testing.T) {
	table, err := NewTable([]Entry{
		{Name: "x", Discriminator: "X"},
	})
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}

	p, err := NewResolver(table).Resolve(doc("X"))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if p.Name() != "x" {
		t.Errorf("Name() = %q, want x", p.Name())
	}
}

func TestResolverAt(t *testing.T) {
	if _, err := NewResolverAt(nil, "//*[local-name()="); err == nil {
		t.Error("NewResolverAt() with invalid expression: error = nil")
	}

	r, err := NewResolverAt(nil, "//*[local-name()='ID']")
	if err != nil {
		t.Fatalf("NewResolverAt() error = %v", err)
	}
	p, err := r.Resolve(doc("urn:ferd:CrossIndustryDocument:invoice:1p0:comfort"))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if p.Name() != "comfort" {
		t.Errorf("Name() = %q, want comfort", p.Name())
	}
}

func TestParam(t *testing.T) {
	p, ok := Default.Lookup("extended")
	if !ok {
		t.Fatal("Lookup(extended) not found")
	}

	got, err := p.Param("attachment_filename")
	if err != nil {
		t.Fatalf("Param() error = %v", err)
	}
	if got != "ZUGFeRD-invoice.xml" {
		t.Errorf("attachment_filename = %q", got)
	}
	if lvl, _ := p.Param("conformance_level"); lvl != "EXTENDED" {
		t.Errorf("conformance_level = %q, want EXTENDED", lvl)
	}

	_, err = p.Param("no_such_key")
	if !errors.Is(err, ErrUnknownParameter) {
		t.Fatalf("Param(no_such_key) error = %v, want ErrUnknownParameter", err)
	}
	var upe *UnknownParameterError
	if !errors.As(err, &upe) || upe.Key != "no_such_key" || upe.Profile != "extended" {
		t.Errorf("error = %#v", err)
	}

	params := p.Params()
	params["attachment_filename"] = "changed.xml"
	if again, _ := p.Param("attachment_filename"); again != "ZUGFeRD-invoice.xml" {
		t.Errorf("Params() copy leaked into profile: %q", again)
	}
}

func TestDefaultTable(t *testing.T) {
	names := Default.Names()
	want := []string{"basic", "comfort", "extended"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
	if _, ok := Default.Lookup("xrechnung"); ok {
		t.Error("Lookup(xrechnung) found a profile")
	}
	if len(Default.Entries()) != 3 || len(Default.Profiles()) != 3 {
		t.Error("Entries()/Profiles() length mismatch")
	}
}

func TestNewTableRejects(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
	}{
		{"missing name", []Entry{{Discriminator: "a"}}},
		{"missing discriminator", []Entry{{Name: "a"}}},
		{"duplicate name", []Entry{{Name: "a", Discriminator: "1"}, {Name: "a", Discriminator: "2"}}},
		{"duplicate discriminator", []Entry{{Name: "a", Discriminator: "1"}, {Name: "b", Discriminator: "1"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTable(tt.entries); err == nil {
				t.Error("NewTable() error = nil")
			}
		})
	}
}

func TestLoadTable(t *testing.T) {
	data := []byte(`profiles:
  - name: one
    discriminator: "urn:one"
    parameters:
      attachment_filename: one.xml
`)
	table, err := LoadTable(data)
	if err != nil {
		t.Fatalf("LoadTable() error = %v", err)
	}
	p, ok := table.Match("urn:one")
	if !ok {
		t.Fatal("Match(urn:one) not found")
	}
	if v, _ := p.Param("attachment_filename"); v != "one.xml" {
		t.Errorf("attachment_filename = %q", v)
	}

	if _, err := LoadTable([]byte("profiles: [")); err == nil {
		t.Error("LoadTable(invalid) error = nil")
	}
}
