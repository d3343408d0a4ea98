package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/etree"

	"github.com/lehigh-university-libraries/zugferd/graph"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default()

	names := r.Names()
	if strings.Join(names, ",") != "basic,comfort,extended" {
		t.Fatalf("Names() = %v", names)
	}

	tests := []struct {
		profile string
		typ     string
		segment string
		want    bool
	}{
		{"basic", "ExchangedDocument", "ID", true},
		{"basic", "TradeAgreement", "BuyerReference", false},
		{"comfort", "TradeAgreement", "BuyerReference", true},
		{"comfort", "TradeAgreement", "AdditionalReferencedDocument", false},
		{"extended", "TradeAgreement", "AdditionalReferencedDocument", true},
		{"extended", "TradeAgreement", "BuyerReference", true},
		{"extended", "ExchangedDocument", "ID", true},
		{"basic", "Product", "ApplicableProductCharacteristic", false},
		{"extended", "Product", "ApplicableProductCharacteristic", true},
	}

	for _, tt := range tests {
		t.Run(tt.profile+"/"+tt.typ+"."+tt.segment, func(t *testing.T) {
			v, err := r.Variant(tt.profile)
			if err != nil {
				t.Fatalf("Variant() error = %v", err)
			}
			if got := v.Defines(tt.typ, tt.segment); got != tt.want {
				t.Errorf("Defines() = %v, want %v", got, tt.want)
			}
			if v.RootType() != "CrossIndustryDocument" {
				t.Errorf("RootType() = %q", v.RootType())
			}
		})
	}

	if _, err := r.Variant("xrechnung"); err == nil {
		t.Error("Variant(xrechnung) error = nil")
	}
}

func TestExtendsOverride(t *testing.T) {
	r := NewRegistry()
	if err := r.LoadFromYAML([]byte(`
name: parent
root: Doc
types:
  Doc:
    Title: {}
    Amount: {unit: currencyID}
`)); err != nil {
		t.Fatal(err)
	}
	if err := r.LoadFromYAML([]byte(`
name: child
extends: parent
types:
  Doc:
    Title: {element: Heading}
    Extra: {}
`)); err != nil {
		t.Fatal(err)
	}
	if err := r.Build(); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(`<Doc><Title>old</Title><Heading>new</Heading><Amount currencyID="EUR"> 12.50 </Amount><Extra>x</Extra></Doc>`); err != nil {
		t.Fatal(err)
	}

	parent, _ := r.Variant("parent")
	child, _ := r.Variant("child")

	p := parent.Root(doc.Root())
	c := child.Root(doc.Root())

	if got := graph.Resolve(p, "Title.value", ""); got != "old" {
		t.Errorf("parent Title = %q, want old", got)
	}
	if got := graph.Resolve(c, "Title.value", ""); got != "new" {
		t.Errorf("child Title = %q, want new", got)
	}
	if got := graph.Resolve(c, "Amount.value", ""); got != "12.50" {
		t.Errorf("child Amount = %q, want trimmed 12.50", got)
	}
	if got := graph.Unit(c, "Amount"); got != "EUR" {
		t.Errorf("child Amount unit = %q", got)
	}
	if got := graph.Resolve(p, "Extra.value", "-"); got != "-" {
		t.Errorf("parent Extra = %q, want undefined", got)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		defs []string
		want string
	}{
		{
			"cycle",
			[]string{
				"name: a\nextends: b\nroot: Doc\ntypes:\n  Doc: {}\n",
				"name: b\nextends: a\ntypes: {}\n",
			},
			"cycle",
		},
		{
			"missing parent",
			[]string{"name: a\nextends: nope\nroot: Doc\ntypes:\n  Doc: {}\n"},
			"not registered",
		},
		{
			"undefined type",
			[]string{"name: a\nroot: Doc\ntypes:\n  Doc:\n    Child: {record: Nowhere}\n"},
			"not defined",
		},
		{
			"missing root",
			[]string{"name: a\ntypes:\n  Doc: {}\n"},
			"missing root",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			for _, d := range tt.defs {
				if err := r.LoadFromYAML([]byte(d)); err != nil {
					t.Fatalf("LoadFromYAML() error = %v", err)
				}
			}
			err := r.Build()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Build() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	d := &Definition{
		Name: "bad",
		Root: "Doc",
		Types: map[string]map[string]Field{
			"Doc": {
				"Both":   {Record: "Doc", Group: "Doc"},
				"Unit":   {Record: "Doc", Unit: "currencyID"},
				"Self":   {Self: true, Element: "X"},
				"Scalar": {},
			},
		},
	}
	if problems := d.Validate(); len(problems) != 3 {
		t.Errorf("Validate() = %v, want 3 problems", problems)
	}
	if _, err := Compile(d); err == nil {
		t.Error("Compile() error = nil")
	}
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"one.yaml": "name: one\nroot: Doc\ntypes:\n  Doc:\n    A: {}\n",
		"two.yml":  "name: two\nextends: one\ntypes:\n  Doc:\n    B: {}\n",
		"skip.txt": "not yaml",
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0644); err != nil {
			t.Fatal(err)
		}
	}

	r := NewRegistry()
	if err := r.LoadFromPath(dir); err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if got := strings.Join(r.Names(), ","); got != "one,two" {
		t.Errorf("Names() = %q", got)
	}
	if err := r.Build(); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	v, _ := r.Variant("two")
	if !v.Defines("Doc", "A") || !v.Defines("Doc", "B") {
		t.Errorf("two segments = %v", v.Segments("Doc"))
	}

	if err := r.LoadFromYAML([]byte("types: {}")); err == nil {
		t.Error("LoadFromYAML(no name) error = nil")
	}
	if err := r.LoadFromPath(filepath.Join(dir, "missing")); err == nil {
		t.Error("LoadFromPath(missing) error = nil")
	}
}

func TestFieldKind(t *testing.T) {
	tests := []struct {
		f    Field
		want FieldKind
	}{
		{Field{}, FieldScalar},
		{Field{Attr: "schemeID"}, FieldScalar},
		{Field{Record: "X"}, FieldRecord},
		{Field{Group: "X"}, FieldGroup},
	}
	for _, tt := range tests {
		if got := tt.f.Kind(); got != tt.want {
			t.Errorf("%+v.Kind() = %q, want %q", tt.f, got, tt.want)
		}
	}
}
