// Package profile identifies which ZUGFeRD profile a document uses and
// exposes the immutable descriptor of that profile.
package profile

import (
	_ "embed"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed profiles.yaml
var embeddedTable []byte

// Profile is the descriptor of one known schema variant.
// A Profile never changes once it has been added to a Table.
type Profile struct {
	name          string
	discriminator string
	description   string
	params        map[string]string
}

// Name returns the profile identifier (e.g., "extended").
func (p *Profile) Name() string {
	return p.name
}

// Discriminator returns the document context value that selects this profile.
func (p *Profile) Discriminator() string {
	return p.discriminator
}

// Description returns human-readable documentation.
func (p *Profile) Description() string {
	return p.description
}

// Is reports whether the profile carries the given name.
func (p *Profile) Is(name string) bool {
	return p != nil && p.name == name
}

// Param returns a profile parameter such as the attachment filename
// consumed when embedding the document into a PDF.
func (p *Profile) Param(key string) (string, error) {
	v, ok := p.params[key]
	if !ok {
		return "", &UnknownParameterError{Profile: p.name, Key: key}
	}
	return v, nil
}

// Params returns a copy of all profile parameters.
func (p *Profile) Params() map[string]string {
	return maps.Clone(p.params)
}

func (p *Profile) String() string {
	return p.name
}

// Entry is the YAML form of a profile table row.
type Entry struct {
	// Name is the profile identifier
	Name string `yaml:"name" json:"name"`

	// Discriminator is the exact context parameter value found in documents
	Discriminator string `yaml:"discriminator" json:"discriminator"`

	// Description provides human-readable documentation
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Parameters are consumed by the PDF merge step (filenames, XMP names)
	Parameters map[string]string `yaml:"parameters,omitempty" json:"parameters,omitempty"`
}

// Table is a closed, ordered set of profiles. It is read-only after
// construction and safe to share between sessions.
type Table struct {
	profiles []*Profile
}

// NewTable builds a table from ordered entries. Names and discriminators
// must be non-empty and pairwise distinct.
func NewTable(entries []Entry) (*Table, error) {
	t := &Table{profiles: make([]*Profile, 0, len(entries))}
	names := make(map[string]bool, len(entries))
	discriminators := make(map[string]bool, len(entries))

	for i, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("profile %d: missing name", i)
		}
		if e.Discriminator == "" {
			return nil, fmt.Errorf("profile %q: missing discriminator", e.Name)
		}
		if names[e.Name] {
			return nil, fmt.Errorf("profile %q: duplicate name", e.Name)
		}
		if discriminators[e.Discriminator] {
			return nil, fmt.Errorf("profile %q: duplicate discriminator %q", e.Name, e.Discriminator)
		}
		names[e.Name] = true
		discriminators[e.Discriminator] = true

		params := maps.Clone(e.Parameters)
		if params == nil {
			params = make(map[string]string)
		}
		t.profiles = append(t.profiles, &Profile{
			name:          e.Name,
			discriminator: e.Discriminator,
			description:   e.Description,
			params:        params,
		})
	}

	return t, nil
}

// LoadTable parses a YAML profile table.
func LoadTable(data []byte) (*Table, error) {
	var doc struct {
		Profiles []Entry `yaml:"profiles"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing profile table: %w", err)
	}
	return NewTable(doc.Profiles)
}

// Default is the process-wide table of ZUGFeRD 1.0 profiles.
var Default = mustLoad(embeddedTable)

func mustLoad(data []byte) *Table {
	t, err := LoadTable(data)
	if err != nil {
		panic(fmt.Sprintf("profile: embedded table: %v", err))
	}
	return t
}

// Match returns the first profile whose discriminator equals value exactly.
func (t *Table) Match(value string) (*Profile, bool) {
	for _, p := range t.profiles {
		if p.discriminator == value {
			return p, true
		}
	}
	return nil, false
}

// Lookup returns a profile by name.
func (t *Table) Lookup(name string) (*Profile, bool) {
	for _, p := range t.profiles {
		if p.name == name {
			return p, true
		}
	}
	return nil, false
}

// Names returns profile names in table order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.profiles))
	for _, p := range t.profiles {
		names = append(names, p.name)
	}
	return names
}

// Profiles returns the profiles in table order.
func (t *Table) Profiles() []*Profile {
	return slices.Clone(t.profiles)
}

// Entries returns the table in its YAML form.
func (t *Table) Entries() []Entry {
	entries := make([]Entry, 0, len(t.profiles))
	for _, p := range t.profiles {
		entries = append(entries, Entry{
			Name:          p.name,
			Discriminator: p.discriminator,
			Description:   p.description,
			Parameters:    p.Params(),
		})
	}
	return entries
}
