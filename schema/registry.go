package schema

import (
	"embed"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/zugferd/graph"
)

//go:embed definitions/*.yaml
var embeddedDefinitions embed.FS

// Registry holds profile definitions and their compiled variants.
type Registry struct {
	mu       sync.RWMutex
	defs     map[string]*Definition
	variants map[string]*graph.Variant
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		defs:     make(map[string]*Definition),
		variants: make(map[string]*graph.Variant),
	}
}

// Register adds or replaces a definition. Compiled variants are discarded.
func (r *Registry) Register(d *Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.defs[d.Name] = d
	clear(r.variants)
}

// Definition returns a registered (unmerged) definition.
func (r *Registry) Definition(name string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.defs[name]
	return d, ok
}

// Names returns registered definition names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.defs))
}

// Build merges every definition with its ancestors and compiles it.
func (r *Registry) Build() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	variants := make(map[string]*graph.Variant, len(r.defs))
	for name := range r.defs {
		merged, err := r.merge(name, nil)
		if err != nil {
			return err
		}
		v, err := Compile(merged)
		if err != nil {
			return err
		}
		variants[name] = v
	}
	r.variants = variants
	return nil
}

// Variant returns the compiled variant for a profile name.
func (r *Registry) Variant(name string) (*graph.Variant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.variants[name]
	if !ok {
		return nil, fmt.Errorf("no schema for profile %q", name)
	}
	return v, nil
}

// merge flattens the extends chain of name. Child fields override parent
// fields with the same segment.
func (r *Registry) merge(name string, seen []string) (*Definition, error) {
	if slices.Contains(seen, name) {
		return nil, fmt.Errorf("schema %s: extends cycle %s", name, strings.Join(append(seen, name), " -> "))
	}
	d, ok := r.defs[name]
	if !ok {
		return nil, fmt.Errorf("schema %q not registered", name)
	}

	out := &Definition{
		Name:  d.Name,
		Root:  d.Root,
		Types: make(map[string]map[string]Field),
	}

	if d.Extends != "" {
		parent, err := r.merge(d.Extends, append(seen, name))
		if err != nil {
			return nil, err
		}
		if out.Root == "" {
			out.Root = parent.Root
		}
		for typ, fields := range parent.Types {
			out.Types[typ] = maps.Clone(fields)
		}
	}

	for typ, fields := range d.Types {
		if out.Types[typ] == nil {
			out.Types[typ] = make(map[string]Field, len(fields))
		}
		maps.Copy(out.Types[typ], fields)
	}

	return out, nil
}

// =============================================================================
// YAML LOADING
// =============================================================================

// LoadFromYAML registers one definition from YAML bytes.
func (r *Registry) LoadFromYAML(data []byte) error {
	var d Definition
	if err := yaml.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}
	if d.Name == "" {
		return fmt.Errorf("definition without name")
	}
	r.Register(&d)
	return nil
}

// LoadFromPath registers definitions from a file or a directory of files.
func (r *Registry) LoadFromPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if info.IsDir() {
		return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !isYAMLFile(p) {
				return nil
			}
			return r.loadFile(p)
		})
	}

	return r.loadFile(path)
}

// LoadEmbedded registers definitions from a filesystem directory.
func (r *Registry) LoadEmbedded(fsys fs.FS, dir string) error {
	return fs.WalkDir(fsys, dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isYAMLFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if err := r.LoadFromYAML(data); err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
		return nil
	})
}

func (r *Registry) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := r.LoadFromYAML(data); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func isYAMLFile(path string) bool {
	return strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")
}

// Default returns the registry of built-in ZUGFeRD 1.0 definitions,
// compiled on first use.
var Default = sync.OnceValue(func() *Registry {
	r := NewRegistry()
	if err := r.LoadEmbedded(embeddedDefinitions, "definitions"); err != nil {
		panic(fmt.Sprintf("schema: embedded definitions: %v", err))
	}
	if err := r.Build(); err != nil {
		panic(fmt.Sprintf("schema: embedded definitions: %v", err))
	}
	return r
})
