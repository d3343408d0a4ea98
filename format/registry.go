package format

import (
	"bytes"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Registry holds registered formats.
type Registry struct {
	formats map[string]Format
}

// DefaultRegistry is the global format registry.
var DefaultRegistry = NewRegistry()

// NewRegistry creates a new format registry.
func NewRegistry() *Registry {
	return &Registry{
		formats: make(map[string]Format),
	}
}

// Register adds a format to the registry.
func (r *Registry) Register(f Format) {
	r.formats[f.Name()] = f
}

// Get retrieves a format by name.
func (r *Registry) Get(name string) (Format, bool) {
	f, ok := r.formats[strings.ToLower(name)]
	return f, ok
}

// GetDeserializer retrieves a deserializer by name.
func (r *Registry) GetDeserializer(name string) (Deserializer, error) {
	f, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown format: %s", name)
	}
	d, ok := f.(Deserializer)
	if !ok {
		return nil, fmt.Errorf("format %s does not support deserialization", name)
	}
	return d, nil
}

// GetContainer retrieves a container format by name.
func (r *Registry) GetContainer(name string) (Container, error) {
	f, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown format: %s", name)
	}
	c, ok := f.(Container)
	if !ok {
		return nil, fmt.Errorf("format %s is not a container", name)
	}
	return c, nil
}

// List returns all registered format names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.formats))
	for name := range r.formats {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// DetectFormat attempts to detect the format from file extension and/or content.
func (r *Registry) DetectFormat(filename string, peek []byte) (Format, error) {
	// Try by extension first
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	for _, name := range r.List() {
		f := r.formats[name]
		if slices.Contains(f.Extensions(), ext) {
			return f, nil
		}
	}

	// Try by content detection
	if len(peek) > 0 {
		if f, err := r.DetectFromContent(peek); err == nil {
			return f, nil
		}
	}

	return nil, fmt.Errorf("could not detect format for %s", filename)
}

// DetectFromContent attempts to detect format from content alone.
func (r *Registry) DetectFromContent(peek []byte) (Format, error) {
	// Trim whitespace for detection
	peek = bytes.TrimSpace(peek)

	for _, name := range r.List() {
		f := r.formats[name]
		if f.CanParse(peek) {
			return f, nil
		}
	}

	return nil, fmt.Errorf("could not detect format from content")
}

// Register adds a format to the default registry.
func Register(f Format) {
	DefaultRegistry.Register(f)
}

// Get retrieves a format from the default registry.
func Get(name string) (Format, bool) {
	return DefaultRegistry.Get(name)
}

// GetDeserializer retrieves a deserializer from the default registry.
func GetDeserializer(name string) (Deserializer, error) {
	return DefaultRegistry.GetDeserializer(name)
}

// GetContainer retrieves a container from the default registry.
func GetContainer(name string) (Container, error) {
	return DefaultRegistry.GetContainer(name)
}

// DetectFormat detects format using the default registry.
func DetectFormat(filename string, peek []byte) (Format, error) {
	return DefaultRegistry.DetectFormat(filename, peek)
}

// DetectFromContent detects format from content using the default registry.
func DetectFromContent(peek []byte) (Format, error) {
	return DefaultRegistry.DetectFromContent(peek)
}
