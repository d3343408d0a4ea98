// Package reader opens ZUGFeRD documents and reads them through a
// profile-agnostic session.
//
// A Session owns one resolved profile, one document graph and one cursor
// set. Accessors never fail on missing data: a field the document or its
// profile does not carry yields the zero value (or the documented default).
// Sessions are not safe for concurrent use; open one per document.
//
// Usage:
//
//	s, err := reader.OpenFile("invoice.pdf")
//	if err != nil {
//		return err
//	}
//	for ok := s.FirstPosition(); ok; ok = s.NextPosition() {
//		fmt.Println(s.PositionLineID(), s.PositionProductName())
//	}
package reader

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/samber/lo"

	"github.com/lehigh-university-libraries/zugferd/attachment"
	"github.com/lehigh-university-libraries/zugferd/cursor"
	"github.com/lehigh-university-libraries/zugferd/format"
	"github.com/lehigh-university-libraries/zugferd/graph"
	"github.com/lehigh-university-libraries/zugferd/profile"

	// Register format plugins
	_ "github.com/lehigh-university-libraries/zugferd/format/cii"
	_ "github.com/lehigh-university-libraries/zugferd/format/pdf"
)

// ErrSourceNotReadable is returned when the document content itself cannot
// be obtained, before any profile detection takes place.
var ErrSourceNotReadable = errors.New("source not readable")

// Session is one document-reading session.
type Session struct {
	profile   *profile.Profile
	root      *graph.Record
	raw       []byte
	cursors   *cursor.Set
	extractor *attachment.Extractor
	logger    *slog.Logger
}

type options struct {
	logger       *slog.Logger
	resolver     *profile.Resolver
	formats      *format.Registry
	deserializer string
}

// Option configures Open.
type Option func(*options)

// WithLogger sets the logger used by the session.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithResolver replaces the default profile resolver.
func WithResolver(r *profile.Resolver) Option {
	return func(o *options) {
		o.resolver = r
	}
}

// WithFormats replaces the default format registry.
func WithFormats(r *format.Registry) Option {
	return func(o *options) {
		o.formats = r
	}
}

// WithDeserializer selects the deserializer format by name (default "cii").
func WithDeserializer(name string) Option {
	return func(o *options) {
		o.deserializer = name
	}
}

// Open resolves the profile of raw, deserializes it and starts a session.
// A PDF is unwrapped to its embedded XML first.
func Open(raw []byte, opts ...Option) (*Session, error) {
	o := &options{
		formats:      format.DefaultRegistry,
		deserializer: "cii",
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.resolver == nil {
		o.resolver = profile.NewResolver(nil)
	}

	if f, err := o.formats.DetectFromContent(raw); err == nil {
		if c, ok := f.(format.Container); ok {
			payload, err := c.Payload(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: %s container: %v", ErrSourceNotReadable, f.Name(), err)
			}
			o.logger.Debug("unwrapped container", "format", f.Name(), "bytes", len(payload))
			raw = payload
		}
	}

	p, err := o.resolver.Resolve(raw)
	if err != nil {
		return nil, fmt.Errorf("resolving profile: %w", err)
	}

	d, err := o.formats.GetDeserializer(o.deserializer)
	if err != nil {
		return nil, err
	}
	root, err := d.Deserialize(p.Name(), raw)
	if err != nil {
		return nil, fmt.Errorf("deserializing %s document: %w", p.Name(), err)
	}

	o.logger.Debug("opened document", "profile", p.Name())
	return &Session{
		profile:   p,
		root:      root,
		raw:       raw,
		cursors:   cursor.NewSet(o.logger),
		extractor: attachment.New(o.logger),
		logger:    o.logger,
	}, nil
}

// OpenFile reads path and opens it.
func OpenFile(path string, opts ...Option) (*Session, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceNotReadable, err)
	}
	return Open(raw, opts...)
}

// Profile returns the resolved profile.
func (s *Session) Profile() *profile.Profile {
	return s.profile
}

// Root returns the document graph.
func (s *Session) Root() *graph.Record {
	return s.root
}

// XML returns the document text the session was built from.
func (s *Session) XML() []byte {
	return s.raw
}

// Cursors exposes the session's cursor set.
func (s *Session) Cursors() *cursor.Set {
	return s.cursors
}

// Resolve reads an arbitrary path from the document root.
func (s *Session) Resolve(path string, def string) string {
	return graph.Resolve(s.root, path, def)
}

func join(parts ...string) string {
	return strings.Join(lo.Compact(parts), ".")
}

func (s *Session) node(path string) graph.Node {
	return graph.Lookup(s.root, graph.ParsePath(path))
}

func (s *Session) length(path string) cursor.LengthFunc {
	return func() int {
		return graph.Len(s.node(path))
	}
}

// item returns the element of the group at path that key points at.
func (s *Session) item(key, path string) graph.Node {
	return graph.Index(s.node(path), s.cursors.Current(key))
}
