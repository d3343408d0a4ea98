// Package cursor tracks forward-only iteration over the repeating groups of
// one document session.
//
// Cursors are addressed by group keys. A key containing dots is scoped
// under the key before its last dot: "position.notes" iterates the notes of
// whatever element the "position" cursor currently points at. Moving or
// resetting a cursor always sends every cursor scoped under it back to
// BeforeFirst, so a child never carries state over from a previous parent
// element.
package cursor

import (
	"log/slog"
	"maps"
	"slices"
	"strings"
)

// BeforeFirst is the position of a cursor that has not been started.
const BeforeFirst = -1

// State is the iteration state of a cursor.
type State int

const (
	StateBeforeFirst State = iota
	StateOnElement
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateOnElement:
		return "on-element"
	case StateExhausted:
		return "exhausted"
	default:
		return "before-first"
	}
}

// LengthFunc reports the current length of a repeating group. It is called
// on every transition and never cached.
type LengthFunc func() int

type cursor struct {
	position  int
	exhausted bool
}

// Set holds the cursors of one session. It is not safe for concurrent use.
type Set struct {
	cursors map[string]*cursor
	logger  *slog.Logger
}

// NewSet creates an empty cursor set. A nil logger selects slog.Default().
func NewSet(logger *slog.Logger) *Set {
	if logger == nil {
		logger = slog.Default()
	}
	return &Set{
		cursors: make(map[string]*cursor),
		logger:  logger,
	}
}

func (s *Set) get(key string) *cursor {
	c, ok := s.cursors[key]
	if !ok {
		c = &cursor{position: BeforeFirst}
		s.cursors[key] = c
	}
	return c
}

// First positions key on its first element and reports whether one exists.
// An empty group leaves the cursor exhausted at position 0.
func (s *Set) First(key string, length LengthFunc) bool {
	s.resetChildren(key)

	c := s.get(key)
	c.position = 0
	c.exhausted = length() <= 0

	s.logger.Debug("cursor first", "key", key, "exhausted", c.exhausted)
	return !c.exhausted
}

// Next advances key and reports whether it is on an element. Once it has
// returned false it keeps returning false until First or Reset.
func (s *Set) Next(key string, length LengthFunc) bool {
	s.resetChildren(key)

	c := s.get(key)
	if c.exhausted {
		return false
	}

	c.position++
	if c.position >= length() {
		c.exhausted = true
	}

	s.logger.Debug("cursor next", "key", key, "position", c.position, "exhausted", c.exhausted)
	return !c.exhausted
}

// Current returns the position of key: BeforeFirst for an untouched cursor,
// otherwise the index last moved to. The index of an exhausted cursor is
// out of range of its group.
func (s *Set) Current(key string) int {
	c, ok := s.cursors[key]
	if !ok {
		return BeforeFirst
	}
	return c.position
}

// State reports the iteration state of key.
func (s *Set) State(key string) State {
	c, ok := s.cursors[key]
	switch {
	case !ok || c.position == BeforeFirst:
		return StateBeforeFirst
	case c.exhausted:
		return StateExhausted
	default:
		return StateOnElement
	}
}

// Reset sends key and every cursor scoped under it back to BeforeFirst.
func (s *Set) Reset(key string) {
	s.resetChildren(key)
	if c, ok := s.cursors[key]; ok {
		c.position = BeforeFirst
		c.exhausted = false
	}
}

// Keys returns every key touched so far, sorted.
func (s *Set) Keys() []string {
	return slices.Sorted(maps.Keys(s.cursors))
}

// Child returns the key of group scoped under parent.
func Child(parent, group string) string {
	return parent + "." + group
}

func (s *Set) resetChildren(key string) {
	prefix := key + "."
	for k, c := range s.cursors {
		if strings.HasPrefix(k, prefix) {
			c.position = BeforeFirst
			c.exhausted = false
		}
	}
}
