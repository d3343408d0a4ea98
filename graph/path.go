package graph

import (
	"strings"
	"time"

	"github.com/lehigh-university-libraries/zugferd/value"
)

// ValueMarker as the final path segment selects the payload of a scalar.
const ValueMarker = "value"

// Path is an ordered list of segment names.
type Path []string

// ParsePath splits a dotted path ("HeaderExchangedDocument.ID.value").
func ParsePath(s string) Path {
	var p Path
	for _, seg := range strings.Split(s, ".") {
		if seg != "" {
			p = append(p, seg)
		}
	}
	return p
}

func (p Path) String() string {
	return strings.Join(p, ".")
}

// Lookup walks path from root and returns the node it names, or nil.
//
// The walk stops with Null when it meets an absent branch, a segment the
// record's variant does not define, or a repeating group before the final
// segment. Elements of a group are never chosen implicitly; callers index
// into the group themselves and resolve the rest of the path from there.
func Lookup(root Node, path Path) Node {
	n := root
	for i, seg := range path {
		if n == nil {
			return nil
		}
		last := i == len(path)-1

		switch cur := n.(type) {
		case Scalar:
			// A scalar only accepts the unwrap marker.
			if last && seg == ValueMarker {
				return cur
			}
			return nil
		case *Record:
			child, ok := cur.Field(seg)
			if !ok {
				return nil
			}
			n = child
		default:
			return nil
		}
	}
	return n
}

// Resolve looks up a dotted path and converts the result to T, returning
// def when the path does not resolve or the node cannot be converted.
//
// Supported targets are string, float64, int, bool and time.Time (from a
// scalar payload) as well as Scalar, *Record, Group and Node.
func Resolve[T any](root Node, path string, def T) T {
	return ResolvePath(root, ParsePath(path), def)
}

// ResolvePath is Resolve for a pre-split path.
func ResolvePath[T any](root Node, path Path, def T) T {
	n := Lookup(root, path)
	if n == nil {
		return def
	}
	v, ok := convert[T](n)
	if !ok {
		return def
	}
	return v
}

// Unit returns the unit of the scalar at path, or "".
func Unit(root Node, path string) string {
	s, ok := Lookup(root, ParsePath(path)).(Scalar)
	if !ok {
		return ""
	}
	return s.Unit
}

func convert[T any](n Node) (T, bool) {
	var zero T
	switch any(zero).(type) {
	case string:
		s, ok := n.(Scalar)
		if !ok {
			return zero, false
		}
		return any(s.Value).(T), true
	case float64:
		s, ok := n.(Scalar)
		if !ok {
			return zero, false
		}
		f, ok := value.Decimal(s.Value)
		if !ok {
			return zero, false
		}
		return any(f).(T), true
	case int:
		s, ok := n.(Scalar)
		if !ok {
			return zero, false
		}
		i, ok := value.Int(s.Value)
		if !ok {
			return zero, false
		}
		return any(i).(T), true
	case bool:
		s, ok := n.(Scalar)
		if !ok {
			return zero, false
		}
		b, ok := value.Indicator(s.Value)
		if !ok {
			return zero, false
		}
		return any(b).(T), true
	case time.Time:
		s, ok := n.(Scalar)
		if !ok {
			return zero, false
		}
		t, ok := value.Date(s.Value, s.Unit)
		if !ok {
			return zero, false
		}
		return any(t).(T), true
	}

	t, ok := n.(T)
	return t, ok
}
