package cursor

import (
	"testing"
)

func fixed(n int) LengthFunc {
	return func() int { return n }
}

func TestIterateThree(t *testing.T) {
	s := NewSet(nil)
	length := fixed(3)

	if s.State("k") != StateBeforeFirst || s.Current("k") != BeforeFirst {
		t.Fatalf("untouched cursor: state %v, position %d", s.State("k"), s.Current("k"))
	}

	if !s.First("k", length) || s.Current("k") != 0 {
		t.Fatalf("First() false or position %d", s.Current("k"))
	}
	for want := 1; want < 3; want++ {
		if !s.Next("k", length) {
			t.Fatalf("Next() to %d = false", want)
		}
		if s.Current("k") != want {
			t.Errorf("Current() = %d, want %d", s.Current("k"), want)
		}
	}
	if s.Next("k", length) {
		t.Error("Next() past the end = true")
	}
	if s.State("k") != StateExhausted {
		t.Errorf("State() = %v, want exhausted", s.State("k"))
	}

	// Exhaustion is sticky even when the group grows.
	if s.Next("k", fixed(10)) {
		t.Error("Next() after exhaustion = true")
	}

	if !s.First("k", length) || s.Current("k") != 0 {
		t.Error("First() does not restart an exhausted cursor")
	}
}

func TestEmptyGroup(t *testing.T) {
	s := NewSet(nil)
	if s.First("k", fixed(0)) {
		t.Error("First() on empty group = true")
	}
	if s.State("k") != StateExhausted || s.Current("k") != 0 {
		t.Errorf("state %v, position %d", s.State("k"), s.Current("k"))
	}
	if s.Next("k", fixed(0)) {
		t.Error("Next() on empty group = true")
	}
}

func TestNextFromBeforeFirst(t *testing.T) {
	s := NewSet(nil)
	if !s.Next("k", fixed(2)) || s.Current("k") != 0 {
		t.Errorf("Next() from before-first: position %d, want 0", s.Current("k"))
	}
}

func TestChildReset(t *testing.T) {
	s := NewSet(nil)
	parent := fixed(2)
	child := fixed(3)
	key := Child("position", "notes")

	s.First("position", parent)
	s.First(key, child)
	s.Next(key, child)
	if s.Current(key) != 1 {
		t.Fatalf("child position = %d, want 1", s.Current(key))
	}

	s.Next("position", parent)
	if s.Current(key) != BeforeFirst || s.State(key) != StateBeforeFirst {
		t.Errorf("after parent Next: child position %d, state %v", s.Current(key), s.State(key))
	}

	// Exhausted children are reset as well.
	s.First(key, fixed(0))
	s.First("position", parent)
	if s.State(key) != StateBeforeFirst {
		t.Errorf("after parent First: child state %v", s.State(key))
	}

	s.First(key, child)
	s.Reset("position")
	if s.Current(key) != BeforeFirst || s.Current("position") != BeforeFirst {
		t.Error("Reset() did not reset parent and child")
	}
}

func TestResetScope(t *testing.T) {
	s := NewSet(nil)
	s.First("position", fixed(2))
	s.First("position.notes", fixed(2))
	s.First("positions", fixed(2))
	s.First("notes", fixed(2))

	s.Next("position", fixed(2))

	if s.Current("positions") != 0 {
		t.Error("sibling key sharing a prefix was reset")
	}
	if s.Current("notes") != 0 {
		t.Error("unrelated key was reset")
	}

	keys := s.Keys()
	want := []string{"notes", "position", "position.notes", "positions"}
	if len(keys) != len(want) {
		t.Fatalf("Keys() = %v", keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestLengthReevaluated(t *testing.T) {
	s := NewSet(nil)
	n := 1
	length := func() int { return n }

	s.First("k", length)
	n = 2
	if !s.Next("k", length) {
		t.Error("Next() did not see the new length")
	}
}

func TestStateString(t *testing.T) {
	if StateBeforeFirst.String() != "before-first" || StateOnElement.String() != "on-element" || StateExhausted.String() != "exhausted" {
		t.Error("State.String() mismatch")
	}
}
