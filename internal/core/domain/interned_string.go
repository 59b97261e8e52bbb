package domain

import "unique"

// InternedString wraps a unique.Handle[string]. Scope and component names
// repeat across every id in a dependency closure, so interning keeps the
// memory cost of a large closure proportional to the number of distinct
// names rather than the number of ids.
type InternedString struct {
	h unique.Handle[string]
}

// NewInternedString interns s and returns its handle wrapper.
func NewInternedString(s string) InternedString {
	return InternedString{h: unique.Make(s)}
}

// String returns the underlying string value.
func (is InternedString) String() string {
	if is.IsZero() {
		return ""
	}
	return is.h.Value()
}

// IsZero reports whether the handle was never assigned.
func (is InternedString) IsZero() bool {
	var zero unique.Handle[string]
	return is.h == zero
}

// MarshalText implements encoding.TextMarshaler.
func (is InternedString) MarshalText() ([]byte, error) {
	return []byte(is.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (is *InternedString) UnmarshalText(text []byte) error {
	is.h = unique.Make(string(text))
	return nil
}
