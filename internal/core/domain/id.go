// Package domain contains the core domain models for the depot component importer.
package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// LatestTag is the symbolic version resolving to a component's head pointer.
const LatestTag = "latest"

// ComponentID addresses one immutable version of one component.
// Two ids are equal iff scope, name and version all match.
type ComponentID struct {
	// Scope is the owning namespace of the component.
	Scope InternedString

	// Name is the component name within its scope.
	Name InternedString

	// Version is a concrete tag or the symbolic LatestTag.
	Version string
}

// NewComponentID creates a ComponentID from its three parts.
// An empty version defaults to LatestTag.
func NewComponentID(scope, name, version string) ComponentID {
	if version == "" {
		version = LatestTag
	}
	return ComponentID{
		Scope:   NewInternedString(scope),
		Name:    NewInternedString(name),
		Version: version,
	}
}

// ParseComponentID parses the canonical "scope/name@version" form.
// The "@version" suffix is optional and defaults to LatestTag.
func ParseComponentID(raw string) (ComponentID, error) {
	rest, version := raw, ""
	if at := strings.LastIndexByte(raw, '@'); at >= 0 {
		rest, version = raw[:at], raw[at+1:]
		if version == "" {
			return ComponentID{}, zerr.With(ErrInvalidID, "id", raw)
		}
	}
	scope, name, ok := strings.Cut(rest, "/")
	if !ok || scope == "" || name == "" {
		return ComponentID{}, zerr.With(ErrInvalidID, "id", raw)
	}
	return NewComponentID(scope, name, version), nil
}

// MustParseComponentID is ParseComponentID that panics on malformed input.
// Intended for tests and literals.
func MustParseComponentID(raw string) ComponentID {
	id, err := ParseComponentID(raw)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the canonical "scope/name@version" form.
func (id ComponentID) String() string {
	return id.Scope.String() + "/" + id.Name.String() + "@" + id.Version
}

// FullName returns the version-less "scope/name" form.
func (id ComponentID) FullName() string {
	return id.Scope.String() + "/" + id.Name.String()
}

// IsZero reports whether the id is the zero value.
func (id ComponentID) IsZero() bool {
	return id.Scope.IsZero() && id.Name.IsZero() && id.Version == ""
}

// IsLatest reports whether the version is the symbolic head tag.
func (id ComponentID) IsLatest() bool {
	return id.Version == LatestTag
}

// IsLocalTo reports whether the id is owned by the given scope.
func (id ComponentID) IsLocalTo(scope string) bool {
	return id.Scope.String() == scope
}

// SameComponent reports whether both ids address the same component,
// ignoring the version field.
func (id ComponentID) SameComponent(other ComponentID) bool {
	return id.Scope == other.Scope && id.Name == other.Name
}

// WithVersion returns a copy of the id pointing at the given version tag.
func (id ComponentID) WithVersion(version string) ComponentID {
	id.Version = version
	return id
}

// MarshalText implements encoding.TextMarshaler using the canonical form.
func (id ComponentID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler from the canonical form.
func (id *ComponentID) UnmarshalText(text []byte) error {
	parsed, err := ParseComponentID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
