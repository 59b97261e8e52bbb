package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// LaneRef addresses one lane within its owning scope.
type LaneRef struct {
	Scope string `cbor:"scope" json:"scope"`
	Name  string `cbor:"name" json:"name"`
}

// ParseLaneRef parses the "scope/lane" form.
func ParseLaneRef(raw string) (LaneRef, error) {
	scope, name, ok := strings.Cut(raw, "/")
	if !ok || scope == "" || name == "" {
		return LaneRef{}, zerr.With(ErrInvalidID, "lane", raw)
	}
	return LaneRef{Scope: scope, Name: name}, nil
}

// String returns the canonical "scope/lane" form.
func (r LaneRef) String() string {
	return r.Scope + "/" + r.Name
}

// Lane is a named mutable pointer to a set of component versions, the
// branch-like reference of a scope. It is the only mutable entity in the
// model: everything else is immutable once persisted, lanes are
// synchronized as pure pointer updates.
type Lane struct {
	Scope string `cbor:"scope" json:"scope"`
	Name  string `cbor:"name" json:"name"`

	// Refs are the component versions the lane currently points at.
	Refs []ComponentID `cbor:"refs,omitempty" json:"refs,omitempty"`
}

// Ref returns the lane's own reference.
func (l *Lane) Ref() LaneRef {
	return LaneRef{Scope: l.Scope, Name: l.Name}
}

// RefSet returns the lane's component references as an ordered id set.
func (l *Lane) RefSet() *IDSet {
	return NewIDSet(l.Refs...)
}
