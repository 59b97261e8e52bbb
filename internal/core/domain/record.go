package domain

import "go.trai.ch/zerr"

// ObjectHash is the hex-encoded content address of a stored object.
type ObjectHash string

// VersionTag pairs a published version tag with the content hash of its
// immutable snapshot.
type VersionTag struct {
	Tag  string     `cbor:"tag" json:"tag"`
	Hash ObjectHash `cbor:"hash" json:"hash"`
}

// ComponentRecord is the full version history of one named component,
// owned by exactly one scope. Records are immutable apart from gaining
// new version tags and moving the head pointer.
type ComponentRecord struct {
	Scope InternedString `cbor:"scope" json:"scope"`
	Name  InternedString `cbor:"name" json:"name"`

	// Versions lists every known version tag, oldest first.
	Versions []VersionTag `cbor:"versions" json:"versions"`

	// Head is the latest integrated version tag, empty if the component
	// has never been integrated.
	Head string `cbor:"head,omitempty" json:"head,omitempty"`
}

// FullName returns the version-less "scope/name" form.
func (r *ComponentRecord) FullName() string {
	return r.Scope.String() + "/" + r.Name.String()
}

// ID returns the id of the record at the given version tag.
func (r *ComponentRecord) ID(version string) ComponentID {
	return ComponentID{Scope: r.Scope, Name: r.Name, Version: version}
}

// ResolveTag maps a requested version to a concrete tag. The symbolic
// LatestTag resolves through the head pointer, falling back to the newest
// known tag for never-integrated components.
func (r *ComponentRecord) ResolveTag(version string) (string, error) {
	if version != LatestTag {
		return version, nil
	}
	if r.Head != "" {
		return r.Head, nil
	}
	if len(r.Versions) == 0 {
		return "", zerr.With(ErrVersionNotFound, "component", r.FullName())
	}
	return r.Versions[len(r.Versions)-1].Tag, nil
}

// HashFor returns the content hash of the given version. The symbolic
// LatestTag is resolved first.
func (r *ComponentRecord) HashFor(version string) (ObjectHash, error) {
	tag, err := r.ResolveTag(version)
	if err != nil {
		return "", err
	}
	for _, v := range r.Versions {
		if v.Tag == tag {
			return v.Hash, nil
		}
	}
	err = zerr.With(ErrVersionNotFound, "component", r.FullName())
	return "", zerr.With(err, "version", tag)
}

// HasVersion reports whether the concrete tag is known to the record.
func (r *ComponentRecord) HasVersion(tag string) bool {
	for _, v := range r.Versions {
		if v.Tag == tag {
			return true
		}
	}
	return false
}

// OtherVersions enumerates every known tag plus the head pointer excluding
// the given tag. Used by multi-version import to expand a resolved id into
// its remaining history.
func (r *ComponentRecord) OtherVersions(except string) []string {
	out := make([]string, 0, len(r.Versions))
	seen := map[string]bool{except: true}
	for _, v := range r.Versions {
		if !seen[v.Tag] {
			seen[v.Tag] = true
			out = append(out, v.Tag)
		}
	}
	if r.Head != "" && !seen[r.Head] {
		out = append(out, r.Head)
	}
	return out
}

// Merge folds a newer copy of the same record into r: unknown version tags
// are appended in the incoming order and the head pointer is adopted.
// Merging the identical record is a no-op, which keeps store writes
// idempotent.
func (r *ComponentRecord) Merge(incoming *ComponentRecord) {
	for _, v := range incoming.Versions {
		if !r.HasVersion(v.Tag) {
			r.Versions = append(r.Versions, v)
		}
	}
	if incoming.Head != "" {
		r.Head = incoming.Head
	}
}
