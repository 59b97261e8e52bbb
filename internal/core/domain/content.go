package domain

// VersionContent is the immutable snapshot of one published version, keyed
// by its content hash. The three dependency lists are flattened transitive
// closures precomputed at publish time, so resolving them never requires
// recursive re-expansion.
type VersionContent struct {
	Hash ObjectHash `cbor:"hash" json:"hash"`

	RuntimeDeps   []ComponentID `cbor:"runtime,omitempty" json:"runtime,omitempty"`
	DevDeps       []ComponentID `cbor:"dev,omitempty" json:"dev,omitempty"`
	ExtensionDeps []ComponentID `cbor:"extensions,omitempty" json:"extensions,omitempty"`
}

// AllDeps returns the concatenation of the three dependency lists in
// runtime, dev, extension order, deduplicated by exact id. List-internal
// order is preserved.
func (c *VersionContent) AllDeps() *IDSet {
	all := NewIDSet()
	for _, list := range [][]ComponentID{c.RuntimeDeps, c.DevDeps, c.ExtensionDeps} {
		for _, id := range list {
			all.Add(id)
		}
	}
	return all
}

// ResolvedVersion pairs a component record with one concrete version
// content instance.
type ResolvedVersion struct {
	// ID is the requested id with its version resolved to a concrete tag.
	ID ComponentID

	Record  *ComponentRecord
	Content *VersionContent
}

// Closure is the aggregate result of resolving one id with its shallow
// dependency expansion attached.
type Closure struct {
	Resolved ResolvedVersion

	// Runtime, Dev and Extension hold the shallow-resolved entries of the
	// corresponding flattened list, original order preserved.
	Runtime   []ResolvedVersion
	Dev       []ResolvedVersion
	Extension []ResolvedVersion

	// OriginScope is the owning scope of the resolved component.
	OriginScope string
}
