package domain

// ObjectKind discriminates the typed records carried inside a transfer
// batch.
type ObjectKind string

const (
	// KindComponent marks a CBOR-encoded ComponentRecord payload.
	KindComponent ObjectKind = "component"
	// KindVersion marks a CBOR-encoded VersionContent payload.
	KindVersion ObjectKind = "version"
	// KindLane marks a CBOR-encoded Lane payload.
	KindLane ObjectKind = "lane"
	// KindBlob marks an opaque raw payload addressed only by hash.
	KindBlob ObjectKind = "blob"
)

// TransferItem is one raw content item moved across the network boundary.
type TransferItem struct {
	Hash    ObjectHash `cbor:"hash" json:"hash"`
	Kind    ObjectKind `cbor:"kind" json:"kind"`
	Payload []byte     `cbor:"payload" json:"payload"`
}

// TransferBatch is the collection of items returned by one remote fetch
// round-trip.
type TransferBatch struct {
	Items []TransferItem `cbor:"items" json:"items"`
}

// IsEmpty reports whether the batch carries no items. An empty batch for a
// non-empty residual is the no-progress failure condition.
func (b TransferBatch) IsEmpty() bool {
	return len(b.Items) == 0
}

// FetchType selects the remote request kind.
type FetchType string

const (
	// FetchComponent requests component records with version contents.
	FetchComponent FetchType = "component"
	// FetchLane requests lane pointer records.
	FetchLane FetchType = "lane"
	// FetchObject requests raw objects by content hash.
	FetchObject FetchType = "object"
)

// FetchOptions configure one remote fetch round-trip.
type FetchOptions struct {
	// Type selects what the ref strings of the grouping address.
	Type FetchType

	// WithoutDependencies asks the remote to omit dependency version
	// contents, used by the shallow resolution path.
	WithoutDependencies bool
}
