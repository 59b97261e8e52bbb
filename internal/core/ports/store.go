// Package ports defines the consumer interfaces between the importer core
// and its adapters.
package ports

import (
	"context"

	"go.trai.ch/depot/internal/core/domain"
)

// Lookup is the result of a local store lookup for one id. A nil Record
// means absent, which is not an error at this layer: it signals "must
// fetch remotely" for external ids.
type Lookup struct {
	ID     domain.ComponentID
	Record *domain.ComponentRecord
}

// Found reports whether the lookup produced a record.
func (l Lookup) Found() bool {
	return l.Record != nil
}

// ObjectStore is the local content-addressed object store. Writes are
// idempotent: identical content maps to an identical key, so re-writing is
// a no-op. Buffered writes become durable only at Persist.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ObjectStore interface {
	// Exists checks whether a raw object with the given hash is stored.
	Exists(ctx context.Context, hash domain.ObjectHash) (bool, error)

	// LookupMany resolves each id against the local store, returning one
	// Lookup per id in set order.
	LookupMany(ctx context.Context, ids *domain.IDSet) ([]Lookup, error)

	// LookupOne resolves a single id. Returns nil, nil when absent.
	LookupOne(ctx context.Context, id domain.ComponentID) (*domain.ComponentRecord, error)

	// ContentByHash loads a version content snapshot. Returns nil, nil
	// when absent.
	ContentByHash(ctx context.Context, hash domain.ObjectHash) (*domain.VersionContent, error)

	// WriteMany merges component records into the store buffer.
	WriteMany(ctx context.Context, records []*domain.ComponentRecord) error

	// WriteBatch deserializes a transfer batch into typed records and
	// merges them into the store. When persist is true the write is
	// flushed before returning, so a following lookup observes it. The
	// returned residual holds the subset of requested ids not satisfied
	// by the batch.
	WriteBatch(ctx context.Context, batch domain.TransferBatch, persist bool, requested *domain.IDSet) (*domain.IDSet, error)

	// WriteBlobs buffers raw objects without interpreting their payloads.
	WriteBlobs(ctx context.Context, items []domain.TransferItem) error

	// TrackLane merges a fetched lane into the remote lane tracking
	// table, keyed by (scope, lane name). Pure pointer update.
	TrackLane(ctx context.Context, lane domain.Lane) error

	// TrackedLanes returns the current remote lane tracking table.
	TrackedLanes(ctx context.Context) ([]domain.Lane, error)

	// Persist flushes all buffered writes to durable storage.
	Persist(ctx context.Context) error
}
