// Package cas implements the local content-addressed object store backing
// one scope instance.
package cas

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ObjectStore = (*Store)(nil)

const indexFilename = "index.json"

// Store implements ports.ObjectStore with hash-addressed object files
// under an objects/ tree and a JSON index for component records and
// tracked lanes. Writes buffer in memory and become durable at Persist;
// re-writing identical content is a no-op because identical payloads map
// to identical hashes.
type Store struct {
	dir string

	mu      sync.RWMutex
	records map[string]*domain.ComponentRecord // key: scope/name
	lanes   map[string]domain.Lane             // key: scope/lane
	pending map[domain.ObjectHash][]byte       // sealed objects not yet on disk
	dirty   bool
}

// index is the serialized form of the store's mutable tables.
type index struct {
	Records map[string]*domain.ComponentRecord `json:"records"`
	Lanes   map[string]domain.Lane             `json:"lanes,omitempty"`
}

// NewStore opens (or initializes) the store rooted at dir.
func NewStore(dir string) (*Store, error) {
	s := &Store{
		dir:     filepath.Clean(dir),
		records: make(map[string]*domain.ComponentRecord),
		lanes:   make(map[string]domain.Lane),
		pending: make(map[domain.ObjectHash][]byte),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.dir, indexFilename)) //nolint:gosec // Path is cleaned and provided by trusted caller
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read store index")
	}
	if len(data) == 0 {
		return nil
	}

	var idx index
	if err := json.Unmarshal(data, &idx); err != nil {
		return zerr.Wrap(err, "failed to unmarshal store index")
	}
	if idx.Records != nil {
		s.records = idx.Records
	}
	if idx.Lanes != nil {
		s.lanes = idx.Lanes
	}
	return nil
}

// objectPath shards object files by the first two hash characters.
func (s *Store) objectPath(hash domain.ObjectHash) string {
	h := string(hash)
	if len(h) < 2 {
		return filepath.Join(s.dir, "objects", h)
	}
	return filepath.Join(s.dir, "objects", h[:2], h)
}

// Exists checks the write buffer and the objects tree for the hash.
func (s *Store) Exists(_ context.Context, hash domain.ObjectHash) (bool, error) {
	s.mu.RLock()
	_, buffered := s.pending[hash]
	s.mu.RUnlock()
	if buffered {
		return true, nil
	}

	_, err := os.Stat(s.objectPath(hash))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, zerr.With(zerr.Wrap(err, "failed to stat object"), "hash", string(hash))
}

// LookupMany resolves each id against the record table, one Lookup per id
// in set order. Absence is not an error.
func (s *Store) LookupMany(_ context.Context, ids *domain.IDSet) ([]ports.Lookup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lookups := make([]ports.Lookup, 0, ids.Len())
	for _, id := range ids.IDs() {
		lookups = append(lookups, ports.Lookup{ID: id, Record: s.records[id.FullName()]})
	}
	return lookups, nil
}

// LookupOne resolves a single id, returning nil when absent.
func (s *Store) LookupOne(_ context.Context, id domain.ComponentID) (*domain.ComponentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records[id.FullName()], nil
}

// ContentByHash loads and decodes a version content object, from the
// write buffer first, then the objects tree. Returns nil when absent.
func (s *Store) ContentByHash(_ context.Context, hash domain.ObjectHash) (*domain.VersionContent, error) {
	sealed, err := s.readObject(hash)
	if err != nil || sealed == nil {
		return nil, err
	}

	env, err := openEnvelope(sealed)
	if err != nil {
		return nil, err
	}
	if env.Kind != domain.KindVersion {
		return nil, nil
	}
	return domain.DecodeVersionContent(env.Payload)
}

func (s *Store) readObject(hash domain.ObjectHash) ([]byte, error) {
	s.mu.RLock()
	sealed, buffered := s.pending[hash]
	s.mu.RUnlock()
	if buffered {
		return sealed, nil
	}

	data, err := os.ReadFile(s.objectPath(hash)) //nolint:gosec // Path derives from a content hash
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read object"), "hash", string(hash))
	}
	return data, nil
}

// WriteMany merges component records into the record table.
func (s *Store) WriteMany(_ context.Context, records []*domain.ComponentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range records {
		s.mergeRecordLocked(record)
	}
	return nil
}

func (s *Store) mergeRecordLocked(record *domain.ComponentRecord) {
	existing, ok := s.records[record.FullName()]
	if !ok {
		s.records[record.FullName()] = record
	} else {
		existing.Merge(record)
	}
	s.dirty = true
}

// WriteBatch deserializes a transfer batch into typed records and merges
// them in. Lane items land in the tracking table, everything else in the
// objects buffer, component records additionally in the record table. The
// returned residual holds the requested ids still lacking a record.
func (s *Store) WriteBatch(ctx context.Context, batch domain.TransferBatch, persist bool, requested *domain.IDSet) (*domain.IDSet, error) {
	s.mu.Lock()
	for _, item := range batch.Items {
		switch item.Kind {
		case domain.KindComponent:
			record, err := domain.DecodeComponentRecord(item.Payload)
			if err != nil {
				s.mu.Unlock()
				return nil, err
			}
			s.mergeRecordLocked(record)
			if err := s.bufferLocked(item); err != nil {
				s.mu.Unlock()
				return nil, err
			}
		case domain.KindVersion, domain.KindBlob:
			if err := s.bufferLocked(item); err != nil {
				s.mu.Unlock()
				return nil, err
			}
		case domain.KindLane:
			lane, err := domain.DecodeLane(item.Payload)
			if err != nil {
				s.mu.Unlock()
				return nil, err
			}
			s.trackLaneLocked(*lane)
		default:
			s.mu.Unlock()
			return nil, zerr.With(domain.ErrUnknownObjectKind, "kind", string(item.Kind))
		}
	}
	s.mu.Unlock()

	if persist {
		if err := s.Persist(ctx); err != nil {
			return nil, err
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	residual := domain.NewIDSet()
	for _, id := range requested.IDs() {
		if _, ok := s.records[id.FullName()]; !ok {
			residual.Add(id)
		}
	}
	return residual, nil
}

func (s *Store) bufferLocked(item domain.TransferItem) error {
	sealed, err := sealEnvelope(item.Kind, item.Payload)
	if err != nil {
		return err
	}
	s.pending[item.Hash] = sealed
	s.dirty = true
	return nil
}

// WriteBlobs buffers raw objects without interpreting their payloads.
func (s *Store) WriteBlobs(_ context.Context, items []domain.TransferItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range items {
		if err := s.bufferLocked(item); err != nil {
			return err
		}
	}
	return nil
}

// TrackLane upserts a lane into the remote lane tracking table, keyed by
// (scope, lane name). Pure pointer update.
func (s *Store) TrackLane(_ context.Context, lane domain.Lane) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trackLaneLocked(lane)
	return nil
}

func (s *Store) trackLaneLocked(lane domain.Lane) {
	s.lanes[lane.Ref().String()] = lane
	s.dirty = true
}

// TrackedLanes returns the tracking table in lexical ref order.
func (s *Store) TrackedLanes(_ context.Context) ([]domain.Lane, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lanes := make([]domain.Lane, 0, len(s.lanes))
	for _, key := range sortedLaneKeys(s.lanes) {
		lanes = append(lanes, s.lanes[key])
	}
	return lanes, nil
}

// Persist flushes buffered objects to the objects tree and rewrites the
// index. The flush is the synchronization point of the resolution loop:
// a residual re-check never runs against an unflushed buffer.
func (s *Store) Persist(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty && len(s.pending) == 0 {
		return nil
	}

	for hash, sealed := range s.pending {
		path := s.objectPath(hash)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return zerr.Wrap(err, "failed to create objects directory")
		}
		if _, err := os.Stat(path); err == nil {
			continue // content-addressed: already durable
		}
		if err := os.WriteFile(path, sealed, 0o644); err != nil { //nolint:gosec // Path derives from a content hash
			return zerr.With(zerr.Wrap(err, "failed to write object"), "hash", string(hash))
		}
	}
	clear(s.pending)

	data, err := json.MarshalIndent(index{Records: s.records, Lanes: s.lanes}, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal store index")
	}
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create store directory")
	}
	if err := os.WriteFile(filepath.Join(s.dir, indexFilename), data, 0o644); err != nil { //nolint:gosec // Path is cleaned and provided by trusted caller
		return zerr.Wrap(err, "failed to write store index")
	}

	s.dirty = false
	return nil
}

func sortedLaneKeys(lanes map[string]domain.Lane) []string {
	keys := make([]string, 0, len(lanes))
	for key := range lanes {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
