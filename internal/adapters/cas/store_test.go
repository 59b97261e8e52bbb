package cas_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depot/internal/adapters/cas"
	"go.trai.ch/depot/internal/core/domain"
)

func newStore(t *testing.T) (*cas.Store, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "store")
	store, err := cas.NewStore(dir)
	require.NoError(t, err)
	return store, dir
}

func componentItem(t *testing.T, record *domain.ComponentRecord) domain.TransferItem {
	t.Helper()
	item, err := domain.NewTransferItem(domain.KindComponent, record)
	require.NoError(t, err)
	return item
}

func versionItem(t *testing.T, content *domain.VersionContent) domain.TransferItem {
	t.Helper()
	payload, err := domain.EncodeObject(content)
	require.NoError(t, err)
	return domain.TransferItem{Hash: content.Hash, Kind: domain.KindVersion, Payload: payload}
}

func fooRecord() *domain.ComponentRecord {
	return &domain.ComponentRecord{
		Scope:    domain.NewInternedString("scopeA"),
		Name:     domain.NewInternedString("foo"),
		Versions: []domain.VersionTag{{Tag: "1.0.0", Hash: "c1"}},
		Head:     "1.0.0",
	}
}

func TestStore_WriteBatch_MergesRecordsAndComputesResidual(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	requested := domain.NewIDSet(
		domain.MustParseComponentID("scopeA/foo@1.0.0"),
		domain.MustParseComponentID("scopeA/missing@1.0.0"),
	)
	batch := domain.TransferBatch{Items: []domain.TransferItem{componentItem(t, fooRecord())}}

	residual, err := store.WriteBatch(ctx, batch, false, requested)
	require.NoError(t, err)
	assert.Equal(t, []string{"scopeA/missing@1.0.0"}, residual.Strings())

	record, err := store.LookupOne(ctx, domain.MustParseComponentID("scopeA/foo@1.0.0"))
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "1.0.0", record.Head)
}

func TestStore_ContentByHash_RoundTrip(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	content := &domain.VersionContent{
		Hash:        "c1",
		RuntimeDeps: []domain.ComponentID{domain.MustParseComponentID("scopeA/bar@1.0.0")},
	}
	batch := domain.TransferBatch{Items: []domain.TransferItem{versionItem(t, content)}}

	_, err := store.WriteBatch(ctx, batch, true, domain.NewIDSet())
	require.NoError(t, err)

	got, err := store.ContentByHash(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.RuntimeDeps, 1)
	assert.Equal(t, "scopeA/bar@1.0.0", got.RuntimeDeps[0].String())

	absent, err := store.ContentByHash(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, absent)
}

func TestStore_PersistenceAcrossReopen(t *testing.T) {
	store, dir := newStore(t)
	ctx := context.Background()

	content := &domain.VersionContent{Hash: "c1"}
	batch := domain.TransferBatch{Items: []domain.TransferItem{
		componentItem(t, fooRecord()),
		versionItem(t, content),
	}}
	_, err := store.WriteBatch(ctx, batch, true, domain.NewIDSet())
	require.NoError(t, err)

	reopened, err := cas.NewStore(dir)
	require.NoError(t, err)

	record, err := reopened.LookupOne(ctx, domain.MustParseComponentID("scopeA/foo@latest"))
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, []domain.VersionTag{{Tag: "1.0.0", Hash: "c1"}}, record.Versions)

	got, err := reopened.ContentByHash(ctx, "c1")
	require.NoError(t, err)
	assert.NotNil(t, got)

	ok, err := reopened.Exists(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStore_UnpersistedWritesStayBuffered(t *testing.T) {
	store, dir := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.WriteBlobs(ctx, []domain.TransferItem{
		{Hash: "b1", Kind: domain.KindBlob, Payload: []byte("payload")},
	}))

	ok, err := store.Exists(ctx, "b1")
	require.NoError(t, err)
	assert.True(t, ok, "buffered object must be visible to its own store")

	reopened, err := cas.NewStore(dir)
	require.NoError(t, err)
	ok, err = reopened.Exists(ctx, "b1")
	require.NoError(t, err)
	assert.False(t, ok, "unflushed buffer must not be durable")

	require.NoError(t, store.Persist(ctx))
	ok, err = reopened.Exists(ctx, "b1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStore_TrackLane_Idempotent(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	lane := domain.Lane{
		Scope: "scopeA",
		Name:  "dev",
		Refs:  []domain.ComponentID{domain.MustParseComponentID("scopeA/foo@1.0.0")},
	}
	require.NoError(t, store.TrackLane(ctx, lane))

	updated := lane
	updated.Refs = []domain.ComponentID{domain.MustParseComponentID("scopeA/foo@2.0.0")}
	require.NoError(t, store.TrackLane(ctx, updated))

	lanes, err := store.TrackedLanes(ctx)
	require.NoError(t, err)
	require.Len(t, lanes, 1)
	assert.Equal(t, "scopeA/foo@2.0.0", lanes[0].Refs[0].String())
}

func TestStore_WriteBatch_UnknownKind(t *testing.T) {
	store, _ := newStore(t)

	_, err := store.WriteBatch(context.Background(), domain.TransferBatch{
		Items: []domain.TransferItem{{Hash: "x", Kind: "mystery", Payload: nil}},
	}, false, domain.NewIDSet())
	assert.ErrorIs(t, err, domain.ErrUnknownObjectKind)
}

func TestStore_WriteMany_MergeIsIdempotent(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.WriteMany(ctx, []*domain.ComponentRecord{fooRecord()}))
	require.NoError(t, store.WriteMany(ctx, []*domain.ComponentRecord{fooRecord()}))

	record, err := store.LookupOne(ctx, domain.MustParseComponentID("scopeA/foo@1.0.0"))
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Len(t, record.Versions, 1)
}
