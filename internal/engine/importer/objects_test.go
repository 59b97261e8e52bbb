package importer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func blobItem(payload []byte) domain.TransferItem {
	return domain.TransferItem{
		Hash:    domain.HashPayload(payload),
		Kind:    domain.KindBlob,
		Payload: payload,
	}
}

func TestImportObjects_FetchesMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockRemoteFetcher(ctrl)
	im, store := newImporter(t, remote)

	blob := blobItem([]byte("artifact bytes"))

	remote.EXPECT().
		Fetch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, grouping domain.ScopeGrouping, opts domain.FetchOptions, reqCtx domain.RequestContext) (domain.TransferBatch, error) {
			assert.Equal(t, domain.FetchObject, opts.Type)
			assert.Equal(t, []string{string(blob.Hash)}, grouping.Refs("scopeB"))
			assert.Equal(t, "object", reqCtx.Attributes["request"])
			return domain.TransferBatch{Items: []domain.TransferItem{blob}}, nil
		})

	err := im.ImportObjects(context.Background(), map[string][]domain.ObjectHash{
		"scopeB": {blob.Hash},
	})
	require.NoError(t, err)

	ok, err := store.Exists(context.Background(), blob.Hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestImportObjects_SkipsStoredHashes(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockRemoteFetcher(ctrl)
	im, store := newImporter(t, remote)

	stored := blobItem([]byte("already here"))
	missing := blobItem([]byte("not yet"))

	require.NoError(t, store.WriteBlobs(context.Background(), []domain.TransferItem{stored}))
	require.NoError(t, store.Persist(context.Background()))

	remote.EXPECT().
		Fetch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, grouping domain.ScopeGrouping, _ domain.FetchOptions, _ domain.RequestContext) (domain.TransferBatch, error) {
			assert.Equal(t, []string{string(missing.Hash)}, grouping.Refs("scopeB"))
			return domain.TransferBatch{Items: []domain.TransferItem{missing}}, nil
		})

	err := im.ImportObjects(context.Background(), map[string][]domain.ObjectHash{
		"scopeB": {stored.Hash, missing.Hash},
	})
	require.NoError(t, err)

	for _, hash := range []domain.ObjectHash{stored.Hash, missing.Hash} {
		ok, err := store.Exists(context.Background(), hash)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestImportObjects_AllStored_NoNetwork(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockRemoteFetcher(ctrl)
	im, store := newImporter(t, remote)

	blob := blobItem([]byte("cached"))
	require.NoError(t, store.WriteBlobs(context.Background(), []domain.TransferItem{blob}))
	require.NoError(t, store.Persist(context.Background()))

	err := im.ImportObjects(context.Background(), map[string][]domain.ObjectHash{
		"scopeB": {blob.Hash},
	})
	require.NoError(t, err)
}

func TestImportObjects_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockRemoteFetcher(ctrl)
	im, _ := newImporter(t, remote)

	require.NoError(t, im.ImportObjects(context.Background(), nil))
}

func TestImportObjects_MultiScope_SinglePersist(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockRemoteFetcher(ctrl)
	im, store := newImporter(t, remote)

	blobB := blobItem([]byte("from scopeB"))
	blobC := blobItem([]byte("from scopeC"))

	remote.EXPECT().
		Fetch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, grouping domain.ScopeGrouping, _ domain.FetchOptions, _ domain.RequestContext) (domain.TransferBatch, error) {
			switch grouping.Scopes()[0] {
			case "scopeB":
				return domain.TransferBatch{Items: []domain.TransferItem{blobB}}, nil
			case "scopeC":
				return domain.TransferBatch{Items: []domain.TransferItem{blobC}}, nil
			}
			t.Fatalf("unexpected scope %v", grouping.Scopes())
			return domain.TransferBatch{}, nil
		}).
		Times(2)

	err := im.ImportObjects(context.Background(), map[string][]domain.ObjectHash{
		"scopeB": {blobB.Hash},
		"scopeC": {blobC.Hash},
	})
	require.NoError(t, err)

	for _, hash := range []domain.ObjectHash{blobB.Hash, blobC.Hash} {
		ok, err := store.Exists(context.Background(), hash)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}
