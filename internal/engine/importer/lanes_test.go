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

func laneItem(t *testing.T, lane domain.Lane) domain.TransferItem {
	t.Helper()
	item, err := domain.NewTransferItem(domain.KindLane, lane)
	require.NoError(t, err)
	return item
}

func TestImportLanes(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockRemoteFetcher(ctrl)
	im, store := newImporter(t, remote)

	lane := domain.Lane{
		Scope: "scopeB",
		Name:  "stable",
		Refs:  []domain.ComponentID{domain.MustParseComponentID("scopeB/foo@1.0.0")},
	}

	remote.EXPECT().
		Fetch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, grouping domain.ScopeGrouping, opts domain.FetchOptions, reqCtx domain.RequestContext) (domain.TransferBatch, error) {
			assert.Equal(t, domain.FetchLane, opts.Type)
			assert.Equal(t, []string{"stable"}, grouping.Refs("scopeB"))
			assert.Equal(t, "lane", reqCtx.Attributes["request"])
			return domain.TransferBatch{Items: []domain.TransferItem{laneItem(t, lane)}}, nil
		})

	lanes, err := im.ImportLanes(context.Background(), []domain.LaneRef{{Scope: "scopeB", Name: "stable"}})
	require.NoError(t, err)
	require.Len(t, lanes, 1)
	assert.Equal(t, "scopeB/stable", lanes[0].Ref().String())

	tracked, err := store.TrackedLanes(context.Background())
	require.NoError(t, err)
	require.Len(t, tracked, 1)
	assert.Equal(t, lane.Refs, tracked[0].Refs)
}

func TestImportLanes_Reimport_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockRemoteFetcher(ctrl)
	im, store := newImporter(t, remote)

	lane := domain.Lane{Scope: "scopeB", Name: "stable"}
	remote.EXPECT().
		Fetch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.TransferBatch{Items: []domain.TransferItem{laneItem(t, lane)}}, nil).
		Times(2)

	refs := []domain.LaneRef{{Scope: "scopeB", Name: "stable"}}
	_, err := im.ImportLanes(context.Background(), refs)
	require.NoError(t, err)
	_, err = im.ImportLanes(context.Background(), refs)
	require.NoError(t, err)

	tracked, err := store.TrackedLanes(context.Background())
	require.NoError(t, err)
	assert.Len(t, tracked, 1)
}

func TestImportLanes_MissingRef(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockRemoteFetcher(ctrl)
	im, _ := newImporter(t, remote)

	remote.EXPECT().
		Fetch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.TransferBatch{}, nil)

	_, err := im.ImportLanes(context.Background(), []domain.LaneRef{{Scope: "scopeB", Name: "ghost"}})
	assert.ErrorIs(t, err, domain.ErrLaneNotFound)
}

func TestImportLanes_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockRemoteFetcher(ctrl)
	im, _ := newImporter(t, remote)

	lanes, err := im.ImportLanes(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, lanes)
}

func TestImportFromLanes_MaterializesReferencedVersions(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockRemoteFetcher(ctrl)
	im, store := newImporter(t, remote)

	lane := domain.Lane{
		Scope: "scopeB",
		Name:  "stable",
		Refs:  []domain.ComponentID{domain.MustParseComponentID("scopeB/foo@1.0.0")},
	}

	// First round-trip syncs the lane pointer, the second materializes the
	// component versions it points at.
	gomock.InOrder(
		remote.EXPECT().
			Fetch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.ScopeGrouping, opts domain.FetchOptions, _ domain.RequestContext) (domain.TransferBatch, error) {
				assert.Equal(t, domain.FetchLane, opts.Type)
				return domain.TransferBatch{Items: []domain.TransferItem{laneItem(t, lane)}}, nil
			}),
		remote.EXPECT().
			Fetch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.ScopeGrouping, opts domain.FetchOptions, _ domain.RequestContext) (domain.TransferBatch, error) {
				assert.Equal(t, domain.FetchComponent, opts.Type)
				return domain.TransferBatch{Items: []domain.TransferItem{
					componentItem(t, record("scopeB", "foo", "1.0.0")),
					versionItem(t, content("foo", "1.0.0")),
				}}, nil
			}),
	)

	lanes, err := im.ImportFromLanes(context.Background(), []domain.LaneRef{{Scope: "scopeB", Name: "stable"}})
	require.NoError(t, err)
	require.Len(t, lanes, 1)

	rec, err := store.LookupOne(context.Background(), domain.MustParseComponentID("scopeB/foo@1.0.0"))
	require.NoError(t, err)
	require.NotNil(t, rec)
}
