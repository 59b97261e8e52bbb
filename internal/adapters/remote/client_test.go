package remote_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depot/internal/adapters/remote"
	"go.trai.ch/depot/internal/core/domain"
)

func grouping(ids ...string) domain.ScopeGrouping {
	set := domain.NewIDSet()
	for _, raw := range ids {
		set.Add(domain.MustParseComponentID(raw))
	}
	return domain.GroupIDsByScope(set)
}

func TestClient_Fetch_RoundTrip(t *testing.T) {
	var gotRefs []string
	var gotRequester string
	var gotType domain.FetchType

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/fetch", r.URL.Path)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		scope, refs, requester, fetchType, err := remote.DecodeFetchRequest(body)
		require.NoError(t, err)
		require.Equal(t, "scopeA", scope)
		gotRefs, gotRequester, gotType = refs, requester, fetchType

		item, err := domain.NewTransferItem(domain.KindComponent, &domain.ComponentRecord{
			Scope:    domain.NewInternedString("scopeA"),
			Name:     domain.NewInternedString("foo"),
			Versions: []domain.VersionTag{{Tag: "1.0.0", Hash: "c1"}},
		})
		require.NoError(t, err)
		resp, err := remote.EncodeBatch(domain.TransferBatch{Items: []domain.TransferItem{item}})
		require.NoError(t, err)
		_, _ = w.Write(resp)
	}))
	defer srv.Close()

	client := remote.NewClient(&domain.ScopeConfig{
		Scope:   "self",
		Remotes: map[string]string{"scopeA": srv.URL},
	}, nil)

	batch, err := client.Fetch(context.Background(), grouping("scopeA/foo@1.0.0"),
		domain.FetchOptions{Type: domain.FetchComponent},
		domain.NewRequestContext([]string{"scopeA/foo@1.0.0"}))
	require.NoError(t, err)

	require.Len(t, batch.Items, 1)
	assert.Equal(t, domain.KindComponent, batch.Items[0].Kind)
	assert.Equal(t, []string{"scopeA/foo@1.0.0"}, gotRefs)
	assert.Equal(t, "self", gotRequester)
	assert.Equal(t, domain.FetchComponent, gotType)

	record, err := domain.DecodeComponentRecord(batch.Items[0].Payload)
	require.NoError(t, err)
	assert.Equal(t, "scopeA/foo", record.FullName())
}

func TestClient_Fetch_UnconfiguredScope(t *testing.T) {
	client := remote.NewClient(&domain.ScopeConfig{Scope: "self"}, nil)

	_, err := client.Fetch(context.Background(), grouping("ghost/foo@1.0.0"),
		domain.FetchOptions{Type: domain.FetchComponent}, domain.RequestContext{})
	assert.ErrorIs(t, err, domain.ErrRemoteScopeNotFound)
}

func TestClient_Fetch_ErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "forbidden", status: http.StatusForbidden, want: domain.ErrPermissionDenied},
		{name: "unauthorized", status: http.StatusUnauthorized, want: domain.ErrPermissionDenied},
		{name: "not found", status: http.StatusNotFound, want: domain.ErrRemoteScopeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			client := remote.NewClient(&domain.ScopeConfig{
				Scope:   "self",
				Remotes: map[string]string{"scopeA": srv.URL},
			}, nil)

			_, err := client.Fetch(context.Background(), grouping("scopeA/foo@1.0.0"),
				domain.FetchOptions{Type: domain.FetchComponent}, domain.RequestContext{})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClient_Fetch_CombinesScopes(t *testing.T) {
	handler := func(kindHash string) http.HandlerFunc {
		return func(w http.ResponseWriter, _ *http.Request) {
			resp, err := remote.EncodeBatch(domain.TransferBatch{Items: []domain.TransferItem{
				{Hash: domain.ObjectHash(kindHash), Kind: domain.KindBlob, Payload: []byte(kindHash)},
			}})
			require.NoError(t, err)
			_, _ = w.Write(resp)
		}
	}
	srvA := httptest.NewServer(handler("a"))
	defer srvA.Close()
	srvB := httptest.NewServer(handler("b"))
	defer srvB.Close()

	client := remote.NewClient(&domain.ScopeConfig{
		Scope:   "self",
		Remotes: map[string]string{"scopeA": srvA.URL, "scopeB": srvB.URL},
	}, nil)

	batch, err := client.Fetch(context.Background(),
		grouping("scopeA/foo@1.0.0", "scopeB/bar@1.0.0"),
		domain.FetchOptions{Type: domain.FetchComponent}, domain.RequestContext{})
	require.NoError(t, err)

	require.Len(t, batch.Items, 2)
	assert.Equal(t, domain.ObjectHash("a"), batch.Items[0].Hash)
	assert.Equal(t, domain.ObjectHash("b"), batch.Items[1].Hash)
}
