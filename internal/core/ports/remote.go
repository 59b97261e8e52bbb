package ports

import (
	"context"

	"go.trai.ch/depot/internal/core/domain"
)

// RemoteFetcher retrieves objects from remote scopes, batched by owning
// scope. The fetcher owns its own timeout and retry policy; errors
// propagate synchronously to the resolution step that issued the fetch.
// ErrRemoteScopeNotFound and ErrPermissionDenied must surface unwrapped.
//
//go:generate go run go.uber.org/mock/mockgen -source=remote.go -destination=mocks/mock_remote.go -package=mocks
type RemoteFetcher interface {
	// Fetch issues one batched round-trip for every scope in the
	// grouping and returns the combined transfer batch. The request
	// context carries trace metadata only.
	Fetch(ctx context.Context, grouping domain.ScopeGrouping, opts domain.FetchOptions, reqCtx domain.RequestContext) (domain.TransferBatch, error)
}
