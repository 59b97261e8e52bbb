package importer

import (
	"context"
	"fmt"

	"go.trai.ch/depot/internal/core/domain"
	"golang.org/x/sync/errgroup"
)

// existsCheckConcurrency bounds the parallel existence probes per scope.
// The checks are pure reads with no ordering dependency.
const existsCheckConcurrency = 16

// ImportObjects bulk-fetches raw objects by content hash, one remote
// round-trip per owning scope, skipping hashes already stored. All writes
// are flushed by a single persist covering every scope.
func (im *Importer) ImportObjects(ctx context.Context, grouped map[string][]domain.ObjectHash) error {
	grouping := domain.GroupHashesByScope(grouped)
	if grouping.IsEmpty() {
		return nil
	}

	wroteAny := false
	for _, scope := range grouping.Scopes() {
		missing, err := im.missingHashes(ctx, grouping.Refs(scope))
		if err != nil {
			return err
		}
		if len(missing) == 0 {
			continue
		}

		scopeGrouping := domain.GroupHashesByScope(map[string][]domain.ObjectHash{scope: missing})
		reqCtx := domain.NewRequestContext(scopeGrouping.Refs(scope)).WithAttribute("request", "object")

		var vtx vertexOrNil
		if im.tracer != nil {
			_, v := im.tracer.Record(ctx, fmt.Sprintf("fetch %d object(s) from %s", len(missing), scope))
			vtx = vertexOrNil{v}
		}

		batch, err := im.remote.Fetch(ctx, scopeGrouping, domain.FetchOptions{Type: domain.FetchObject}, reqCtx)
		if err != nil {
			vtx.complete(err)
			return err
		}
		if err := im.store.WriteBlobs(ctx, batch.Items); err != nil {
			vtx.complete(err)
			return err
		}
		vtx.complete(nil)
		wroteAny = true
	}

	if !wroteAny {
		return nil
	}
	return im.store.Persist(ctx)
}

// missingHashes filters out hashes the local store already holds. The
// existence probes run concurrently.
func (im *Importer) missingHashes(ctx context.Context, hashes []string) ([]domain.ObjectHash, error) {
	exists := make([]bool, len(hashes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(existsCheckConcurrency)
	for i, hash := range hashes {
		g.Go(func() error {
			ok, err := im.store.Exists(gctx, domain.ObjectHash(hash))
			if err != nil {
				return err
			}
			exists[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	missing := make([]domain.ObjectHash, 0, len(hashes))
	for i, hash := range hashes {
		if !exists[i] {
			missing = append(missing, domain.ObjectHash(hash))
		}
	}
	return missing, nil
}
