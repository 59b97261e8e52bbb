// Package importer implements the recursive component resolution protocol:
// local-first lookup, batched remote fetch of the residual, write-back,
// re-check until every requested id is backed by a local record.
package importer

import (
	"context"
	"fmt"
	"strings"

	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/zerr"
)

// maxResolveRounds caps the lookup/fetch/write-back loop. Termination
// normally follows from every round strictly shrinking the residual; the
// cap turns a misbehaving remote into an ErrNoProgress instead of an
// unbounded loop.
const maxResolveRounds = 50

// ResolveOptions configure one top-level resolution call.
type ResolveOptions struct {
	// UseCache allows the first round to be satisfied from the local
	// store. Disabling it forces a remote round-trip even for cached ids,
	// used right after a write-back to confirm resolution.
	UseCache bool

	// Persist flushes remote write-backs before the residual re-check.
	Persist bool
}

// DefaultResolveOptions returns the cached, persisting configuration.
func DefaultResolveOptions() ResolveOptions {
	return ResolveOptions{UseCache: true, Persist: true}
}

// Importer materializes component versions and their flattened dependency
// closures into the local object store of one scope. The store is
// exclusively owned by that scope instance and never handed out.
type Importer struct {
	selfScope string
	store     ports.ObjectStore
	remote    ports.RemoteFetcher
	tracer    ports.Tracer
	log       ports.Logger
}

// New creates an Importer bound to the given scope's local store.
func New(selfScope string, store ports.ObjectStore, remote ports.RemoteFetcher, tracer ports.Tracer, log ports.Logger) *Importer {
	return &Importer{
		selfScope: selfScope,
		store:     store,
		remote:    remote,
		tracer:    tracer,
		log:       log,
	}
}

// ResolveMany resolves every id in the set and expands each into its
// dependency closure. Any failure aborts the whole batch, no partial
// results are returned.
func (im *Importer) ResolveMany(ctx context.Context, ids *domain.IDSet, opts ResolveOptions) ([]domain.Closure, error) {
	lookups, err := im.resolveRecords(ctx, ids, opts, false)
	if err != nil {
		return nil, err
	}

	closures := make([]domain.Closure, 0, len(lookups))
	for _, lk := range lookups {
		closure, err := im.expand(ctx, lk, opts)
		if err != nil {
			return nil, err
		}
		closures = append(closures, closure)
	}
	return closures, nil
}

// ResolveOne resolves a single id with its dependency closure attached.
func (im *Importer) ResolveOne(ctx context.Context, id domain.ComponentID, opts ResolveOptions) (domain.Closure, error) {
	closures, err := im.ResolveMany(ctx, domain.NewIDSet(id), opts)
	if err != nil {
		return domain.Closure{}, err
	}
	if len(closures) != 1 {
		return domain.Closure{}, zerr.With(domain.ErrComponentNotFound, "id", id.String())
	}
	return closures[0], nil
}

// ResolveManyShallow resolves metadata for every id without expanding
// dependency lists. Version contents are attached when the local store
// has them, never fetched on their own.
func (im *Importer) ResolveManyShallow(ctx context.Context, ids *domain.IDSet, useCache bool) ([]domain.ResolvedVersion, error) {
	lookups, err := im.resolveRecords(ctx, ids, ResolveOptions{UseCache: useCache, Persist: true}, true)
	if err != nil {
		return nil, err
	}

	resolved := make([]domain.ResolvedVersion, 0, len(lookups))
	for _, lk := range lookups {
		rv, err := im.shallowVersion(ctx, lk)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, rv)
	}
	return resolved, nil
}

func (im *Importer) shallowVersion(ctx context.Context, lk ports.Lookup) (domain.ResolvedVersion, error) {
	tag, err := lk.Record.ResolveTag(lk.ID.Version)
	if err != nil {
		return domain.ResolvedVersion{}, err
	}
	rv := domain.ResolvedVersion{ID: lk.ID.WithVersion(tag), Record: lk.Record}

	hash, err := lk.Record.HashFor(tag)
	if err != nil {
		return domain.ResolvedVersion{}, err
	}
	// Shallow entries take the content only if it is already local.
	content, err := im.store.ContentByHash(ctx, hash)
	if err != nil {
		return domain.ResolvedVersion{}, err
	}
	rv.Content = content
	return rv, nil
}

// LoadComponent returns the record for one id. With localOnly set an
// externally-owned id is rejected outright; otherwise a missing external
// record triggers a remote resolution.
func (im *Importer) LoadComponent(ctx context.Context, id domain.ComponentID, localOnly bool) (*domain.ComponentRecord, error) {
	if localOnly && !id.IsLocalTo(im.selfScope) {
		err := zerr.With(domain.ErrExternalComponent, "id", id.String())
		return nil, zerr.With(err, "scope", im.selfScope)
	}

	record, err := im.store.LookupOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if record != nil {
		return record, nil
	}
	if localOnly || id.IsLocalTo(im.selfScope) {
		return nil, zerr.With(domain.ErrComponentNotFound, "id", id.String())
	}

	closure, err := im.ResolveOne(ctx, id, DefaultResolveOptions())
	if err != nil {
		return nil, err
	}
	return closure.Resolved.Record, nil
}

// resolveRecords runs the core loop until every id in the set is backed
// by a local record, then returns one lookup per id in set order.
func (im *Importer) resolveRecords(ctx context.Context, ids *domain.IDSet, opts ResolveOptions, withoutDeps bool) ([]ports.Lookup, error) {
	if ids.IsEmpty() {
		return nil, nil
	}

	reqCtx := domain.NewRequestContext(ids.Strings())
	pending := ids
	useCache := opts.UseCache
	prevLeft := ids.Len() + 1

	for round := 0; ; round++ {
		lookups, err := im.store.LookupMany(ctx, pending)
		if err != nil {
			return nil, err
		}

		// Without the cache every external id goes through a remote
		// round-trip even when a record exists locally. Local ids are
		// always served from the store.
		left := domain.NewIDSet()
		for _, lk := range lookups {
			if !lk.Found() || (!useCache && !lk.ID.IsLocalTo(im.selfScope)) {
				left.Add(lk.ID)
			}
		}
		if left.IsEmpty() {
			if round == 0 && im.tracer != nil {
				_, vtx := im.tracer.Record(ctx, fmt.Sprintf("resolve %d component(s)", ids.Len()))
				vtx.Cached()
			}
			break
		}

		// Locally-owned ids never trigger a network call: missing here
		// means they do not exist.
		local, external := left.Partition(im.selfScope)
		if !local.IsEmpty() {
			err := zerr.With(domain.ErrComponentNotFound, "ids", strings.Join(local.Strings(), ", "))
			return nil, zerr.With(err, "scope", im.selfScope)
		}

		if round >= maxResolveRounds || left.Len() >= prevLeft {
			err := zerr.With(domain.ErrNoProgress, "round", fmt.Sprint(round))
			return nil, zerr.With(err, "residual", strings.Join(left.Strings(), ", "))
		}
		prevLeft = left.Len()

		if err := im.fetchAndWriteBack(ctx, external, opts, withoutDeps, reqCtx); err != nil {
			return nil, err
		}

		// The write-back is flushed, so the next lookup observes it.
		pending = left
		useCache = true
	}

	// Assemble records for the full original set in request order.
	lookups, err := im.store.LookupMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, lk := range lookups {
		if !lk.Found() {
			return nil, zerr.With(domain.ErrComponentNotFound, "id", lk.ID.String())
		}
	}
	return lookups, nil
}

// fetchAndWriteBack issues one batched remote round-trip for the residual
// and merges the result into the local store.
func (im *Importer) fetchAndWriteBack(ctx context.Context, residual *domain.IDSet, opts ResolveOptions, withoutDeps bool, reqCtx domain.RequestContext) error {
	grouping := domain.GroupIDsByScope(residual)

	var vtx vertexOrNil
	if im.tracer != nil {
		_, v := im.tracer.Record(ctx, fmt.Sprintf("fetch %d component(s) from %s", residual.Len(), strings.Join(grouping.Scopes(), ", ")))
		vtx = vertexOrNil{v}
	}

	batch, err := im.remote.Fetch(ctx, grouping, domain.FetchOptions{
		Type:                domain.FetchComponent,
		WithoutDependencies: withoutDeps,
	}, reqCtx)
	if err != nil {
		vtx.complete(err)
		return err
	}
	if batch.IsEmpty() {
		err := zerr.With(domain.ErrNoProgress, "residual", strings.Join(residual.Strings(), ", "))
		vtx.complete(err)
		return err
	}

	written, err := im.store.WriteBatch(ctx, batch, opts.Persist, residual)
	if err != nil {
		vtx.complete(err)
		return err
	}
	if im.log != nil {
		im.log.Debug("wrote transfer batch",
			"items", len(batch.Items),
			"requested", residual.Len(),
			"residual", written.Len(),
			"fingerprint", reqCtx.FingerprintID,
		)
	}
	vtx.complete(nil)
	return nil
}

// vertexOrNil guards telemetry calls against an absent tracer.
type vertexOrNil struct {
	v ports.Vertex
}

func (v vertexOrNil) complete(err error) {
	if v.v != nil {
		v.v.Complete(err)
	}
}
