package importer

import (
	"context"
	"errors"

	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/zerr"
)

// expand turns a locally-backed record into its dependency closure. The
// three dependency lists are flattened closures precomputed at publish
// time, so one shallow resolution per distinct id bounds the cost to the
// closure size instead of growing with depth.
func (im *Importer) expand(ctx context.Context, lk ports.Lookup, opts ResolveOptions) (domain.Closure, error) {
	tag, err := lk.Record.ResolveTag(lk.ID.Version)
	if err != nil {
		return domain.Closure{}, err
	}
	resolvedID := lk.ID.WithVersion(tag)

	content, err := im.contentFor(ctx, resolvedID, lk.Record, opts)
	if err != nil {
		return domain.Closure{}, err
	}

	allDeps := content.AllDeps()
	for _, dep := range allDeps.IDs() {
		// Flattened lists are acyclic by construction; a self-reference
		// means corrupt published data and must fail loudly.
		if dep.SameComponent(resolvedID) {
			err := zerr.With(domain.ErrDependencyCycle, "id", resolvedID.String())
			return domain.Closure{}, zerr.With(err, "dependency", dep.String())
		}
	}

	shallow, err := im.ResolveManyShallow(ctx, allDeps, true)
	if err != nil {
		return domain.Closure{}, wrapDependencyErr(err, resolvedID)
	}

	// Shallow results come back 1:1 in set order, so key each by the id
	// as requested: a component pinned at two versions across lists keeps
	// two distinct entries.
	byRequested := make(map[string]domain.ResolvedVersion, len(shallow))
	for i, dep := range allDeps.IDs() {
		byRequested[dep.String()] = shallow[i]
	}
	pick := func(list []domain.ComponentID) ([]domain.ResolvedVersion, error) {
		out := make([]domain.ResolvedVersion, 0, len(list))
		for _, dep := range list {
			rv, ok := byRequested[dep.String()]
			if !ok {
				return nil, zerr.With(domain.ErrDependencyNotFound, "dependency", dep.String())
			}
			out = append(out, rv)
		}
		return out, nil
	}

	runtime, err := pick(content.RuntimeDeps)
	if err != nil {
		return domain.Closure{}, err
	}
	dev, err := pick(content.DevDeps)
	if err != nil {
		return domain.Closure{}, err
	}
	extension, err := pick(content.ExtensionDeps)
	if err != nil {
		return domain.Closure{}, err
	}

	return domain.Closure{
		Resolved: domain.ResolvedVersion{
			ID:      resolvedID,
			Record:  lk.Record,
			Content: content,
		},
		Runtime:     runtime,
		Dev:         dev,
		Extension:   extension,
		OriginScope: resolvedID.Scope.String(),
	}, nil
}

// contentFor loads the version content for an exact version. Content
// missing for a locally-owned id is a fatal store inconsistency; for an
// external id one forced remote re-fetch is attempted before giving up.
func (im *Importer) contentFor(ctx context.Context, id domain.ComponentID, record *domain.ComponentRecord, opts ResolveOptions) (*domain.VersionContent, error) {
	hash, err := record.HashFor(id.Version)
	if err != nil {
		return nil, err
	}
	content, err := im.store.ContentByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	if content != nil {
		return content, nil
	}

	if id.IsLocalTo(im.selfScope) {
		err := zerr.With(domain.ErrInconsistentStore, "id", id.String())
		return nil, zerr.With(err, "hash", string(hash))
	}

	if _, err := im.resolveRecords(ctx, domain.NewIDSet(id), ResolveOptions{UseCache: false, Persist: opts.Persist}, false); err != nil {
		return nil, err
	}
	content, err = im.store.ContentByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	if content == nil {
		err := zerr.With(domain.ErrComponentNotFound, "id", id.String())
		return nil, zerr.With(err, "hash", string(hash))
	}
	return content, nil
}

// wrapDependencyErr wraps a dependency resolution failure unless it is one
// of the pass-through remote errors.
func wrapDependencyErr(err error, id domain.ComponentID) error {
	if errors.Is(err, domain.ErrRemoteScopeNotFound) || errors.Is(err, domain.ErrPermissionDenied) {
		return err
	}
	return zerr.With(errors.Join(domain.ErrDependencyNotFound, err), "id", id.String())
}
