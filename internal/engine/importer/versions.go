package importer

import (
	"context"

	mapset "github.com/deckarep/golang-set/v2"
	"go.trai.ch/depot/internal/core/domain"
)

// AllVersionsOptions configure a multi-version import.
type AllVersionsOptions struct {
	// UseCache allows the first resolution round to hit the local store.
	UseCache bool

	// Deep additionally imports the full version history of every
	// dependency component discovered along the way.
	Deep bool
}

// ResolveAllVersions imports the requested versions with their closures,
// then every remaining historical version of each requested component.
// In deep mode the import recurses into the version history of newly
// discovered dependency components. Components already covered by the
// original request are skipped, compared on (scope, name) only, which
// bounds the recursion by the number of distinct components.
func (im *Importer) ResolveAllVersions(ctx context.Context, ids *domain.IDSet, opts AllVersionsOptions) ([]domain.Closure, error) {
	seen := mapset.NewSet[string]()
	for _, id := range ids.IDs() {
		seen.Add(id.FullName())
	}
	return im.resolveAllVersions(ctx, ids, opts, seen)
}

func (im *Importer) resolveAllVersions(ctx context.Context, ids *domain.IDSet, opts AllVersionsOptions, seen mapset.Set[string]) ([]domain.Closure, error) {
	closures, err := im.ResolveMany(ctx, ids, ResolveOptions{UseCache: opts.UseCache, Persist: true})
	if err != nil {
		return nil, err
	}

	// Expand each resolved component into its remaining version history.
	history := domain.NewIDSet()
	for _, closure := range closures {
		record := closure.Resolved.Record
		for _, tag := range record.OtherVersions(closure.Resolved.ID.Version) {
			history.Add(record.ID(tag))
		}
	}

	if !opts.Deep {
		if !history.IsEmpty() {
			if _, err := im.ResolveManyShallow(ctx, history, opts.UseCache); err != nil {
				return nil, err
			}
		}
		return closures, nil
	}

	if !history.IsEmpty() {
		historyClosures, err := im.ResolveMany(ctx, history, ResolveOptions{UseCache: opts.UseCache, Persist: true})
		if err != nil {
			return nil, err
		}
		closures = append(closures, historyClosures...)
	}

	// A direct dependency's own historical versions are not implied by
	// the closure walk above, so unseen dependency components re-enter
	// the multi-version import.
	discovered := domain.NewIDSet()
	for _, closure := range closures {
		for _, list := range [][]domain.ResolvedVersion{closure.Runtime, closure.Dev, closure.Extension} {
			for _, rv := range list {
				if seen.Add(rv.ID.FullName()) {
					discovered.Add(rv.ID)
				}
			}
		}
	}
	if discovered.IsEmpty() {
		return closures, nil
	}

	deeper, err := im.resolveAllVersions(ctx, discovered, opts, seen)
	if err != nil {
		return nil, err
	}
	return append(closures, deeper...), nil
}
