// Package app implements the application layer for depot.
package app

import (
	"context"

	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/depot/internal/engine/importer"
	"go.trai.ch/zerr"
)

// App exposes the importer's operations to the CLI layer. It owns the
// translation from raw ref strings to domain ids and leaves all
// resolution semantics to the engine.
type App struct {
	cfg      *domain.ScopeConfig
	importer *importer.Importer
	store    ports.ObjectStore
	log      ports.Logger
}

// New creates a new App instance.
func New(cfg *domain.ScopeConfig, im *importer.Importer, store ports.ObjectStore, log ports.Logger) *App {
	return &App{
		cfg:      cfg,
		importer: im,
		store:    store,
		log:      log,
	}
}

// Scope returns the name of the configured local scope.
func (a *App) Scope() string {
	return a.cfg.Scope
}

// ImportOptions configure one import invocation.
type ImportOptions struct {
	// AllVersions imports the full version history of each requested
	// component instead of just the requested version.
	AllVersions bool

	// Deep extends AllVersions to the history of every dependency
	// component discovered along the way.
	Deep bool
}

// Import materializes the given component refs with their dependency
// closures into the local store. Refs without a version default to the
// latest tag.
func (a *App) Import(ctx context.Context, refs []string, opts ImportOptions) ([]domain.Closure, error) {
	ids, err := parseRefs(refs)
	if err != nil {
		return nil, err
	}

	if opts.AllVersions || opts.Deep {
		return a.importer.ResolveAllVersions(ctx, ids, importer.AllVersionsOptions{
			UseCache: true,
			Deep:     opts.Deep,
		})
	}
	return a.importer.ResolveMany(ctx, ids, importer.DefaultResolveOptions())
}

// SyncLanes imports the given lane pointers. With materialize set, every
// component version the lanes reference is imported as well, including
// each component's remaining version history.
func (a *App) SyncLanes(ctx context.Context, refs []string, materialize bool) ([]domain.Lane, error) {
	laneRefs := make([]domain.LaneRef, 0, len(refs))
	for _, raw := range refs {
		ref, err := domain.ParseLaneRef(raw)
		if err != nil {
			return nil, err
		}
		laneRefs = append(laneRefs, ref)
	}

	if materialize {
		return a.importer.ImportFromLanes(ctx, laneRefs)
	}
	return a.importer.ImportLanes(ctx, laneRefs)
}

// TrackedLanes returns the lanes known to the local store.
func (a *App) TrackedLanes(ctx context.Context) ([]domain.Lane, error) {
	return a.store.TrackedLanes(ctx)
}

// ImportObjects bulk-fetches raw objects by content hash from one owning
// scope, skipping hashes already stored.
func (a *App) ImportObjects(ctx context.Context, scope string, hashes []string) error {
	if scope == "" {
		return zerr.New("owning scope is required for an object import")
	}
	grouped := map[string][]domain.ObjectHash{scope: make([]domain.ObjectHash, 0, len(hashes))}
	for _, h := range hashes {
		grouped[scope] = append(grouped[scope], domain.ObjectHash(h))
	}
	return a.importer.ImportObjects(ctx, grouped)
}

// Show returns the version history record of one component. With localOnly
// set, an externally-owned ref is rejected instead of fetched.
func (a *App) Show(ctx context.Context, ref string, localOnly bool) (*domain.ComponentRecord, error) {
	id, err := domain.ParseComponentID(ref)
	if err != nil {
		return nil, err
	}
	return a.importer.LoadComponent(ctx, id, localOnly)
}

// parseRefs parses raw component refs, defaulting the version to the
// latest tag when omitted.
func parseRefs(refs []string) (*domain.IDSet, error) {
	ids := domain.NewIDSet()
	for _, raw := range refs {
		id, err := domain.ParseComponentID(raw)
		if err != nil {
			return nil, err
		}
		ids.Add(id)
	}
	if ids.IsEmpty() {
		return nil, zerr.Wrap(domain.ErrInvalidID, "no component refs given")
	}
	return ids, nil
}
