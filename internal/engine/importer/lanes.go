package importer

import (
	"context"
	"fmt"
	"strings"

	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/zerr"
)

// ImportLanes fetches the given lane pointers from their owning scopes and
// merges each into the local remote-lane tracking table. This is a pure
// pointer update: no version content is materialized.
func (im *Importer) ImportLanes(ctx context.Context, refs []domain.LaneRef) ([]domain.Lane, error) {
	if len(refs) == 0 {
		return nil, nil
	}

	grouping := domain.GroupLaneRefsByScope(refs)
	refStrings := make([]string, 0, len(refs))
	for _, ref := range refs {
		refStrings = append(refStrings, ref.String())
	}
	reqCtx := domain.NewRequestContext(refStrings).WithAttribute("request", "lane")

	var vtx vertexOrNil
	if im.tracer != nil {
		_, v := im.tracer.Record(ctx, fmt.Sprintf("fetch %d lane(s) from %s", len(refs), strings.Join(grouping.Scopes(), ", ")))
		vtx = vertexOrNil{v}
	}

	batch, err := im.remote.Fetch(ctx, grouping, domain.FetchOptions{Type: domain.FetchLane}, reqCtx)
	if err != nil {
		vtx.complete(err)
		return nil, err
	}

	lanes := make([]domain.Lane, 0, len(refs))
	byRef := make(map[string]*domain.Lane, len(refs))
	for _, item := range batch.Items {
		if item.Kind != domain.KindLane {
			continue
		}
		lane, err := domain.DecodeLane(item.Payload)
		if err != nil {
			vtx.complete(err)
			return nil, err
		}
		lanes = append(lanes, *lane)
		byRef[lane.Ref().String()] = lane
	}

	for _, ref := range refs {
		lane, ok := byRef[ref.String()]
		if !ok {
			err := zerr.With(domain.ErrLaneNotFound, "lane", ref.String())
			vtx.complete(err)
			return nil, err
		}
		if err := im.store.TrackLane(ctx, *lane); err != nil {
			vtx.complete(err)
			return nil, err
		}
	}

	if err := im.store.Persist(ctx); err != nil {
		vtx.complete(err)
		return nil, err
	}
	vtx.complete(nil)
	return lanes, nil
}

// ImportFromLanes imports lanes and then materializes every component
// version the lanes point at, including each component's remaining
// version history (deep dependency history disabled).
func (im *Importer) ImportFromLanes(ctx context.Context, refs []domain.LaneRef) ([]domain.Lane, error) {
	lanes, err := im.ImportLanes(ctx, refs)
	if err != nil {
		return nil, err
	}

	flattened := domain.NewIDSet()
	for i := range lanes {
		flattened.AddAll(lanes[i].RefSet())
	}
	if flattened.IsEmpty() {
		return lanes, nil
	}

	if _, err := im.ResolveAllVersions(ctx, flattened, AllVersionsOptions{UseCache: true, Deep: false}); err != nil {
		return nil, err
	}
	return lanes, nil
}
