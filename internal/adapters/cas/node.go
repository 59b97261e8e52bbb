package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/depot/internal/adapters/config" //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
)

// NodeID is the unique identifier for the object store Graft node.
const NodeID graft.ID = "adapter.object_store"

func init() {
	graft.Register(graft.Node[ports.ObjectStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ScopeConfigNodeID},
		Run: func(ctx context.Context) (ports.ObjectStore, error) {
			cfg, err := graft.Dep[*domain.ScopeConfig](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(cfg.StoreDir)
		},
	})
}
