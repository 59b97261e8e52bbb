package remote

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/depot/internal/adapters/config" //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/depot/internal/adapters/logger" //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
)

// NodeID is the unique identifier for the remote fetcher Graft node.
const NodeID graft.ID = "adapter.remote_fetcher"

func init() {
	graft.Register(graft.Node[ports.RemoteFetcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ScopeConfigNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.RemoteFetcher, error) {
			cfg, err := graft.Dep[*domain.ScopeConfig](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewClient(cfg, log), nil
		},
	})
}
