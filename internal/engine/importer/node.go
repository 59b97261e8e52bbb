package importer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/depot/internal/adapters/cas"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/depot/internal/adapters/config"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/depot/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/depot/internal/adapters/remote"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/depot/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
)

// NodeID is the unique identifier for the importer Graft node.
const NodeID graft.ID = "engine.importer"

func init() {
	graft.Register(graft.Node[*Importer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.ScopeConfigNodeID,
			cas.NodeID,
			remote.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Importer, error) {
			cfg, err := graft.Dep[*domain.ScopeConfig](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.ObjectStore](ctx)
			if err != nil {
				return nil, err
			}

			fetcher, err := graft.Dep[ports.RemoteFetcher](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(cfg.Scope, store, fetcher, tracer, log), nil
		},
	})
}
