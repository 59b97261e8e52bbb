package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/depot/internal/adapters/cas"    //nolint:depguard // Wired in app layer
	"go.trai.ch/depot/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.trai.ch/depot/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/depot/internal/engine/importer"
)

// NodeID is the unique identifier for the main App Graft node.
const NodeID graft.ID = "app.main"

func init() {
	graft.Register(graft.Node[*App]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.ScopeConfigNodeID,
			importer.NodeID,
			cas.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			cfg, err := graft.Dep[*domain.ScopeConfig](ctx)
			if err != nil {
				return nil, err
			}

			im, err := graft.Dep[*importer.Importer](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.ObjectStore](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(cfg, im, store, log), nil
		},
	})
}
