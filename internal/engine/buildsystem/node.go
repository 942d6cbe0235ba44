package buildsystem

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pax/internal/adapters/cas"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pax/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pax/internal/core/ports"
	"go.trai.ch/pax/internal/engine/scheduler"
)

const (
	// NodeID is the unique identifier for the build system factory Graft node.
	NodeID graft.ID = "engine.buildsystem_factory"
	// ActiveNodeID is the unique identifier for the active build Graft node.
	ActiveNodeID graft.ID = "engine.active_build"
)

// Provider creates a Factory for the inputs of one invocation.
type Provider func(cfg Config) *Factory

func init() {
	graft.Register(graft.Node[*ActiveBuild]{
		ID:        ActiveNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*ActiveBuild, error) {
			return NewActiveBuild(), nil
		},
	})

	graft.Register(graft.Node[Provider]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			scheduler.NodeID,
			cas.NodeID,
			logger.NodeID,
			ActiveNodeID,
		},
		Run: func(ctx context.Context) (Provider, error) {
			sched, err := graft.Dep[*scheduler.Scheduler](ctx)
			if err != nil {
				return nil, err
			}

			openStore, err := graft.Dep[ports.BuildInfoStoreFactory](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			active, err := graft.Dep[*ActiveBuild](ctx)
			if err != nil {
				return nil, err
			}

			return func(cfg Config) *Factory {
				return NewFactory(cfg, sched, openStore, log, active)
			}, nil
		},
	})
}
