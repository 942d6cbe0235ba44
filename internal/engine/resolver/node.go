package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pax/internal/adapters/destination" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pax/internal/adapters/toolchain"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pax/internal/core/ports"
)

// NodeID is the unique identifier for the resolver factory Graft node.
const NodeID graft.ID = "engine.resolver_factory"

// Factory creates a Resolver for the options of one invocation.
type Factory func(cfg Config) *Resolver

func init() {
	graft.Register(graft.Node[Factory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			toolchain.HostNodeID,
			toolchain.DiscovererNodeID,
			toolchain.FactoryNodeID,
			destination.NodeID,
		},
		Run: func(ctx context.Context) (Factory, error) {
			host, err := graft.Dep[ports.HostDestinationProvider](ctx)
			if err != nil {
				return nil, err
			}

			discoverer, err := graft.Dep[ports.CompilerDiscoverer](ctx)
			if err != nil {
				return nil, err
			}

			factory, err := graft.Dep[ports.ToolchainFactory](ctx)
			if err != nil {
				return nil, err
			}

			loader, err := graft.Dep[ports.DestinationLoader](ctx)
			if err != nil {
				return nil, err
			}

			return func(cfg Config) *Resolver {
				return New(host, discoverer, loader, factory, cfg)
			}, nil
		},
	})
}
