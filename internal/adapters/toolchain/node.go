package toolchain

import (
	"context"
	"os"
	"runtime"

	"github.com/grindlemire/graft"
	"go.trai.ch/pax/internal/adapters/logger"
	"go.trai.ch/pax/internal/adapters/process"
	"go.trai.ch/pax/internal/core/ports"
)

const (
	// HostNodeID is the unique identifier for the host destination provider Graft node.
	HostNodeID graft.ID = "adapter.toolchain_host"
	// DiscovererNodeID is the unique identifier for the compiler discoverer Graft node.
	DiscovererNodeID graft.ID = "adapter.toolchain_discoverer"
	// FactoryNodeID is the unique identifier for the toolchain factory Graft node.
	FactoryNodeID graft.ID = "adapter.toolchain_factory"
)

func init() {
	graft.Register(graft.Node[ports.HostDestinationProvider]{
		ID:        HostNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.HostDestinationProvider, error) {
			return &HostProvider{
				GOOS:     runtime.GOOS,
				GOARCH:   runtime.GOARCH,
				Path:     os.Getenv("PATH"),
				Compiler: os.Getenv("PAX_CC"),
				SDK:      sdkFromEnv(),
			}, nil
		},
	})

	graft.Register(graft.Node[ports.CompilerDiscoverer]{
		ID:        DiscovererNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.CompilerDiscoverer, error) {
			return NewDiscoverer(os.Getenv("PAX_CC")), nil
		},
	})

	graft.Register(graft.Node[ports.ToolchainFactory]{
		ID:        FactoryNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{DiscovererNodeID, process.RunnerNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.ToolchainFactory, error) {
			discoverer, err := graft.Dep[ports.CompilerDiscoverer](ctx)
			if err != nil {
				return nil, err
			}
			runner, err := graft.Dep[*process.Runner](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(discoverer, runner, log), nil
		},
	})
}
