package manifest

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pax/internal/adapters/fs"
	"go.trai.ch/pax/internal/adapters/logger"
	"go.trai.ch/pax/internal/core/ports"
)

const FactoryNodeID graft.ID = "adapter.manifest_loader_factory"

func init() {
	graft.Register(graft.Node[ports.ManifestLoaderFactory]{
		ID:        FactoryNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, fs.WalkerNodeID, fs.ResolverNodeID},
		Run: func(ctx context.Context) (ports.ManifestLoaderFactory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			resolver, err := graft.Dep[*fs.Resolver](ctx)
			if err != nil {
				return nil, err
			}
			return func(cfg ports.ManifestLoaderConfig) ports.ManifestLoader {
				return NewLoader(cfg, walker, resolver, log)
			}, nil
		},
	})
}
