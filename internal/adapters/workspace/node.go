package workspace

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pax/internal/adapters/logger"
	"go.trai.ch/pax/internal/adapters/metrics"
	"go.trai.ch/pax/internal/core/ports"
)

// NodeID is the unique identifier for the workspace factory Graft node.
const NodeID graft.ID = "adapter.workspace_factory"

func init() {
	graft.Register(graft.Node[ports.WorkspaceFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{metrics.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.WorkspaceFactory, error) {
			recorder, err := graft.Dep[ports.Metrics](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return func(cfg ports.WorkspaceConfig) (ports.Workspace, error) {
				return New(cfg, recorder, log)
			}, nil
		},
	})
}
