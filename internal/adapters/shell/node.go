package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pax/internal/adapters/logger"
	"go.trai.ch/pax/internal/adapters/process"
	"go.trai.ch/pax/internal/core/ports"
)

// NodeID is the unique identifier for the executor Graft node.
const NodeID graft.ID = "adapter.executor"

func init() {
	graft.Register(graft.Node[ports.Executor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, process.RunnerNodeID},
		Run: func(ctx context.Context) (ports.Executor, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			runner, err := graft.Dep[*process.Runner](ctx)
			if err != nil {
				return nil, err
			}
			return NewExecutor(log, runner), nil
		},
	})
}
