package interrupt

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pax/internal/adapters/logger"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pax/internal/adapters/process" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pax/internal/core/ports"
	"go.trai.ch/pax/internal/engine/buildsystem"
)

// NodeID is the unique identifier for the interrupt handler Graft node.
const NodeID graft.ID = "engine.interrupt_handler"

func init() {
	graft.Register(graft.Node[*Handler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			process.SetNodeID,
			buildsystem.ActiveNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Handler, error) {
			set, err := graft.Dep[*process.Set](ctx)
			if err != nil {
				return nil, err
			}

			active, err := graft.Dep[*buildsystem.ActiveBuild](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(set, active, log), nil
		},
	})
}
