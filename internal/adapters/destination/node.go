package destination

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pax/internal/core/ports"
)

// NodeID is the unique identifier for the destination loader Graft node.
const NodeID graft.ID = "adapter.destination_loader"

func init() {
	graft.Register(graft.Node[ports.DestinationLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.DestinationLoader, error) {
			return NewLoader(), nil
		},
	})
}
