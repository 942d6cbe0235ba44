package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pax/internal/core/ports"
)

const NodeID graft.ID = "adapter.build_info_store"

func init() {
	graft.Register(graft.Node[ports.BuildInfoStoreFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.BuildInfoStoreFactory, error) {
			return Open, nil
		},
	})
}
