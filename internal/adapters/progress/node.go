package progress

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
)

// WriterNodeID is the unique identifier for the shared output stream Graft node.
const WriterNodeID graft.ID = "adapter.progress_writer"

func init() {
	graft.Register(graft.Node[*SyncWriter]{
		ID:        WriterNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*SyncWriter, error) {
			return NewSyncWriter(os.Stdout), nil
		},
	})
}
