package process

import (
	"context"

	"github.com/grindlemire/graft"
)

const (
	// SetNodeID is the unique identifier for the process set Graft node.
	SetNodeID graft.ID = "adapter.process_set"
	// RunnerNodeID is the unique identifier for the process runner Graft node.
	RunnerNodeID graft.ID = "adapter.process_runner"
)

func init() {
	graft.Register(graft.Node[*Set]{
		ID:        SetNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Set, error) {
			return NewSet(), nil
		},
	})

	graft.Register(graft.Node[*Runner]{
		ID:        RunnerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{SetNodeID},
		Run: func(ctx context.Context) (*Runner, error) {
			set, err := graft.Dep[*Set](ctx)
			if err != nil {
				return nil, err
			}
			return NewRunner(set), nil
		},
	})
}
