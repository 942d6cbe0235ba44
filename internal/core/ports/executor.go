package ports

import (
	"context"
	"io"

	"go.trai.ch/pax/internal/core/domain"
)

// Executor defines the interface for executing tasks.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the given task's command and waits for it to exit.
	Execute(ctx context.Context, task *domain.Task, stdout, stderr io.Writer) error
}

// ProcessTerminator terminates every process spawned by the tool.
type ProcessTerminator interface {
	// Terminate signals all live child processes. It is idempotent.
	Terminate()
}
