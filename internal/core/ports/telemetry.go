package ports

import (
	"context"
	"io"
)

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer is the entry point for creating spans.
type Tracer interface {
	// Start creates a new span.
	Start(ctx context.Context, name string) (context.Context, Span)
}

// Span represents a unit of work.
type Span interface {
	// End completes the span.
	End()
	// RecordError records an error for the span.
	RecordError(err error)
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}

// Telemetry records the progress of build tasks as vertices.
type Telemetry interface {
	// Record starts a vertex named after a task.
	Record(ctx context.Context, name string) (context.Context, Vertex)
	// Close flushes the recording.
	Close() error
}

// Vertex is a single recorded unit of build work.
type Vertex interface {
	// Stdout returns a writer capturing the task's standard output.
	Stdout() io.Writer
	// Stderr returns a writer capturing the task's error output.
	Stderr() io.Writer
	// Complete marks the vertex as finished.
	Complete(err error)
	// Cached marks the vertex as satisfied from the cache.
	Cached()
}
