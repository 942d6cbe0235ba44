// Package progrock records build task progress on a progrock tape.
package progrock

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/pax/internal/core/ports"
)

// Recorder implements the ports.Telemetry interface using the progrock library.
// Output of failed tasks is replayed to a failure writer once the task completes.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder

	mu       sync.Mutex
	failures io.Writer
}

// New creates a new Recorder with a default tape, replaying failures to stderr.
func New() ports.Telemetry {
	return NewRecorder(progrock.NewTape(), os.Stderr)
}

// NewRecorder creates a new Recorder with the given writer.
// A nil failures writer discards the output of failed tasks.
func NewRecorder(w progrock.Writer, failures io.Writer) *Recorder {
	if failures == nil {
		failures = io.Discard
	}
	return &Recorder{
		w:        w,
		rec:      progrock.NewRecorder(w),
		failures: failures,
	}
}

// Record starts recording a new vertex named after a build task.
// Task names are unique within a plan, so the digest of the name identifies the vertex.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	v := r.rec.Vertex(digest.FromString(name), name)
	return ctx, &Vertex{vertex: v, name: name, recorder: r}
}

// replay writes the captured output of a failed task as one unit.
func (r *Recorder) replay(name string, output []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = io.WriteString(r.failures, "--- "+name+"\n")
	_, _ = r.failures.Write(output)
	if len(output) > 0 && output[len(output)-1] != '\n' {
		_, _ = io.WriteString(r.failures, "\n")
	}
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
