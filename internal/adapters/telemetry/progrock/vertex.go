package progrock

import (
	"bytes"
	"io"
	"sync"

	"github.com/vito/progrock"
)

// Vertex implements ports.Vertex wrapping *progrock.VertexRecorder.
type Vertex struct {
	vertex   *progrock.VertexRecorder
	name     string
	recorder *Recorder

	mu     sync.Mutex
	output bytes.Buffer
}

type captureWriter struct {
	v *Vertex
}

func (c captureWriter) Write(p []byte) (int, error) {
	c.v.mu.Lock()
	defer c.v.mu.Unlock()
	return c.v.output.Write(p)
}

// Stdout returns a writer to capture standard output stream.
func (v *Vertex) Stdout() io.Writer {
	return io.MultiWriter(v.vertex.Stdout(), captureWriter{v})
}

// Stderr returns a writer to capture error output stream.
func (v *Vertex) Stderr() io.Writer {
	return io.MultiWriter(v.vertex.Stderr(), captureWriter{v})
}

// Complete marks the vertex as finished (successfully or with an error).
func (v *Vertex) Complete(err error) {
	v.vertex.Done(err)
	if err == nil {
		return
	}
	v.mu.Lock()
	output := bytes.Clone(v.output.Bytes())
	v.mu.Unlock()
	v.recorder.replay(v.name, output)
}

// Cached marks the vertex as a cache hit.
func (v *Vertex) Cached() {
	v.vertex.Cached()
	v.vertex.Done(nil)
}
