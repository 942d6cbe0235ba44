package buildsystem

import (
	"context"
	"sync"

	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/zerr"
)

// cancellation tracks the context of the running build. A Cancel before the build starts
// makes the next start fail.
type cancellation struct {
	mu        sync.Mutex
	cancel    context.CancelFunc
	cancelled bool
}

func (c *cancellation) start(ctx context.Context) (context.Context, context.CancelFunc, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancelled {
		return nil, nil, zerr.Wrap(domain.ErrBuildCancelled, "cancelled before start")
	}
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	return ctx, func() {
		c.mu.Lock()
		c.cancel = nil
		c.mu.Unlock()
		cancel()
	}, nil
}

// Cancel stops a running build. It is safe to call from any goroutine.
func (c *cancellation) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelled = true
	if c.cancel != nil {
		c.cancel()
	}
}

func (c *cancellation) isCancelled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancelled
}

// GraphLoader loads the package graph of the root package.
type GraphLoader func(ctx context.Context, opts domain.PackageGraphOptions) (*domain.PackageGraph, error)

// graphCell loads the package graph on first use and keeps the outcome.
type graphCell struct {
	mu    sync.Mutex
	load  GraphLoader
	opts  domain.PackageGraphOptions
	done  bool
	graph *domain.PackageGraph
	err   error
}

func (c *graphCell) get(ctx context.Context) (*domain.PackageGraph, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.done {
		c.graph, c.err = c.load(ctx, c.opts)
		c.done = true
	}
	return c.graph, c.err
}
