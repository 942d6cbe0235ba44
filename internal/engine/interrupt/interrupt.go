// Package interrupt stops child processes and the active build when the tool is interrupted.
package interrupt

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.trai.ch/pax/internal/core/ports"
)

// Canceller cancels the active build, reporting whether one was running.
type Canceller interface {
	Cancel() bool
}

// Handler waits for an interrupt. On the first one it terminates every child process and
// cancels the active build, then restores the default disposition of the signal and
// delivers it again to the current process.
// Termination may wait out the kill timeout of stubborn children, so the build is
// cancelled without waiting for it.
type Handler struct {
	terminator ports.ProcessTerminator
	active     Canceller
	logger     ports.Logger

	signals  []os.Signal
	incoming chan os.Signal
	injected bool
	raise    func(os.Signal) error

	startOnce sync.Once
	stopOnce  sync.Once
	stop      chan struct{}
	done      chan struct{}
}

// Option configures a Handler.
type Option func(*Handler)

// WithSignalChannel makes the handler read signals from ch instead of installing a
// process-wide handler.
func WithSignalChannel(ch chan os.Signal) Option {
	return func(h *Handler) {
		h.incoming = ch
		h.injected = true
	}
}

// WithRaise replaces the function delivering the signal again after cleanup.
func WithRaise(raise func(os.Signal) error) Option {
	return func(h *Handler) {
		h.raise = raise
	}
}

// New creates a Handler for SIGINT and SIGTERM. It does nothing until Start is called.
func New(terminator ports.ProcessTerminator, active Canceller, logger ports.Logger, opts ...Option) *Handler {
	h := &Handler{
		terminator: terminator,
		active:     active,
		logger:     logger,
		signals:    []os.Signal{os.Interrupt, syscall.SIGTERM},
		incoming:   make(chan os.Signal, 1),
		raise:      raiseSelf,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Start installs the signal handler. Calling it more than once has no effect.
func (h *Handler) Start() {
	h.startOnce.Do(func() {
		if !h.injected {
			signal.Notify(h.incoming, h.signals...)
		}
		go h.wait()
	})
}

// Stop uninstalls the signal handler if no interrupt was received.
func (h *Handler) Stop() {
	h.stopOnce.Do(func() {
		if !h.injected {
			signal.Stop(h.incoming)
		}
		close(h.stop)
	})
}

// Done is closed once the handler goroutine exits.
func (h *Handler) Done() <-chan struct{} {
	return h.done
}

func (h *Handler) wait() {
	defer close(h.done)
	select {
	case sig := <-h.incoming:
		h.handle(sig)
	case <-h.stop:
	}
}

func (h *Handler) handle(sig os.Signal) {
	h.logger.Debug(fmt.Sprintf("received %s, terminating child processes", sig))
	terminated := make(chan struct{})
	go func() {
		defer close(terminated)
		h.terminator.Terminate()
	}()
	if h.active.Cancel() {
		h.logger.Debug("cancelled the active build")
	}
	<-terminated

	if !h.injected {
		signal.Reset(sig)
	}
	if err := h.raise(sig); err != nil {
		h.logger.Error(err)
	}
}

func raiseSelf(sig os.Signal) error {
	p, err := os.FindProcess(os.Getpid())
	if err != nil {
		return err
	}
	return p.Signal(sig)
}
