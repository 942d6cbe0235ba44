// Package process supervises the child processes spawned by the tool.
package process

import (
	"os"
	"sync"
	"syscall"
	"time"

	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/zerr"
)

// DefaultKillTimeout is how long Terminate waits after SIGTERM before killing survivors.
const DefaultKillTimeout = 2 * time.Second

// Handle is the subset of *os.Process the set needs.
type Handle interface {
	Signal(sig os.Signal) error
	Kill() error
}

// Set is the registry of live child processes.
type Set struct {
	mu          sync.Mutex
	procs       map[Handle]struct{}
	terminated  bool
	drained     chan struct{}
	killTimeout time.Duration
}

// NewSet creates an empty process set.
func NewSet() *Set {
	return NewSetWithTimeout(DefaultKillTimeout)
}

// NewSetWithTimeout creates an empty process set with a custom kill timeout.
func NewSetWithTimeout(killTimeout time.Duration) *Set {
	return &Set{
		procs:       make(map[Handle]struct{}),
		drained:     make(chan struct{}),
		killTimeout: killTimeout,
	}
}

// Add registers a started process. After Terminate it refuses new processes and
// kills the one passed in.
func (s *Set) Add(p Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.terminated {
		_ = p.Kill()
		return zerr.Wrap(domain.ErrProcessSetTerminated, "refusing to track new process")
	}
	s.procs[p] = struct{}{}
	return nil
}

// Remove forgets a process that has exited.
func (s *Set) Remove(p Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.procs[p]; !ok {
		return
	}
	delete(s.procs, p)
	if s.terminated && len(s.procs) == 0 {
		close(s.drained)
	}
}

// Len returns the number of live processes.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.procs)
}

// Terminate sends SIGTERM to every live process and kills those still registered
// after the kill timeout. Calling it more than once, or on an empty set, does nothing.
func (s *Set) Terminate() {
	s.mu.Lock()
	if s.terminated {
		s.mu.Unlock()
		return
	}
	s.terminated = true
	if len(s.procs) == 0 {
		close(s.drained)
		s.mu.Unlock()
		return
	}
	targets := s.snapshotLocked()
	s.mu.Unlock()

	for _, p := range targets {
		// Exited processes fail to signal; Remove will drop them.
		_ = p.Signal(syscall.SIGTERM)
	}

	select {
	case <-s.drained:
		return
	case <-time.After(s.killTimeout):
	}

	s.mu.Lock()
	survivors := s.snapshotLocked()
	s.mu.Unlock()

	for _, p := range survivors {
		_ = p.Kill()
	}
}

func (s *Set) snapshotLocked() []Handle {
	out := make([]Handle, 0, len(s.procs))
	for p := range s.procs {
		out = append(out, p)
	}
	return out
}
