package buildsystem

import (
	"sync"

	"go.trai.ch/pax/internal/core/ports"
)

// ActiveBuild holds the build system of the current invocation so an interrupt can cancel it.
type ActiveBuild struct {
	mu      sync.Mutex
	current ports.BuildSystem
}

// NewActiveBuild creates an empty slot.
func NewActiveBuild() *ActiveBuild {
	return &ActiveBuild{}
}

// Set replaces the active build system.
func (a *ActiveBuild) Set(bs ports.BuildSystem) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.current = bs
}

// Get returns the active build system, or nil.
func (a *ActiveBuild) Get() ports.BuildSystem {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// Cancel cancels the active build system. It reports whether one was set.
func (a *ActiveBuild) Cancel() bool {
	bs := a.Get()
	if bs == nil {
		return false
	}
	bs.Cancel()
	return true
}
