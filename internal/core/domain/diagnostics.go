package domain

import (
	"fmt"
	"slices"
	"sync"
)

// Severity is the severity of a diagnostic.
type Severity int

const (
	// SeverityNote is informational.
	SeverityNote Severity = iota
	// SeverityWarning does not fail the invocation.
	SeverityWarning
	// SeverityError fails the invocation once the current phase completes.
	SeverityError
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "note"
	}
}

// Diagnostic is a single message reported by a collaborator.
type Diagnostic struct {
	Severity Severity
	Message  string
	// Location optionally names the package, file, or URL the diagnostic is about.
	Location string
}

// String formats the diagnostic the way it is shown to users.
func (d Diagnostic) String() string {
	if d.Location != "" {
		return fmt.Sprintf("%s: %s: %s", d.Location, d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// Diagnostics is a concurrency-safe collector of diagnostics.
type Diagnostics struct {
	mu      sync.RWMutex
	entries []Diagnostic
}

// NewDiagnostics creates an empty collector.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{}
}

// Emit records a diagnostic.
func (d *Diagnostics) Emit(diag Diagnostic) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries = append(d.entries, diag)
}

// Error records an error diagnostic built from err.
func (d *Diagnostics) Error(err error, location string) {
	d.Emit(Diagnostic{Severity: SeverityError, Message: err.Error(), Location: location})
}

// Warning records a warning diagnostic.
func (d *Diagnostics) Warning(msg, location string) {
	d.Emit(Diagnostic{Severity: SeverityWarning, Message: msg, Location: location})
}

// HasErrors reports whether any error diagnostic was recorded.
func (d *Diagnostics) HasErrors() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.ContainsFunc(d.entries, func(e Diagnostic) bool {
		return e.Severity == SeverityError
	})
}

// All returns a copy of the recorded diagnostics in emission order.
func (d *Diagnostics) All() []Diagnostic {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.entries)
}
