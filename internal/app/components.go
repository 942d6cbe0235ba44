// Package app implements the application layer for pax.
package app

import (
	"go.trai.ch/pax/internal/adapters/progress" //nolint:depguard // Wired in app layer
	"go.trai.ch/pax/internal/core/ports"
	"go.trai.ch/pax/internal/engine/buildsystem"
	"go.trai.ch/pax/internal/engine/interrupt"
	"go.trai.ch/pax/internal/engine/resolver"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	Logger       ports.Logger
	Output       *progress.SyncWriter
	Resolvers    resolver.Factory
	Manifests    ports.ManifestLoaderFactory
	Workspaces   ports.WorkspaceFactory
	BuildSystems buildsystem.Provider
	Interrupt    *interrupt.Handler
	Tracer       ports.Tracer
	Metrics      ports.Metrics
	Telemetry    ports.Telemetry
}
