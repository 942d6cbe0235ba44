// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/pax/internal/adapters/cas"
	_ "go.trai.ch/pax/internal/adapters/destination"
	_ "go.trai.ch/pax/internal/adapters/fs"
	_ "go.trai.ch/pax/internal/adapters/logger"
	_ "go.trai.ch/pax/internal/adapters/manifest"
	_ "go.trai.ch/pax/internal/adapters/metrics"
	_ "go.trai.ch/pax/internal/adapters/process"
	_ "go.trai.ch/pax/internal/adapters/progress"
	_ "go.trai.ch/pax/internal/adapters/shell"
	_ "go.trai.ch/pax/internal/adapters/telemetry"
	_ "go.trai.ch/pax/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/pax/internal/adapters/toolchain"
	_ "go.trai.ch/pax/internal/adapters/workspace"
	// Register app and engine nodes.
	_ "go.trai.ch/pax/internal/app"
	_ "go.trai.ch/pax/internal/engine/buildsystem"
	_ "go.trai.ch/pax/internal/engine/interrupt"
	_ "go.trai.ch/pax/internal/engine/resolver"
	_ "go.trai.ch/pax/internal/engine/scheduler"
)
