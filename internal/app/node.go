package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pax/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/pax/internal/adapters/manifest"           //nolint:depguard // Wired in app layer
	"go.trai.ch/pax/internal/adapters/metrics"            //nolint:depguard // Wired in app layer
	"go.trai.ch/pax/internal/adapters/progress"           //nolint:depguard // Wired in app layer
	"go.trai.ch/pax/internal/adapters/telemetry"          //nolint:depguard // Wired in app layer
	"go.trai.ch/pax/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/pax/internal/adapters/workspace"          //nolint:depguard // Wired in app layer
	"go.trai.ch/pax/internal/core/ports"
	"go.trai.ch/pax/internal/engine/buildsystem"
	"go.trai.ch/pax/internal/engine/interrupt"
	"go.trai.ch/pax/internal/engine/resolver"
)

// ComponentsNodeID is the unique identifier for the App components Graft node.
const ComponentsNodeID graft.ID = "app.components"

func init() {
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			progress.WriterNodeID,
			resolver.NodeID,
			manifest.FactoryNodeID,
			workspace.NodeID,
			buildsystem.NodeID,
			interrupt.NodeID,
			telemetry.TracerNodeID,
			metrics.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	out, err := graft.Dep[*progress.SyncWriter](ctx)
	if err != nil {
		return nil, err
	}

	resolvers, err := graft.Dep[resolver.Factory](ctx)
	if err != nil {
		return nil, err
	}

	manifests, err := graft.Dep[ports.ManifestLoaderFactory](ctx)
	if err != nil {
		return nil, err
	}

	workspaces, err := graft.Dep[ports.WorkspaceFactory](ctx)
	if err != nil {
		return nil, err
	}

	buildSystems, err := graft.Dep[buildsystem.Provider](ctx)
	if err != nil {
		return nil, err
	}

	handler, err := graft.Dep[*interrupt.Handler](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	recorder, err := graft.Dep[ports.Metrics](ctx)
	if err != nil {
		return nil, err
	}

	recording, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		Logger:       log,
		Output:       out,
		Resolvers:    resolvers,
		Manifests:    manifests,
		Workspaces:   workspaces,
		BuildSystems: buildSystems,
		Interrupt:    handler,
		Tracer:       tracer,
		Metrics:      recorder,
		Telemetry:    recording,
	}, nil
}
