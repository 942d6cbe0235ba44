package buildsystem_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/pax/internal/core/ports"
	"go.trai.ch/pax/internal/engine/buildsystem"
	"go.trai.ch/pax/internal/engine/scheduler"
)

const linuxTriple = "x86_64-unknown-linux-gnu"

func testParams(t *testing.T, dataPath string) *domain.BuildParameters {
	t.Helper()
	triple := domain.MustParseTriple(linuxTriple)
	return &domain.BuildParameters{
		DataPath:      dataPath,
		Configuration: domain.ConfigurationDebug,
		Triple:        triple,
		Jobs:          2,
		Toolchain: &domain.Toolchain{
			Destination: domain.Destination{Target: triple, BinDir: "/opt/pax/usr/bin"},
			Compilers: domain.CompilerPaths{
				Compiler: "/opt/pax/usr/bin/paxc",
				Archiver: "/opt/pax/usr/bin/ar",
			},
		},
		Features: domain.BuildFeatures{IndexStore: domain.IndexStoreOff},
	}
}

// appGraph is a root package "app" with an executable depending on a library of the
// package "core", plus a test target.
func appGraph(t *testing.T) *domain.PackageGraph {
	t.Helper()
	g := domain.NewPackageGraph()
	require.NoError(t, g.AddPackage(&domain.ResolvedPackage{
		Identity: "core",
		Path:     "/src/core",
		Manifest: &domain.Manifest{
			Name: "Core",
			Targets: []domain.Target{
				{Name: "Core", Kind: domain.TargetRegular, Path: "Sources/Core", Sources: []string{"core.src"}},
			},
			Products: []domain.Product{{Name: "CoreLib", Kind: domain.ProductLibrary, Targets: []string{"Core"}}},
		},
	}))
	require.NoError(t, g.AddPackage(&domain.ResolvedPackage{
		Identity:     "app",
		Path:         "/src/app",
		IsRoot:       true,
		Dependencies: []string{"core"},
		Manifest: &domain.Manifest{
			Name: "App",
			Targets: []domain.Target{
				{Name: "AppTests", Kind: domain.TargetTest, Path: "Tests", Sources: []string{"tests.src"}, Dependencies: []string{"App"}},
				{Name: "App", Kind: domain.TargetExecutable, Path: "Sources/App", Sources: []string{"main.src"}, Dependencies: []string{"Core"}},
			},
			Products: []domain.Product{
				{Name: "app", Kind: domain.ProductExecutable, Targets: []string{"App"}},
				{Name: "AppPackageTests", Kind: domain.ProductTest, Targets: []string{"AppTests"}},
			},
		},
	}))
	require.NoError(t, g.Validate())
	return g
}

// countingLoader returns graph and counts its invocations.
type countingLoader struct {
	graph *domain.PackageGraph
	err   error
	calls atomic.Int32
	mu    sync.Mutex
	opts  []domain.PackageGraphOptions
}

func (l *countingLoader) Load(_ context.Context, opts domain.PackageGraphOptions) (*domain.PackageGraph, error) {
	l.calls.Add(1)
	l.mu.Lock()
	l.opts = append(l.opts, opts)
	l.mu.Unlock()
	return l.graph, l.err
}

// recordingRunner records the graphs it was asked to run.
type recordingRunner struct {
	mu     sync.Mutex
	graphs []*domain.Graph
	opts   []scheduler.Options
	run    func(ctx context.Context) error
}

func (r *recordingRunner) Run(ctx context.Context, graph *domain.Graph, _ ports.BuildInfoStore, opts scheduler.Options) error {
	r.mu.Lock()
	r.graphs = append(r.graphs, graph)
	r.opts = append(r.opts, opts)
	r.mu.Unlock()
	if r.run != nil {
		return r.run(ctx)
	}
	return nil
}

func (r *recordingRunner) taskNames(i int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var names []string
	for _, task := range r.graphs[i].Tasks() {
		names = append(names, task.Name.String())
	}
	return names
}

func noStore(string) (ports.BuildInfoStore, error) { return nil, nil }

var _ buildsystem.Runner = (*recordingRunner)(nil)
