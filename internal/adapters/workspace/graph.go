package workspace

import (
	"context"
	"errors"
	"slices"

	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	testEntryPointSuffix = "PackageTests"
	testDiscoverySuffix  = "PackageDiscoveredTests"
)

// unresolvedError reports that the graph needs a resolution pass before it can be loaded.
type unresolvedError struct {
	identity string
	reason   string
}

func (e *unresolvedError) Error() string {
	return "dependency '" + e.identity + "' is not resolved: " + e.reason
}

// LoadPackageGraph loads the package graph of the root package. Dependencies are resolved
// first when the workspace state is missing or does not cover every requirement.
func (w *Workspace) LoadPackageGraph(ctx context.Context, opts domain.PackageGraphOptions) (*domain.PackageGraph, error) {
	graph, err := w.loadGraph(ctx, opts)

	var unresolved *unresolvedError
	if !errors.As(err, &unresolved) || w.resolved {
		return graph, err
	}

	if err := w.resolve(ctx, unresolved.reason); err != nil {
		return nil, err
	}
	return w.loadGraph(ctx, opts)
}

func (w *Workspace) loadGraph(ctx context.Context, opts domain.PackageGraphOptions) (*domain.PackageGraph, error) {
	state, stateExists, err := LoadState(w.statePath)
	if err != nil {
		return nil, err
	}

	rootManifest, err := w.loader.Load(ctx, w.root)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load root manifest")
	}
	rootManifest = withTestProducts(rootManifest, opts)

	graph := domain.NewPackageGraph()
	queue := []*domain.ResolvedPackage{newPackage(rootIdentity(rootManifest), w.root, rootManifest, true)}
	queued := map[string]bool{queue[0].Identity: true}

	for len(queue) > 0 {
		pkg := queue[0]
		queue = queue[1:]
		if err := graph.AddPackage(pkg); err != nil {
			return nil, err
		}

		for _, dep := range pkg.Manifest.Dependencies {
			if queued[dep.Identity] {
				continue
			}
			queued[dep.Identity] = true

			path, err := dependencyPath(state, stateExists, pkg.Path, dep)
			if err != nil {
				if w.resolved {
					return nil, zerr.With(zerr.Wrap(domain.ErrMissingDependency, err.Error()), "identity", dep.Identity)
				}
				return nil, err
			}

			m, err := w.loader.Load(ctx, path)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, "failed to load dependency manifest"), "identity", dep.Identity)
			}
			queue = append(queue, newPackage(dep.Identity, path, m, false))
		}
	}

	if err := graph.Validate(); err != nil {
		return nil, err
	}

	if opts.ExplicitProduct != "" {
		if _, _, err := graph.FindProduct(opts.ExplicitProduct); err != nil {
			return nil, err
		}
	}
	return graph, nil
}

func newPackage(identity, path string, m *domain.Manifest, root bool) *domain.ResolvedPackage {
	deps := make([]string, 0, len(m.Dependencies))
	for _, d := range m.Dependencies {
		deps = append(deps, d.Identity)
	}
	return &domain.ResolvedPackage{Identity: identity, Path: path, Manifest: m, Dependencies: deps, IsRoot: root}
}

// dependencyPath locates a dependency on disk without touching the network.
func dependencyPath(state *domain.WorkspaceState, stateExists bool, dir string, dep domain.DependencyRequirement) (string, error) {
	managed, known := state.Dependency(dep.Identity)
	if known && managed.State == domain.DependencyEdited {
		return managed.Path, nil
	}

	if dep.IsLocal() {
		path := localPath(dir, dep.Path)
		if !dirExists(path) {
			return "", &unresolvedError{identity: dep.Identity, reason: "the local dependency directory is missing"}
		}
		return path, nil
	}

	switch {
	case !stateExists:
		return "", &unresolvedError{identity: dep.Identity, reason: "the workspace state is missing"}
	case !known || managed.URL != dep.URL:
		return "", &unresolvedError{identity: dep.Identity, reason: "dependency '" + dep.Identity + "' is new"}
	case !dirExists(managed.Path):
		return "", &unresolvedError{identity: dep.Identity, reason: "the checkout of '" + dep.Identity + "' is missing"}
	}
	return managed.Path, nil
}

// withTestProducts returns a copy of m with the synthesized test products requested by opts.
func withTestProducts(m *domain.Manifest, opts domain.PackageGraphOptions) *domain.Manifest {
	if !opts.TestEntryPointProducts && !opts.TestDiscoveryProducts {
		return m
	}

	var testTargets []string
	for _, t := range m.Targets {
		if t.Kind == domain.TargetTest {
			testTargets = append(testTargets, t.Name)
		}
	}
	if len(testTargets) == 0 {
		return m
	}

	out := *m
	out.Products = slices.Clone(m.Products)
	if opts.TestEntryPointProducts {
		out.Products = append(out.Products, domain.Product{
			Name:    m.Name + testEntryPointSuffix,
			Kind:    domain.ProductTest,
			Targets: testTargets,
		})
	}
	if opts.TestDiscoveryProducts {
		out.Products = append(out.Products, domain.Product{
			Name:    m.Name + testDiscoverySuffix,
			Kind:    domain.ProductTest,
			Targets: slices.Clone(testTargets),
		})
	}
	return &out
}
