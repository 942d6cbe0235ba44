package domain

import (
	"iter"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// ResolvedPackage is a package whose manifest was loaded during graph construction.
type ResolvedPackage struct {
	Identity     string
	Path         string
	Manifest     *Manifest
	Dependencies []string
	IsRoot       bool
}

// PackageGraph is the dependency graph of packages reachable from the root package.
type PackageGraph struct {
	packages map[string]*ResolvedPackage
	order    []string
}

// NewPackageGraph creates an empty package graph.
func NewPackageGraph() *PackageGraph {
	return &PackageGraph{packages: make(map[string]*ResolvedPackage)}
}

// AddPackage adds a package to the graph.
func (g *PackageGraph) AddPackage(p *ResolvedPackage) error {
	if _, exists := g.packages[p.Identity]; exists {
		return zerr.With(zerr.Wrap(ErrPackageAlreadyExists, "duplicate package"), "identity", p.Identity)
	}
	g.packages[p.Identity] = p
	return nil
}

// Validate checks the graph for cycles and missing packages and computes the
// dependency order used by Walk. Iteration is sorted by identity for determinism.
func (g *PackageGraph) Validate() error {
	g.order = make([]string, 0, len(g.packages))
	visited := make(map[string]int) // 0: unvisited, 1: visiting, 2: visited
	var path []string

	var visit func(id string) error
	visit = func(id string) error {
		visited[id] = 1
		path = append(path, id)

		pkg, exists := g.packages[id]
		if !exists {
			return zerr.With(zerr.Wrap(ErrMissingDependency, "unknown package"), "dependency", id)
		}

		for _, dep := range pkg.Dependencies {
			switch visited[dep] {
			case 1:
				return cycleError(path, dep)
			case 0:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[id] = 2
		path = path[:len(path)-1]
		g.order = append(g.order, id)
		return nil
	}

	ids := make([]string, 0, len(g.packages))
	for id := range g.packages {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		if visited[id] == 0 {
			if err := visit(id); err != nil {
				return err
			}
		}
	}
	return nil
}

func cycleError(path []string, dep string) error {
	start := slices.Index(path, dep)
	cycle := append(slices.Clone(path[start:]), dep)
	return zerr.With(zerr.Wrap(ErrCycleDetected, "dependency cycle"), "cycle", strings.Join(cycle, " -> "))
}

// Walk yields packages with dependencies before dependents.
// It assumes Validate has been called and returned nil.
func (g *PackageGraph) Walk() iter.Seq[*ResolvedPackage] {
	return func(yield func(*ResolvedPackage) bool) {
		for _, id := range g.order {
			if !yield(g.packages[id]) {
				return
			}
		}
	}
}

// Package returns the package with the given identity.
func (g *PackageGraph) Package(identity string) (*ResolvedPackage, bool) {
	p, ok := g.packages[identity]
	return p, ok
}

// Roots returns the root packages sorted by identity.
func (g *PackageGraph) Roots() []*ResolvedPackage {
	var roots []*ResolvedPackage
	for _, p := range g.packages {
		if p.IsRoot {
			roots = append(roots, p)
		}
	}
	slices.SortFunc(roots, func(a, b *ResolvedPackage) int { return strings.Compare(a.Identity, b.Identity) })
	return roots
}

// Len returns the number of packages in the graph.
func (g *PackageGraph) Len() int {
	return len(g.packages)
}

// FindProduct returns the package declaring the named product.
func (g *PackageGraph) FindProduct(name string) (*ResolvedPackage, Product, error) {
	for pkg := range g.Walk() {
		for _, p := range pkg.Manifest.Products {
			if p.Name == name {
				return pkg, p, nil
			}
		}
	}
	return nil, Product{}, zerr.With(zerr.Wrap(ErrProductNotFound, "unknown product"), "product", name)
}

// FindTarget returns the package declaring the named target.
func (g *PackageGraph) FindTarget(name string) (*ResolvedPackage, Target, error) {
	for pkg := range g.Walk() {
		if t, ok := pkg.Manifest.Target(name); ok {
			return pkg, t, nil
		}
	}
	return nil, Target{}, zerr.With(zerr.Wrap(ErrTargetNotFound, "unknown target"), "target", name)
}

// ExecutableProducts returns the runnable products of the root packages.
func (g *PackageGraph) ExecutableProducts() []Product {
	var out []Product
	for _, root := range g.Roots() {
		for _, p := range root.Manifest.Products {
			if p.Kind.IsExecutable() {
				out = append(out, p)
			}
		}
	}
	return out
}
