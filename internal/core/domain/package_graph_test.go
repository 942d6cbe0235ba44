package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/zerr"
)

func newPackage(id string, root bool, deps ...string) *domain.ResolvedPackage {
	return &domain.ResolvedPackage{
		Identity:     id,
		IsRoot:       root,
		Dependencies: deps,
		Manifest: &domain.Manifest{
			Name: id,
			Products: []domain.Product{
				{Name: id + "-tool", Kind: domain.ProductExecutable, Targets: []string{id}},
			},
			Targets: []domain.Target{{Name: id, Kind: domain.TargetExecutable}},
		},
	}
}

func TestPackageGraph_WalkOrder(t *testing.T) {
	g := domain.NewPackageGraph()
	require.NoError(t, g.AddPackage(newPackage("app", true, "lib")))
	require.NoError(t, g.AddPackage(newPackage("lib", false, "base")))
	require.NoError(t, g.AddPackage(newPackage("base", false)))
	require.NoError(t, g.Validate())

	var order []string
	for p := range g.Walk() {
		order = append(order, p.Identity)
	}
	assert.Equal(t, []string{"base", "lib", "app"}, order)
	assert.Equal(t, 3, g.Len())
}

func TestPackageGraph_Cycle(t *testing.T) {
	g := domain.NewPackageGraph()
	require.NoError(t, g.AddPackage(newPackage("a", true, "b")))
	require.NoError(t, g.AddPackage(newPackage("b", false, "a")))

	err := g.Validate()
	require.ErrorIs(t, err, domain.ErrCycleDetected)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok)
	assert.Equal(t, "a -> b -> a", zErr.Metadata()["cycle"])
}

func TestPackageGraph_MissingDependency(t *testing.T) {
	g := domain.NewPackageGraph()
	require.NoError(t, g.AddPackage(newPackage("a", true, "ghost")))

	require.ErrorIs(t, g.Validate(), domain.ErrMissingDependency)
}

func TestPackageGraph_Duplicate(t *testing.T) {
	g := domain.NewPackageGraph()
	require.NoError(t, g.AddPackage(newPackage("a", true)))
	require.ErrorIs(t, g.AddPackage(newPackage("a", true)), domain.ErrPackageAlreadyExists)
}

func TestPackageGraph_Lookups(t *testing.T) {
	g := domain.NewPackageGraph()
	require.NoError(t, g.AddPackage(newPackage("app", true, "lib")))
	require.NoError(t, g.AddPackage(newPackage("lib", false)))
	require.NoError(t, g.Validate())

	pkg, product, err := g.FindProduct("lib-tool")
	require.NoError(t, err)
	assert.Equal(t, "lib", pkg.Identity)
	assert.Equal(t, domain.ProductExecutable, product.Kind)

	_, _, err = g.FindProduct("nope")
	require.ErrorIs(t, err, domain.ErrProductNotFound)

	_, target, err := g.FindTarget("app")
	require.NoError(t, err)
	assert.Equal(t, "app", target.Name)

	_, _, err = g.FindTarget("nope")
	require.ErrorIs(t, err, domain.ErrTargetNotFound)

	execs := g.ExecutableProducts()
	require.Len(t, execs, 1)
	assert.Equal(t, "app-tool", execs[0].Name)
}
