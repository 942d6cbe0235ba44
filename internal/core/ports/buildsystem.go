package ports

import (
	"context"

	"go.trai.ch/pax/internal/core/domain"
)

// BuildSystem is a build backend bound to resolved build parameters.
//
//go:generate mockgen -source=buildsystem.go -destination=mocks/mock_buildsystem.go -package=mocks
type BuildSystem interface {
	// Build builds the requested subset of the package graph.
	Build(ctx context.Context, subset domain.BuildSubset) error
	// PackageGraph returns the package graph the backend builds, loading it on first use.
	PackageGraph(ctx context.Context) (*domain.PackageGraph, error)
	// Cancel stops a running build. It is safe to call from any goroutine.
	Cancel()
}
