package ports

import (
	"context"
	"time"

	"go.trai.ch/pax/internal/core/domain"
)

//go:generate mockgen -source=workspace.go -destination=mocks/mock_workspace.go -package=mocks

// Workspace resolves and loads the dependency graph of a root package.
type Workspace interface {
	// Resolve materializes every dependency of the root package.
	Resolve(ctx context.Context) error
	// LoadPackageGraph resolves dependencies as needed and loads the package graph.
	LoadPackageGraph(ctx context.Context, opts domain.PackageGraphOptions) (*domain.PackageGraph, error)
	// EditedDependencies returns the dependencies currently in the edited state.
	EditedDependencies() ([]domain.ManagedDependency, error)
}

// WorkspaceConfig configures a workspace for one root package.
type WorkspaceConfig struct {
	Root           string
	CachePath      string
	NetrcPath      string
	Delegate       WorkspaceDelegate
	ManifestLoader ManifestLoader
	Diagnostics    *domain.Diagnostics
}

// WorkspaceFactory creates workspaces.
type WorkspaceFactory func(cfg WorkspaceConfig) (Workspace, error)

// WorkspaceDelegate receives the events emitted while resolving dependencies.
// Implementations must be safe for concurrent use.
type WorkspaceDelegate interface {
	WillFetch(url string)
	FetchingWillBegin(url string, fromCache bool)
	DidFetch(url string, fromCache bool, err error, duration time.Duration)
	WillClone(url string)
	DidClone(url string, duration time.Duration)
	WillCheckout(identity, revision string)
	DidCheckout(identity, revision string, duration time.Duration)
	WillUpdate(url string)
	DidUpdate(url string, duration time.Duration)
	DependenciesUpToDate()
	// WillResolveDependencies is delivered synchronously: the message is written before it returns.
	WillResolveDependencies(reason string)
	DidCreateWorkingCopy(identity, path string)
	RemovedDependency(identity string)
	WillComputeVersion(identity, location string)
	DidComputeVersion(identity, location, version string, duration time.Duration)
	DownloadingBinaryArtifact(url string, downloaded, total int64)
	DidDownloadBinaryArtifacts()
}
