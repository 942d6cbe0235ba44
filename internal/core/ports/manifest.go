package ports

import (
	"context"

	"go.trai.ch/pax/internal/core/domain"
)

// ManifestLoaderConfig configures manifest evaluation.
type ManifestLoaderConfig struct {
	// ResourcePaths are the host toolchain's manifest support directories.
	ResourcePaths []string
	// Sandbox restricts manifest evaluation to read-only file system access.
	Sandbox bool
	// CacheDir enables caching of evaluated manifests when non-empty.
	CacheDir string
	// ExtraFlags are appended to the flags used to evaluate manifests.
	ExtraFlags []string
	// CrossToolchain marks manifests evaluated for a cross toolchain destination.
	CrossToolchain bool
}

// ManifestLoader loads package manifests.
//
//go:generate mockgen -source=manifest.go -destination=mocks/mock_manifest.go -package=mocks
type ManifestLoader interface {
	// Load evaluates the manifest of the package in dir.
	Load(ctx context.Context, dir string) (*domain.Manifest, error)
}

// ManifestLoaderFactory creates manifest loaders.
type ManifestLoaderFactory func(cfg ManifestLoaderConfig) ManifestLoader
