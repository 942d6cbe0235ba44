package domain

import "path/filepath"

const (
	// PaxDirName is the name of the per-package metadata directory.
	PaxDirName = ".pax"

	// BuildDirName is the default name of the build output directory.
	BuildDirName = ".build"

	// StoreDirName is the name of the build info store directory.
	StoreDirName = "store"

	// CacheDirName is the name of the cache directory.
	CacheDirName = "cache"

	// ManifestCacheDirName is the name of the evaluated manifest cache directory.
	ManifestCacheDirName = "manifests"

	// CheckoutsDirName is the name of the directory holding dependency checkouts.
	CheckoutsDirName = "checkouts"

	// ArtifactsDirName is the name of the directory holding downloaded binary artifacts.
	ArtifactsDirName = "artifacts"

	// ManifestFileName is the name of the package manifest file.
	ManifestFileName = "Package.yaml"

	// WorkspaceStateFileName is the name of the workspace state file.
	WorkspaceStateFileName = "workspace-state.yaml"

	// BuildDescriptionFileName is the name of the serialized build description.
	BuildDescriptionFileName = "description.json"

	// IDEBuildDirName is the data path segment used by the IDE project backend.
	IDEBuildDirName = "apple"

	// EnvFileName is the name of the optional per-package dotenv file.
	EnvFileName = ".pax.env"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultBuildPath returns the default build path for a package root.
func DefaultBuildPath(root string) string {
	return filepath.Join(root, BuildDirName)
}

// DefaultStorePath returns the path of the build info store inside a data path.
func DefaultStorePath(dataPath string) string {
	return filepath.Join(dataPath, StoreDirName, "build-info.json")
}

// DefaultCachePath returns the default shared cache directory for a package root.
func DefaultCachePath(root string) string {
	return filepath.Join(root, PaxDirName, CacheDirName)
}

// CheckoutsPath returns the directory dependency checkouts are placed in.
func CheckoutsPath(root string) string {
	return filepath.Join(root, PaxDirName, CheckoutsDirName)
}

// ArtifactsPath returns the directory binary artifacts are downloaded to.
func ArtifactsPath(root string) string {
	return filepath.Join(root, PaxDirName, ArtifactsDirName)
}

// WorkspaceStatePath returns the path of the workspace state file.
func WorkspaceStatePath(root string) string {
	return filepath.Join(root, PaxDirName, WorkspaceStateFileName)
}

// BuildManifestPath returns the path of the persisted build manifest for a configuration.
func BuildManifestPath(dataPath string, config Configuration) string {
	return filepath.Join(dataPath, config.String()+".yaml")
}

// BuildDescriptionPath returns the path of the persisted build description for a configuration.
func BuildDescriptionPath(dataPath string, config Configuration) string {
	return filepath.Join(dataPath, config.String(), BuildDescriptionFileName)
}
