package domain

// DependencyRequirement is a dependency declared in a manifest.
type DependencyRequirement struct {
	// Identity is the name other packages refer to the dependency by.
	Identity string
	// URL is the source control location of a remote dependency.
	URL string
	// Path is the directory of a local dependency, relative to the declaring package.
	Path string
	// Revision pins a tag, branch or commit. Empty means the remote default branch.
	Revision string
}

// IsLocal reports whether the dependency lives on the local file system.
func (d DependencyRequirement) IsLocal() bool {
	return d.Path != "" && d.URL == ""
}

// BinaryArtifact is a prebuilt archive downloaded during resolution.
type BinaryArtifact struct {
	Name     string
	URL      string
	Checksum string
}

// Manifest is an evaluated package manifest.
type Manifest struct {
	Name         string
	Path         string
	Products     []Product
	Targets      []Target
	Dependencies []DependencyRequirement
	Artifacts    []BinaryArtifact
}

// Target returns the named target.
func (m *Manifest) Target(name string) (Target, bool) {
	for _, t := range m.Targets {
		if t.Name == name {
			return t, true
		}
	}
	return Target{}, false
}

// PackageGraphOptions tune which products a package graph is loaded with.
type PackageGraphOptions struct {
	// ExplicitProduct names a product that must be present even if otherwise filtered.
	ExplicitProduct string
	// TestEntryPointProducts synthesizes a test entry point product per root package.
	TestEntryPointProducts bool
	// TestDiscoveryProducts synthesizes a test discovery product per root package.
	TestDiscoveryProducts bool
}
