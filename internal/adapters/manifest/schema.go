package manifest

// PackageFile is the on-disk structure of a Package.yaml manifest.
type PackageFile struct {
	Name         string          `yaml:"name"`
	Products     []ProductDTO    `yaml:"products,omitempty"`
	Targets      []TargetDTO     `yaml:"targets,omitempty"`
	Dependencies []DependencyDTO `yaml:"dependencies,omitempty"`
	Artifacts    []ArtifactDTO   `yaml:"artifacts,omitempty"`
}

// ProductDTO represents a product declaration.
type ProductDTO struct {
	Name    string   `yaml:"name"`
	Kind    string   `yaml:"kind"`
	Targets []string `yaml:"targets"`
	// When names a define that must (or, prefixed with '!', must not) be set for the product to exist.
	When string `yaml:"when,omitempty"`
}

// TargetDTO represents a target declaration.
type TargetDTO struct {
	Name         string   `yaml:"name"`
	Kind         string   `yaml:"kind,omitempty"`
	Path         string   `yaml:"path,omitempty"`
	Sources      []string `yaml:"sources,omitempty"`
	Dependencies []string `yaml:"dependencies,omitempty"`
	When         string   `yaml:"when,omitempty"`
}

// DependencyDTO represents a package dependency.
type DependencyDTO struct {
	Identity string `yaml:"identity,omitempty"`
	URL      string `yaml:"url,omitempty"`
	Path     string `yaml:"path,omitempty"`
	Revision string `yaml:"revision,omitempty"`
}

// ArtifactDTO represents a prebuilt binary archive.
type ArtifactDTO struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Checksum string `yaml:"checksum"`
}
