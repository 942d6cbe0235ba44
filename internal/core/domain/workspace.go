package domain

// DependencyState is the checkout state of a managed dependency.
type DependencyState string

const (
	// DependencyCheckout is a dependency checked out from source control by the tool.
	DependencyCheckout DependencyState = "checkout"
	// DependencyEdited is a dependency the user took over for local editing.
	DependencyEdited DependencyState = "edited"
	// DependencyLocal is a dependency referenced by a local path.
	DependencyLocal DependencyState = "local"
)

// ManagedDependency records where and how a dependency was materialized.
type ManagedDependency struct {
	Identity string          `yaml:"identity"`
	URL      string          `yaml:"url,omitempty"`
	Path     string          `yaml:"path"`
	State    DependencyState `yaml:"state"`
	Revision string          `yaml:"revision,omitempty"`
}

// WorkspaceState is the persisted state of a package's managed dependencies.
type WorkspaceState struct {
	Version      int                 `yaml:"version"`
	Dependencies []ManagedDependency `yaml:"dependencies"`
}

// Dependency returns the managed dependency with the given identity.
func (s *WorkspaceState) Dependency(identity string) (ManagedDependency, bool) {
	for _, d := range s.Dependencies {
		if d.Identity == identity {
			return d, true
		}
	}
	return ManagedDependency{}, false
}

// Upsert replaces or appends a managed dependency.
func (s *WorkspaceState) Upsert(dep ManagedDependency) {
	for i, d := range s.Dependencies {
		if d.Identity == dep.Identity {
			s.Dependencies[i] = dep
			return
		}
	}
	s.Dependencies = append(s.Dependencies, dep)
}

// Remove deletes the managed dependency with the given identity.
func (s *WorkspaceState) Remove(identity string) bool {
	for i, d := range s.Dependencies {
		if d.Identity == identity {
			s.Dependencies = append(s.Dependencies[:i], s.Dependencies[i+1:]...)
			return true
		}
	}
	return false
}

// Edited returns the dependencies in the edited state.
func (s *WorkspaceState) Edited() []ManagedDependency {
	var out []ManagedDependency
	for _, d := range s.Dependencies {
		if d.State == DependencyEdited {
			out = append(out, d)
		}
	}
	return out
}
