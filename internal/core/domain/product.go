package domain

// ProductKind is the kind of a product built from a package.
type ProductKind int

const (
	// ProductExecutable is a command line executable.
	ProductExecutable ProductKind = iota
	// ProductLibrary is a library linked by other packages.
	ProductLibrary
	// ProductTest is a test bundle.
	ProductTest
	// ProductPlugin is a build tool plugin.
	ProductPlugin
	// ProductCrossApplication is an executable linked statically for a cross toolchain and
	// packaged with the platform converter.
	ProductCrossApplication
)

var productKindNames = map[ProductKind]string{
	ProductExecutable:       "executable",
	ProductLibrary:          "library",
	ProductTest:             "test",
	ProductPlugin:           "plugin",
	ProductCrossApplication: "cross-application",
}

// String returns the manifest spelling of the kind.
func (k ProductKind) String() string {
	if s, ok := productKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseProductKind parses the manifest spelling of a product kind.
func ParseProductKind(s string) (ProductKind, bool) {
	for k, name := range productKindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// IsExecutable reports whether products of this kind can be run.
func (k ProductKind) IsExecutable() bool {
	return k == ProductExecutable || k == ProductCrossApplication
}

// Product is a named build output assembled from one or more targets.
type Product struct {
	Name    string
	Kind    ProductKind
	Targets []string
}

// TargetKind is the kind of a target (module) in a package.
type TargetKind int

const (
	// TargetRegular is a library module.
	TargetRegular TargetKind = iota
	// TargetExecutable is a module containing an entry point.
	TargetExecutable
	// TargetTest is a test module.
	TargetTest
)

// String returns the manifest spelling of the target kind.
func (k TargetKind) String() string {
	switch k {
	case TargetExecutable:
		return "executable"
	case TargetTest:
		return "test"
	default:
		return "regular"
	}
}

// Target is a module of source files compiled together.
type Target struct {
	Name         string
	Kind         TargetKind
	Path         string
	Sources      []string
	Dependencies []string
}
