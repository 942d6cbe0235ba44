package ports

import "go.trai.ch/pax/internal/core/domain"

//go:generate mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks

// HostDestinationProvider describes the machine the tool runs on.
type HostDestinationProvider interface {
	// HostDestination returns the destination that compiles for the running machine.
	HostDestination() (domain.Destination, error)
}

// CompilerDiscoverer locates compiler binaries.
type CompilerDiscoverer interface {
	// Discover returns the compilers found in binDir.
	// It fails with domain.ErrCompilerNotFound if the primary compiler is missing.
	Discover(binDir string) (domain.CompilerPaths, error)
}

// DestinationLoader decodes destination description files.
type DestinationLoader interface {
	// Load reads the destination described by the file at path.
	Load(path string) (domain.Destination, error)
}

// ToolchainFactory builds toolchains bound to a destination.
type ToolchainFactory interface {
	// NewToolchain constructs a toolchain for dest.
	NewToolchain(dest domain.Destination) (*domain.Toolchain, error)
}
