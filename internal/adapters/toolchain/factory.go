package toolchain

import (
	"context"
	"strings"
	"time"

	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/pax/internal/core/ports"
	"go.trai.ch/zerr"
)

const versionTimeout = 10 * time.Second

// VersionReader runs a command and returns its standard output.
type VersionReader interface {
	Output(ctx context.Context, args ...string) (string, error)
}

// Factory implements ports.ToolchainFactory.
type Factory struct {
	discoverer ports.CompilerDiscoverer
	versions   VersionReader
	logger     ports.Logger
}

// NewFactory creates a toolchain factory.
func NewFactory(discoverer ports.CompilerDiscoverer, versions VersionReader, logger ports.Logger) *Factory {
	return &Factory{discoverer: discoverer, versions: versions, logger: logger}
}

// NewToolchain discovers the compilers of dest and queries the primary compiler's version.
func (f *Factory) NewToolchain(dest domain.Destination) (*domain.Toolchain, error) {
	compilers, err := f.discoverer.Discover(dest.BinDir)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), versionTimeout)
	defer cancel()

	out, err := f.versions.Output(ctx, compilers.Compiler, "--version")
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to query compiler version"), "compiler", compilers.Compiler)
	}
	version, _, _ := strings.Cut(out, "\n")
	f.logger.Debug("using " + compilers.Compiler + " (" + version + ")")

	return &domain.Toolchain{
		Destination: dest,
		Compilers:   compilers,
		Version:     version,
	}, nil
}
