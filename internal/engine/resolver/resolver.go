// Package resolver resolves the host and destination toolchains of an invocation.
package resolver

import (
	"errors"
	"fmt"

	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/pax/internal/core/ports"
	"go.trai.ch/zerr"
)

// Config selects where the destination comes from and how it is overridden.
type Config struct {
	// DestinationFile is an optional destination description file.
	DestinationFile string
	// Cross requests construction of a destination for a cross toolchain.
	Cross domain.CrossOptions
	// Overrides are applied on top of the selected base destination.
	Overrides domain.DestinationOverrides
}

// Resolver computes the host and destination toolchains at most once each.
type Resolver struct {
	host       ports.HostDestinationProvider
	discoverer ports.CompilerDiscoverer
	loader     ports.DestinationLoader
	factory    ports.ToolchainFactory
	cfg        Config

	hostDestination      *domain.Lazy[domain.Destination]
	hostToolchain        *domain.Lazy[*domain.Toolchain]
	destinationToolchain *domain.Lazy[*domain.Toolchain]
}

// New creates a Resolver. Nothing is resolved until a toolchain is requested.
func New(
	host ports.HostDestinationProvider,
	discoverer ports.CompilerDiscoverer,
	loader ports.DestinationLoader,
	factory ports.ToolchainFactory,
	cfg Config,
) *Resolver {
	r := &Resolver{
		host:       host,
		discoverer: discoverer,
		loader:     loader,
		factory:    factory,
		cfg:        cfg,
	}
	r.hostDestination = domain.NewLazy(r.resolveHostDestination)
	r.hostToolchain = domain.NewLazy(r.resolveHostToolchain)
	r.destinationToolchain = domain.NewLazy(r.resolveDestinationToolchain)
	return r
}

// HostToolchain returns the toolchain compiling for the running machine.
// It is used to evaluate manifests.
func (r *Resolver) HostToolchain() (*domain.Toolchain, error) {
	return r.hostToolchain.Get()
}

// DestinationToolchain returns the toolchain compiling for the requested destination.
func (r *Resolver) DestinationToolchain() (*domain.Toolchain, error) {
	return r.destinationToolchain.Get()
}

func (r *Resolver) resolveHostDestination() (domain.Destination, error) {
	dest, err := r.host.HostDestination()
	if err != nil {
		return domain.Destination{}, resolutionError(err, "failed to detect host destination")
	}
	return dest, nil
}

func (r *Resolver) resolveHostToolchain() (*domain.Toolchain, error) {
	dest, err := r.hostDestination.Get()
	if err != nil {
		return nil, err
	}
	tc, err := r.factory.NewToolchain(dest)
	if err != nil {
		return nil, zerr.With(resolutionError(err, "failed to build host toolchain"), "triple", dest.Target.String())
	}
	return tc, nil
}

func (r *Resolver) resolveDestinationToolchain() (*domain.Toolchain, error) {
	host, err := r.hostDestination.Get()
	if err != nil {
		return nil, err
	}

	base, err := r.baseDestination(&host)
	if err != nil {
		return nil, err
	}

	dest, err := r.cfg.Overrides.Apply(&base, r.wasiSDK)
	if err != nil {
		return nil, err
	}

	if dest.Equal(&host) {
		return r.hostToolchain.Get()
	}

	tc, err := r.factory.NewToolchain(dest)
	if err != nil {
		return nil, zerr.With(resolutionError(err, "failed to build destination toolchain"), "triple", dest.Target.String())
	}
	return tc, nil
}

func (r *Resolver) baseDestination(host *domain.Destination) (domain.Destination, error) {
	switch {
	case r.cfg.Cross.Enabled:
		return CrossDestination(r.cfg.Cross)
	case r.cfg.DestinationFile != "":
		dest, err := r.loader.Load(r.cfg.DestinationFile)
		if err != nil {
			return domain.Destination{}, zerr.With(resolutionError(err, "failed to load destination"), "path", r.cfg.DestinationFile)
		}
		return dest, nil
	default:
		return host.Clone(), nil
	}
}

// wasiSDK derives the SDK of a WASI destination from the compiler found in its bin dir.
func (r *Resolver) wasiSDK(dest *domain.Destination) (string, error) {
	compilers, err := r.discoverer.Discover(dest.BinDir)
	if err != nil {
		return "", zerr.With(resolutionError(err, "failed to derive WASI SDK"), "bin_dir", dest.BinDir)
	}
	return domain.DefaultWASISDK(compilers.Compiler), nil
}

// resolutionError keeps errors of the resolution family as they are and files any
// other failure under it.
func resolutionError(err error, msg string) error {
	if errors.Is(err, domain.ErrToolchainResolution) {
		return zerr.Wrap(err, msg)
	}
	return zerr.Wrap(fmt.Errorf("%w: %w", domain.ErrToolchainResolution, err), msg)
}
