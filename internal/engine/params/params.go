// Package params derives the build parameters of an invocation.
package params

import (
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/zerr"
)

// JobsEnvVar overrides the default parallelism when --jobs is not given.
const JobsEnvVar = "PAX_JOBS"

// ToolchainProvider resolves the toolchain the build compiles with.
type ToolchainProvider interface {
	DestinationToolchain() (*domain.Toolchain, error)
}

// Builder derives BuildParameters once per invocation.
type Builder struct {
	toolchains ToolchainProvider
	opts       *domain.Options
	getenv     func(string) string
	numCPU     func() int
	params     *domain.Lazy[*domain.BuildParameters]
}

// Option configures a Builder.
type Option func(*Builder)

// WithGetenv replaces the environment lookup.
func WithGetenv(getenv func(string) string) Option {
	return func(b *Builder) { b.getenv = getenv }
}

// WithNumCPU replaces the CPU count used as default parallelism.
func WithNumCPU(numCPU func() int) Option {
	return func(b *Builder) { b.numCPU = numCPU }
}

// NewBuilder creates a Builder for opts.
func NewBuilder(toolchains ToolchainProvider, opts *domain.Options, options ...Option) *Builder {
	b := &Builder{
		toolchains: toolchains,
		opts:       opts,
		getenv:     os.Getenv,
		numCPU:     runtime.NumCPU,
	}
	for _, o := range options {
		o(b)
	}
	b.params = domain.NewLazy(b.build)
	return b
}

// Parameters returns the build parameters, deriving them on first use.
// A toolchain resolution failure is returned as is and no parameters are built.
func (b *Builder) Parameters() (*domain.BuildParameters, error) {
	return b.params.Get()
}

func (b *Builder) build() (*domain.BuildParameters, error) {
	tc, err := b.toolchains.DestinationToolchain()
	if err != nil {
		return nil, err
	}

	jobs, err := b.jobs()
	if err != nil {
		return nil, err
	}

	// Archs come from the options: a destination equal to the host reuses the host
	// toolchain, whose destination carries no architectures.
	triple := tc.Destination.Target
	return &domain.BuildParameters{
		DataPath:      DataPath(b.opts.EffectiveBuildPath(), triple, b.opts.BuildSystem),
		Configuration: b.opts.Configuration,
		Toolchain:     tc,
		Triple:        triple,
		Archs:         slices.Clone(b.opts.Destination.Archs),
		Flags:         b.opts.Flags,
		Jobs:          jobs,
		Features:      b.opts.Features,
		BuildSystem:   b.opts.BuildSystem,
	}, nil
}

// jobs picks --jobs, then PAX_JOBS, then the CPU count.
func (b *Builder) jobs() (int, error) {
	if b.opts.Jobs > 0 {
		return b.opts.Jobs, nil
	}

	if raw := strings.TrimSpace(b.getenv(JobsEnvVar)); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return 0, zerr.With(zerr.Wrap(domain.ErrInvalidJobs, "invalid "+JobsEnvVar), "value", raw)
		}
		return n, nil
	}

	return max(b.numCPU(), 1), nil
}

// DataPath returns the output directory of a build: <buildPath>/<triple>, or
// <buildPath>/apple for the IDE backend.
func DataPath(buildPath string, triple domain.Triple, kind domain.BuildSystemKind) string {
	if kind == domain.BuildSystemIDE {
		return filepath.Join(buildPath, domain.IDEBuildDirName)
	}
	return filepath.Join(buildPath, triple.String())
}
