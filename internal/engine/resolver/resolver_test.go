package resolver_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/pax/internal/core/ports/mocks"
	"go.trai.ch/pax/internal/engine/resolver"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	host       *mocks.MockHostDestinationProvider
	discoverer *mocks.MockCompilerDiscoverer
	loader     *mocks.MockDestinationLoader
	factory    *mocks.MockToolchainFactory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	return &fixture{
		host:       mocks.NewMockHostDestinationProvider(ctrl),
		discoverer: mocks.NewMockCompilerDiscoverer(ctrl),
		loader:     mocks.NewMockDestinationLoader(ctrl),
		factory:    mocks.NewMockToolchainFactory(ctrl),
	}
}

func (f *fixture) resolver(cfg resolver.Config) *resolver.Resolver {
	return resolver.New(f.host, f.discoverer, f.loader, f.factory, cfg)
}

func hostDestination() domain.Destination {
	return domain.Destination{
		Target: domain.MustParseTriple("x86_64-unknown-linux-gnu"),
		BinDir: "/usr/bin",
	}
}

func TestResolver_HostEqualDestinationReusesHostToolchain(t *testing.T) {
	f := newFixture(t)
	host := hostDestination()
	hostTC := &domain.Toolchain{Destination: host}

	f.host.EXPECT().HostDestination().Return(host, nil).Times(1)
	f.factory.EXPECT().NewToolchain(gomock.Any()).Return(hostTC, nil).Times(1)

	r := f.resolver(resolver.Config{
		Overrides: domain.DestinationOverrides{Archs: []string{"x86_64", "arm64"}},
	})

	dest, err := r.DestinationToolchain()
	require.NoError(t, err)
	hostResolved, err := r.HostToolchain()
	require.NoError(t, err)

	assert.Same(t, hostResolved, dest)
}

func TestResolver_Memoization(t *testing.T) {
	f := newFixture(t)
	hostErr := errors.New("uname failed")

	f.host.EXPECT().HostDestination().Return(domain.Destination{}, hostErr).Times(1)

	r := f.resolver(resolver.Config{})

	_, first := r.DestinationToolchain()
	_, second := r.DestinationToolchain()
	_, third := r.HostToolchain()

	require.Error(t, first)
	assert.ErrorIs(t, first, domain.ErrToolchainResolution)
	assert.ErrorIs(t, first, hostErr)
	assert.Equal(t, first, second)
	assert.ErrorIs(t, third, hostErr)
}

func TestResolver_DestinationToolchainBuiltOnce(t *testing.T) {
	f := newFixture(t)
	tc := &domain.Toolchain{}

	f.host.EXPECT().HostDestination().Return(hostDestination(), nil)
	f.factory.EXPECT().NewToolchain(gomock.Any()).Return(tc, nil).Times(1)

	r := f.resolver(resolver.Config{
		Overrides: domain.DestinationOverrides{SDK: "/sdk"},
	})

	first, err := r.DestinationToolchain()
	require.NoError(t, err)
	second, err := r.DestinationToolchain()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func completeCross() domain.CrossOptions {
	return domain.CrossOptions{
		Enabled:       true,
		PlatformRoot:  "/platform",
		ToolchainPath: "/toolchain",
		SpecsPath:     "/toolchain/specs",
		BinaryPath:    "/toolchain/ld/bin",
	}
}

func TestResolver_MissingCrossOption(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.CrossOptions)
		option string
	}{
		{"platform root", func(o *domain.CrossOptions) { o.PlatformRoot = "" }, "--cross-platform-root"},
		{"toolchain path", func(o *domain.CrossOptions) { o.ToolchainPath = "" }, "--cross-toolchain-path"},
		{"specs path", func(o *domain.CrossOptions) { o.SpecsPath = "" }, "--cross-specs-path"},
		{"binary path", func(o *domain.CrossOptions) { o.BinaryPath = "" }, "--cross-binary-path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.host.EXPECT().HostDestination().Return(hostDestination(), nil)

			opts := completeCross()
			tt.mutate(&opts)

			_, err := f.resolver(resolver.Config{Cross: opts}).DestinationToolchain()
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrMissingCrossToolchainOption)
			assert.ErrorIs(t, err, domain.ErrConfiguration)
			assert.Contains(t, err.Error(), tt.option)
		})
	}
}

func TestResolver_CrossDestination(t *testing.T) {
	f := newFixture(t)
	f.host.EXPECT().HostDestination().Return(hostDestination(), nil)

	var got domain.Destination
	f.factory.EXPECT().NewToolchain(gomock.Any()).DoAndReturn(func(dest domain.Destination) (*domain.Toolchain, error) {
		got = dest
		return &domain.Toolchain{Destination: dest}, nil
	})

	r := f.resolver(resolver.Config{
		Cross:     completeCross(),
		Overrides: domain.DestinationOverrides{Triple: domain.MustParseTriple("thumbv7em-none-none-eabihf")},
	})
	_, err := r.DestinationToolchain()
	require.NoError(t, err)

	assert.True(t, got.IsCross())
	assert.Equal(t, "thumbv7em-none-none-eabihf", got.Target.String())
	assert.Equal(t, "/toolchain/usr/bin", got.BinDir)
	assert.Equal(t, "/platform", got.SDK)
	assert.Equal(t, "/toolchain/specs", got.Cross.SpecsFile)
	assert.Equal(t, "/toolchain/ld/bin", got.Cross.LinkerBinPath)
	assert.Equal(t, []string{"/platform/usr/lib/icu"}, got.Cross.ICUPaths)
}

func TestCrossDestination_DefaultTriple(t *testing.T) {
	dest, err := resolver.CrossDestination(completeCross())
	require.NoError(t, err)
	assert.Equal(t, resolver.DefaultCrossTriple, dest.Target.String())
}

func TestResolver_DestinationFile(t *testing.T) {
	f := newFixture(t)
	fromFile := domain.Destination{
		Target: domain.MustParseTriple("aarch64-unknown-linux-gnu"),
		SDK:    "/sysroots/aarch64",
		BinDir: "/opt/cross/usr/bin",
	}

	f.host.EXPECT().HostDestination().Return(hostDestination(), nil)
	f.loader.EXPECT().Load("dest.yaml").Return(fromFile, nil)
	f.factory.EXPECT().NewToolchain(gomock.Any()).DoAndReturn(func(dest domain.Destination) (*domain.Toolchain, error) {
		assert.True(t, fromFile.Equal(&dest))
		return &domain.Toolchain{Destination: dest}, nil
	})

	tc, err := f.resolver(resolver.Config{DestinationFile: "dest.yaml"}).DestinationToolchain()
	require.NoError(t, err)
	assert.Equal(t, "aarch64-unknown-linux-gnu", tc.Destination.Target.String())
}

func TestResolver_DestinationFileInvalid(t *testing.T) {
	f := newFixture(t)
	f.host.EXPECT().HostDestination().Return(hostDestination(), nil)
	f.loader.EXPECT().Load("dest.yaml").Return(domain.Destination{}, domain.ErrInvalidDestinationFile)

	_, err := f.resolver(resolver.Config{DestinationFile: "dest.yaml"}).DestinationToolchain()
	assert.ErrorIs(t, err, domain.ErrInvalidDestinationFile)
	assert.ErrorIs(t, err, domain.ErrToolchainResolution)
}

func TestResolver_WASISDKDerivedFromCompiler(t *testing.T) {
	f := newFixture(t)
	f.host.EXPECT().HostDestination().Return(hostDestination(), nil)
	f.discoverer.EXPECT().Discover("/opt/wasi/usr/bin").
		Return(domain.CompilerPaths{Compiler: "/opt/wasi/usr/bin/clang"}, nil)
	f.factory.EXPECT().NewToolchain(gomock.Any()).DoAndReturn(func(dest domain.Destination) (*domain.Toolchain, error) {
		return &domain.Toolchain{Destination: dest}, nil
	})

	r := f.resolver(resolver.Config{
		Overrides: domain.DestinationOverrides{
			Triple:       domain.MustParseTriple("wasm32-unknown-wasi"),
			ToolchainDir: "/opt/wasi",
		},
	})
	tc, err := r.DestinationToolchain()
	require.NoError(t, err)
	assert.Equal(t, "/opt/wasi/usr/share/wasi-sysroot", tc.Destination.SDK)
}

func TestResolver_ExplicitSDKWinsOverWASIDefault(t *testing.T) {
	f := newFixture(t)
	f.host.EXPECT().HostDestination().Return(hostDestination(), nil)
	f.factory.EXPECT().NewToolchain(gomock.Any()).DoAndReturn(func(dest domain.Destination) (*domain.Toolchain, error) {
		return &domain.Toolchain{Destination: dest}, nil
	})

	r := f.resolver(resolver.Config{
		Overrides: domain.DestinationOverrides{
			Triple: domain.MustParseTriple("wasm32-unknown-wasi"),
			SDK:    "/custom/sysroot",
		},
	})
	tc, err := r.DestinationToolchain()
	require.NoError(t, err)
	assert.Equal(t, "/custom/sysroot", tc.Destination.SDK)
}

func TestResolver_WASIDiscoveryFails(t *testing.T) {
	f := newFixture(t)
	f.host.EXPECT().HostDestination().Return(hostDestination(), nil)
	f.discoverer.EXPECT().Discover("/usr/bin").Return(domain.CompilerPaths{}, domain.ErrCompilerNotFound)

	r := f.resolver(resolver.Config{
		Overrides: domain.DestinationOverrides{Triple: domain.MustParseTriple("wasm32-unknown-wasi")},
	})
	_, err := r.DestinationToolchain()
	assert.ErrorIs(t, err, domain.ErrCompilerNotFound)
	assert.ErrorIs(t, err, domain.ErrToolchainResolution)
}

func TestResolver_ToolchainConstructionFails(t *testing.T) {
	f := newFixture(t)
	versionErr := errors.New("exit status 1")

	f.host.EXPECT().HostDestination().Return(hostDestination(), nil)
	f.factory.EXPECT().NewToolchain(gomock.Any()).Return(nil, versionErr)

	r := f.resolver(resolver.Config{
		Overrides: domain.DestinationOverrides{Triple: domain.MustParseTriple("aarch64-unknown-linux-gnu")},
	})
	_, err := r.DestinationToolchain()
	assert.ErrorIs(t, err, domain.ErrToolchainResolution)
	assert.ErrorIs(t, err, versionErr)
	assert.Contains(t, err.Error(), "failed to build destination toolchain")
}
