package commands

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/pax/internal/core/ports"
	"go.trai.ch/zerr"
)

// Environment variables consulted for flags that were not given on the command line.
const (
	CachePathEnvVar     = "PAX_CACHE_DIR"
	ManifestCacheEnvVar = "PAX_MANIFEST_CACHE"
	NetrcEnvVar         = "NETRC"
)

// globalFlags holds the raw values of the persistent flags.
type globalFlags struct {
	packagePath   string
	scratchPath   string
	buildPath     string
	cachePath     string
	configuration string
	buildSystem   string
	jobs          int

	sanitizers          []string
	staticStdlib        bool
	codeCoverage        bool
	indexStore          string
	parseableInterfaces bool
	explicitModuleBuild bool

	cFlags        []string
	cxxFlags      []string
	compilerFlags []string
	linkerFlags   []string

	destination string
	triple      string
	sdk         string
	toolchain   string
	archs       []string

	cross              bool
	crossPlatformRoot  string
	crossToolchainPath string
	crossSpecsPath     string
	crossBinaryPath    string

	disableSandbox     bool
	manifestCache      string
	manifestFlags      []string
	cacheBuildManifest bool

	netrcFile   string
	envFile     string
	metricsFile string
	verbose     bool
	logJSON     bool
}

func newGlobalFlags() *globalFlags {
	return &globalFlags{}
}

func (g *globalFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&g.packagePath, "package-path", ".", "Change working directory before any other operation")
	flags.StringVar(&g.scratchPath, "scratch-path", "", "Directory for build output (default: <package-path>/.build)")
	flags.StringVar(&g.buildPath, "build-path", "", "Deprecated alias of --scratch-path")
	_ = flags.MarkHidden("build-path")
	flags.StringVar(&g.cachePath, "cache-path", "", "Directory of the shared dependency cache (env: "+CachePathEnvVar+")")
	flags.StringVarP(&g.configuration, "configuration", "c", "debug", "Build configuration: debug or release")
	flags.StringVar(&g.buildSystem, "build-system", "native", "Build backend: native or ide")
	flags.IntVarP(&g.jobs, "jobs", "j", 0, "Number of parallel jobs (default: number of CPUs)")

	flags.StringSliceVar(&g.sanitizers, "sanitize", nil, "Runtime sanitizers: address, thread, undefined, scudo")
	flags.BoolVar(&g.staticStdlib, "static-stdlib", false, "Link the standard library statically")
	flags.BoolVar(&g.codeCoverage, "enable-code-coverage", false, "Instrument the build for code coverage")
	flags.StringVar(&g.indexStore, "index-store", "auto", "Emit index data: auto, on or off")
	flags.BoolVar(&g.parseableInterfaces, "enable-parseable-module-interfaces", false, "Emit parseable module interfaces")
	flags.BoolVar(&g.explicitModuleBuild, "explicit-module-build", false, "Build modules explicitly")

	flags.StringArrayVar(&g.cFlags, "Xcc", nil, "Pass flag to all C compiler invocations")
	flags.StringArrayVar(&g.cxxFlags, "Xcxx", nil, "Pass flag to all C++ compiler invocations")
	flags.StringArrayVar(&g.compilerFlags, "Xcompiler", nil, "Pass flag to all compiler invocations")
	flags.StringArrayVar(&g.linkerFlags, "Xlinker", nil, "Pass flag to all linker invocations")

	flags.StringVar(&g.destination, "destination", "", "Destination description file")
	flags.StringVar(&g.triple, "triple", "", "Override the target triple")
	flags.StringVar(&g.sdk, "sdk", "", "Override the compilation SDK")
	flags.StringVar(&g.toolchain, "toolchain", "", "Override the toolchain directory")
	flags.StringSliceVar(&g.archs, "arch", nil, "Build for the given architectures")

	flags.BoolVar(&g.cross, "cross-toolchain", false, "Construct the destination for a cross toolchain")
	flags.StringVar(&g.crossPlatformRoot, "cross-platform-root", "", "Root of the cross platform")
	flags.StringVar(&g.crossToolchainPath, "cross-toolchain-path", "", "Path of the cross toolchain")
	flags.StringVar(&g.crossSpecsPath, "cross-specs-path", "", "Linker specs file of the cross toolchain")
	flags.StringVar(&g.crossBinaryPath, "cross-binary-path", "", "Directory of the cross linker")

	flags.BoolVar(&g.disableSandbox, "disable-sandbox", false, "Evaluate manifests without the sandbox")
	flags.StringVar(&g.manifestCache, "manifest-cache", "", "Cache directory for evaluated manifests (env: "+ManifestCacheEnvVar+")")
	flags.StringArrayVar(&g.manifestFlags, "Xmanifest", nil, "Pass flag to manifest evaluation")
	flags.BoolVar(&g.cacheBuildManifest, "cache-build-manifest", false, "Reuse the build manifest of the previous build when possible")

	flags.StringVar(&g.netrcFile, "netrc-file", "", "Credentials file for downloads (env: "+NetrcEnvVar+")")
	flags.StringVar(&g.envFile, "env-file", "", "Environment file (default: <package-path>/"+domain.EnvFileName+")")
	flags.StringVar(&g.metricsFile, "metrics-file", "", "Write invocation metrics to this file")
	flags.BoolVarP(&g.verbose, "verbose", "v", false, "Enable debug output")
	flags.BoolVar(&g.logJSON, "log-json", false, "Log in JSON format")
}

// options converts the parsed flags to domain options. Flags that were not given fall back
// to the environment file, then to the process environment. The returned lookup follows
// the same precedence for variables read later on.
func (g *globalFlags) options(flags *pflag.FlagSet, logger ports.Logger) (*domain.Options, func(string) string, error) {
	packagePath, err := filepath.Abs(g.packagePath)
	if err != nil {
		return nil, nil, zerr.With(zerr.Wrap(err, "invalid package path"), "path", g.packagePath)
	}

	getenv, err := loadEnvFile(g.envFile, packagePath)
	if err != nil {
		return nil, nil, err
	}
	fromEnv := func(name, value, key string) string {
		if flags.Changed(name) {
			return value
		}
		return getenv(key)
	}

	buildPath := g.scratchPath
	if flags.Changed("build-path") {
		logger.Warn("'--build-path' option is deprecated; use '--scratch-path' instead")
		if !flags.Changed("scratch-path") {
			buildPath = g.buildPath
		}
	}

	opts := &domain.Options{
		PackagePath: packagePath,
		BuildPath:   absOrEmpty(buildPath),
		CachePath:   absOrEmpty(fromEnv("cache-path", g.cachePath, CachePathEnvVar)),
		Jobs:        g.jobs,
		Flags: domain.BuildFlags{
			CFlags:        g.cFlags,
			CXXFlags:      g.cxxFlags,
			CompilerFlags: g.compilerFlags,
			LinkerFlags:   g.linkerFlags,
		},
		Features: domain.BuildFeatures{
			StaticStdlib:        g.staticStdlib,
			CodeCoverage:        g.codeCoverage,
			ParseableInterfaces: g.parseableInterfaces,
			ExplicitModuleBuild: g.explicitModuleBuild,
		},
		Destination: domain.DestinationOptions{
			DestinationFile:    absOrEmpty(g.destination),
			CustomTriple:       g.triple,
			CustomSDK:          absOrEmpty(g.sdk),
			CustomToolchainDir: absOrEmpty(g.toolchain),
			Archs:              g.archs,
		},
		Cross: domain.CrossOptions{
			Enabled:       g.cross,
			PlatformRoot:  absOrEmpty(g.crossPlatformRoot),
			ToolchainPath: absOrEmpty(g.crossToolchainPath),
			SpecsPath:     absOrEmpty(g.crossSpecsPath),
			BinaryPath:    absOrEmpty(g.crossBinaryPath),
		},
		Manifest: domain.ManifestOptions{
			Sandbox:            !g.disableSandbox,
			CacheDir:           absOrEmpty(fromEnv("manifest-cache", g.manifestCache, ManifestCacheEnvVar)),
			CacheBuildManifest: g.cacheBuildManifest,
			ExtraFlags:         g.manifestFlags,
		},
		Verbose:     g.verbose,
		NetrcPath:   fromEnv("netrc-file", g.netrcFile, NetrcEnvVar),
		EnvFile:     g.envFile,
		MetricsFile: absOrEmpty(g.metricsFile),
	}

	if opts.Configuration, err = domain.ParseConfiguration(g.configuration); err != nil {
		return nil, nil, err
	}
	if opts.BuildSystem, err = domain.ParseBuildSystemKind(g.buildSystem); err != nil {
		return nil, nil, err
	}
	if opts.Features.IndexStore, err = domain.ParseIndexStoreMode(g.indexStore); err != nil {
		return nil, nil, err
	}
	for _, s := range g.sanitizers {
		san, err := domain.ParseSanitizer(s)
		if err != nil {
			return nil, nil, err
		}
		opts.Features.Sanitizers = append(opts.Features.Sanitizers, san)
	}
	return opts, getenv, nil
}

// loadEnvFile reads the environment file and returns a lookup preferring its entries over
// the process environment. A missing default file is not an error; a missing explicit
// one is.
func loadEnvFile(path, packagePath string) (func(string) string, error) {
	explicit := path != ""
	if !explicit {
		path = filepath.Join(packagePath, domain.EnvFileName)
	}

	env, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return os.Getenv, nil
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrEnvFileReadFailed, err.Error()), "path", path)
	}
	return func(key string) string {
		if v, ok := env[key]; ok {
			return v
		}
		return os.Getenv(key)
	}, nil
}

func absOrEmpty(path string) string {
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
