package domain

import "go.trai.ch/zerr"

// DestinationOptions are the options selecting and overriding the build destination.
type DestinationOptions struct {
	DestinationFile    string
	CustomTriple       string
	CustomSDK          string
	CustomToolchainDir string
	Archs              []string
}

// CrossOptions request construction of a destination for a cross toolchain.
// All four paths are required once Enabled is set.
type CrossOptions struct {
	Enabled       bool
	PlatformRoot  string
	ToolchainPath string
	SpecsPath     string
	BinaryPath    string
}

// ManifestOptions control manifest evaluation and build manifest caching.
type ManifestOptions struct {
	Sandbox            bool
	CacheDir           string
	CacheBuildManifest bool
	ExtraFlags         []string
}

// Options are the global options of a tool invocation.
type Options struct {
	PackagePath   string
	BuildPath     string
	CachePath     string
	Configuration Configuration
	BuildSystem   BuildSystemKind
	// Jobs is the requested parallelism. Zero means one job per CPU.
	Jobs        int
	Flags       BuildFlags
	Features    BuildFeatures
	Destination DestinationOptions
	Cross       CrossOptions
	Manifest    ManifestOptions
	Verbose     bool
	NetrcPath   string
	EnvFile     string
	MetricsFile string
}

// Validate checks option combinations that can be rejected before any work starts.
func (o *Options) Validate() error {
	if o.Jobs < 0 {
		return zerr.With(zerr.Wrap(ErrInvalidJobs, "negative job count"), "jobs", o.Jobs)
	}
	if o.Cross.Enabled && o.Destination.DestinationFile != "" {
		return zerr.With(zerr.Wrap(ErrConflictingDestinationOptions, "conflicting destination options"),
			"destination_file", o.Destination.DestinationFile)
	}
	return nil
}

// EffectiveBuildPath returns the build path, defaulting to .build in the package root.
func (o *Options) EffectiveBuildPath() string {
	if o.BuildPath != "" {
		return o.BuildPath
	}
	return DefaultBuildPath(o.PackagePath)
}

// EffectiveCachePath returns the shared cache path, defaulting to .pax/cache in the package root.
func (o *Options) EffectiveCachePath() string {
	if o.CachePath != "" {
		return o.CachePath
	}
	return DefaultCachePath(o.PackagePath)
}

// Overrides returns the manual destination overrides requested by the options.
func (o *Options) Overrides() (DestinationOverrides, error) {
	ov := DestinationOverrides{
		Archs:        o.Destination.Archs,
		ToolchainDir: o.Destination.CustomToolchainDir,
		SDK:          o.Destination.CustomSDK,
	}
	if o.Destination.CustomTriple != "" {
		t, err := ParseTriple(o.Destination.CustomTriple)
		if err != nil {
			return DestinationOverrides{}, err
		}
		ov.Triple = t
	}
	return ov, nil
}
