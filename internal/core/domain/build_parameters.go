package domain

import (
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

// Configuration is the build configuration.
type Configuration int

const (
	// ConfigurationDebug builds without optimization and with assertions.
	ConfigurationDebug Configuration = iota
	// ConfigurationRelease builds with optimization.
	ConfigurationRelease
)

// String returns the lowercase configuration name.
func (c Configuration) String() string {
	if c == ConfigurationRelease {
		return "release"
	}
	return "debug"
}

// ParseConfiguration parses a configuration name.
func ParseConfiguration(s string) (Configuration, error) {
	switch strings.ToLower(s) {
	case "debug", "":
		return ConfigurationDebug, nil
	case "release":
		return ConfigurationRelease, nil
	default:
		return 0, zerr.With(zerr.Wrap(ErrInvalidConfiguration, "unknown configuration"), "configuration", s)
	}
}

// BuildSystemKind selects the build backend.
type BuildSystemKind int

const (
	// BuildSystemNative is the incremental native build engine.
	BuildSystemNative BuildSystemKind = iota
	// BuildSystemIDE generates an IDE project instead of building.
	BuildSystemIDE
)

// String returns the flag spelling of the backend.
func (k BuildSystemKind) String() string {
	if k == BuildSystemIDE {
		return "ide"
	}
	return "native"
}

// ParseBuildSystemKind parses the flag spelling of a backend.
func ParseBuildSystemKind(s string) (BuildSystemKind, error) {
	switch strings.ToLower(s) {
	case "native", "":
		return BuildSystemNative, nil
	case "ide", "xcode":
		return BuildSystemIDE, nil
	default:
		return 0, zerr.With(zerr.Wrap(ErrInvalidBuildSystem, "unknown build system"), "build_system", s)
	}
}

// Sanitizer is a runtime sanitizer enabled for a build.
type Sanitizer string

const (
	// SanitizerAddress enables the address sanitizer.
	SanitizerAddress Sanitizer = "address"
	// SanitizerThread enables the thread sanitizer.
	SanitizerThread Sanitizer = "thread"
	// SanitizerUndefined enables the undefined behavior sanitizer.
	SanitizerUndefined Sanitizer = "undefined"
	// SanitizerScudo enables the scudo hardened allocator.
	SanitizerScudo Sanitizer = "scudo"
)

// ParseSanitizer parses a sanitizer name.
func ParseSanitizer(s string) (Sanitizer, error) {
	switch san := Sanitizer(strings.ToLower(s)); san {
	case SanitizerAddress, SanitizerThread, SanitizerUndefined, SanitizerScudo:
		return san, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrInvalidSanitizer, "unknown sanitizer"), "sanitizer", s)
	}
}

// CompilerFlag returns the driver flag enabling the sanitizer.
func (s Sanitizer) CompilerFlag() string {
	return "-fsanitize=" + string(s)
}

// IndexStoreMode controls whether the compiler emits index data.
type IndexStoreMode int

const (
	// IndexStoreAuto emits index data for debug builds only.
	IndexStoreAuto IndexStoreMode = iota
	// IndexStoreOn always emits index data.
	IndexStoreOn
	// IndexStoreOff never emits index data.
	IndexStoreOff
)

// String returns the flag spelling of the mode.
func (m IndexStoreMode) String() string {
	switch m {
	case IndexStoreOn:
		return "on"
	case IndexStoreOff:
		return "off"
	default:
		return "auto"
	}
}

// ParseIndexStoreMode parses the flag spelling of an index store mode.
func ParseIndexStoreMode(s string) (IndexStoreMode, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return IndexStoreAuto, nil
	case "on":
		return IndexStoreOn, nil
	case "off":
		return IndexStoreOff, nil
	default:
		return 0, zerr.With(zerr.Wrap(ErrInvalidIndexStoreMode, "unknown index store mode"), "mode", s)
	}
}

// BuildFlags are the user supplied flags forwarded to the tools.
type BuildFlags struct {
	CFlags        []string
	CXXFlags      []string
	CompilerFlags []string
	LinkerFlags   []string
}

// BuildFeatures are the feature toggles of a build.
type BuildFeatures struct {
	StaticStdlib          bool
	Sanitizers            []Sanitizer
	CodeCoverage          bool
	IndexStore            IndexStoreMode
	ParseableInterfaces   bool
	ExplicitModuleBuild   bool
	TestEntryPointProduct bool
	TestDiscoveryProduct  bool
}

// BuildParameters is the immutable configuration of a single build.
type BuildParameters struct {
	// DataPath is the triple (or backend) specific output directory.
	DataPath      string
	Configuration Configuration
	Toolchain     *Toolchain
	Triple        Triple
	Archs         []string
	Flags         BuildFlags
	Jobs          int
	Features      BuildFeatures
	BuildSystem   BuildSystemKind
}

// ProductsPath returns the directory final products are written to.
func (p *BuildParameters) ProductsPath() string {
	return filepath.Join(p.DataPath, p.Configuration.String())
}

// EmitIndexStore reports whether index data is emitted for these parameters.
func (p *BuildParameters) EmitIndexStore() bool {
	switch p.Features.IndexStore {
	case IndexStoreOn:
		return true
	case IndexStoreOff:
		return false
	default:
		return p.Configuration == ConfigurationDebug
	}
}

// SubsetKind selects what part of the package graph a build covers.
type SubsetKind int

const (
	// SubsetAllExcludingTests builds every product except tests.
	SubsetAllExcludingTests SubsetKind = iota
	// SubsetAllIncludingTests builds every product and test.
	SubsetAllIncludingTests
	// SubsetProduct builds a single named product.
	SubsetProduct
	// SubsetTarget builds a single named target.
	SubsetTarget
)

// BuildSubset is the part of the package graph requested for a build.
type BuildSubset struct {
	Kind SubsetKind
	Name string
}

// String returns a human readable description of the subset.
func (s BuildSubset) String() string {
	switch s.Kind {
	case SubsetAllIncludingTests:
		return "all including tests"
	case SubsetProduct:
		return "product '" + s.Name + "'"
	case SubsetTarget:
		return "target '" + s.Name + "'"
	default:
		return "all"
	}
}
