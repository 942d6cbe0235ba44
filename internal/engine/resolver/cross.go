package resolver

import (
	"path/filepath"

	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/zerr"
)

// DefaultCrossTriple is the target of a cross destination when no triple override is given.
const DefaultCrossTriple = "armv7em-none-none-eabi"

// CrossDestination builds the destination of a cross toolchain from its four required paths.
// The first missing path is reported with domain.ErrMissingCrossToolchainOption.
func CrossDestination(opts domain.CrossOptions) (domain.Destination, error) {
	required := []struct {
		flag  string
		value string
	}{
		{"--cross-platform-root", opts.PlatformRoot},
		{"--cross-toolchain-path", opts.ToolchainPath},
		{"--cross-specs-path", opts.SpecsPath},
		{"--cross-binary-path", opts.BinaryPath},
	}
	for _, r := range required {
		if r.value == "" {
			err := zerr.Wrap(domain.ErrMissingCrossToolchainOption, "missing "+r.flag)
			return domain.Destination{}, zerr.With(err, "option", r.flag)
		}
	}

	includeDir := filepath.Join(opts.PlatformRoot, "usr", "include")
	return domain.Destination{
		Target:             domain.MustParseTriple(DefaultCrossTriple),
		SDK:                opts.PlatformRoot,
		BinDir:             filepath.Join(opts.ToolchainPath, "usr", "bin"),
		ExtraCFlags:        []string{"-ffunction-sections", "-fdata-sections", "-isystem", includeDir},
		ExtraCompilerFlags: []string{"-static-stdlib"},
		ExtraLinkerFlags:   []string{"--gc-sections"},
		Cross: &domain.CrossToolchain{
			Root:               opts.ToolchainPath,
			SpecsFile:          opts.SpecsPath,
			SystemIncludePaths: []string{includeDir},
			ICUPaths:           []string{filepath.Join(opts.PlatformRoot, "usr", "lib", "icu")},
			LinkerBinPath:      opts.BinaryPath,
			IsCross:            true,
		},
	}, nil
}
