package domain

import (
	"path/filepath"
	"slices"
)

// WASISysrootDirName is the directory name of the sysroot shipped next to WASI capable compilers.
const WASISysrootDirName = "wasi-sysroot"

// CrossToolchain carries the extension fields of a destination built for a cross or
// embedded toolchain.
type CrossToolchain struct {
	// Root is the toolchain root directory.
	Root string
	// SpecsFile is the linker specs file passed to the compiler driver.
	SpecsFile string
	// SystemIncludePaths are additional system header search paths.
	SystemIncludePaths []string
	// ICUPaths are the library search paths of the ICU data shipped with the platform.
	ICUPaths []string
	// LinkerBinPath is the directory containing the cross linker.
	LinkerBinPath string
	// IsCross marks destinations that target a foreign or embedded platform.
	IsCross bool
}

// Clone returns a deep copy of the cross toolchain fields.
func (c *CrossToolchain) Clone() *CrossToolchain {
	if c == nil {
		return nil
	}
	cp := *c
	cp.SystemIncludePaths = slices.Clone(c.SystemIncludePaths)
	cp.ICUPaths = slices.Clone(c.ICUPaths)
	return &cp
}

// Destination describes a compilation target.
type Destination struct {
	Target             Triple
	SDK                string
	BinDir             string
	ExtraCFlags        []string
	ExtraCXXFlags      []string
	ExtraCompilerFlags []string
	ExtraLinkerFlags   []string
	Archs              []string
	Cross              *CrossToolchain
}

// Equal reports whether two destinations describe the same target.
// Architectures and cross toolchain fields do not take part in the comparison.
func (d *Destination) Equal(other *Destination) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.Target == other.Target &&
		d.SDK == other.SDK &&
		d.BinDir == other.BinDir &&
		slices.Equal(d.ExtraCFlags, other.ExtraCFlags) &&
		slices.Equal(d.ExtraCXXFlags, other.ExtraCXXFlags) &&
		slices.Equal(d.ExtraCompilerFlags, other.ExtraCompilerFlags) &&
		slices.Equal(d.ExtraLinkerFlags, other.ExtraLinkerFlags)
}

// Clone returns a deep copy of the destination.
func (d *Destination) Clone() Destination {
	return Destination{
		Target:             d.Target,
		SDK:                d.SDK,
		BinDir:             d.BinDir,
		ExtraCFlags:        slices.Clone(d.ExtraCFlags),
		ExtraCXXFlags:      slices.Clone(d.ExtraCXXFlags),
		ExtraCompilerFlags: slices.Clone(d.ExtraCompilerFlags),
		ExtraLinkerFlags:   slices.Clone(d.ExtraLinkerFlags),
		Archs:              slices.Clone(d.Archs),
		Cross:              d.Cross.Clone(),
	}
}

// IsCross reports whether the destination was built for a cross toolchain.
func (d *Destination) IsCross() bool {
	return d.Cross != nil && d.Cross.IsCross
}

// DestinationOverrides holds the user supplied overrides applied on top of a base destination.
type DestinationOverrides struct {
	Archs        []string
	Triple       Triple
	ToolchainDir string
	SDK          string
}

// WASISDKFunc derives the default SDK for a WASI destination. It receives the destination
// with every earlier override applied.
type WASISDKFunc func(dest *Destination) (string, error)

// Apply returns a copy of dest with the overrides applied in their fixed order:
// architectures, triple, toolchain directory, then SDK. When no SDK is given and the
// resulting target is WASI, the SDK is derived through wasiSDK.
// Applying the same overrides twice yields the same destination.
func (o *DestinationOverrides) Apply(dest *Destination, wasiSDK WASISDKFunc) (Destination, error) {
	out := dest.Clone()

	out.Archs = slices.Clone(o.Archs)

	if !o.Triple.IsZero() {
		out.Target = o.Triple
	}

	if o.ToolchainDir != "" {
		out.BinDir = filepath.Join(o.ToolchainDir, "usr", "bin")
	}

	switch {
	case o.SDK != "":
		out.SDK = o.SDK
	case out.Target.IsWASI() && wasiSDK != nil:
		sdk, err := wasiSDK(&out)
		if err != nil {
			return Destination{}, err
		}
		out.SDK = sdk
	}

	return out, nil
}

// DefaultWASISDK returns the sysroot shipped with the toolchain that owns compiler.
// For /opt/tc/usr/bin/clang this is /opt/tc/usr/share/wasi-sysroot.
func DefaultWASISDK(compiler string) string {
	return filepath.Join(filepath.Dir(filepath.Dir(compiler)), "share", WASISysrootDirName)
}
