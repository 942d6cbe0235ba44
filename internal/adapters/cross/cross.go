// Package cross builds the link and packaging command lines of cross applications.
package cross

import (
	"path/filepath"

	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// LinkerName is the linker shipped in the cross linker bin directory.
	LinkerName = "ld.gold"
	// ConverterName is the packaging tool shipped in the cross toolchain root.
	ConverterName = "pax-pack"
	// MapFileExtension is appended to the linked binary to name its linker map.
	MapFileExtension = ".map"
)

// Paths are the cross toolchain locations a link or packaging step needs.
type Paths struct {
	MapFile      string
	Linker       string
	ToolsDir     string
	SpecsFile    string
	Converter    string
	LibraryPaths []string
}

// PathsFor derives the link paths of the binary at output from the cross toolchain fields.
func PathsFor(tc *domain.CrossToolchain, output string) Paths {
	return Paths{
		MapFile:      output + MapFileExtension,
		Linker:       filepath.Join(tc.LinkerBinPath, LinkerName),
		ToolsDir:     tc.LinkerBinPath,
		SpecsFile:    tc.SpecsFile,
		Converter:    filepath.Join(tc.Root, "bin", ConverterName),
		LibraryPaths: tc.ICUPaths,
	}
}

// LinkArguments returns the compiler driver flags that link a cross application.
func LinkArguments(kind domain.ProductKind, p Paths) ([]string, error) {
	if kind != domain.ProductCrossApplication {
		return nil, unsupported(kind)
	}

	args := []string{
		"-Xlinker", "-Map=" + p.MapFile,
		"-static-executable",
		"-use-ld=" + p.Linker,
		"-tools-directory", p.ToolsDir,
	}
	if p.SpecsFile != "" {
		args = append(args, "-Xclang-linker", "-specs="+p.SpecsFile)
	}
	for _, dir := range p.LibraryPaths {
		args = append(args, "-L"+dir)
	}
	return args, nil
}

// PackagingCommand returns the command converting the linked binary input into the
// deployable image output.
func PackagingCommand(kind domain.ProductKind, p Paths, input, output string) ([]string, error) {
	if kind != domain.ProductCrossApplication {
		return nil, unsupported(kind)
	}
	return []string{p.Converter, "pack", "--map", p.MapFile, "--output", output, input}, nil
}

func unsupported(kind domain.ProductKind) error {
	err := zerr.Wrap(domain.ErrUnsupportedProductKind, "only cross applications are linked for a cross toolchain")
	return zerr.With(err, "kind", kind.String())
}
