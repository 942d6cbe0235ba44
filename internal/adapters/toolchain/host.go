// Package toolchain discovers compilers and builds toolchains for destinations.
package toolchain

import (
	"os"
	"path/filepath"

	"go.trai.ch/pax/internal/adapters/process"
	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/zerr"
)

// DefaultCompiler is the compiler driver looked up on PATH when PAX_CC is unset.
const DefaultCompiler = "clang"

var archNames = map[string]string{
	"amd64":   "x86_64",
	"arm64":   "aarch64",
	"386":     "i686",
	"arm":     "armv7",
	"riscv64": "riscv64",
	"ppc64le": "powerpc64le",
	"s390x":   "s390x",
	"wasm":    "wasm32",
}

// HostTriple maps a Go platform to the target triple of the native toolchain.
func HostTriple(goos, goarch string) (domain.Triple, error) {
	arch, ok := archNames[goarch]
	if !ok {
		return domain.Triple{}, zerr.With(zerr.Wrap(domain.ErrInvalidTriple, "unsupported host architecture"), "arch", goarch)
	}

	switch goos {
	case "linux":
		env := "gnu"
		if arch == "armv7" {
			env = "gnueabihf"
		}
		return domain.Triple{Arch: arch, Vendor: "unknown", OS: "linux", Environment: env}, nil
	case "darwin":
		if arch == "aarch64" {
			arch = "arm64"
		}
		return domain.Triple{Arch: arch, Vendor: "apple", OS: "macosx"}, nil
	case "windows":
		return domain.Triple{Arch: arch, Vendor: "unknown", OS: "windows", Environment: "msvc"}, nil
	case "freebsd", "openbsd", "netbsd":
		return domain.Triple{Arch: arch, Vendor: "unknown", OS: goos}, nil
	case "wasip1":
		return domain.Triple{Arch: arch, Vendor: "unknown", OS: "wasi"}, nil
	default:
		return domain.Triple{}, zerr.With(zerr.Wrap(domain.ErrInvalidTriple, "unsupported host operating system"), "os", goos)
	}
}

// HostProvider implements ports.HostDestinationProvider for the running machine.
type HostProvider struct {
	GOOS     string
	GOARCH   string
	Path     string
	Compiler string
	SDK      string
}

// HostDestination derives the host destination. The bin directory is the one holding the
// compiler found on PATH.
func (h *HostProvider) HostDestination() (domain.Destination, error) {
	triple, err := HostTriple(h.GOOS, h.GOARCH)
	if err != nil {
		return domain.Destination{}, zerr.Wrap(err, "failed to determine host triple")
	}

	compiler := h.Compiler
	if compiler == "" {
		compiler = DefaultCompiler
	}

	path := compiler
	if !filepath.IsAbs(compiler) {
		path, err = process.LookPathIn(compiler, h.Path)
		if err != nil {
			return domain.Destination{}, zerr.With(
				zerr.Wrap(domain.ErrCompilerNotFound, "no host compiler on PATH"), "compiler", compiler)
		}
	}

	// Resolve symlinks so the bin dir is the toolchain's own, not a shim directory.
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}

	return domain.Destination{
		Target: triple,
		SDK:    h.SDK,
		BinDir: filepath.Dir(path),
	}, nil
}

func sdkFromEnv() string {
	return os.Getenv("SDKROOT")
}
