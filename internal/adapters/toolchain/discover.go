package toolchain

import (
	"path/filepath"

	"go.trai.ch/pax/internal/adapters/process"
	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/zerr"
)

// Discoverer implements ports.CompilerDiscoverer by probing candidate names in a bin directory.
type Discoverer struct {
	Compilers  []string
	CCompilers []string
	Archivers  []string
}

// NewDiscoverer creates a Discoverer looking for compiler first, then the usual LLVM and
// system tool names.
func NewDiscoverer(compiler string) *Discoverer {
	if compiler == "" {
		compiler = DefaultCompiler
	}
	return &Discoverer{
		Compilers:  []string{compiler},
		CCompilers: []string{"clang", "cc"},
		Archivers:  []string{"llvm-ar", "ar"},
	}
}

// Discover returns the tools found in binDir. A missing C compiler falls back to the
// primary compiler. A missing archiver is left empty.
func (d *Discoverer) Discover(binDir string) (domain.CompilerPaths, error) {
	compiler := findFirst(binDir, d.Compilers)
	if compiler == "" {
		err := zerr.Wrap(domain.ErrCompilerNotFound, "no compiler in toolchain directory")
		return domain.CompilerPaths{}, zerr.With(err, "bin_dir", binDir)
	}

	cc := findFirst(binDir, d.CCompilers)
	if cc == "" {
		cc = compiler
	}

	return domain.CompilerPaths{
		Compiler:  compiler,
		CCompiler: cc,
		Archiver:  findFirst(binDir, d.Archivers),
	}, nil
}

func findFirst(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := process.FindExecutable(path); err == nil {
			return path
		}
	}
	return ""
}
