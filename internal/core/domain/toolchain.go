package domain

import "path/filepath"

// CompilerPaths are the tool binaries discovered in a toolchain bin directory.
type CompilerPaths struct {
	// Compiler is the primary compiler driver.
	Compiler string
	// CCompiler is the C/C++ compiler used for mixed-language targets.
	CCompiler string
	// Archiver creates static libraries.
	Archiver string
}

// Toolchain is a compiler toolchain bound to a destination.
type Toolchain struct {
	Destination Destination
	Compilers   CompilerPaths
	// Version is the version line reported by the compiler, if any.
	Version string
}

// BinDir returns the directory holding the toolchain binaries.
func (t *Toolchain) BinDir() string {
	return t.Destination.BinDir
}

// ManifestResourcePaths returns the directories searched for manifest support files.
func (t *Toolchain) ManifestResourcePaths() []string {
	usr := filepath.Dir(t.Destination.BinDir)
	return []string{
		filepath.Join(usr, "lib", "pax", "manifest"),
		filepath.Join(usr, "share", "pax"),
	}
}

// LibraryPaths returns the library search directories implied by the destination.
func (t *Toolchain) LibraryPaths() []string {
	usr := filepath.Dir(t.Destination.BinDir)
	paths := []string{filepath.Join(usr, "lib")}
	if t.Destination.SDK != "" {
		paths = append(paths, filepath.Join(t.Destination.SDK, "usr", "lib"))
	}
	if c := t.Destination.Cross; c != nil {
		paths = append(paths, c.ICUPaths...)
	}
	return paths
}
