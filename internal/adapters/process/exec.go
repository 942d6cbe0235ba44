package process

import (
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/zerr"
)

// DisplayPath returns path relative to the working directory the tool was started in,
// prefixed with ./ when it is below it. Paths outside of wd are returned unchanged.
func DisplayPath(path, wd string) string {
	rel, err := filepath.Rel(wd, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	if rel == "." {
		return rel
	}
	return "." + string(filepath.Separator) + rel
}

// Exec replaces the current process with the executable at path.
// argv[0] is presented relative to the original working directory.
// On success it does not return.
func Exec(path string, args []string, originalWD string) error {
	if path == "" {
		return zerr.Wrap(domain.ErrEmptyCommand, "no arguments given")
	}
	argv := append([]string{DisplayPath(path, originalWD)}, args...)
	if err := syscall.Exec(path, argv, os.Environ()); err != nil { //nolint:gosec // executing the product that was just built
		return zerr.With(zerr.Wrap(err, "failed to execute product"), "path", path)
	}
	return nil
}
