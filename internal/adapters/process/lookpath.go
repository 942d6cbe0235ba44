package process

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// LookPath searches for an executable in the directories named by the PATH entry of env.
func LookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}
	return LookPathIn(file, path)
}

// LookPathIn searches for an executable in the given PATH list.
func LookPathIn(file, pathList string) (string, error) {
	if pathList == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(pathList) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(dir, file)
		if err := FindExecutable(path); err == nil {
			return path, nil
		}
	}
	return "", exec.ErrNotFound
}

// FindExecutable reports whether file is a regular file with an executable bit set.
func FindExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
