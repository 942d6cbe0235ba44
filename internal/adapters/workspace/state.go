package workspace

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// StateVersion is the schema version of the workspace state file.
const StateVersion = 1

// LoadState reads the workspace state at path. The boolean reports whether the file existed.
func LoadState(path string) (*domain.WorkspaceState, bool, error) {
	//nolint:gosec // path is derived from the package root
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &domain.WorkspaceState{Version: StateVersion}, false, nil
		}
		return nil, false, zerr.With(zerr.Wrap(domain.ErrWorkspaceStateReadFailed, err.Error()), "path", path)
	}

	var state domain.WorkspaceState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, false, zerr.With(zerr.Wrap(domain.ErrWorkspaceStateReadFailed, err.Error()), "path", path)
	}
	if state.Version != StateVersion {
		err := zerr.With(zerr.Wrap(domain.ErrWorkspaceStateReadFailed, "unsupported workspace state version"), "path", path)
		return nil, false, zerr.With(err, "version", state.Version)
	}
	return &state, true, nil
}

// SaveState writes the workspace state to path atomically.
func SaveState(path string, state *domain.WorkspaceState) error {
	state.Version = StateVersion
	data, err := yaml.Marshal(state)
	if err != nil {
		return zerr.Wrap(domain.ErrWorkspaceStateWriteFailed, err.Error())
	}

	if err := atomicWriteFile(path, data); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrWorkspaceStateWriteFailed, err.Error()), "path", path)
	}
	return nil
}

// atomicWriteFile writes data to a temp file next to path and renames it into place.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, filepath.Base(path)+"-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
