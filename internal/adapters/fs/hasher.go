package fs

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/pax/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher provides hashing functionality for tasks and files.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// ComputeInputHash computes a single hash representing the task's command line,
// environment and input files.
func (h *Hasher) ComputeInputHash(task *domain.Task, env map[string]string, root string) (string, error) {
	hasher := xxhash.New()

	hashTaskDefinition(task, hasher)
	hashEnvironment(env, hasher)

	if err := h.hashInputFiles(task, root, hasher); err != nil {
		return "", err
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

func writeField(hasher *xxhash.Digest, s string) {
	_, _ = hasher.WriteString(s)
	_, _ = hasher.Write([]byte{0})
}

func endSection(hasher *xxhash.Digest) {
	_, _ = hasher.Write([]byte{0})
}

// hashTaskDefinition hashes everything about the task that changes what it produces.
func hashTaskDefinition(task *domain.Task, hasher *xxhash.Digest) {
	writeField(hasher, task.Name.String())
	writeField(hasher, string(task.Kind))
	writeField(hasher, task.WorkingDir.String())

	for _, arg := range task.Command {
		writeField(hasher, arg)
	}
	endSection(hasher)

	for _, input := range task.Inputs {
		writeField(hasher, input.String())
	}
	endSection(hasher)

	for _, output := range task.Outputs {
		writeField(hasher, output.String())
	}
	endSection(hasher)

	for _, dep := range task.Dependencies {
		writeField(hasher, dep.String())
	}
	endSection(hasher)
}

// hashEnvironment hashes environment variables in a deterministic order.
func hashEnvironment(env map[string]string, hasher *xxhash.Digest) {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		writeField(hasher, k+"="+env[k])
	}
	endSection(hasher)
}

func (h *Hasher) hashInputFiles(task *domain.Task, root string, hasher *xxhash.Digest) error {
	for _, input := range task.Inputs {
		path := input.String()
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		if err := h.hashInputPath(path, hasher); err != nil {
			return err
		}
	}
	return nil
}

// hashInputPath hashes a single input path, attempting glob resolution if the path doesn't exist.
func (h *Hasher) hashInputPath(path string, hasher *xxhash.Digest) error {
	if _, err := os.Stat(path); err != nil {
		return h.tryGlobAndHash(path, hasher)
	}
	return h.hashPath(path, hasher)
}

func (h *Hasher) tryGlobAndHash(path string, hasher *xxhash.Digest) error {
	matches, err := filepath.Glob(path)
	if err != nil || len(matches) == 0 {
		return zerr.With(zerr.Wrap(domain.ErrInputNotFound, "input missing"), "path", path)
	}
	for _, match := range matches {
		if err := h.hashPath(match, hasher); err != nil {
			return err
		}
	}
	return nil
}

func (h *Hasher) hashPath(path string, hasher io.Writer) error {
	info, err := os.Stat(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat path"), "path", path)
	}

	if !info.IsDir() {
		return h.hashFile(path, hasher)
	}
	for filePath := range h.walker.WalkFiles(path, nil) {
		if err := h.hashFile(filePath, hasher); err != nil {
			return err
		}
	}
	return nil
}

func (h *Hasher) hashFile(path string, hasher io.Writer) error {
	_, _ = hasher.Write([]byte(path))
	_, _ = hasher.Write([]byte{0})

	hash, err := h.ComputeFileHash(path)
	if err != nil {
		return err
	}

	if err := binary.Write(hasher, binary.LittleEndian, hash); err != nil {
		return zerr.Wrap(err, "failed to write hash to digest")
	}
	return nil
}

// ComputeOutputHash computes the hash of the output files.
// A missing output fails with an error matching fs.ErrNotExist.
func (h *Hasher) ComputeOutputHash(outputs []string, root string) (string, error) {
	sorted := slices.Clone(outputs)
	slices.Sort(sorted)

	hasher := xxhash.New()

	for _, output := range sorted {
		path := output
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, output)
		}

		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, iofs.ErrNotExist) {
				return "", zerr.With(zerr.Wrap(iofs.ErrNotExist, "output file missing"), "path", path)
			}
			return "", zerr.With(zerr.Wrap(err, "failed to stat output file"), "path", path)
		}

		hash, err := h.ComputeFileHash(path)
		if err != nil {
			return "", err
		}
		if err := binary.Write(hasher, binary.LittleEndian, hash); err != nil {
			return "", zerr.Wrap(err, "failed to write hash to digest")
		}
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}
