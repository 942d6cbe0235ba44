package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pax/internal/adapters/fs"
	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/zerr"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestWalker_WalkFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".git", "config"), "git config")
	writeFile(t, filepath.Join(root, ".pax", "workspace-state.yaml"), "version: 1")
	writeFile(t, filepath.Join(root, ".build", "debug", "app"), "binary")
	writeFile(t, filepath.Join(root, "ignored", "file"), "ignored")
	writeFile(t, filepath.Join(root, "Sources", "App", "main.c"), "int main(void) { return 0; }")
	writeFile(t, filepath.Join(root, "README.md"), "# Readme")

	files := slices.Collect(fs.NewWalker().WalkFiles(root, []string{"ignored"}))

	assert.Equal(t, []string{"README.md", "Sources/App/main.c"}, relPaths(t, root, files))
}

func TestWalker_WalkExtensions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.c"), "")
	writeFile(t, filepath.Join(root, "b.h"), "")
	writeFile(t, filepath.Join(root, "nested", "c.swift"), "")
	writeFile(t, filepath.Join(root, "notes.txt"), "")

	files := slices.Collect(fs.NewWalker().WalkExtensions(root, []string{".c", ".swift"}))

	assert.Equal(t, []string{"a.c", "nested/c.swift"}, relPaths(t, root, files))
}

func TestWalker_StopsEarly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a"), "")
	writeFile(t, filepath.Join(root, "b"), "")

	var seen int
	for range fs.NewWalker().WalkFiles(root, nil) {
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}

func TestHasher_ComputeFileHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	writeFile(t, path, "hello world")

	hasher := fs.NewHasher(fs.NewWalker())

	hash1, err := hasher.ComputeFileHash(path)
	require.NoError(t, err)
	assert.NotZero(t, hash1)

	hash2, err := hasher.ComputeFileHash(path)
	require.NoError(t, err)
	assert.Equal(t, hash1, hash2)
}

func TestHasher_ComputeInputHash(t *testing.T) {
	root := t.TempDir()
	input := filepath.Join(root, "main.c")
	writeFile(t, input, "int main(void) { return 0; }")

	hasher := fs.NewHasher(fs.NewWalker())
	task := &domain.Task{
		Name:    domain.NewInternedString("compile:App"),
		Kind:    domain.TaskCompile,
		Command: []string{"clang", "-c", "main.c"},
		Inputs:  []domain.InternedString{domain.NewInternedString("main.c")},
	}
	env := map[string]string{"KEY": "VALUE"}

	base, err := hasher.ComputeInputHash(task, env, root)
	require.NoError(t, err)

	again, err := hasher.ComputeInputHash(task, env, root)
	require.NoError(t, err)
	assert.Equal(t, base, again)

	renamed := *task
	renamed.Name = domain.NewInternedString("compile:Other")
	got, err := hasher.ComputeInputHash(&renamed, env, root)
	require.NoError(t, err)
	assert.NotEqual(t, base, got, "name")

	flags := *task
	flags.Command = []string{"clang", "-O2", "-c", "main.c"}
	got, err = hasher.ComputeInputHash(&flags, env, root)
	require.NoError(t, err)
	assert.NotEqual(t, base, got, "command")

	got, err = hasher.ComputeInputHash(task, map[string]string{"KEY": "OTHER"}, root)
	require.NoError(t, err)
	assert.NotEqual(t, base, got, "environment")

	writeFile(t, input, "int main(void) { return 1; }")
	got, err = hasher.ComputeInputHash(task, env, root)
	require.NoError(t, err)
	assert.NotEqual(t, base, got, "content")
}

func TestHasher_ComputeInputHash_Directory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Sources", "a.c"), "a")
	writeFile(t, filepath.Join(root, "Sources", "b.c"), "b")

	hasher := fs.NewHasher(fs.NewWalker())
	task := &domain.Task{
		Name:   domain.NewInternedString("compile"),
		Inputs: []domain.InternedString{domain.NewInternedString("Sources")},
	}

	before, err := hasher.ComputeInputHash(task, nil, root)
	require.NoError(t, err)

	writeFile(t, filepath.Join(root, "Sources", "c.c"), "c")
	after, err := hasher.ComputeInputHash(task, nil, root)
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
}

func TestHasher_ComputeInputHash_MissingInput(t *testing.T) {
	hasher := fs.NewHasher(fs.NewWalker())
	task := &domain.Task{
		Name:   domain.NewInternedString("compile"),
		Inputs: []domain.InternedString{domain.NewInternedString("missing.c")},
	}

	_, err := hasher.ComputeInputHash(task, nil, t.TempDir())
	require.ErrorIs(t, err, domain.ErrInputNotFound)
}

func TestHasher_ComputeOutputHash(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.o"), "a")
	writeFile(t, filepath.Join(root, "b.o"), "b")

	hasher := fs.NewHasher(fs.NewWalker())

	h1, err := hasher.ComputeOutputHash([]string{"a.o", "b.o"}, root)
	require.NoError(t, err)
	h2, err := hasher.ComputeOutputHash([]string{"b.o", "a.o"}, root)
	require.NoError(t, err)
	assert.Equal(t, h1, h2, "order independent")

	_, err = hasher.ComputeOutputHash([]string{"missing.o"}, root)
	require.ErrorIs(t, err, os.ErrNotExist)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, filepath.Join(root, "missing.o"), zErr.Metadata()["path"])
}
