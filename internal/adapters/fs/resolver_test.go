package fs_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pax/internal/adapters/fs"
	"go.trai.ch/pax/internal/core/domain"
)

func TestResolver_ResolveInputs(t *testing.T) {
	root := t.TempDir()
	for _, f := range []string{"z.c", "a.c", "m.c", "b.h", "c.txt"} {
		writeFile(t, filepath.Join(root, f), "content")
	}
	resolver := fs.NewResolver()

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{name: "glob sorted", patterns: []string{"*.c"}, want: []string{"a.c", "m.c", "z.c"}},
		{name: "multiple patterns", patterns: []string{"*.h", "*.txt"}, want: []string{"b.h", "c.txt"}},
		{name: "deduplicated", patterns: []string{"a.c", "*.c", "a.c"}, want: []string{"a.c", "m.c", "z.c"}},
		{name: "absolute", patterns: []string{filepath.Join(root, "b.h")}, want: []string{"b.h"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolver.ResolveInputs(tt.patterns, root)
			require.NoError(t, err)
			assert.Equal(t, tt.want, relPaths(t, root, got))
		})
	}
}

func TestResolver_ResolveInputs_GlobError(t *testing.T) {
	_, err := fs.NewResolver().ResolveInputs([]string{"["}, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to glob path")
}

func TestResolver_ResolveInputs_NoMatches(t *testing.T) {
	_, err := fs.NewResolver().ResolveInputs([]string{"*.nonexistent"}, t.TempDir())
	require.ErrorIs(t, err, domain.ErrInputNotFound)
}
