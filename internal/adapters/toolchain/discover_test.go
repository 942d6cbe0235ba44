package toolchain_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pax/internal/adapters/toolchain"
	"go.trai.ch/pax/internal/core/domain"
)

func TestDiscoverer_Discover(t *testing.T) {
	binDir := t.TempDir()
	writeExecutable(t, filepath.Join(binDir, "clang"))
	writeExecutable(t, filepath.Join(binDir, "ar"))

	paths, err := toolchain.NewDiscoverer("").Discover(binDir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(binDir, "clang"), paths.Compiler)
	assert.Equal(t, filepath.Join(binDir, "clang"), paths.CCompiler)
	assert.Equal(t, filepath.Join(binDir, "ar"), paths.Archiver)
}

func TestDiscoverer_Discover_PrefersLLVMArchiver(t *testing.T) {
	binDir := t.TempDir()
	writeExecutable(t, filepath.Join(binDir, "paxc"))
	writeExecutable(t, filepath.Join(binDir, "cc"))
	writeExecutable(t, filepath.Join(binDir, "ar"))
	writeExecutable(t, filepath.Join(binDir, "llvm-ar"))

	paths, err := toolchain.NewDiscoverer("paxc").Discover(binDir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(binDir, "paxc"), paths.Compiler)
	assert.Equal(t, filepath.Join(binDir, "cc"), paths.CCompiler)
	assert.Equal(t, filepath.Join(binDir, "llvm-ar"), paths.Archiver)
}

func TestDiscoverer_Discover_FallsBackToCompiler(t *testing.T) {
	binDir := t.TempDir()
	writeExecutable(t, filepath.Join(binDir, "paxc"))

	paths, err := toolchain.NewDiscoverer("paxc").Discover(binDir)
	require.NoError(t, err)

	assert.Equal(t, paths.Compiler, paths.CCompiler)
	assert.Empty(t, paths.Archiver)
}

func TestDiscoverer_Discover_Missing(t *testing.T) {
	_, err := toolchain.NewDiscoverer("").Discover(t.TempDir())
	assert.True(t, errors.Is(err, domain.ErrCompilerNotFound))
}
