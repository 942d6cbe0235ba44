package cross_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pax/internal/adapters/cross"
	"go.trai.ch/pax/internal/core/domain"
)

var toolchain = &domain.CrossToolchain{
	Root:          "/opt/platform/toolchain",
	SpecsFile:     "/opt/platform/linker.specs",
	ICUPaths:      []string{"/opt/platform/icu/lib"},
	LinkerBinPath: "/opt/platform/toolchain/linker/bin",
	IsCross:       true,
}

func count(args []string, want string) int {
	n := 0
	for _, a := range args {
		if a == want {
			n++
		}
	}
	return n
}

func TestLinkArguments(t *testing.T) {
	paths := cross.PathsFor(toolchain, "/pkg/.build/debug/Firmware")

	args, err := cross.LinkArguments(domain.ProductCrossApplication, paths)
	require.NoError(t, err)

	assert.Equal(t, 1, count(args, "-static-executable"))
	assert.Equal(t, 1, count(args, "-use-ld=/opt/platform/toolchain/linker/bin/ld.gold"))

	g := goldie.New(t)
	g.Assert(t, "link_arguments", []byte(strings.Join(args, "\n")+"\n"))
}

func TestLinkArguments_UnsupportedKinds(t *testing.T) {
	paths := cross.PathsFor(toolchain, "/pkg/.build/debug/App")

	for _, kind := range []domain.ProductKind{
		domain.ProductExecutable,
		domain.ProductLibrary,
		domain.ProductTest,
		domain.ProductPlugin,
	} {
		t.Run(kind.String(), func(t *testing.T) {
			args, err := cross.LinkArguments(kind, paths)
			assert.Nil(t, args)
			assert.True(t, errors.Is(err, domain.ErrUnsupportedProductKind))
		})
	}
}

func TestPackagingCommand(t *testing.T) {
	paths := cross.PathsFor(toolchain, "/pkg/.build/debug/Firmware")

	cmd, err := cross.PackagingCommand(domain.ProductCrossApplication, paths,
		"/pkg/.build/debug/Firmware", "/pkg/.build/debug/Firmware.pkg")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/opt/platform/toolchain/bin/pax-pack", "pack",
		"--map", "/pkg/.build/debug/Firmware.map",
		"--output", "/pkg/.build/debug/Firmware.pkg",
		"/pkg/.build/debug/Firmware",
	}, cmd)

	_, err = cross.PackagingCommand(domain.ProductLibrary, paths, "in", "out")
	assert.True(t, errors.Is(err, domain.ErrUnsupportedProductKind))
}
