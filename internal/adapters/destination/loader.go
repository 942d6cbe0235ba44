// Package destination loads destination description files.
package destination

import (
	"os"
	"path/filepath"

	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SchemaVersion is the only supported destination file version.
const SchemaVersion = 1

// File is the on-disk structure of a destination description.
// JSON documents are accepted since they are valid YAML.
type File struct {
	Version            int      `yaml:"version"`
	Target             string   `yaml:"target"`
	SDK                string   `yaml:"sdk"`
	ToolchainBinDir    string   `yaml:"toolchain-bin-dir"`
	ExtraCCFlags       []string `yaml:"extra-cc-flags"`
	ExtraCXXFlags      []string `yaml:"extra-cpp-flags"`
	ExtraCompilerFlags []string `yaml:"extra-compiler-flags"`
	ExtraLinkerFlags   []string `yaml:"extra-linker-flags"`
}

// Loader implements ports.DestinationLoader.
type Loader struct{}

// NewLoader creates a new destination file loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the destination described by the file at path.
// Relative SDK and bin directory paths are resolved against the file's directory.
func (l *Loader) Load(path string) (domain.Destination, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return domain.Destination{}, zerr.With(zerr.Wrap(domain.ErrInvalidDestinationFile, err.Error()), "path", path)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.Destination{}, zerr.With(zerr.Wrap(domain.ErrInvalidDestinationFile, err.Error()), "path", path)
	}

	if file.Version != SchemaVersion {
		err := zerr.Wrap(domain.ErrUnsupportedDestinationVersion, "expected version 1")
		return domain.Destination{}, zerr.With(zerr.With(err, "version", file.Version), "path", path)
	}

	if file.ToolchainBinDir == "" {
		err := zerr.Wrap(domain.ErrInvalidDestinationFile, "missing 'toolchain-bin-dir'")
		return domain.Destination{}, zerr.With(err, "path", path)
	}

	dest := domain.Destination{
		SDK:                resolve(path, file.SDK),
		BinDir:             resolve(path, file.ToolchainBinDir),
		ExtraCFlags:        file.ExtraCCFlags,
		ExtraCXXFlags:      file.ExtraCXXFlags,
		ExtraCompilerFlags: file.ExtraCompilerFlags,
		ExtraLinkerFlags:   file.ExtraLinkerFlags,
	}

	if file.Target != "" {
		triple, err := domain.ParseTriple(file.Target)
		if err != nil {
			wrapped := zerr.Wrap(domain.ErrInvalidDestinationFile, "invalid 'target' triple")
			return domain.Destination{}, zerr.With(zerr.With(wrapped, "triple", file.Target), "path", path)
		}
		dest.Target = triple
	}

	return dest, nil
}

func resolve(file, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(file), p)
}
