package buildsystem

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// manifestVersion is the schema version of the persisted build manifest.
const manifestVersion = 1

type manifestFile struct {
	Version int           `yaml:"version"`
	Triple  string        `yaml:"triple"`
	Tasks   []domain.Task `yaml:"tasks"`
}

// SavePlan persists plan as the build manifest and build description of params.
func SavePlan(params *domain.BuildParameters, plan *Plan) error {
	manifestPath := domain.BuildManifestPath(params.DataPath, params.Configuration)
	data, err := yaml.Marshal(manifestFile{
		Version: manifestVersion,
		Triple:  plan.Description.Triple,
		Tasks:   plan.Tasks,
	})
	if err != nil {
		return zerr.Wrap(domain.ErrBuildManifestWriteFailed, err.Error())
	}
	if err := writeFile(manifestPath, data); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrBuildManifestWriteFailed, err.Error()), "path", manifestPath)
	}

	descriptionPath := domain.BuildDescriptionPath(params.DataPath, params.Configuration)
	data, err = json.MarshalIndent(plan.Description, "", "  ")
	if err != nil {
		return zerr.Wrap(domain.ErrBuildManifestWriteFailed, err.Error())
	}
	if err := writeFile(descriptionPath, data); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrBuildManifestWriteFailed, err.Error()), "path", descriptionPath)
	}
	return nil
}

// LoadPlan reads the plan persisted by SavePlan.
func LoadPlan(params *domain.BuildParameters) (*Plan, error) {
	manifestPath := domain.BuildManifestPath(params.DataPath, params.Configuration)
	//nolint:gosec // path is derived from the data path
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrBuildManifestReadFailed, err.Error()), "path", manifestPath)
	}
	var mf manifestFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrBuildManifestReadFailed, err.Error()), "path", manifestPath)
	}
	if mf.Version != manifestVersion {
		err := zerr.With(zerr.Wrap(domain.ErrBuildManifestReadFailed, "unsupported build manifest version"), "path", manifestPath)
		return nil, zerr.With(err, "version", mf.Version)
	}

	descriptionPath := domain.BuildDescriptionPath(params.DataPath, params.Configuration)
	//nolint:gosec // path is derived from the data path
	data, err = os.ReadFile(descriptionPath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrBuildManifestReadFailed, err.Error()), "path", descriptionPath)
	}
	var desc Description
	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrBuildManifestReadFailed, err.Error()), "path", descriptionPath)
	}
	if desc.Triple != mf.Triple {
		return nil, zerr.With(zerr.Wrap(domain.ErrBuildManifestReadFailed, "build description does not match manifest"),
			"path", descriptionPath)
	}

	return &Plan{Tasks: mf.Tasks, Description: desc}, nil
}

// PlanExists reports whether both the build manifest and the build description of params
// exist on disk.
func PlanExists(params *domain.BuildParameters) bool {
	return fileExists(domain.BuildManifestPath(params.DataPath, params.Configuration)) &&
		fileExists(domain.BuildDescriptionPath(params.DataPath, params.Configuration))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return err
	}
	return os.WriteFile(path, data, domain.FilePerm)
}
