package buildsystem

import (
	"context"
	"fmt"
	"path/filepath"

	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/pax/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// ProjectFileExtension is the suffix of generated IDE project files.
const ProjectFileExtension = ".paxproj.yaml"

// IDEProject is the backend that generates an IDE project instead of building.
type IDEProject struct {
	cancellation

	params  *domain.BuildParameters
	graphs  *graphCell
	logger  ports.Logger
	verbose bool
}

var _ ports.BuildSystem = (*IDEProject)(nil)

// NewIDEProject creates the IDE project backend. The package graph is loaded with every
// test product variant.
func NewIDEProject(
	params *domain.BuildParameters,
	load GraphLoader,
	explicitProduct string,
	logger ports.Logger,
	verbose bool,
) *IDEProject {
	opts := domain.PackageGraphOptions{
		ExplicitProduct:        explicitProduct,
		TestEntryPointProducts: true,
		TestDiscoveryProducts:  true,
	}
	return &IDEProject{
		params:  params,
		graphs:  &graphCell{load: load, opts: opts},
		logger:  logger,
		verbose: verbose,
	}
}

// PackageGraph returns the package graph, loading it on first use.
func (p *IDEProject) PackageGraph(ctx context.Context) (*domain.PackageGraph, error) {
	return p.graphs.get(ctx)
}

type ideProject struct {
	Name          string       `yaml:"name"`
	Triple        string       `yaml:"triple"`
	Configuration string       `yaml:"configuration"`
	BuildCommand  []string     `yaml:"build_command,flow"`
	Packages      []idePackage `yaml:"packages"`
}

type idePackage struct {
	Identity string       `yaml:"identity"`
	Path     string       `yaml:"path"`
	Root     bool         `yaml:"root,omitempty"`
	Targets  []ideTarget  `yaml:"targets,omitempty"`
	Products []ideProduct `yaml:"products,omitempty"`
}

type ideTarget struct {
	Name         string   `yaml:"name"`
	Kind         string   `yaml:"kind"`
	Sources      []string `yaml:"sources,omitempty"`
	Dependencies []string `yaml:"dependencies,omitempty,flow"`
}

type ideProduct struct {
	Name    string   `yaml:"name"`
	Kind    string   `yaml:"kind"`
	Targets []string `yaml:"targets,flow"`
}

// ProjectPath returns the file the project for the root package named name is written to.
func (p *IDEProject) ProjectPath(name string) string {
	return filepath.Join(p.params.DataPath, name+ProjectFileExtension)
}

// Build writes one project file per root package. The subset does not narrow the project.
func (p *IDEProject) Build(ctx context.Context, _ domain.BuildSubset) error {
	ctx, done, err := p.start(ctx)
	if err != nil {
		return err
	}
	defer done()

	graph, err := p.PackageGraph(ctx)
	if err != nil {
		return err
	}

	var packages []idePackage
	for pkg := range graph.Walk() {
		if err := ctx.Err(); err != nil {
			return zerr.Wrap(domain.ErrBuildCancelled, err.Error())
		}
		packages = append(packages, describePackage(pkg))
	}

	for _, root := range graph.Roots() {
		project := ideProject{
			Name:          root.Manifest.Name,
			Triple:        p.params.Triple.String(),
			Configuration: p.params.Configuration.String(),
			BuildCommand:  []string{"pax", "build", "--configuration", p.params.Configuration.String()},
			Packages:      packages,
		}
		data, err := yaml.Marshal(project)
		if err != nil {
			return zerr.Wrap(domain.ErrBuildManifestWriteFailed, err.Error())
		}

		path := p.ProjectPath(root.Manifest.Name)
		if err := writeFile(path, data); err != nil {
			return zerr.With(zerr.Wrap(domain.ErrBuildManifestWriteFailed, err.Error()), "path", path)
		}

		msg := fmt.Sprintf("generated %s", path)
		if p.verbose {
			p.logger.Info(msg)
		} else {
			p.logger.Debug(msg)
		}
	}
	return nil
}

func describePackage(pkg *domain.ResolvedPackage) idePackage {
	out := idePackage{Identity: pkg.Identity, Path: pkg.Path, Root: pkg.IsRoot}
	for _, t := range pkg.Manifest.Targets {
		sources := make([]string, 0, len(t.Sources))
		for _, src := range t.Sources {
			sources = append(sources, filepath.Join(t.Path, src))
		}
		out.Targets = append(out.Targets, ideTarget{
			Name:         t.Name,
			Kind:         t.Kind.String(),
			Sources:      sources,
			Dependencies: t.Dependencies,
		})
	}
	for _, product := range pkg.Manifest.Products {
		out.Products = append(out.Products, ideProduct{
			Name:    product.Name,
			Kind:    product.Kind.String(),
			Targets: product.Targets,
		})
	}
	return out
}
