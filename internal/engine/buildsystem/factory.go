// Package buildsystem selects and constructs the build backend of an invocation.
package buildsystem

import (
	"fmt"

	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/pax/internal/core/ports"
)

// Config carries the per-invocation inputs of a Factory.
type Config struct {
	// Parameters returns the resolved build parameters.
	Parameters func() (*domain.BuildParameters, error)
	// LoadGraph loads the package graph of the root package.
	LoadGraph GraphLoader
	// EditedDependencies lists the dependencies currently in the edited state.
	EditedDependencies func() ([]domain.ManagedDependency, error)
	Verbose            bool
}

// Factory creates build backends and registers them as the active build.
type Factory struct {
	cfg       Config
	runner    Runner
	openStore ports.BuildInfoStoreFactory
	logger    ports.Logger
	active    *ActiveBuild
}

// NewFactory creates a Factory.
func NewFactory(
	cfg Config,
	runner Runner,
	openStore ports.BuildInfoStoreFactory,
	logger ports.Logger,
	active *ActiveBuild,
) *Factory {
	return &Factory{cfg: cfg, runner: runner, openStore: openStore, logger: logger, active: active}
}

// CreateBuildSystem creates the backend selected by the build parameters. A non-nil
// override replaces the resolved parameters.
func (f *Factory) CreateBuildSystem(explicitProduct string, override *domain.BuildParameters) (ports.BuildSystem, error) {
	params := override
	if params == nil {
		var err error
		if params, err = f.cfg.Parameters(); err != nil {
			return nil, err
		}
	}

	var bs ports.BuildSystem
	switch params.BuildSystem {
	case domain.BuildSystemIDE:
		bs = NewIDEProject(params, f.cfg.LoadGraph, explicitProduct, f.logger, f.cfg.Verbose)
	default:
		opts := domain.PackageGraphOptions{ExplicitProduct: explicitProduct}
		bs = NewOperation(params, f.cfg.LoadGraph, opts, f.runner, f.openStore, f.logger, false)
	}
	f.active.Set(bs)
	return bs, nil
}

// CreateBuildOperation creates a native build regardless of the selected backend.
// The persisted build manifest is reused only if cacheBuildManifest is set, the manifest
// and build description exist, and no dependency is being edited.
func (f *Factory) CreateBuildOperation(explicitProduct string, cacheBuildManifest bool) (*Operation, error) {
	params, err := f.cfg.Parameters()
	if err != nil {
		return nil, err
	}

	useCache := cacheBuildManifest && PlanExists(params) && !f.editing()
	opts := domain.PackageGraphOptions{ExplicitProduct: explicitProduct}
	op := NewOperation(params, f.cfg.LoadGraph, opts, f.runner, f.openStore, f.logger, useCache)
	f.active.Set(op)
	return op, nil
}

func (f *Factory) editing() bool {
	if f.cfg.EditedDependencies == nil {
		return false
	}
	edited, err := f.cfg.EditedDependencies()
	if err != nil {
		f.logger.Debug(fmt.Sprintf("not reusing build manifest: %v", err))
		return true
	}
	return len(edited) > 0
}
