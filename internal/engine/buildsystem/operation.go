package buildsystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/pax/internal/core/ports"
	"go.trai.ch/pax/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// Runner executes a task graph.
type Runner interface {
	Run(ctx context.Context, graph *domain.Graph, store ports.BuildInfoStore, opts scheduler.Options) error
}

// Operation is the native incremental build backend.
type Operation struct {
	cancellation

	params    *domain.BuildParameters
	graphs    *graphCell
	runner    Runner
	openStore ports.BuildInfoStoreFactory
	logger    ports.Logger
	useCache  bool
}

var _ ports.BuildSystem = (*Operation)(nil)

// NewOperation creates a native build bound to params. The package graph is loaded through
// load on first use. With useCache set, a persisted plan is tried before the graph is loaded.
func NewOperation(
	params *domain.BuildParameters,
	load GraphLoader,
	opts domain.PackageGraphOptions,
	runner Runner,
	openStore ports.BuildInfoStoreFactory,
	logger ports.Logger,
	useCache bool,
) *Operation {
	return &Operation{
		params:    params,
		graphs:    &graphCell{load: load, opts: opts},
		runner:    runner,
		openStore: openStore,
		logger:    logger,
		useCache:  useCache,
	}
}

// Parameters returns the build parameters the operation is bound to.
func (o *Operation) Parameters() *domain.BuildParameters {
	return o.params
}

// UsesCachedManifest reports whether the operation may reuse the persisted build manifest.
func (o *Operation) UsesCachedManifest() bool {
	return o.useCache
}

// PackageGraph returns the package graph, loading it on first use.
func (o *Operation) PackageGraph(ctx context.Context) (*domain.PackageGraph, error) {
	return o.graphs.get(ctx)
}

// Build plans the build if needed and runs the tasks of subset.
func (o *Operation) Build(ctx context.Context, subset domain.BuildSubset) error {
	ctx, done, err := o.start(ctx)
	if err != nil {
		return err
	}
	defer done()

	plan, err := o.plan(ctx)
	if err != nil {
		return err
	}

	graph, err := plan.Select(subset)
	if err != nil {
		return err
	}
	if err := createOutputDirs(plan.Tasks); err != nil {
		return zerr.Wrap(domain.ErrBuildExecutionFailed, err.Error())
	}

	store, err := o.openStore(o.params.DataPath)
	if err != nil {
		return err
	}

	o.logger.Debug(fmt.Sprintf("building %s: %d tasks, %d jobs", subset, graph.TaskCount(), o.params.Jobs))
	err = o.runner.Run(ctx, graph, store, scheduler.Options{Parallelism: o.params.Jobs, Root: o.params.DataPath})
	if err != nil {
		if o.isCancelled() {
			return zerr.Wrap(domain.ErrBuildCancelled, err.Error())
		}
		return fmt.Errorf("%w: %w", domain.ErrBuildExecutionFailed, err)
	}
	return nil
}

func (o *Operation) plan(ctx context.Context) (*Plan, error) {
	if o.useCache {
		plan, err := LoadPlan(o.params)
		if err == nil {
			o.logger.Debug("using cached build manifest")
			return plan, nil
		}
		o.logger.Debug(fmt.Sprintf("ignoring cached build manifest: %v", err))
	}

	graph, err := o.PackageGraph(ctx)
	if err != nil {
		return nil, err
	}
	plan, err := PlanBuild(graph, o.params)
	if err != nil {
		return nil, err
	}
	if err := SavePlan(o.params, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func createOutputDirs(tasks []domain.Task) error {
	seen := make(map[string]bool)
	for _, t := range tasks {
		for _, out := range t.Outputs {
			dir := filepath.Dir(out.String())
			if seen[dir] {
				continue
			}
			seen[dir] = true
			if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
				return err
			}
		}
	}
	return nil
}
