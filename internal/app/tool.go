package app

import (
	"context"
	"os"
	"strings"
	"sync"
	"time"

	"go.trai.ch/pax/internal/adapters/process"  //nolint:depguard // Wired in app layer
	"go.trai.ch/pax/internal/adapters/progress" //nolint:depguard // Wired in app layer
	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/pax/internal/core/ports"
	"go.trai.ch/pax/internal/engine/buildsystem"
	"go.trai.ch/pax/internal/engine/params"
	"go.trai.ch/pax/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// Tool owns the state of a single invocation. Toolchains, build parameters, the manifest
// loader and the workspace are created on first use and reused afterwards.
type Tool struct {
	components  *Components
	opts        *domain.Options
	diagnostics *domain.Diagnostics
	delegate    *progress.Delegate
	resolver    *resolver.Resolver
	params      *params.Builder
	factory     *buildsystem.Factory
	loader      *domain.Lazy[ports.ManifestLoader]
	workspace   *domain.Lazy[ports.Workspace]
	workingDir  string
	exec        func(path string, args []string, originalWD string) error

	mu       sync.Mutex
	reported int

	closeOnce sync.Once
	closeErr  error
}

type toolConfig struct {
	workingDir    string
	animation     ports.ProgressAnimation
	paramsOptions []params.Option
	exec          func(path string, args []string, originalWD string) error
}

// Option configures a Tool.
type Option func(*toolConfig)

// WithWorkingDir sets the directory the tool was started in.
func WithWorkingDir(dir string) Option {
	return func(c *toolConfig) { c.workingDir = dir }
}

// WithAnimation replaces the progress indicator used for downloads.
func WithAnimation(a ports.ProgressAnimation) Option {
	return func(c *toolConfig) { c.animation = a }
}

// WithParamsOptions passes options to the build parameters builder.
func WithParamsOptions(opts ...params.Option) Option {
	return func(c *toolConfig) { c.paramsOptions = append(c.paramsOptions, opts...) }
}

// WithExec replaces the function that hands the process over to a built product.
func WithExec(exec func(path string, args []string, originalWD string) error) Option {
	return func(c *toolConfig) { c.exec = exec }
}

// New creates the Tool of one invocation. Invalid option combinations are rejected
// before anything is resolved.
func New(c *Components, opts *domain.Options, options ...Option) (*Tool, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	overrides, err := opts.Overrides()
	if err != nil {
		return nil, err
	}

	cfg := toolConfig{exec: process.Exec}
	for _, o := range options {
		o(&cfg)
	}
	if cfg.workingDir == "" {
		if cfg.workingDir, err = os.Getwd(); err != nil {
			return nil, zerr.Wrap(err, "failed to determine working directory")
		}
	}
	if cfg.animation == nil {
		cfg.animation = progress.NewAnimation(c.Output)
	}

	t := &Tool{
		components:  c,
		opts:        opts,
		diagnostics: domain.NewDiagnostics(),
		workingDir:  cfg.workingDir,
		exec:        cfg.exec,
	}
	t.delegate = progress.NewDelegate(c.Output, cfg.animation, t.diagnostics)
	t.resolver = c.Resolvers(resolver.Config{
		DestinationFile: opts.Destination.DestinationFile,
		Cross:           opts.Cross,
		Overrides:       overrides,
	})
	t.params = params.NewBuilder(t.resolver, opts, cfg.paramsOptions...)
	t.loader = domain.NewLazy(t.createManifestLoader)
	t.workspace = domain.NewLazy(t.createWorkspace)
	t.factory = c.BuildSystems(buildsystem.Config{
		Parameters:         t.params.Parameters,
		LoadGraph:          t.LoadPackageGraph,
		EditedDependencies: t.editedDependencies,
		Verbose:            opts.Verbose,
	})
	return t, nil
}

// Options returns the options the tool was created with.
func (t *Tool) Options() *domain.Options {
	return t.opts
}

// Diagnostics returns the diagnostics collected so far.
func (t *Tool) Diagnostics() *domain.Diagnostics {
	return t.diagnostics
}

// HostToolchain returns the toolchain manifests are evaluated with.
func (t *Tool) HostToolchain() (*domain.Toolchain, error) {
	return t.resolver.HostToolchain()
}

// DestinationToolchain returns the toolchain the build compiles with.
func (t *Tool) DestinationToolchain() (*domain.Toolchain, error) {
	return t.resolver.DestinationToolchain()
}

// BuildParameters returns the parameters of the build, deriving them on first use.
func (t *Tool) BuildParameters() (*domain.BuildParameters, error) {
	return t.params.Parameters()
}

// Resolve materializes the dependencies of the root package.
func (t *Tool) Resolve(ctx context.Context) error {
	return t.observe(ctx, "resolve", func(ctx context.Context) error {
		ws, err := t.workspace.Get()
		if err != nil {
			return err
		}
		return t.checkDiagnostics(ws.Resolve(ctx))
	})
}

// LoadPackageGraph resolves dependencies as needed and loads the package graph.
func (t *Tool) LoadPackageGraph(ctx context.Context, opts domain.PackageGraphOptions) (*domain.PackageGraph, error) {
	var graph *domain.PackageGraph
	err := t.observe(ctx, "load_package_graph", func(ctx context.Context) error {
		ws, err := t.workspace.Get()
		if err != nil {
			return err
		}
		graph, err = ws.LoadPackageGraph(ctx, opts)
		return t.checkDiagnostics(err)
	})
	if err != nil {
		return nil, err
	}
	return graph, nil
}

// CreateBuildSystem creates the backend selected by the build parameters and registers it
// as the active build. A non-nil override replaces the resolved parameters.
func (t *Tool) CreateBuildSystem(explicitProduct string, override *domain.BuildParameters) (ports.BuildSystem, error) {
	return t.factory.CreateBuildSystem(explicitProduct, override)
}

// CreateBuildOperation creates a native build and registers it as the active build.
func (t *Tool) CreateBuildOperation(explicitProduct string, cacheBuildManifest bool) (*buildsystem.Operation, error) {
	return t.factory.CreateBuildOperation(explicitProduct, cacheBuildManifest)
}

// Build builds subset. When cacheBuildManifest is set the native backend is used and may
// reuse the persisted build manifest.
func (t *Tool) Build(ctx context.Context, subset domain.BuildSubset, cacheBuildManifest bool) error {
	return t.observe(ctx, "build", func(ctx context.Context) error {
		explicitProduct := ""
		if subset.Kind == domain.SubsetProduct {
			explicitProduct = subset.Name
		}

		var (
			bs  ports.BuildSystem
			err error
		)
		if cacheBuildManifest {
			bs, err = t.CreateBuildOperation(explicitProduct, true)
		} else {
			bs, err = t.CreateBuildSystem(explicitProduct, nil)
		}
		if err != nil {
			return err
		}
		return bs.Build(ctx, subset)
	})
}

// GenerateIDEProject writes the IDE project files of the root packages regardless of the
// selected build system.
func (t *Tool) GenerateIDEProject(ctx context.Context) error {
	return t.observe(ctx, "generate_ide_project", func(ctx context.Context) error {
		p, err := t.BuildParameters()
		if err != nil {
			return err
		}
		override := *p
		override.BuildSystem = domain.BuildSystemIDE
		override.DataPath = params.DataPath(t.opts.EffectiveBuildPath(), p.Triple, domain.BuildSystemIDE)

		bs, err := t.CreateBuildSystem("", &override)
		if err != nil {
			return err
		}
		return bs.Build(ctx, domain.BuildSubset{Kind: domain.SubsetAllIncludingTests})
	})
}

// Run builds an executable product and replaces the current process with it. An empty
// product selects the only executable product of the root packages.
// Run closes the tool before handing over; on success it does not return.
func (t *Tool) Run(ctx context.Context, product string, args []string) error {
	var path string
	err := t.observe(ctx, "run", func(ctx context.Context) error {
		op, err := t.CreateBuildOperation(product, t.opts.Manifest.CacheBuildManifest)
		if err != nil {
			return err
		}
		name, err := executableProduct(ctx, op, product)
		if err != nil {
			return err
		}
		if err := op.Build(ctx, domain.BuildSubset{Kind: domain.SubsetProduct, Name: name}); err != nil {
			return err
		}
		path = buildsystem.ProductPath(op.Parameters(), name)
		return nil
	})
	if err != nil {
		return err
	}

	if err := t.Close(); err != nil {
		return err
	}
	t.components.Logger.Debug("running " + process.DisplayPath(path, t.workingDir))
	return t.exec(path, args, t.workingDir)
}

func executableProduct(ctx context.Context, bs ports.BuildSystem, product string) (string, error) {
	if product != "" {
		return product, nil
	}
	graph, err := bs.PackageGraph(ctx)
	if err != nil {
		return "", err
	}
	executables := graph.ExecutableProducts()
	switch len(executables) {
	case 0:
		return "", zerr.Wrap(domain.ErrNoExecutableProduct, "no executable product in root packages")
	case 1:
		return executables[0].Name, nil
	default:
		names := make([]string, len(executables))
		for i, p := range executables {
			names[i] = p.Name
		}
		return "", zerr.With(zerr.Wrap(domain.ErrMultipleExecutableProducts, "pass the product to run"),
			"products", strings.Join(names, ", "))
	}
}

// Close flushes the progress output and the task recording and writes the metrics file
// if one was requested. It is safe to call more than once.
func (t *Tool) Close() error {
	t.closeOnce.Do(func() {
		t.delegate.Close()
		if err := t.components.Telemetry.Close(); err != nil {
			t.components.Logger.Debug("failed to close task recording: " + err.Error())
		}
		if t.opts.MetricsFile != "" {
			t.closeErr = t.components.Metrics.WriteTextfile(t.opts.MetricsFile)
		}
	})
	return t.closeErr
}

func (t *Tool) createManifestLoader() (ports.ManifestLoader, error) {
	host, err := t.HostToolchain()
	if err != nil {
		return nil, err
	}
	return t.components.Manifests(ports.ManifestLoaderConfig{
		ResourcePaths:  host.ManifestResourcePaths(),
		Sandbox:        t.opts.Manifest.Sandbox,
		CacheDir:       t.opts.Manifest.CacheDir,
		ExtraFlags:     t.opts.Manifest.ExtraFlags,
		CrossToolchain: t.opts.Cross.Enabled,
	}), nil
}

func (t *Tool) createWorkspace() (ports.Workspace, error) {
	loader, err := t.loader.Get()
	if err != nil {
		return nil, err
	}
	return t.components.Workspaces(ports.WorkspaceConfig{
		Root:           t.opts.PackagePath,
		CachePath:      t.opts.EffectiveCachePath(),
		NetrcPath:      t.opts.NetrcPath,
		Delegate:       t.delegate,
		ManifestLoader: loader,
		Diagnostics:    t.diagnostics,
	})
}

func (t *Tool) editedDependencies() ([]domain.ManagedDependency, error) {
	ws, err := t.workspace.Get()
	if err != nil {
		return nil, err
	}
	return ws.EditedDependencies()
}

// checkDiagnostics reports the diagnostics emitted since the last check. A phase that
// succeeded but emitted an error diagnostic fails with domain.ErrDiagnosticsReported.
func (t *Tool) checkDiagnostics(err error) error {
	t.report()
	if err != nil {
		return err
	}
	if t.diagnostics.HasErrors() {
		return zerr.Wrap(domain.ErrDiagnosticsReported, "see the diagnostics above")
	}
	return nil
}

func (t *Tool) report() {
	t.mu.Lock()
	defer t.mu.Unlock()

	all := t.diagnostics.All()
	log := t.components.Logger
	for _, d := range all[t.reported:] {
		switch d.Severity {
		case domain.SeverityError:
			var err error = zerr.New(d.Message)
			if d.Location != "" {
				err = zerr.With(err, "location", d.Location)
			}
			log.Error(err)
		case domain.SeverityWarning:
			log.Warn(d.String())
		default:
			log.Info(d.String())
		}
	}
	t.reported = len(all)
}

func (t *Tool) observe(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	ctx, span := t.components.Tracer.Start(ctx, name)
	defer span.End()
	span.SetAttribute("pax.package_path", t.opts.PackagePath)

	err := fn(ctx)
	if err != nil {
		span.RecordError(err)
	}
	t.components.Metrics.ObserveOperation(name, time.Since(start), err)
	return err
}
