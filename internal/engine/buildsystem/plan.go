package buildsystem

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/pax/internal/adapters/cross" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	objectExtension  = ".o"
	archiveExtension = ".a"
	// PackagedExtension is the suffix of packaged cross application images.
	PackagedExtension = ".bin"
)

// Description indexes a planned build so subsets can be selected without the package graph.
type Description struct {
	Triple        string `json:"triple"`
	Configuration string `json:"configuration"`
	// Products maps a product name to the task producing it.
	Products map[string]string `json:"products"`
	// Targets maps a target name to the task compiling it.
	Targets map[string]string `json:"targets"`
	// TestTasks are only built when tests are requested.
	TestTasks []string `json:"test_tasks,omitempty"`
}

// Plan is a planned native build.
type Plan struct {
	Tasks       []domain.Task
	Description Description
}

// Select returns the validated task graph building subset: the requested tasks and their
// transitive dependencies.
func (p *Plan) Select(subset domain.BuildSubset) (*domain.Graph, error) {
	byName := make(map[string]domain.Task, len(p.Tasks))
	for _, t := range p.Tasks {
		byName[t.Name.String()] = t
	}

	var roots []string
	switch subset.Kind {
	case domain.SubsetAllIncludingTests:
		roots = slices.Collect(maps.Keys(byName))
	case domain.SubsetAllExcludingTests:
		for name := range byName {
			if !slices.Contains(p.Description.TestTasks, name) {
				roots = append(roots, name)
			}
		}
	case domain.SubsetProduct:
		name, ok := p.Description.Products[subset.Name]
		if !ok {
			return nil, zerr.With(zerr.Wrap(domain.ErrProductNotFound, "unknown product"), "product", subset.Name)
		}
		roots = []string{name}
	case domain.SubsetTarget:
		name, ok := p.Description.Targets[subset.Name]
		if !ok {
			return nil, zerr.With(zerr.Wrap(domain.ErrTargetNotFound, "unknown target"), "target", subset.Name)
		}
		roots = []string{name}
	}

	selected := make(map[string]bool)
	var visit func(name string)
	visit = func(name string) {
		if selected[name] {
			return
		}
		selected[name] = true
		for _, dep := range byName[name].Dependencies {
			visit(dep.String())
		}
	}
	for _, r := range roots {
		visit(r)
	}

	g := domain.NewGraph()
	for _, t := range p.Tasks {
		if !selected[t.Name.String()] {
			continue
		}
		if err := g.AddTask(&t); err != nil {
			return nil, err
		}
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// planner turns a package graph into build tasks.
type planner struct {
	params *domain.BuildParameters
	graph  *domain.PackageGraph
	plan   *Plan
	index  map[domain.InternedString]int
	// compiled maps "identity/target" to the compile task of that target.
	compiled map[string]domain.InternedString
	// archives maps "identity/target" to the archive of a library target.
	archives map[string]string
	visiting map[string]bool
}

// PlanBuild plans compile, archive, link and packaging tasks for every package in graph.
func PlanBuild(graph *domain.PackageGraph, params *domain.BuildParameters) (*Plan, error) {
	p := &planner{
		params: params,
		graph:  graph,
		plan: &Plan{Description: Description{
			Triple:        params.Triple.String(),
			Configuration: params.Configuration.String(),
			Products:      make(map[string]string),
			Targets:       make(map[string]string),
		}},
		index:    make(map[domain.InternedString]int),
		compiled: make(map[string]domain.InternedString),
		archives: make(map[string]string),
		visiting: make(map[string]bool),
	}

	for pkg := range graph.Walk() {
		for _, target := range pkg.Manifest.Targets {
			if err := p.planTarget(pkg, target); err != nil {
				return nil, err
			}
		}
	}
	for pkg := range graph.Walk() {
		if err := p.planProducts(pkg); err != nil {
			return nil, err
		}
	}
	return p.plan, nil
}

func (p *planner) objectsPath(pkg *domain.ResolvedPackage) string {
	return filepath.Join(p.params.ProductsPath(), pkg.Identity+".build")
}

// planTarget plans the compile task of target after the targets it depends on.
func (p *planner) planTarget(pkg *domain.ResolvedPackage, target domain.Target) error {
	key := pkg.Identity + "/" + target.Name
	if _, done := p.compiled[key]; done {
		return nil
	}
	if p.visiting[key] {
		return zerr.With(zerr.Wrap(domain.ErrCycleDetected, "target dependency cycle"), "target", key)
	}
	p.visiting[key] = true
	defer delete(p.visiting, key)

	deps := make([]domain.InternedString, 0, len(target.Dependencies))
	for _, name := range target.Dependencies {
		owner, dep, err := p.findTarget(pkg, name)
		if err != nil {
			return err
		}
		if err := p.planTarget(owner, dep); err != nil {
			return err
		}
		deps = append(deps, p.compiled[owner.Identity+"/"+dep.Name])
	}

	dir := filepath.Join(pkg.Path, target.Path)
	object := filepath.Join(p.objectsPath(pkg), target.Name+objectExtension)

	sources := make([]string, len(target.Sources))
	for i, src := range target.Sources {
		sources[i] = filepath.Join(dir, src)
	}
	inputs := domain.NewInternedStrings(sources)

	command := []string{p.params.Toolchain.Compilers.Compiler, "-c", "-module-name", target.Name}
	command = append(command, p.compileFlags(target)...)
	command = append(command, "-o", object)
	command = append(command, sources...)

	compile := domain.Task{
		Name:         domain.NewInternedString("compile:" + key),
		Kind:         domain.TaskCompile,
		Command:      command,
		WorkingDir:   domain.NewInternedString(pkg.Path),
		Inputs:       inputs,
		Outputs:      []domain.InternedString{domain.NewInternedString(object)},
		Dependencies: deps,
	}
	p.add(compile)
	p.compiled[key] = compile.Name
	p.name(p.plan.Description.Targets, pkg, target.Name, compile.Name.String())

	switch target.Kind {
	case domain.TargetTest:
		p.plan.Description.TestTasks = append(p.plan.Description.TestTasks, compile.Name.String())
	case domain.TargetRegular:
		archive := filepath.Join(p.objectsPath(pkg), "lib"+target.Name+archiveExtension)
		p.add(domain.Task{
			Name:         domain.NewInternedString("archive:" + key),
			Kind:         domain.TaskArchive,
			Command:      []string{p.params.Toolchain.Compilers.Archiver, "rcs", archive, object},
			WorkingDir:   domain.NewInternedString(pkg.Path),
			Inputs:       []domain.InternedString{domain.NewInternedString(object)},
			Outputs:      []domain.InternedString{domain.NewInternedString(archive)},
			Dependencies: []domain.InternedString{compile.Name},
		})
		p.archives[key] = archive
	}
	return nil
}

// findTarget resolves a target dependency within the package first, then across the graph.
func (p *planner) findTarget(pkg *domain.ResolvedPackage, name string) (*domain.ResolvedPackage, domain.Target, error) {
	if t, ok := pkg.Manifest.Target(name); ok {
		return pkg, t, nil
	}
	owner, t, err := p.graph.FindTarget(name)
	if err != nil {
		return nil, domain.Target{}, zerr.With(err, "package", pkg.Identity)
	}
	return owner, t, nil
}

// name records the task building a named product or target. Names of root packages win.
func (p *planner) name(into map[string]string, pkg *domain.ResolvedPackage, name, task string) {
	if _, taken := into[name]; taken && !pkg.IsRoot {
		return
	}
	into[name] = task
}

func (p *planner) add(t domain.Task) {
	if _, exists := p.index[t.Name]; exists {
		return
	}
	p.index[t.Name] = len(p.plan.Tasks)
	p.plan.Tasks = append(p.plan.Tasks, t)
}

func (p *planner) compileFlags(target domain.Target) []string {
	params := p.params
	dest := params.Toolchain.Destination

	var flags []string
	if !params.Triple.IsZero() {
		flags = append(flags, "-target", params.Triple.String())
	}
	flags = append(flags, archFlags(params.Archs)...)
	if dest.SDK != "" {
		flags = append(flags, "-sdk", dest.SDK)
	}
	if params.Configuration == domain.ConfigurationRelease {
		flags = append(flags, "-O")
	} else {
		flags = append(flags, "-Onone", "-g", "-DDEBUG")
	}
	for _, s := range params.Features.Sanitizers {
		flags = append(flags, s.CompilerFlag())
	}
	if params.Features.CodeCoverage {
		flags = append(flags, "-profile-generate", "-profile-coverage-mapping")
	}
	if params.EmitIndexStore() {
		flags = append(flags, "-index-store-path", filepath.Join(params.DataPath, "index", "store"))
	}
	if params.Features.ParseableInterfaces && target.Kind == domain.TargetRegular {
		flags = append(flags, "-enable-library-evolution", "-emit-module-interface")
	}
	if params.Features.ExplicitModuleBuild {
		flags = append(flags, "-explicit-module-build")
	}
	if target.Kind == domain.TargetTest {
		flags = append(flags, "-enable-testing")
	}
	if c := dest.Cross; c != nil {
		for _, inc := range c.SystemIncludePaths {
			flags = append(flags, "-Xcc", "-isystem", "-Xcc", inc)
		}
	}
	for _, f := range dest.ExtraCFlags {
		flags = append(flags, "-Xcc", f)
	}
	for _, f := range params.Flags.CFlags {
		flags = append(flags, "-Xcc", f)
	}
	for _, f := range params.Flags.CXXFlags {
		flags = append(flags, "-Xcxx", f)
	}
	flags = append(flags, dest.ExtraCompilerFlags...)
	return append(flags, params.Flags.CompilerFlags...)
}

// archFlags selects the architectures of a multi-architecture build.
func archFlags(archs []string) []string {
	flags := make([]string, 0, 2*len(archs))
	for _, a := range archs {
		flags = append(flags, "-arch", a)
	}
	return flags
}

func (p *planner) planProducts(pkg *domain.ResolvedPackage) error {
	for _, product := range pkg.Manifest.Products {
		if product.Kind == domain.ProductLibrary {
			if err := p.planLibraryProduct(pkg, product); err != nil {
				return err
			}
			continue
		}
		if err := p.planLinkedProduct(pkg, product); err != nil {
			return err
		}
	}
	return nil
}

// planLibraryProduct records the archives of a library product; no link step is needed.
func (p *planner) planLibraryProduct(pkg *domain.ResolvedPackage, product domain.Product) error {
	for _, name := range product.Targets {
		key := pkg.Identity + "/" + name
		if _, ok := p.archives[key]; !ok {
			continue
		}
		p.name(p.plan.Description.Products, pkg, product.Name, "archive:"+key)
		return nil
	}
	return zerr.With(zerr.With(zerr.Wrap(domain.ErrTargetNotFound, "library product has no library target"),
		"product", product.Name), "package", pkg.Identity)
}

// ProductPath returns the path the linked product named name is written to.
func ProductPath(params *domain.BuildParameters, name string) string {
	return filepath.Join(params.ProductsPath(), name+params.Triple.ExecutableExtension())
}

func (p *planner) planLinkedProduct(pkg *domain.ResolvedPackage, product domain.Product) error {
	params := p.params
	binary := ProductPath(params, product.Name)

	var (
		objects []domain.InternedString
		deps    []domain.InternedString
	)
	for _, key := range p.productClosure(pkg, product) {
		task := p.compiled[key]
		deps = append(deps, task)
		compile, _ := p.taskNamed(task)
		objects = append(objects, compile.Outputs...)
	}

	command := append([]string{params.Toolchain.Compilers.Compiler}, domain.Strings(objects)...)
	command = append(command, "-o", binary)
	if !params.Triple.IsZero() {
		command = append(command, "-target", params.Triple.String())
	}
	command = append(command, archFlags(params.Archs)...)
	if params.Features.StaticStdlib {
		command = append(command, "-static-stdlib")
	}
	for _, s := range params.Features.Sanitizers {
		command = append(command, s.CompilerFlag())
	}
	for _, dir := range params.Toolchain.LibraryPaths() {
		command = append(command, "-L", dir)
	}
	for _, f := range params.Toolchain.Destination.ExtraLinkerFlags {
		command = append(command, "-Xlinker", f)
	}
	for _, f := range params.Flags.LinkerFlags {
		command = append(command, "-Xlinker", f)
	}

	isCrossApp := product.Kind == domain.ProductCrossApplication
	var crossPaths cross.Paths
	if isCrossApp {
		tc := params.Toolchain.Destination.Cross
		if tc == nil {
			err := zerr.Wrap(domain.ErrUnsupportedProductKind, "cross applications need a cross toolchain")
			return zerr.With(err, "product", product.Name)
		}
		crossPaths = cross.PathsFor(tc, binary)
		args, err := cross.LinkArguments(product.Kind, crossPaths)
		if err != nil {
			return err
		}
		command = append(command, args...)
	}

	link := domain.Task{
		Name:         domain.NewInternedString("link:" + pkg.Identity + "/" + product.Name),
		Kind:         domain.TaskLink,
		Command:      command,
		WorkingDir:   domain.NewInternedString(pkg.Path),
		Inputs:       objects,
		Outputs:      []domain.InternedString{domain.NewInternedString(binary)},
		Dependencies: deps,
	}
	p.add(link)
	final := link.Name.String()

	if isCrossApp {
		image := binary + PackagedExtension
		command, err := cross.PackagingCommand(product.Kind, crossPaths, binary, image)
		if err != nil {
			return err
		}
		pack := domain.Task{
			Name:         domain.NewInternedString("package:" + pkg.Identity + "/" + product.Name),
			Kind:         domain.TaskPackage,
			Command:      command,
			WorkingDir:   domain.NewInternedString(pkg.Path),
			Inputs:       []domain.InternedString{domain.NewInternedString(binary)},
			Outputs:      []domain.InternedString{domain.NewInternedString(image)},
			Dependencies: []domain.InternedString{link.Name},
		}
		p.add(pack)
		final = pack.Name.String()
	}

	p.name(p.plan.Description.Products, pkg, product.Name, final)
	if product.Kind == domain.ProductTest {
		p.plan.Description.TestTasks = append(p.plan.Description.TestTasks, final)
		if final != link.Name.String() {
			p.plan.Description.TestTasks = append(p.plan.Description.TestTasks, link.Name.String())
		}
	}
	return nil
}

// productClosure returns the targets linked into product, dependencies first.
func (p *planner) productClosure(pkg *domain.ResolvedPackage, product domain.Product) []string {
	var (
		order []string
		seen  = make(map[string]bool)
	)
	var visit func(key string)
	visit = func(key string) {
		if seen[key] {
			return
		}
		seen[key] = true
		task, ok := p.taskNamed(p.compiled[key])
		if !ok {
			return
		}
		for _, dep := range task.Dependencies {
			visit(strings.TrimPrefix(dep.String(), "compile:"))
		}
		order = append(order, key)
	}
	for _, name := range product.Targets {
		visit(pkg.Identity + "/" + name)
	}
	return order
}

func (p *planner) taskNamed(name domain.InternedString) (domain.Task, bool) {
	i, ok := p.index[name]
	if !ok {
		return domain.Task{}, false
	}
	return p.plan.Tasks[i], true
}
