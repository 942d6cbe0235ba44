// Package manifest loads Package.yaml manifests.
package manifest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	fsadapter "go.trai.ch/pax/internal/adapters/fs"
	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/pax/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// CrossToolchainDefine is defined for manifests evaluated for a cross toolchain destination.
const CrossToolchainDefine = "PAX_CROSS_TOOLCHAIN"

// SourceExtensions are the file extensions picked up for targets without explicit sources.
var SourceExtensions = []string{".swift", ".c", ".cc", ".cpp", ".m", ".mm", ".s", ".S"}

var _ ports.ManifestLoader = (*Loader)(nil)

// Loader implements ports.ManifestLoader for Package.yaml files.
type Loader struct {
	resourcePaths []string
	sandbox       bool
	cacheDir      string
	flags         []string
	defines       map[string]struct{}

	walker   *fsadapter.Walker
	resolver *fsadapter.Resolver
	logger   ports.Logger
}

// NewLoader creates a loader for cfg.
func NewLoader(cfg ports.ManifestLoaderConfig, walker *fsadapter.Walker, resolver *fsadapter.Resolver, logger ports.Logger) *Loader {
	flags := slices.Clone(cfg.ExtraFlags)
	if cfg.CrossToolchain {
		flags = append(flags, "-D"+CrossToolchainDefine)
	}
	return &Loader{
		resourcePaths: slices.Clone(cfg.ResourcePaths),
		sandbox:       cfg.Sandbox,
		cacheDir:      cfg.CacheDir,
		flags:         flags,
		defines:       parseDefines(flags),
		walker:        walker,
		resolver:      resolver,
		logger:        logger,
	}
}

// Flags returns the flags manifests are evaluated with.
func (l *Loader) Flags() []string {
	return slices.Clone(l.flags)
}

// parseDefines collects the names set with -DNAME, -DNAME=value or -D NAME.
func parseDefines(flags []string) map[string]struct{} {
	defines := make(map[string]struct{})
	for i := 0; i < len(flags); i++ {
		f := flags[i]
		if !strings.HasPrefix(f, "-D") {
			continue
		}
		name := strings.TrimPrefix(f, "-D")
		if name == "" && i+1 < len(flags) {
			i++
			name = flags[i]
		}
		name, _, _ = strings.Cut(name, "=")
		if name != "" {
			defines[name] = struct{}{}
		}
	}
	return defines
}

// Load evaluates the manifest of the package in dir.
func (l *Loader) Load(ctx context.Context, dir string) (*domain.Manifest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(dir, domain.ManifestFileName)
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the package directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrManifestNotFound, "no manifest in package directory"), "path", dir)
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrManifestReadFailed, err.Error()), "path", path)
	}

	pf, err := l.evaluateCached(data, path)
	if err != nil {
		return nil, err
	}
	return l.toDomain(pf, dir)
}

func (l *Loader) evaluateCached(data []byte, path string) (*PackageFile, error) {
	if l.cacheDir == "" {
		return l.evaluate(data, path)
	}

	entry := filepath.Join(l.cacheDir, l.cacheKey(data)+".yaml")
	if cached, err := os.ReadFile(entry); err == nil { //nolint:gosec // cache entries are named by hash
		var pf PackageFile
		if err := yaml.Unmarshal(cached, &pf); err == nil {
			l.logger.Debug("using cached manifest for " + path)
			return &pf, nil
		}
		l.logger.Debug("ignoring unreadable manifest cache entry " + entry)
	}

	pf, err := l.evaluate(data, path)
	if err != nil {
		return nil, err
	}
	if err := writeCacheEntry(entry, pf); err != nil {
		l.logger.Debug(fmt.Sprintf("failed to cache manifest %s: %v", path, err))
	}
	return pf, nil
}

// cacheKey identifies an evaluation: the manifest contents and everything it is evaluated with.
func (l *Loader) cacheKey(data []byte) string {
	h := xxhash.New()
	_, _ = h.Write(data)
	_, _ = h.Write([]byte{0})
	for _, f := range l.flags {
		_, _ = h.WriteString(f)
		_, _ = h.Write([]byte{0})
	}
	_, _ = h.Write([]byte{0})
	for _, p := range l.resourcePaths {
		_, _ = h.WriteString(p)
		_, _ = h.Write([]byte{0})
	}
	_, _ = h.Write([]byte{0})
	if l.sandbox {
		_, _ = h.Write([]byte{1})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

func writeCacheEntry(entry string, pf *PackageFile) error {
	data, err := yaml.Marshal(pf)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(entry), domain.DirPerm); err != nil {
		return err
	}
	tmp := entry + ".tmp"
	if err := os.WriteFile(tmp, data, domain.FilePerm); err != nil {
		return err
	}
	return os.Rename(tmp, entry)
}

// evaluate decodes the manifest, drops conditional declarations whose condition does not hold,
// fills in defaults and validates the result.
func (l *Loader) evaluate(data []byte, path string) (*PackageFile, error) {
	var pf PackageFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&pf); err != nil && !errors.Is(err, io.EOF) {
		return nil, zerr.With(zerr.Wrap(domain.ErrManifestParseFailed, err.Error()), "path", path)
	}

	pf.Products = slices.DeleteFunc(pf.Products, func(p ProductDTO) bool { return !l.holds(p.When) })
	pf.Targets = slices.DeleteFunc(pf.Targets, func(t TargetDTO) bool { return !l.holds(t.When) })
	applyDefaults(&pf)

	if err := validate(&pf, l.sandbox); err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return &pf, nil
}

func (l *Loader) holds(cond string) bool {
	if cond == "" {
		return true
	}
	negate := strings.HasPrefix(cond, "!")
	_, ok := l.defines[strings.TrimPrefix(cond, "!")]
	return ok != negate
}

func applyDefaults(pf *PackageFile) {
	for i := range pf.Targets {
		t := &pf.Targets[i]
		if t.Kind == "" {
			t.Kind = domain.TargetRegular.String()
		}
		if t.Path == "" {
			dir := "Sources"
			if t.Kind == domain.TargetTest.String() {
				dir = "Tests"
			}
			t.Path = dir + "/" + t.Name
		}
		t.When = ""
	}
	for i := range pf.Products {
		pf.Products[i].When = ""
	}
	for i := range pf.Dependencies {
		d := &pf.Dependencies[i]
		if d.Identity == "" {
			d.Identity = DefaultIdentity(d.URL, d.Path)
		}
	}
}

// DefaultIdentity derives a dependency identity from the last component of its location.
func DefaultIdentity(url, path string) string {
	loc := url
	if loc == "" {
		loc = filepath.ToSlash(filepath.Clean(path))
	}
	loc = strings.TrimSuffix(loc, "/")
	if i := strings.LastIndexAny(loc, "/:"); i >= 0 {
		loc = loc[i+1:]
	}
	return strings.ToLower(strings.TrimSuffix(loc, ".git"))
}

func (l *Loader) toDomain(pf *PackageFile, dir string) (*domain.Manifest, error) {
	m := &domain.Manifest{Name: pf.Name, Path: dir}

	for _, p := range pf.Products {
		kind, _ := domain.ParseProductKind(p.Kind)
		m.Products = append(m.Products, domain.Product{Name: p.Name, Kind: kind, Targets: slices.Clone(p.Targets)})
	}

	for _, t := range pf.Targets {
		target := domain.Target{
			Name:         t.Name,
			Kind:         parseTargetKind(t.Kind),
			Path:         filepath.Join(dir, filepath.FromSlash(t.Path)),
			Dependencies: slices.Clone(t.Dependencies),
		}
		sources, err := l.sources(t, target.Path)
		if err != nil {
			return nil, zerr.With(err, "target", t.Name)
		}
		target.Sources = sources
		m.Targets = append(m.Targets, target)
	}

	for _, d := range pf.Dependencies {
		m.Dependencies = append(m.Dependencies, domain.DependencyRequirement{
			Identity: d.Identity,
			URL:      d.URL,
			Path:     d.Path,
			Revision: d.Revision,
		})
	}
	for _, a := range pf.Artifacts {
		m.Artifacts = append(m.Artifacts, domain.BinaryArtifact{Name: a.Name, URL: a.URL, Checksum: strings.ToLower(a.Checksum)})
	}
	return m, nil
}

// sources resolves explicit source patterns or discovers sources below the target directory.
func (l *Loader) sources(t TargetDTO, targetDir string) ([]string, error) {
	if len(t.Sources) > 0 {
		return l.resolver.ResolveInputs(t.Sources, targetDir)
	}
	return slices.Collect(l.walker.WalkExtensions(targetDir, SourceExtensions)), nil
}

func parseTargetKind(s string) domain.TargetKind {
	switch s {
	case domain.TargetExecutable.String():
		return domain.TargetExecutable
	case domain.TargetTest.String():
		return domain.TargetTest
	default:
		return domain.TargetRegular
	}
}
