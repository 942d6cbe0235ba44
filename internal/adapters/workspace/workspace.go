// Package workspace materializes the dependencies of a root package and loads its package graph.
package workspace

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/pax/internal/core/ports"
	"go.trai.ch/zerr"
)

// Workspace implements ports.Workspace for one root package.
type Workspace struct {
	root       string
	statePath  string
	checkouts  string
	artifacts  string
	loader     ports.ManifestLoader
	delegate   ports.WorkspaceDelegate
	diag       *domain.Diagnostics
	repos      *Repositories
	downloader *Downloader
	logger     ports.Logger
	resolved   bool
}

// Option configures a Workspace.
type Option func(*options)

type options struct {
	client *http.Client
}

// WithHTTPClient sets the client binary artifacts are downloaded with.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) { o.client = client }
}

// New creates a workspace for cfg.Root. The netrc file is read immediately.
func New(cfg ports.WorkspaceConfig, metrics ports.Metrics, logger ports.Logger, opts ...Option) (*Workspace, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	netrc, err := LoadNetrc(cfg.NetrcPath)
	if err != nil {
		return nil, err
	}

	diag := cfg.Diagnostics
	if diag == nil {
		diag = domain.NewDiagnostics()
	}

	return &Workspace{
		root:       cfg.Root,
		statePath:  domain.WorkspaceStatePath(cfg.Root),
		checkouts:  domain.CheckoutsPath(cfg.Root),
		artifacts:  domain.ArtifactsPath(cfg.Root),
		loader:     cfg.ManifestLoader,
		delegate:   cfg.Delegate,
		diag:       diag,
		repos:      NewRepositories(cfg.CachePath, netrc),
		downloader: NewDownloader(o.client, netrc, cfg.Delegate, metrics, diag),
		logger:     logger,
	}, nil
}

// Resolve materializes every dependency reachable from the root package, downloads
// binary artifacts and records the result in the workspace state.
// Failures of individual dependencies are reported as diagnostics.
func (w *Workspace) Resolve(ctx context.Context) error {
	return w.resolve(ctx, "an explicit resolve was requested")
}

// EditedDependencies returns the dependencies the user took over for editing.
func (w *Workspace) EditedDependencies() ([]domain.ManagedDependency, error) {
	state, _, err := LoadState(w.statePath)
	if err != nil {
		return nil, err
	}
	return state.Edited(), nil
}

func (w *Workspace) resolve(ctx context.Context, reason string) error {
	state, _, err := LoadState(w.statePath)
	if err != nil {
		return err
	}

	w.delegate.WillResolveDependencies(reason)

	root, err := w.loader.Load(ctx, w.root)
	if err != nil {
		return zerr.Wrap(err, "failed to load root manifest")
	}

	r := newResolution(w, state)
	artifacts := artifactsOf(rootIdentity(root), root)
	level := requirementsOf(w.root, root)
	for len(level) > 0 {
		next, found, err := r.resolveLevel(ctx, level)
		if err != nil {
			return err
		}
		level = next
		artifacts = append(artifacts, found...)
	}

	if removed := r.prune(); !r.changed && !r.failed && !removed {
		w.delegate.DependenciesUpToDate()
	}

	if err := w.downloader.DownloadAll(ctx, w.artifacts, artifacts); err != nil {
		return zerr.Wrap(err, "artifact download interrupted")
	}

	if err := SaveState(w.statePath, state); err != nil {
		return err
	}
	w.resolved = true
	w.logger.Debug(fmt.Sprintf("resolved %s with %d managed dependencies", root.Name, len(state.Dependencies)))
	return nil
}

func rootIdentity(m *domain.Manifest) string {
	return strings.ToLower(m.Name)
}

// requirement is a dependency together with the directory of the package declaring it.
type requirement struct {
	dir string
	dep domain.DependencyRequirement
}

func requirementsOf(dir string, m *domain.Manifest) []requirement {
	reqs := make([]requirement, 0, len(m.Dependencies))
	for _, dep := range m.Dependencies {
		reqs = append(reqs, requirement{dir: dir, dep: dep})
	}
	return reqs
}

func artifactsOf(pkg string, m *domain.Manifest) []Artifact {
	out := make([]Artifact, 0, len(m.Artifacts))
	for _, a := range m.Artifacts {
		out = append(out, Artifact{Package: pkg, BinaryArtifact: a})
	}
	return out
}

func localPath(dir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(dir, path)
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
