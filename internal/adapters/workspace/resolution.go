package workspace

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const shortHashLen = 8

// resolution is one pass over the dependency graph. The state is only touched while mu is held.
type resolution struct {
	ws      *Workspace
	mu      sync.Mutex
	state   *domain.WorkspaceState
	seen    map[string]bool
	changed bool
	failed  bool
}

func newResolution(ws *Workspace, state *domain.WorkspaceState) *resolution {
	return &resolution{ws: ws, state: state, seen: make(map[string]bool)}
}

// resolveLevel materializes the requirements of one breadth-first level concurrently and
// returns the requirements and artifacts of the packages it loaded.
func (r *resolution) resolveLevel(ctx context.Context, level []requirement) ([]requirement, []Artifact, error) {
	var (
		mu        sync.Mutex
		next      []requirement
		artifacts []Artifact
	)

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(downloadConcurrency)

	for _, req := range level {
		if r.markSeen(req.dep.Identity) {
			continue
		}
		g.Go(func() error {
			path, err := r.materialize(groupCtx, req)
			if err != nil {
				if groupCtx.Err() != nil {
					return groupCtx.Err()
				}
				r.fail(err, location(req.dep))
				return nil
			}

			m, err := r.ws.loader.Load(groupCtx, path)
			if err != nil {
				if groupCtx.Err() != nil {
					return groupCtx.Err()
				}
				r.fail(err, req.dep.Identity)
				return nil
			}

			mu.Lock()
			next = append(next, requirementsOf(path, m)...)
			artifacts = append(artifacts, artifactsOf(req.dep.Identity, m)...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, zerr.Wrap(err, "dependency resolution interrupted")
	}
	return next, artifacts, nil
}

func location(dep domain.DependencyRequirement) string {
	if dep.URL != "" {
		return dep.URL
	}
	return dep.Identity
}

func (r *resolution) fail(err error, location string) {
	r.mu.Lock()
	r.failed = true
	r.mu.Unlock()
	r.ws.diag.Error(err, location)
}

// markSeen records identity and reports whether it was already seen.
func (r *resolution) markSeen(identity string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seen[identity] {
		return true
	}
	r.seen[identity] = true
	return false
}

func (r *resolution) lookup(identity string) (domain.ManagedDependency, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.Dependency(identity)
}

func (r *resolution) record(dep domain.ManagedDependency, changed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Upsert(dep)
	if changed {
		r.changed = true
	}
}

// materialize makes the dependency available on disk and returns its directory.
func (r *resolution) materialize(ctx context.Context, req requirement) (string, error) {
	dep := req.dep
	prev, known := r.lookup(dep.Identity)

	if known && prev.State == domain.DependencyEdited {
		if !dirExists(prev.Path) {
			return "", zerr.With(zerr.Wrap(domain.ErrMissingDependency, "edited dependency directory is missing"), "path", prev.Path)
		}
		return prev.Path, nil
	}

	if dep.IsLocal() {
		path := localPath(req.dir, dep.Path)
		if !dirExists(path) {
			return "", zerr.With(zerr.Wrap(domain.ErrMissingDependency, "local dependency directory is missing"), "path", path)
		}
		changed := !known || prev.Path != path || prev.State != domain.DependencyLocal
		r.record(domain.ManagedDependency{Identity: dep.Identity, Path: path, State: domain.DependencyLocal}, changed)
		return path, nil
	}

	return r.checkout(ctx, dep, prev, known)
}

func (r *resolution) checkout(
	ctx context.Context,
	dep domain.DependencyRequirement,
	prev domain.ManagedDependency,
	known bool,
) (string, error) {
	ws := r.ws
	mirror := ws.repos.MirrorPath(dep.Identity, dep.URL)

	ws.delegate.WillFetch(dep.URL)
	fromCache := dirExists(mirror)
	ws.delegate.FetchingWillBegin(dep.URL, fromCache)
	start := time.Now()
	_, err := ws.repos.Fetch(ctx, mirror, dep.URL)
	ws.delegate.DidFetch(dep.URL, fromCache, err, time.Since(start))
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrDependencyFetchFailed, err.Error()), "identity", dep.Identity)
	}

	hash, err := ws.repos.ResolveRevision(mirror, dep.Revision)
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrDependencyFetchFailed, err.Error()), "identity", dep.Identity)
	}
	revision := hash.String()

	path := filepath.Join(ws.checkouts, dep.Identity)
	created := false
	switch {
	case !dirExists(path):
		ws.delegate.WillClone(dep.URL)
		start = time.Now()
		if err := ws.repos.CreateWorkingCopy(ctx, mirror, path); err != nil {
			return "", zerr.With(zerr.Wrap(domain.ErrDependencyFetchFailed, err.Error()), "identity", dep.Identity)
		}
		ws.delegate.DidClone(dep.URL, time.Since(start))
		ws.delegate.DidCreateWorkingCopy(dep.Identity, path)
		created = true
	case !known || prev.Revision != revision:
		ws.delegate.WillUpdate(dep.URL)
		start = time.Now()
		if err := ws.repos.UpdateWorkingCopy(ctx, path); err != nil {
			return "", zerr.With(zerr.Wrap(domain.ErrDependencyFetchFailed, err.Error()), "identity", dep.Identity)
		}
		ws.delegate.DidUpdate(dep.URL, time.Since(start))
	}

	changed := created || !known || prev.Revision != revision || prev.Path != path
	if changed {
		label := dep.Revision
		if label == "" {
			label = revision[:shortHashLen]
		}
		ws.delegate.WillCheckout(dep.Identity, label)
		start = time.Now()
		if err := ws.repos.Checkout(path, hash); err != nil {
			return "", zerr.With(zerr.Wrap(domain.ErrDependencyFetchFailed, err.Error()), "identity", dep.Identity)
		}
		ws.delegate.DidCheckout(dep.Identity, label, time.Since(start))

		ws.delegate.WillComputeVersion(dep.Identity, dep.URL)
		start = time.Now()
		version := revision[:shortHashLen]
		if ws.repos.IsTag(mirror, dep.Revision) {
			version = dep.Revision
		}
		ws.delegate.DidComputeVersion(dep.Identity, dep.URL, version, time.Since(start))
	}

	r.record(domain.ManagedDependency{
		Identity: dep.Identity,
		URL:      dep.URL,
		Path:     path,
		State:    domain.DependencyCheckout,
		Revision: revision,
	}, changed)
	return path, nil
}

// prune drops managed dependencies no longer reachable from the root package. Edited
// dependencies are kept. It reports whether anything was removed.
func (r *resolution) prune() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := false
	for _, dep := range append([]domain.ManagedDependency(nil), r.state.Dependencies...) {
		if r.seen[dep.Identity] || dep.State == domain.DependencyEdited {
			continue
		}
		if dep.State == domain.DependencyCheckout {
			if err := os.RemoveAll(dep.Path); err != nil {
				r.ws.diag.Warning("failed to remove checkout: "+err.Error(), dep.Identity)
			}
		}
		r.state.Remove(dep.Identity)
		r.ws.delegate.RemovedDependency(dep.Identity)
		removed = true
	}
	return removed
}
