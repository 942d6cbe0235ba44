package workspace

import (
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/zerr"
)

const repositoriesDirName = "repositories"

// Repositories fetches dependency repositories into a shared mirror cache and
// materializes working copies from it.
type Repositories struct {
	cacheDir string
	netrc    *Netrc
}

// NewRepositories creates a repository provider mirroring into cachePath.
func NewRepositories(cachePath string, netrc *Netrc) *Repositories {
	return &Repositories{
		cacheDir: filepath.Join(cachePath, repositoriesDirName),
		netrc:    netrc,
	}
}

// MirrorPath returns the cache location of the repository at remote.
func (r *Repositories) MirrorPath(identity, remote string) string {
	return filepath.Join(r.cacheDir, identity+"-"+strconv.FormatUint(xxhash.Sum64String(remote), 16))
}

// Fetch updates the mirror of remote, cloning it when missing. The boolean reports
// whether a mirror already existed.
func (r *Repositories) Fetch(ctx context.Context, mirror, remote string) (bool, error) {
	auth := r.auth(remote)

	if _, err := os.Stat(mirror); err == nil {
		repo, err := git.PlainOpen(mirror)
		if err != nil {
			return true, zerr.With(zerr.Wrap(err, "failed to open repository mirror"), "path", mirror)
		}
		err = repo.FetchContext(ctx, &git.FetchOptions{
			RemoteName: git.DefaultRemoteName,
			RefSpecs:   []gitconfig.RefSpec{"+refs/heads/*:refs/heads/*", "+refs/tags/*:refs/tags/*"},
			Tags:       git.AllTags,
			Auth:       auth,
			Force:      true,
		})
		if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
			return true, zerr.With(zerr.Wrap(err, "fetch"), "url", remote)
		}
		return true, nil
	}

	if err := os.MkdirAll(filepath.Dir(mirror), domain.DirPerm); err != nil {
		return false, zerr.Wrap(err, "failed to create repository cache")
	}
	_, err := git.PlainCloneContext(ctx, mirror, true, &git.CloneOptions{
		URL:    remote,
		Auth:   auth,
		Mirror: true,
		Tags:   git.AllTags,
	})
	if err != nil {
		_ = os.RemoveAll(mirror)
		return false, zerr.With(zerr.Wrap(err, "clone"), "url", remote)
	}
	return false, nil
}

// ResolveRevision resolves revision in the mirror. An empty revision resolves to the
// default branch.
func (r *Repositories) ResolveRevision(mirror, revision string) (plumbing.Hash, error) {
	repo, err := git.PlainOpen(mirror)
	if err != nil {
		return plumbing.ZeroHash, zerr.With(zerr.Wrap(err, "failed to open repository mirror"), "path", mirror)
	}

	if revision == "" {
		head, err := repo.Head()
		if err != nil {
			return plumbing.ZeroHash, zerr.Wrap(err, "failed to resolve default branch")
		}
		return head.Hash(), nil
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return plumbing.ZeroHash, zerr.With(zerr.Wrap(err, "unknown revision"), "revision", revision)
	}
	return *hash, nil
}

// IsTag reports whether revision names a tag of the mirror.
func (r *Repositories) IsTag(mirror, revision string) bool {
	if revision == "" {
		return false
	}
	repo, err := git.PlainOpen(mirror)
	if err != nil {
		return false
	}
	_, err = repo.Tag(revision)
	return err == nil
}

// CreateWorkingCopy clones the mirror into path without checking out files.
func (r *Repositories) CreateWorkingCopy(ctx context.Context, mirror, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create checkouts directory")
	}
	_, err := git.PlainCloneContext(ctx, path, false, &git.CloneOptions{
		URL:        mirror,
		NoCheckout: true,
		Tags:       git.AllTags,
	})
	if err != nil {
		_ = os.RemoveAll(path)
		return zerr.With(zerr.Wrap(err, "failed to create working copy"), "path", path)
	}
	return nil
}

// UpdateWorkingCopy fetches the mirror's refs into the working copy at path.
func (r *Repositories) UpdateWorkingCopy(ctx context.Context, path string) error {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open working copy"), "path", path)
	}
	err = repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: git.DefaultRemoteName,
		RefSpecs:   []gitconfig.RefSpec{"+refs/heads/*:refs/remotes/origin/*"},
		Tags:       git.AllTags,
		Force:      true,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return zerr.With(zerr.Wrap(err, "failed to update working copy"), "path", path)
	}
	return nil
}

// Checkout detaches the working copy at path onto hash.
func (r *Repositories) Checkout(path string, hash plumbing.Hash) error {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open working copy"), "path", path)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return zerr.Wrap(err, "worktree")
	}
	if err := wt.Checkout(&git.CheckoutOptions{Hash: hash, Force: true}); err != nil {
		return zerr.With(zerr.Wrap(err, "checkout"), "revision", hash.String())
	}
	return nil
}

// auth returns netrc credentials for http remotes.
func (r *Repositories) auth(remote string) transport.AuthMethod {
	if r.netrc == nil {
		return nil
	}
	u, err := url.Parse(remote)
	if err != nil || !strings.HasPrefix(u.Scheme, "http") {
		return nil
	}
	creds, ok := r.netrc.Lookup(u.Hostname())
	if !ok {
		return nil
	}
	return &githttp.BasicAuth{Username: creds.Login, Password: creds.Password}
}
