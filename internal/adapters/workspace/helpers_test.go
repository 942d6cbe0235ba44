package workspace_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/pax/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// recordingDelegate records workspace events as short strings.
type recordingDelegate struct {
	mu        sync.Mutex
	events    []string
	downloads []int64
}

func (d *recordingDelegate) add(format string, args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, fmt.Sprintf(format, args...))
}

func (d *recordingDelegate) Events() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.events...)
}

func (d *recordingDelegate) WillFetch(url string) { d.add("will-fetch %s", url) }
func (d *recordingDelegate) FetchingWillBegin(url string, fromCache bool) {
	d.add("fetching %s cache=%t", url, fromCache)
}

func (d *recordingDelegate) DidFetch(url string, fromCache bool, err error, _ time.Duration) {
	d.add("did-fetch %s cache=%t failed=%t", url, fromCache, err != nil)
}
func (d *recordingDelegate) WillClone(url string)                 { d.add("will-clone %s", url) }
func (d *recordingDelegate) DidClone(url string, _ time.Duration) { d.add("did-clone %s", url) }
func (d *recordingDelegate) WillCheckout(identity, revision string) {
	d.add("will-checkout %s %s", identity, revision)
}

func (d *recordingDelegate) DidCheckout(identity, revision string, _ time.Duration) {
	d.add("did-checkout %s %s", identity, revision)
}
func (d *recordingDelegate) WillUpdate(url string)                 { d.add("will-update %s", url) }
func (d *recordingDelegate) DidUpdate(url string, _ time.Duration) { d.add("did-update %s", url) }
func (d *recordingDelegate) DependenciesUpToDate()                 { d.add("up-to-date") }
func (d *recordingDelegate) WillResolveDependencies(reason string) {
	d.add("resolve because %s", reason)
}

func (d *recordingDelegate) DidCreateWorkingCopy(identity, _ string) {
	d.add("working-copy %s", identity)
}
func (d *recordingDelegate) RemovedDependency(identity string) { d.add("removed %s", identity) }
func (d *recordingDelegate) WillComputeVersion(identity, _ string) {
	d.add("will-compute %s", identity)
}

func (d *recordingDelegate) DidComputeVersion(identity, _, version string, _ time.Duration) {
	d.add("version %s %s", identity, version)
}

func (d *recordingDelegate) DownloadingBinaryArtifact(_ string, downloaded, _ int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.downloads = append(d.downloads, downloaded)
}
func (d *recordingDelegate) DidDownloadBinaryArtifacts() { d.add("downloads-done") }

// fakeLoader serves manifests by directory.
type fakeLoader struct {
	mu        sync.Mutex
	manifests map[string]*domain.Manifest
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{manifests: make(map[string]*domain.Manifest)}
}

func (l *fakeLoader) Set(dir string, m *domain.Manifest) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.manifests[filepath.Clean(dir)] = m
}

func (l *fakeLoader) Load(_ context.Context, dir string) (*domain.Manifest, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.manifests[filepath.Clean(dir)]
	if !ok {
		return nil, domain.ErrManifestNotFound
	}
	return m, nil
}

func quietLogger(ctrl *gomock.Controller) *mocks.MockLogger {
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	return log
}

func anyMetrics(ctrl *gomock.Controller) *mocks.MockMetrics {
	m := mocks.NewMockMetrics(ctrl)
	m.EXPECT().CountDownloadedBytes(gomock.Any()).AnyTimes()
	return m
}

// newRemote creates a repository with one commit per file content and returns its path.
func newRemote(t *testing.T, contents ...string) (string, *git.Repository, []plumbing.Hash) {
	t.Helper()
	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	var hashes []plumbing.Hash
	for _, c := range contents {
		hashes = append(hashes, commitFile(t, repo, dir, "VERSION", c))
	}
	return dir, repo, hashes
}

func commitFile(t *testing.T, repo *git.Repository, dir, name, content string) plumbing.Hash {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(name)
	require.NoError(t, err)

	hash, err := wt.Commit("update "+name, &git.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "t@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return hash
}
