package workspace

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/opencontainers/go-digest"
	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/pax/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const (
	httpClientTimeout   = 5 * time.Minute
	downloadConcurrency = 4
)

// Artifact is a binary artifact together with the package that declares it.
type Artifact struct {
	Package string
	domain.BinaryArtifact
}

// Downloader fetches binary artifacts and verifies their checksums.
type Downloader struct {
	client   *http.Client
	netrc    *Netrc
	delegate ports.WorkspaceDelegate
	metrics  ports.Metrics
	diag     *domain.Diagnostics
}

// NewDownloader creates a Downloader. A nil client uses a client with a default timeout.
func NewDownloader(
	client *http.Client,
	netrc *Netrc,
	delegate ports.WorkspaceDelegate,
	metrics ports.Metrics,
	diag *domain.Diagnostics,
) *Downloader {
	if client == nil {
		client = &http.Client{Timeout: httpClientTimeout}
	}
	return &Downloader{client: client, netrc: netrc, delegate: delegate, metrics: metrics, diag: diag}
}

// ArtifactPath returns where an artifact is stored below dir.
func ArtifactPath(dir string, a Artifact) string {
	name := a.Name
	if u, err := url.Parse(a.URL); err == nil {
		if ext := path.Ext(u.Path); ext != "" {
			name += ext
		}
	}
	return filepath.Join(dir, a.Package, name)
}

// DownloadAll downloads every artifact not already present with a matching checksum.
// Individual failures are reported as diagnostics. The returned error is only set when
// ctx is cancelled.
func (d *Downloader) DownloadAll(ctx context.Context, dir string, artifacts []Artifact) error {
	if len(artifacts) == 0 {
		return nil
	}

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(downloadConcurrency)

	for _, a := range artifacts {
		g.Go(func() error {
			dest := ArtifactPath(dir, a)
			if verifyExisting(dest, a.Checksum) {
				return nil
			}
			if err := d.download(groupCtx, a, dest); err != nil {
				if groupCtx.Err() != nil {
					return groupCtx.Err()
				}
				d.diag.Error(err, a.URL)
			}
			return nil
		})
	}

	err := g.Wait()
	d.delegate.DidDownloadBinaryArtifacts()
	return err
}

func verifyExisting(dest, checksum string) bool {
	//nolint:gosec // dest is derived from the artifacts directory
	f, err := os.Open(dest)
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	actual, err := digest.SHA256.FromReader(f)
	return err == nil && actual.Encoded() == checksum
}

func (d *Downloader) download(ctx context.Context, a Artifact, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.URL, http.NoBody)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrArtifactDownloadFailed, err.Error()), "url", a.URL)
	}
	if creds, ok := d.netrc.Lookup(req.URL.Hostname()); ok {
		req.SetBasicAuth(creds.Login, creds.Password)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrArtifactDownloadFailed, err.Error()), "url", a.URL)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		failed := zerr.With(zerr.Wrap(domain.ErrArtifactDownloadFailed, "unexpected status"), "url", a.URL)
		return zerr.With(failed, "status_code", resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(dest), domain.DirPerm); err != nil {
		return zerr.Wrap(domain.ErrArtifactDownloadFailed, err.Error())
	}
	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+"-*.part")
	if err != nil {
		return zerr.Wrap(domain.ErrArtifactDownloadFailed, err.Error())
	}
	tmpName := tmp.Name()
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	digester := digest.SHA256.Digester()
	progress := &progressWriter{url: a.URL, total: resp.ContentLength, delegate: d.delegate}
	n, err := io.Copy(io.MultiWriter(tmp, digester.Hash(), progress), resp.Body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	d.metrics.CountDownloadedBytes(n)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrArtifactDownloadFailed, err.Error()), "url", a.URL)
	}

	if actual := digester.Digest().Encoded(); actual != strings.ToLower(a.Checksum) {
		mismatch := zerr.With(zerr.Wrap(domain.ErrArtifactChecksumMismatch, a.Name), "expected", a.Checksum)
		return zerr.With(mismatch, "actual", actual)
	}

	if err := os.Rename(tmpName, dest); err != nil {
		return zerr.Wrap(domain.ErrArtifactDownloadFailed, err.Error())
	}
	return nil
}

// progressWriter reports the running byte count of one download.
type progressWriter struct {
	url      string
	total    int64
	written  int64
	delegate ports.WorkspaceDelegate
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.written += int64(len(p))
	w.delegate.DownloadingBinaryArtifact(w.url, w.written, w.total)
	return len(p), nil
}
