package workspace_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pax/internal/adapters/workspace"
	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/pax/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const artifactBody = "prebuilt archive contents"

func artifactServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/lib.zip":
			_, _ = w.Write([]byte(artifactBody))
		case "/private.zip":
			user, pass, ok := r.BasicAuth()
			if !ok || user != "ci" || pass != "token" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(artifactBody))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func bodyChecksum() string {
	return digest.FromString(artifactBody).Encoded()
}

func TestDownloadAll_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	srv := artifactServer(t)

	metrics := mocks.NewMockMetrics(ctrl)
	metrics.EXPECT().CountDownloadedBytes(int64(len(artifactBody))).Times(1)

	delegate := &recordingDelegate{}
	diag := domain.NewDiagnostics()
	d := workspace.NewDownloader(srv.Client(), nil, delegate, metrics, diag)

	dir := t.TempDir()
	a := workspace.Artifact{Package: "app", BinaryArtifact: domain.BinaryArtifact{
		Name: "Lib", URL: srv.URL + "/lib.zip", Checksum: bodyChecksum(),
	}}
	require.NoError(t, d.DownloadAll(context.Background(), dir, []workspace.Artifact{a}))

	assert.False(t, diag.HasErrors())
	assert.Equal(t, filepath.Join(dir, "app", "Lib.zip"), workspace.ArtifactPath(dir, a))

	data, err := os.ReadFile(workspace.ArtifactPath(dir, a))
	require.NoError(t, err)
	assert.Equal(t, artifactBody, string(data))

	require.NotEmpty(t, delegate.downloads)
	assert.Equal(t, int64(len(artifactBody)), delegate.downloads[len(delegate.downloads)-1])
	assert.Equal(t, []string{"downloads-done"}, delegate.Events())
}

func TestDownloadAll_SkipsVerifiedFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	metrics := mocks.NewMockMetrics(ctrl)

	delegate := &recordingDelegate{}
	diag := domain.NewDiagnostics()
	d := workspace.NewDownloader(nil, nil, delegate, metrics, diag)

	dir := t.TempDir()
	a := workspace.Artifact{Package: "app", BinaryArtifact: domain.BinaryArtifact{
		Name: "Lib", URL: "http://127.0.0.1:1/lib.zip", Checksum: bodyChecksum(),
	}}
	dest := workspace.ArtifactPath(dir, a)
	require.NoError(t, os.MkdirAll(filepath.Dir(dest), 0o755))
	require.NoError(t, os.WriteFile(dest, []byte(artifactBody), 0o600))

	require.NoError(t, d.DownloadAll(context.Background(), dir, []workspace.Artifact{a}))
	assert.False(t, diag.HasErrors())
	assert.Empty(t, delegate.downloads)
}

func TestDownloadAll_Failures(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		checksum string
	}{
		{name: "not found", path: "/missing.zip", checksum: bodyChecksum()},
		{name: "checksum mismatch", path: "/lib.zip", checksum: strings.Repeat("0", 64)},
		{name: "unauthorized", path: "/private.zip", checksum: bodyChecksum()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			srv := artifactServer(t)

			delegate := &recordingDelegate{}
			diag := domain.NewDiagnostics()
			d := workspace.NewDownloader(srv.Client(), nil, delegate, anyMetrics(ctrl), diag)

			dir := t.TempDir()
			a := workspace.Artifact{Package: "app", BinaryArtifact: domain.BinaryArtifact{
				Name: "Lib", URL: srv.URL + tt.path, Checksum: tt.checksum,
			}}
			require.NoError(t, d.DownloadAll(context.Background(), dir, []workspace.Artifact{a}))

			all := diag.All()
			require.Len(t, all, 1)
			assert.Equal(t, domain.SeverityError, all[0].Severity)
			assert.Equal(t, a.URL, all[0].Location)
			assert.NoFileExists(t, workspace.ArtifactPath(dir, a))
			assert.Equal(t, []string{"downloads-done"}, delegate.Events())
		})
	}
}

func TestDownloadAll_NetrcCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	srv := artifactServer(t)

	netrc := loadNetrc(t, "machine 127.0.0.1 login ci password token\n")

	diag := domain.NewDiagnostics()
	d := workspace.NewDownloader(srv.Client(), netrc, &recordingDelegate{}, anyMetrics(ctrl), diag)

	dir := t.TempDir()
	a := workspace.Artifact{Package: "app", BinaryArtifact: domain.BinaryArtifact{
		Name: "Private", URL: srv.URL + "/private.zip", Checksum: bodyChecksum(),
	}}
	require.NoError(t, d.DownloadAll(context.Background(), dir, []workspace.Artifact{a}))

	assert.False(t, diag.HasErrors())
	assert.FileExists(t, workspace.ArtifactPath(dir, a))
}

func TestDownloadAll_Empty(t *testing.T) {
	d := workspace.NewDownloader(nil, nil, &recordingDelegate{}, nil, domain.NewDiagnostics())
	require.NoError(t, d.DownloadAll(context.Background(), t.TempDir(), nil))
}
