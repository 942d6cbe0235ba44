package metrics_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pax/internal/adapters/metrics"
	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/pax/internal/core/ports"
)

var _ ports.Metrics = (*metrics.PrometheusRecorder)(nil)

func TestPrometheusRecorder(t *testing.T) {
	pr := metrics.NewPrometheusRecorder(nil)

	pr.ObserveOperation("resolve", 150*time.Millisecond, nil)
	pr.ObserveOperation("build", 2*time.Second, errors.New("link failed"))
	pr.CountTask("Completed")
	pr.CountTask("Completed")
	pr.CountTask("Cached")
	pr.CountDownloadedBytes(1024)
	pr.CountDownloadedBytes(-5)

	mfs, err := pr.Registry().Gather()
	require.NoError(t, err)
	require.Len(t, mfs, 4)

	series := make(map[string]int, len(mfs))
	for _, mf := range mfs {
		series[mf.GetName()] = len(mf.GetMetric())
	}
	assert.Equal(t, 2, series["pax_build_tasks_total"])
	assert.Equal(t, 2, series["pax_operation_results_total"])
	assert.Equal(t, 1, series["pax_artifact_downloaded_bytes_total"])
}

func TestPrometheusRecorder_WriteTextfile(t *testing.T) {
	pr := metrics.NewPrometheusRecorder(nil)
	pr.CountTask("Failed")

	path := filepath.Join(t.TempDir(), "pax.prom")
	require.NoError(t, pr.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `pax_build_tasks_total{status="Failed"} 1`)
}

func TestPrometheusRecorder_WriteTextfile_Error(t *testing.T) {
	pr := metrics.NewPrometheusRecorder(nil)

	err := pr.WriteTextfile(filepath.Join(t.TempDir(), "missing", "pax.prom"))
	assert.True(t, errors.Is(err, domain.ErrMetricsWriteFailed))
}
