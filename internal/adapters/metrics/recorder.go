// Package metrics records invocation metrics with Prometheus collectors.
package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/zerr"
)

const namespace = "pax"

// PrometheusRecorder implements ports.Metrics using Prometheus collectors.
type PrometheusRecorder struct {
	reg             *prom.Registry
	operationTime   *prom.HistogramVec
	operationResult *prom.CounterVec
	tasks           *prom.CounterVec
	downloadedBytes prom.Counter
}

// NewPrometheusRecorder constructs and registers the collectors on reg.
// A nil registry gets a fresh one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}

	pr := &PrometheusRecorder{
		reg: reg,
		operationTime: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of tool operations",
			Buckets:   prom.DefBuckets,
		}, []string{"operation"}),
		operationResult: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "operation_results_total",
			Help:      "Tool operation results by outcome",
		}, []string{"operation", "result"}),
		tasks: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_tasks_total",
			Help:      "Build tasks by terminal status",
		}, []string{"status"}),
		downloadedBytes: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "artifact_downloaded_bytes_total",
			Help:      "Bytes downloaded for binary artifacts",
		}),
	}
	reg.MustRegister(pr.operationTime, pr.operationResult, pr.tasks, pr.downloadedBytes)
	return pr
}

// Registry returns the registry the collectors are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.reg
}

// ObserveOperation records the duration and outcome of a tool operation.
func (p *PrometheusRecorder) ObserveOperation(name string, d time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "failed"
	}
	p.operationTime.WithLabelValues(name).Observe(d.Seconds())
	p.operationResult.WithLabelValues(name, result).Inc()
}

// CountTask records a build task reaching a terminal status.
func (p *PrometheusRecorder) CountTask(status string) {
	p.tasks.WithLabelValues(status).Inc()
}

// CountDownloadedBytes adds n to the downloaded bytes counter. Negative values are ignored.
func (p *PrometheusRecorder) CountDownloadedBytes(n int64) {
	if n <= 0 {
		return
	}
	p.downloadedBytes.Add(float64(n))
}

// WriteTextfile writes the gathered metrics to path.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.reg); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrMetricsWriteFailed, err.Error()), "path", path)
	}
	return nil
}
