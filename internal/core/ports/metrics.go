package ports

import "time"

// Metrics records invocation metrics.
//
//go:generate mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// ObserveOperation records the duration and outcome of a tool operation.
	ObserveOperation(name string, d time.Duration, err error)
	// CountTask records a build task reaching a terminal status.
	CountTask(status string)
	// CountDownloadedBytes adds to the number of bytes downloaded for binary artifacts.
	CountDownloadedBytes(n int64)
	// WriteTextfile writes the gathered metrics to path in the text exposition format.
	WriteTextfile(path string) error
}
