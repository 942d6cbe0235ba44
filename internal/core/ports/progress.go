package ports

// ProgressAnimation renders a single progress indicator.
//
//go:generate mockgen -source=progress.go -destination=mocks/mock_progress.go -package=mocks
type ProgressAnimation interface {
	// Update redraws the indicator at step out of total with a trailing text.
	Update(step, total int64, text string)
	// Complete finishes the indicator.
	Complete(success bool)
	// Clear removes the indicator from the output.
	Clear()
}
