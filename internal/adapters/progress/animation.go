package progress

import (
	"fmt"
	"io"

	"go.trai.ch/pax/internal/core/ports"
	"go.trai.ch/pax/internal/ui/output"
	"go.trai.ch/pax/internal/ui/style"
)

const clearLine = "\r\x1b[2K"

// NinjaAnimation redraws a single "[step/total] text" line in place.
type NinjaAnimation struct {
	w     io.Writer
	drawn bool
}

// NewNinjaAnimation creates an in-place animation on a terminal writer.
func NewNinjaAnimation(w io.Writer) *NinjaAnimation {
	return &NinjaAnimation{w: w}
}

// Update redraws the line.
func (a *NinjaAnimation) Update(step, total int64, text string) {
	line := style.Faint.Render(fmt.Sprintf("[%d/%d]", step, total)) + " " + text
	_, _ = io.WriteString(a.w, clearLine+line)
	a.drawn = true
}

// Complete moves past the drawn line.
func (a *NinjaAnimation) Complete(_ bool) {
	if a.drawn {
		_, _ = io.WriteString(a.w, "\n")
	}
	a.drawn = false
}

// Clear erases the drawn line.
func (a *NinjaAnimation) Clear() {
	if a.drawn {
		_, _ = io.WriteString(a.w, clearLine)
	}
	a.drawn = false
}

// PercentAnimation prints one line per tenth of progress, for writers that are not terminals.
type PercentAnimation struct {
	w          io.Writer
	lastBucket int64
	text       string
}

// NewPercentAnimation creates a line based animation.
func NewPercentAnimation(w io.Writer) *PercentAnimation {
	return &PercentAnimation{w: w, lastBucket: -1}
}

// Update prints a line when the progress crossed into a new tenth or the text changed.
func (a *PercentAnimation) Update(step, total int64, text string) {
	if total <= 0 {
		return
	}
	bucket := min(step*10/total, 10)
	if bucket == a.lastBucket && text == a.text {
		return
	}
	a.lastBucket = bucket
	a.text = text
	_, _ = fmt.Fprintf(a.w, "%d%% %s\n", bucket*10, text)
}

// Complete resets the animation.
func (a *PercentAnimation) Complete(_ bool) {
	a.lastBucket = -1
	a.text = ""
}

// Clear resets the animation.
func (a *PercentAnimation) Clear() {
	a.Complete(false)
}

// NewAnimation picks the animation matching w: in-place on terminals, line based otherwise.
func NewAnimation(w io.Writer) ports.ProgressAnimation {
	target := w
	if sw, ok := w.(*SyncWriter); ok {
		target = sw.Unwrap()
	}
	if output.IsTerminal(target) {
		return NewNinjaAnimation(w)
	}
	return NewPercentAnimation(w)
}
