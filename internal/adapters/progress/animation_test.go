package progress_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/pax/internal/adapters/progress"
)

func TestPercentAnimation(t *testing.T) {
	var out bytes.Buffer
	a := progress.NewPercentAnimation(&out)

	a.Update(0, 400, "Downloading binary artifacts")
	a.Update(10, 400, "Downloading binary artifacts")
	a.Update(200, 400, "Downloading binary artifacts")
	a.Update(400, 400, "Downloading binary artifacts")
	a.Update(1, 0, "ignored")
	a.Complete(true)
	a.Update(400, 400, "Downloading binary artifacts")

	assert.Equal(t,
		"0% Downloading binary artifacts\n"+
			"50% Downloading binary artifacts\n"+
			"100% Downloading binary artifacts\n"+
			"100% Downloading binary artifacts\n",
		out.String())
}

func TestNinjaAnimation(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var out bytes.Buffer
	a := progress.NewNinjaAnimation(&out)

	a.Complete(true)
	assert.Empty(t, out.String())

	a.Update(1, 4, "Compiling")
	assert.Contains(t, out.String(), "[1/4] Compiling")
	assert.Contains(t, out.String(), "\r\x1b[2K")

	out.Reset()
	a.Clear()
	assert.Equal(t, "\r\x1b[2K", out.String())

	out.Reset()
	a.Update(4, 4, "Compiling")
	a.Complete(true)
	assert.True(t, bytes.HasSuffix(out.Bytes(), []byte("Compiling\n")))
}

func TestNewAnimation_NotTerminal(t *testing.T) {
	a := progress.NewAnimation(progress.NewSyncWriter(&bytes.Buffer{}))
	_, ok := a.(*progress.PercentAnimation)
	assert.True(t, ok)
}

func TestSyncWriter_WriteLines(t *testing.T) {
	var out bytes.Buffer
	w := progress.NewSyncWriter(&out)
	assert.Same(t, w, progress.NewSyncWriter(w))

	assert.NoError(t, w.WriteLines("a", "b"))
	assert.NoError(t, w.WriteLines())
	assert.Equal(t, "a\nb\n", out.String())
}
