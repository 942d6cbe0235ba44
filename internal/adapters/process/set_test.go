package process_test

import (
	"errors"
	"os"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pax/internal/adapters/process"
	"go.trai.ch/pax/internal/core/domain"
)

type fakeProcess struct {
	mu      sync.Mutex
	signals []os.Signal
	killed  bool
	onTerm  func()
}

func (p *fakeProcess) Signal(sig os.Signal) error {
	p.mu.Lock()
	p.signals = append(p.signals, sig)
	onTerm := p.onTerm
	p.mu.Unlock()
	if onTerm != nil {
		onTerm()
	}
	return nil
}

func (p *fakeProcess) Kill() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.killed = true
	return nil
}

func (p *fakeProcess) state() ([]os.Signal, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]os.Signal(nil), p.signals...), p.killed
}

func TestSet_Terminate_Empty(t *testing.T) {
	set := process.NewSetWithTimeout(time.Hour)

	done := make(chan struct{})
	go func() {
		set.Terminate()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Terminate on an empty set blocked")
	}
	assert.Equal(t, 0, set.Len())
}

func TestSet_Terminate_SignalsThenReturnsWhenDrained(t *testing.T) {
	set := process.NewSetWithTimeout(time.Hour)

	p := &fakeProcess{}
	p.onTerm = func() { go set.Remove(p) }
	require.NoError(t, set.Add(p))

	set.Terminate()

	signals, killed := p.state()
	assert.Equal(t, []os.Signal{syscall.SIGTERM}, signals)
	assert.False(t, killed)
	assert.Equal(t, 0, set.Len())
}

func TestSet_Terminate_KillsSurvivors(t *testing.T) {
	set := process.NewSetWithTimeout(10 * time.Millisecond)

	stubborn := &fakeProcess{}
	require.NoError(t, set.Add(stubborn))

	set.Terminate()

	signals, killed := stubborn.state()
	assert.Equal(t, []os.Signal{syscall.SIGTERM}, signals)
	assert.True(t, killed)
}

func TestSet_Terminate_Idempotent(t *testing.T) {
	set := process.NewSetWithTimeout(10 * time.Millisecond)

	p := &fakeProcess{}
	require.NoError(t, set.Add(p))

	set.Terminate()
	set.Terminate()

	signals, _ := p.state()
	assert.Len(t, signals, 1)
}

func TestSet_Add_AfterTerminate(t *testing.T) {
	set := process.NewSet()
	set.Terminate()

	late := &fakeProcess{}
	err := set.Add(late)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrProcessSetTerminated))
	_, killed := late.state()
	assert.True(t, killed)
	assert.Equal(t, 0, set.Len())
}

func TestSet_Remove_Unknown(t *testing.T) {
	set := process.NewSet()
	set.Remove(&fakeProcess{})
	assert.Equal(t, 0, set.Len())
}
