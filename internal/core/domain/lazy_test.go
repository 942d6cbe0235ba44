package domain_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pax/internal/core/domain"
)

func TestLazy_ComputesOnce(t *testing.T) {
	var calls atomic.Int32
	cell := domain.NewLazy(func() (int, error) {
		calls.Add(1)
		return 42, nil
	})

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := cell.Get()
			assert.NoError(t, err)
			assert.Equal(t, 42, v)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestLazy_CachesFailure(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	cell := domain.NewLazy(func() (string, error) {
		calls++
		return "", boom
	})

	_, err1 := cell.Get()
	_, err2 := cell.Get()

	require.ErrorIs(t, err1, boom)
	require.ErrorIs(t, err2, boom)
	assert.Same(t, err1, err2)
	assert.Equal(t, 1, calls)
}
