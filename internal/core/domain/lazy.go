package domain

import "sync"

// Lazy is a compute-once cell. The first call to Get runs the compute function;
// its value or its failure is kept and returned to every later caller.
type Lazy[T any] struct {
	once    sync.Once
	compute func() (T, error)
	value   T
	err     error
}

// NewLazy creates a cell resolved by compute on first access.
func NewLazy[T any](compute func() (T, error)) *Lazy[T] {
	return &Lazy[T]{compute: compute}
}

// Get resolves the cell if needed and returns the cached outcome.
func (l *Lazy[T]) Get() (T, error) {
	l.once.Do(func() {
		l.value, l.err = l.compute()
		l.compute = nil
	})
	return l.value, l.err
}
