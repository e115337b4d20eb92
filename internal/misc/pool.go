package misc

import "sync"

// Resetter is implemented by types that can wipe their state for reuse.
type Resetter interface {
	Reset()
}

// Pool is a typed sync.Pool for Resetter values. Put resets the value
// before parking it, so Get always returns a clean instance.
type Pool[T Resetter] struct {
	p sync.Pool
}

func NewPool[T Resetter](newFn func() T) *Pool[T] {
	pl := &Pool[T]{}
	pl.p.New = func() any {
		if newFn != nil {
			return newFn()
		}
		var zero T
		return zero
	}
	return pl
}

func (pl *Pool[T]) Get() T {
	if v, ok := pl.p.Get().(T); ok {
		return v
	}
	var zero T
	return zero
}

func (pl *Pool[T]) Put(v T) {
	v.Reset()
	pl.p.Put(v)
}
