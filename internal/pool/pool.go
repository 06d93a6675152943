// Package pool provides typed object pools with allocation/release hooks,
// wrapping sync.Pool (spec §4.6 Object pool).
package pool

import "sync"

// Pool recycles values of type T. New is mandatory; OnAcquire and OnRelease
// are optional lifecycle hooks run on the recycled (or freshly allocated)
// value when it leaves or re-enters the pool.
type Pool[T any] struct {
	inner     sync.Pool
	onAcquire func(*T)
	onRelease func(*T)
}

// New creates a Pool. newFn must return a ready-to-use zero value; it is
// called by the underlying sync.Pool whenever it has nothing to recycle.
func New[T any](newFn func() *T, onAcquire, onRelease func(*T)) *Pool[T] {
	p := &Pool[T]{onAcquire: onAcquire, onRelease: onRelease}
	p.inner.New = func() any { return newFn() }
	return p
}

// Acquire takes a value from the pool, running OnAcquire if set.
func (p *Pool[T]) Acquire() *T {
	v := p.inner.Get().(*T)
	if p.onAcquire != nil {
		p.onAcquire(v)
	}
	return v
}

// Release returns a value to the pool, running OnRelease if set. Callers
// must not use v after calling Release.
func (p *Pool[T]) Release(v *T) {
	if p.onRelease != nil {
		p.onRelease(v)
	}
	p.inner.Put(v)
}
