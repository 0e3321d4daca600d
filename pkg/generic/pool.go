// Package generic provides small generic container helpers shared across
// the ECS runtime (scratch-buffer pooling for the spatial grid and the
// overlap-iteration holder path).
package generic

import "sync"

// Pool recycles values of type T to avoid per-call allocation on hot paths.
type Pool[T any] struct {
	pool sync.Pool
}

// NewPool builds a Pool whose New hook lazily constructs values.
func NewPool[T any](generate func() T) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any { return generate() },
		},
	}
}

// NewWarmPool is like NewPool but pre-seeds warmCount values up front.
func NewWarmPool[T any](generate func() T, warmCount int) *Pool[T] {
	p := NewPool(generate)
	for i := 0; i < warmCount; i++ {
		p.pool.Put(generate())
	}
	return p
}

func (p *Pool[T]) Get() T { return p.pool.Get().(T) }

func (p *Pool[T]) Put(value T) { p.pool.Put(value) }
