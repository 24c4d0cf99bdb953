// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Package pool implements a checkout pool for reusable values.
package pool

import (
	"sync"
	"sync/atomic"
)

// A Pool holds values of type T that may be checked out, used exclusively,
// and released for reuse. A Pool is safe for concurrent use by multiple
// goroutines. A value returned by Get is not handed to any other caller
// until it has been released by Put.
type Pool[T any] struct {
	create func() T
	reset  func(T)
	p      sync.Pool

	gets, news atomic.Int64
}

// New constructs a pool that allocates new values with create, and that
// calls reset on each value released to the pool before it becomes available
// for reuse. Both functions must be non-nil.
func New[T any](create func() T, reset func(T)) *Pool[T] {
	if create == nil || reset == nil {
		panic("pool: create and reset must be non-nil")
	}
	p := &Pool[T]{create: create, reset: reset}
	p.p.New = func() any {
		p.news.Add(1)
		return p.create()
	}
	return p
}

// Get checks out a value from p, allocating a new one if none is available.
func (p *Pool[T]) Get() T {
	p.gets.Add(1)
	return p.p.Get().(T)
}

// Put resets v and releases it to p. The caller must not use v after Put
// returns.
func (p *Pool[T]) Put(v T) {
	p.reset(v)
	p.p.Put(v)
}

// Stats reports the number of values checked out from p, and the number of
// those requests that required a new allocation.
func (p *Pool[T]) Stats() (gets, news int64) { return p.gets.Load(), p.news.Load() }
