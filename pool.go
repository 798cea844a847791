// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"
)

// WorkerPool bounds how many Pool-future workers run concurrently. The
// bound is enforced with a weighted semaphore: each dispatch spawns a
// goroutine that blocks on acquiring a slot, so a flood of Pool futures
// queues on the semaphore instead of saturating the scheduler, and the
// cooperative loop's tick latency is never affected by a full pool.
type WorkerPool struct {
	sem    *semaphore.Weighted
	logger Logger
}

// NewPool creates a WorkerPool that runs at most budget workers at once.
// A non-positive budget panics.
func NewPool(budget int64) *WorkerPool {
	if budget <= 0 {
		panic("coro: worker pool budget must be positive")
	}
	return &WorkerPool{sem: semaphore.NewWeighted(budget), logger: NopLogger{}}
}

// SetLogger installs the optional observability seam; a nil logger
// restores the default no-op. The pool logs a Warn when a worker
// function panics (the panic is still captured into the future's error).
func (p *WorkerPool) SetLogger(logger Logger) {
	if logger == nil {
		logger = NopLogger{}
	}
	p.logger = logger
}

// defaultPool backs the Pool constructor. Its budget is generous enough
// for polling-style workloads while still bounding a runaway fan-out.
var defaultPool = NewPool(int64(runtime.GOMAXPROCS(0)) * 4)

// poolStep dispatches through the pool on its first Advance and then
// polls the done channel once per tick. There is no cancel path: Dispose
// is deliberately absent, so an abandoned Pool future leaves its worker
// to run to completion and the buffered done channel lets that worker
// exit without a receiver.
type poolStep[T any] struct {
	f       *Future[T]
	pool    *WorkerPool
	fn      func(context.Context) (T, error)
	done    chan workerOutcome[T]
	started bool
}

func (s *poolStep[T]) Advance(*Cx) (Yielded, bool, error) {
	if !s.started {
		s.started = true
		s.done = make(chan workerOutcome[T], 1)
		pool, fn, done := s.pool, s.fn, s.done
		go func() {
			if err := pool.sem.Acquire(context.Background(), 1); err != nil {
				done <- workerOutcome[T]{err: err}
				return
			}
			defer pool.sem.Release(1)
			runWorker(context.Background(), fn, done)
		}()
	}
	select {
	case o := <-s.done:
		s.done = nil
		if o.err != nil {
			if s.pool.logger != nil {
				s.pool.logger.Warn("coro: pool worker failed", Field{Key: "error", Value: o.err})
			}
			s.f.setErr(o.err)
		} else {
			s.f.setResult(o.v)
		}
		return nil, false, nil
	default:
		return pauseYielded, true, nil
	}
}

// PoolWith runs fn on a worker drawn from pool while the returned Future
// is polled cooperatively. Pool futures cannot be cancelled: the context
// passed to fn is context.Background, and disposing the future's driver
// leaves the worker to complete in the background — its side effects
// still run; only the result is abandoned.
func PoolWith[T any](pool *WorkerPool, fn func(ctx context.Context) (T, error)) *Future[T] {
	return newFuture[T](func(f *Future[T]) Step {
		return &poolStep[T]{f: f, pool: pool, fn: fn}
	})
}

// Pool is PoolWith over the shared default pool.
func Pool[T any](fn func(ctx context.Context) (T, error)) *Future[T] {
	return PoolWith(defaultPool, fn)
}
