// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import "context"

// workerOutcome is the single value a worker goroutine hands back to the
// cooperative loop. The buffered-channel send/receive pair is the
// memory-visibility fence between worker completion and reader
// observation; the result and error fields are only read after the
// receive succeeds.
type workerOutcome[T any] struct {
	v   T
	err error
}

// runWorker invokes fn, converting a panic into an error, and delivers
// the outcome over done. done must be buffered so the send never blocks
// a pool worker behind an abandoned future.
func runWorker[T any](ctx context.Context, fn func(context.Context) (T, error), done chan<- workerOutcome[T]) {
	var o workerOutcome[T]
	func() {
		defer func() {
			if r := recover(); r != nil {
				o = workerOutcome[T]{err: wrapf("coro: panic in worker function: %v", r)}
			}
		}()
		v, err := fn(ctx)
		o = workerOutcome[T]{v: v, err: err}
	}()
	done <- o
}

// threadedStep launches the worker on its first Advance and then polls
// the done channel once per tick, yielding Pause while the worker is
// still running.
type threadedStep[T any] struct {
	f       *Future[T]
	fn      func(context.Context) (T, error)
	done    chan workerOutcome[T]
	cancel  context.CancelFunc
	started bool
}

func (s *threadedStep[T]) Advance(*Cx) (Yielded, bool, error) {
	if !s.started {
		s.started = true
		ctx, cancel := context.WithCancel(context.Background())
		s.cancel = cancel
		s.done = make(chan workerOutcome[T], 1)
		go runWorker(ctx, s.fn, s.done)
	}
	select {
	case o := <-s.done:
		s.done = nil
		s.cancel()
		s.cancel = nil
		if o.err != nil {
			s.f.setErr(o.err)
		} else {
			s.f.setResult(o.v)
		}
		return nil, false, nil
	default:
		return pauseYielded, true, nil
	}
}

// Dispose cancels the worker's context if the worker is still live. The
// user function is expected to poll ctx.Err or select on ctx.Done; the
// goroutine itself is never forcibly terminated.
func (s *threadedStep[T]) Dispose() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Threaded runs fn on its own goroutine while the returned Future is
// polled cooperatively. Disposing the future's driver before the worker
// finishes cancels the context passed to fn; cancellation is
// cooperative, so fn must observe ctx for the cancel to take effect.
// A panic inside fn is captured into the future's error.
func Threaded[T any](fn func(ctx context.Context) (T, error)) *Future[T] {
	return newFuture[T](func(f *Future[T]) Step {
		return &threadedStep[T]{f: f, fn: fn}
	})
}
