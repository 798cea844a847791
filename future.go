// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import "sync/atomic"

// Future is a typed handle carrying at most one of a result or an error,
// driven to completion by the Step producer its Run method returns.
// After that Step reaches done, exactly one of Result/Err is set for a
// well-formed core variant — a Block future whose step producer
// terminates without calling Accept or Fail is the one documented
// exception, reporting ErrBlockDidNotComplete instead.
//
// Futures are single-shot: Run is consumed once. Calling it a second
// time panics rather than leaving T's internal state undefined — the
// same at-most-once discipline Defer applies to its cleanups.
type Future[T any] struct {
	used      atomic.Uintptr
	result    T
	hasResult bool
	err       error
	makeStep  func(*Future[T]) Step
}

// Run consumes the Future and returns the Step that drives it to
// completion. Panics if called more than once on the same Future.
func (f *Future[T]) Run() Step {
	if f.used.Add(1) != 1 {
		panic("coro: future run called twice")
	}
	return f.makeStep(f)
}

// Result returns the Future's result and whether it is meaningful. The
// boolean makes "is this meaningful" explicit at every call site instead
// of relying on T's zero value.
func (f *Future[T]) Result() (T, bool) {
	return f.result, f.hasResult
}

// Err returns the Future's error, or nil if it completed successfully
// (or has not completed yet).
func (f *Future[T]) Err() error {
	return f.err
}

func (f *Future[T]) setResult(v T) {
	f.result = v
	f.hasResult = true
	f.err = nil
}

func (f *Future[T]) setErr(err error) {
	f.err = err
	f.hasResult = false
}

// newFuture builds a *Future[T] whose Run delegates to makeStep.
func newFuture[T any](makeStep func(*Future[T]) Step) *Future[T] {
	return &Future[T]{makeStep: makeStep}
}

// Value returns a Future already completed with v. Its Run returns the
// immediately-done Step.
func Value[T any](v T) *Future[T] {
	f := newFuture[T](func(*Future[T]) Step { return doneStep })
	f.setResult(v)
	return f
}

// Failed returns a Future already completed with err. Its Run returns
// the immediately-done Step.
func Failed[T any](err error) *Future[T] {
	f := newFuture[T](func(*Future[T]) Step { return doneStep })
	f.setErr(err)
	return f
}

// FromFunc returns a Future that calls fn exactly once, on its first
// Advance, and completes with whichever of fn's two return values is
// meaningful.
func FromFunc[T any](fn func() (T, error)) *Future[T] {
	return newFuture[T](func(f *Future[T]) Step {
		return funcStep(func(*Cx) (Yielded, bool, error) {
			v, err := fn()
			if err != nil {
				f.setErr(err)
			} else {
				f.setResult(v)
			}
			return nil, false, nil
		})
	})
}

// Channel is the write-only completion handle a Block future's impl
// receives. The block must call exactly one of Accept or Fail before
// the Step it returns terminates.
type Channel[T any] struct {
	f *Future[T]
}

// Accept completes the bound Future with v, clearing any previously set
// error.
func (c *Channel[T]) Accept(v T) {
	c.f.setResult(v)
}

// Fail completes the bound Future with err.
func (c *Channel[T]) Fail(err error) {
	c.f.setErr(err)
}

// blockStep delegates to the block's own Step, then checks the
// completion-channel contract once the inner Step is done.
type blockStep[T any] struct {
	f *Future[T]
	p Step
}

func (b *blockStep[T]) Advance(cx *Cx) (Yielded, bool, error) {
	y, pending, err := b.p.Advance(cx)
	if err != nil {
		// Lift the error into the Future's error slot rather than the
		// step producer stream; the block is considered ended.
		b.f.setErr(err)
		return nil, false, nil
	}
	if pending {
		return y, true, nil
	}
	if !b.f.hasResult && b.f.err == nil {
		b.f.err = ErrBlockDidNotComplete
	}
	return nil, false, nil
}

func (b *blockStep[T]) Dispose() {
	disposeStep(b.p)
}

// Block returns a Future whose result is produced by an ordinary
// step-yielding block. impl receives a Channel bound to the returned
// Future and must return the Step that drives the block; somewhere
// before that Step terminates, the block must call Channel.Accept or
// Channel.Fail.
func Block[T any](impl func(*Channel[T]) Step) *Future[T] {
	return newFuture[T](func(f *Future[T]) Step {
		ch := &Channel[T]{f: f}
		return &blockStep[T]{f: f, p: impl(ch)}
	})
}
