// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import "sync"

// CompletionSource is the out-of-band escape hatch for futures whose
// result arrives from outside the cooperative loop: an external producer
// calls Accept or Fail whenever the value is ready, and the bound
// Future's step producer simply pauses until that happens.
//
// Accept and Fail are safe to call from any goroutine; the mutex that
// guards completion is also the memory-visibility fence between the
// producer's write and the cooperative loop's read. Completing twice
// does not overwrite the first outcome — the second call reports
// ErrDoubleCompletion instead, since a completion source is typically
// driven from a call stack unrelated to the cooperative loop and a hard
// panic there would crash it.
type CompletionSource[T any] struct {
	mu        sync.Mutex
	completed bool
	f         *Future[T]
}

// NewCompletionSource creates an uncompleted CompletionSource and its
// bound Future.
func NewCompletionSource[T any]() *CompletionSource[T] {
	s := &CompletionSource[T]{}
	s.f = newFuture[T](func(*Future[T]) Step {
		return funcStep(func(*Cx) (Yielded, bool, error) {
			s.mu.Lock()
			done := s.completed
			s.mu.Unlock()
			if done {
				return nil, false, nil
			}
			return pauseYielded, true, nil
		})
	})
	return s
}

// Future returns the Future bound to this source. It completes on the
// first tick at or after the source is completed.
func (s *CompletionSource[T]) Future() *Future[T] {
	return s.f
}

// Accept completes the source with v. Returns ErrDoubleCompletion if the
// source was already completed.
func (s *CompletionSource[T]) Accept(v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.completed {
		return ErrDoubleCompletion
	}
	s.completed = true
	s.f.setResult(v)
	return nil
}

// Fail completes the source with err. Returns ErrDoubleCompletion if the
// source was already completed.
func (s *CompletionSource[T]) Fail(err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.completed {
		return ErrDoubleCompletion
	}
	s.completed = true
	s.f.setErr(err)
	return nil
}
