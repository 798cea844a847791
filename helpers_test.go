// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro_test

import (
	"testing"

	"code.hybscloud.com/coro"
)

// script is a hand-rolled step producer for tests: each Advance runs the
// next action in order and yields whatever it returns; past the last
// action the script is done.
type script struct {
	i       int
	acts    []func() (coro.Yielded, bool)
	cleanup func()
}

func (s *script) Advance(*coro.Cx) (coro.Yielded, bool, error) {
	if s.i >= len(s.acts) {
		return nil, false, nil
	}
	act := s.acts[s.i]
	s.i++
	y, pending := act()
	return y, pending, nil
}

func (s *script) Dispose() {
	if s.cleanup != nil {
		s.cleanup()
	}
}

// pauseAct runs f and yields Pause.
func pauseAct(f func()) func() (coro.Yielded, bool) {
	return func() (coro.Yielded, bool) {
		f()
		return coro.Pause{}, true
	}
}

// doneAct runs f and completes the script early.
func doneAct(f func()) func() (coro.Yielded, bool) {
	return func() (coro.Yielded, bool) {
		f()
		return nil, false
	}
}

// nestedAct runs f and pushes its child step.
func nestedAct(f func() coro.Step) func() (coro.Yielded, bool) {
	return func() (coro.Yielded, bool) {
		return coro.Nested{Child: f()}, true
	}
}

// becomeAct runs f and tail-replaces the script with its child step.
func becomeAct(f func() coro.Step) func() (coro.Yielded, bool) {
	return func() (coro.Yielded, bool) {
		return coro.Op{Operation: coro.Become{Child: f()}}, true
	}
}

// drive resumes r with a fixed delta until it finishes, failing the test
// on a resume error or when the resumable never terminates. Returns the
// number of resume calls it took.
func drive(t *testing.T, r coro.Resumable, delta float64) int {
	t.Helper()
	ticks := 0
	for !r.Finished() {
		ticks++
		if ticks > 10000 {
			t.Fatal("resumable did not finish within 10000 ticks")
		}
		if err := r.Resume(delta); err != nil {
			t.Fatalf("resume %d: %v", ticks, err)
		}
	}
	return ticks
}

// driveFuture runs f's step under a fresh coroutine to completion.
func driveFuture[T any](t *testing.T, f *coro.Future[T], delta float64) int {
	t.Helper()
	return drive(t, coro.New(f.Run()), delta)
}

// mustResult fails the test unless f completed successfully with want.
func mustResult[T comparable](t *testing.T, f *coro.Future[T], want T) {
	t.Helper()
	if err := f.Err(); err != nil {
		t.Fatalf("unexpected future error: %v", err)
	}
	got, ok := f.Result()
	if !ok {
		t.Fatal("future has no result")
	}
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

// blockAfterPauses builds a block future that pauses n times and then
// accepts v.
func blockAfterPauses[T any](n int, v T) *coro.Future[T] {
	return coro.Block(func(ch *coro.Channel[T]) coro.Step {
		acts := make([]func() (coro.Yielded, bool), 0, n+1)
		for range n {
			acts = append(acts, pauseAct(func() {}))
		}
		acts = append(acts, doneAct(func() { ch.Accept(v) }))
		return &script{acts: acts}
	})
}

// failAfterPauses builds a block future that pauses n times and then
// fails with err.
func failAfterPauses[T any](n int, err error) *coro.Future[T] {
	return coro.Block(func(ch *coro.Channel[T]) coro.Step {
		acts := make([]func() (coro.Yielded, bool), 0, n+1)
		for range n {
			acts = append(acts, pauseAct(func() {}))
		}
		acts = append(acts, doneAct(func() { ch.Fail(err) }))
		return &script{acts: acts}
	})
}
