// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro_test

import (
	"errors"
	"strings"
	"testing"

	"code.hybscloud.com/coro"
)

// sleepAndIncrement returns a future that pauses once and then continues
// with s+1, breaking once s has reached the limit.
func sleepAndIncrement(s, limit int) *coro.Future[coro.LoopStep[int]] {
	if s >= limit {
		return coro.Value(coro.Break(s))
	}
	return blockAfterPauses(1, coro.Continue(s+1))
}

func TestLoopTermination(t *testing.T) {
	reducerCalls := 0
	f := coro.Loop(func(s int) *coro.Future[coro.LoopStep[int]] {
		reducerCalls++
		return sleepAndIncrement(s, 3)
	}, 0)
	ticks := driveFuture(t, f, 0)
	mustResult(t, f, 3)
	// Three incrementing effects of one pause each, plus the terminal
	// reducer call whose effect breaks immediately.
	if reducerCalls != 4 {
		t.Fatalf("reducer calls = %d, want 4", reducerCalls)
	}
	if ticks != 4 {
		t.Fatalf("ticks = %d, want 4", ticks)
	}
}

func TestLoopNilReducerResult(t *testing.T) {
	f := coro.Loop(func(int) *coro.Future[coro.LoopStep[int]] { return nil }, 0)
	driveFuture(t, f, 0)
	if !errors.Is(f.Err(), coro.ErrNullReducerResult) {
		t.Fatalf("got %v, want ErrNullReducerResult", f.Err())
	}
}

func TestLoopPropagatesEffectError(t *testing.T) {
	boom := errors.New("boom")
	f := coro.Loop(func(s int) *coro.Future[coro.LoopStep[int]] {
		if s == 2 {
			return coro.Failed[coro.LoopStep[int]](boom)
		}
		return coro.Value(coro.Continue(s + 1))
	}, 0)
	driveFuture(t, f, 0)
	if !errors.Is(f.Err(), boom) {
		t.Fatalf("got %v, want boom", f.Err())
	}
}

func TestLoopCapturesReducerPanic(t *testing.T) {
	f := coro.Loop(func(int) *coro.Future[coro.LoopStep[int]] {
		panic("reducer blew up")
	}, 0)
	driveFuture(t, f, 0)
	if f.Err() == nil || !strings.Contains(f.Err().Error(), "reducer blew up") {
		t.Fatalf("got %v, want captured reducer panic", f.Err())
	}
}

func TestLoopImmediateBreak(t *testing.T) {
	f := coro.Loop(func(s int) *coro.Future[coro.LoopStep[int]] {
		return coro.Value(coro.Break(s))
	}, 41)
	driveFuture(t, f, 0)
	mustResult(t, f, 41)
}

func TestWaitPredCountsReducerCalls(t *testing.T) {
	calls := 0
	pred := func() bool {
		calls++
		return calls <= 3
	}
	f := coro.WaitPred(pred)
	ticks := driveFuture(t, f, 0)
	if f.Err() != nil {
		t.Fatal(f.Err())
	}
	if calls != 4 {
		t.Fatalf("pred calls = %d, want 4", calls)
	}
	// Three pauses plus the completing tick.
	if ticks != 4 {
		t.Fatalf("ticks = %d, want 4", ticks)
	}
}

func TestWaitThreadsState(t *testing.T) {
	f := coro.Wait(func(s int) coro.LoopStep[int] {
		if s < 5 {
			return coro.Continue(s + 1)
		}
		return coro.Break(s * 10)
	}, 0)
	driveFuture(t, f, 0)
	mustResult(t, f, 50)
}

func TestWaitBreakImmediately(t *testing.T) {
	f := coro.Wait(func(s string) coro.LoopStep[string] {
		return coro.Break(s + "!")
	}, "done")
	c := coro.New(f.Run())
	if err := c.Resume(0); err != nil {
		t.Fatal(err)
	}
	if !c.Finished() {
		t.Fatal("an immediate Break must complete in one resume")
	}
	mustResult(t, f, "done!")
}

func TestWaitCapturesReducerPanic(t *testing.T) {
	f := coro.Wait(func(int) coro.LoopStep[int] {
		panic("wait reducer blew up")
	}, 0)
	driveFuture(t, f, 0)
	if f.Err() == nil || !strings.Contains(f.Err().Error(), "wait reducer blew up") {
		t.Fatalf("got %v, want captured reducer panic", f.Err())
	}
}
