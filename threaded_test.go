// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro_test

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"code.hybscloud.com/coro"
)

// driveRealtime resumes r until it finishes, sleeping briefly between
// ticks so a worker goroutine has wall-clock time to make progress.
func driveRealtime(t *testing.T, r coro.Resumable) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !r.Finished() {
		if time.Now().After(deadline) {
			t.Fatal("resumable did not finish within the deadline")
		}
		if err := r.Resume(0.001); err != nil {
			t.Fatalf("resume: %v", err)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestThreadedSuccess(t *testing.T) {
	f := coro.Threaded(func(context.Context) (int, error) {
		time.Sleep(10 * time.Millisecond)
		return 12, nil
	})
	driveRealtime(t, coro.New(f.Run()))
	mustResult(t, f, 12)
}

func TestThreadedError(t *testing.T) {
	boom := errors.New("boom")
	f := coro.Threaded(func(context.Context) (int, error) { return 0, boom })
	driveRealtime(t, coro.New(f.Run()))
	if !errors.Is(f.Err(), boom) {
		t.Fatalf("got %v, want boom", f.Err())
	}
}

func TestThreadedCapturesPanic(t *testing.T) {
	f := coro.Threaded(func(context.Context) (int, error) {
		panic("worker blew up")
	})
	driveRealtime(t, coro.New(f.Run()))
	if f.Err() == nil || !strings.Contains(f.Err().Error(), "worker blew up") {
		t.Fatalf("got %v, want captured worker panic", f.Err())
	}
}

func TestThreadedDisposeCancelsWorkerContext(t *testing.T) {
	cancelled := make(chan struct{})
	f := coro.Threaded(func(ctx context.Context) (int, error) {
		<-ctx.Done()
		close(cancelled)
		return 0, ctx.Err()
	})
	c := coro.New(f.Run())
	if err := c.Resume(0); err != nil {
		t.Fatal(err)
	}
	c.Dispose()
	select {
	case <-cancelled:
	case <-time.After(5 * time.Second):
		t.Fatal("dispose did not cancel the worker's context")
	}
}

func TestThreadedPausesWhileWorkerRuns(t *testing.T) {
	release := make(chan struct{})
	f := coro.Threaded(func(context.Context) (int, error) {
		<-release
		return 1, nil
	})
	c := coro.New(f.Run())
	for range 3 {
		if err := c.Resume(0); err != nil {
			t.Fatal(err)
		}
		if c.Finished() {
			t.Fatal("future must stay pending while the worker runs")
		}
	}
	close(release)
	driveRealtime(t, c)
	mustResult(t, f, 1)
}

func TestPoolSuccess(t *testing.T) {
	f := coro.Pool(func(context.Context) (string, error) { return "pooled", nil })
	driveRealtime(t, coro.New(f.Run()))
	mustResult(t, f, "pooled")
}

func TestPoolWithBoundsConcurrency(t *testing.T) {
	pool := coro.NewPool(1)
	var running, peak atomic.Int32
	work := func(context.Context) (int, error) {
		n := running.Add(1)
		if n > peak.Load() {
			peak.Store(n)
		}
		time.Sleep(5 * time.Millisecond)
		running.Add(-1)
		return 0, nil
	}

	e := coro.NewExecutor()
	futures := make([]*coro.Future[int], 4)
	for i := range futures {
		futures[i] = coro.PoolWith(pool, work)
		e.Add(coro.New(futures[i].Run()))
	}
	driveRealtime(t, e)
	for _, f := range futures {
		if f.Err() != nil {
			t.Fatal(f.Err())
		}
	}
	if peak.Load() != 1 {
		t.Fatalf("peak concurrency = %d, want 1 under a budget of 1", peak.Load())
	}
}

func TestPoolWorkerSurvivesAbandonment(t *testing.T) {
	started := make(chan struct{})
	finished := make(chan struct{})
	f := coro.Pool(func(context.Context) (int, error) {
		close(started)
		time.Sleep(5 * time.Millisecond)
		close(finished)
		return 0, nil
	})
	c := coro.New(f.Run())
	if err := c.Resume(0); err != nil {
		t.Fatal(err)
	}
	<-started
	c.Dispose()
	// The worker has no cancellation path; it runs to completion even
	// though nobody will read its result.
	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("abandoned pool worker did not run to completion")
	}
}

func TestNewPoolRejectsNonPositiveBudget(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on zero budget")
		}
	}()
	coro.NewPool(0)
}
