// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro_test

import (
	"testing"

	"code.hybscloud.com/coro"
)

// BenchmarkCoroutineResumePause measures a single paused tick.
func BenchmarkCoroutineResumePause(b *testing.B) {
	c := coro.New(coro.Sleep(1e18))
	for b.Loop() {
		_ = c.Resume(0.001)
	}
}

// BenchmarkExecutorTick measures one tick over a populated executor.
func BenchmarkExecutorTick(b *testing.B) {
	e := coro.NewExecutor()
	for range 64 {
		e.Add(coro.New(coro.Sleep(1e18)))
	}
	for b.Loop() {
		_ = e.Resume(0.001)
	}
}

// BenchmarkBecomeChain measures tail-replacement throughput.
func BenchmarkBecomeChain(b *testing.B) {
	for b.Loop() {
		n := 64
		c := coro.New(mutualBecome(&n))
		_ = c.Resume(0)
	}
}

// BenchmarkBindChain measures sequencing two immediate futures.
func BenchmarkBindChain(b *testing.B) {
	for b.Loop() {
		f := coro.Bind(coro.Value(1), func(n int) *coro.Future[int] {
			return coro.Value(n + 1)
		}, func(a, bv int) int { return a + bv })
		c := coro.New(f.Run())
		_ = c.Resume(0)
	}
}

// BenchmarkWaitPred measures the predicate-wait fast path.
func BenchmarkWaitPred(b *testing.B) {
	for b.Loop() {
		f := coro.WaitPred(func() bool { return false })
		c := coro.New(f.Run())
		_ = c.Resume(0)
	}
}
