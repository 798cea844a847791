// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro_test

import (
	"testing"

	"code.hybscloud.com/coro"
)

func TestDeferRunsLIFO(t *testing.T) {
	var order []int
	d := coro.NewDefer()
	for i := range 3 {
		d.Add(func() { order = append(order, i) })
	}
	d.Dispose()
	want := []int{2, 1, 0}
	for i, w := range want {
		if order[i] != w {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestDeferDisposeIdempotent(t *testing.T) {
	runs := 0
	d := coro.NewDefer()
	d.Add(func() { runs++ })
	d.Dispose()
	d.Dispose()
	if runs != 1 {
		t.Fatalf("thunk ran %d times, want 1", runs)
	}
}

func TestDeferPanickingThunkDoesNotAbortSiblings(t *testing.T) {
	var order []string
	d := coro.NewDefer()
	d.Add(func() { order = append(order, "first") })
	d.Add(func() { panic("cleanup blew up") })
	d.Add(func() { order = append(order, "last") })
	d.Dispose()
	if len(order) != 2 || order[0] != "last" || order[1] != "first" {
		t.Fatalf("order = %v, want [last first]", order)
	}
}

type recordingLogger struct {
	warns []string
}

func (l *recordingLogger) Warn(msg string, _ ...coro.Field) {
	l.warns = append(l.warns, msg)
}

func TestDeferLogsThunkPanic(t *testing.T) {
	logger := &recordingLogger{}
	d := coro.NewDefer()
	d.SetLogger(logger)
	d.Add(func() { panic("observed") })
	d.Dispose()
	if len(logger.warns) != 1 {
		t.Fatalf("warns = %v, want exactly one", logger.warns)
	}
}

func TestDeferAddAfterDispose(t *testing.T) {
	d := coro.NewDefer()
	d.Dispose()
	ran := false
	d.Add(func() { ran = true })
	d.Dispose()
	if ran {
		t.Fatal("a disposed Defer must stay disposed")
	}
}
