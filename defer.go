// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

// Defer records cleanup thunks and runs them in reverse insertion order
// (LIFO) on Dispose; disposing twice is a no-op. A Defer is the scope
// handle acquired at the start of a scope and released on every exit
// path — natural completion, early break, or an error in flight.
//
// Cleanup thunks must not themselves suspend; they are plain functions,
// not Step producers. A panicking thunk is recovered, reported through
// the optional Logger if one is set, and swallowed so the remaining
// cleanups still run.
type Defer struct {
	thunks   []func()
	disposed bool
	logger   Logger
}

// NewDefer creates an empty Defer using the no-op Logger. Call
// Defer.SetLogger to observe panicking thunks.
func NewDefer() *Defer {
	return &Defer{logger: NopLogger{}}
}

// SetLogger installs the optional observability seam; a nil logger
// restores the default no-op.
func (d *Defer) SetLogger(logger Logger) {
	if logger == nil {
		logger = NopLogger{}
	}
	d.logger = logger
}

// Add appends thunk to the cleanup list.
func (d *Defer) Add(thunk func()) {
	d.thunks = append(d.thunks, thunk)
}

// Dispose runs every recorded thunk in reverse insertion order (LIFO),
// then marks the Defer disposed so a second call is a no-op.
func (d *Defer) Dispose() {
	if d.disposed {
		return
	}
	d.disposed = true
	for i := len(d.thunks) - 1; i >= 0; i-- {
		d.runThunk(d.thunks[i])
	}
	d.thunks = nil
}

func (d *Defer) runThunk(thunk func()) {
	defer func() {
		if r := recover(); r != nil {
			logger := d.logger
			if logger == nil {
				logger = NopLogger{}
			}
			logger.Warn("coro: defer cleanup thunk panicked", Field{Key: "panic", Value: r})
		}
	}()
	thunk()
}
