// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

// Resumable is the common scheduling interface satisfied by both
// Coroutine and Executor.
type Resumable interface {
	Finished() bool
	Resume(delta float64) error
}

// Coroutine owns a stack of Step producers: a currently advancing top and
// a slice of suspended parents beneath it. Resume drives the top one
// tick at a time, popping on completion, pushing on Nested yields, and
// tail-replacing on Become.
//
// A Coroutine never threads itself into a peer chain; Executor is the
// sole concurrency aggregator in this package. To drive several
// Coroutines as one unit, add them to an Executor.
type Coroutine struct {
	top   Step
	stack []Step
}

// New creates a Coroutine rooted at top.
func New(top Step) *Coroutine {
	return &Coroutine{top: top}
}

// Finished reports whether the Coroutine has no more work: top is nil and
// the stack is empty.
func (c *Coroutine) Finished() bool {
	return c.top == nil && len(c.stack) == 0
}

// Resume advances the Coroutine for one tick. Resuming a finished
// Coroutine is a no-op that returns nil.
func (c *Coroutine) Resume(delta float64) error {
	if c.Finished() {
		return nil
	}
	cx := &Cx{Delta: delta}
	for {
		if c.top == nil {
			return nil
		}
		y, pending, err := c.top.Advance(cx)
		if err != nil {
			disposeStep(c.top)
			if n := len(c.stack); n > 0 {
				c.top = c.stack[n-1]
				c.stack = c.stack[:n-1]
			} else {
				c.top = nil
			}
			return err
		}
		if !pending {
			disposeStep(c.top)
			if n := len(c.stack); n > 0 {
				c.top = c.stack[n-1]
				c.stack = c.stack[:n-1]
				continue
			}
			c.top = nil
			return nil
		}
		switch v := y.(type) {
		case Pause:
			return nil
		case Nested:
			c.stack = append(c.stack, c.top)
			c.top = v.Child
			continue
		case Op:
			become, ok := v.Operation.(Become)
			if !ok {
				return wrapf("%w: unsupported operation %T", ErrMalformedYield, v.Operation)
			}
			disposeStep(c.top)
			c.top = become.Child
			continue
		default:
			return wrapf("%w: unrecognized yielded value %T", ErrMalformedYield, y)
		}
	}
}

// Dispose tears down every producer the Coroutine currently holds: the
// top, then the stack in LIFO order. Every disposed producer that
// implements the optional disposer interface has its cleanup run.
// Disposal is idempotent — disposing a finished or already-disposed
// Coroutine is a no-op.
func (c *Coroutine) Dispose() {
	if c.top != nil {
		disposeStep(c.top)
		c.top = nil
	}
	for i := len(c.stack) - 1; i >= 0; i-- {
		disposeStep(c.stack[i])
	}
	c.stack = nil
}

// sleepStep is the Step backing Sleep.
type sleepStep struct {
	remaining float64
}

func (s *sleepStep) Advance(cx *Cx) (Yielded, bool, error) {
	if s.remaining <= 0 {
		return nil, false, nil
	}
	s.remaining -= cx.Delta
	if s.remaining <= 0 {
		return nil, false, nil
	}
	return pauseYielded, true, nil
}

// Sleep returns a Step that yields Pause until seconds have elapsed,
// measured against the ambient delta read from Cx on every Advance.
// Negative or zero seconds complete immediately, without ever pausing.
func Sleep(seconds float64) Step {
	return &sleepStep{remaining: seconds}
}
