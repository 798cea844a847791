// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

// Step is a lazy, single-pass sequence that advances by one increment of
// work per call. Each Advance either returns a Yielded marker telling the
// driving Coroutine what to do next, or reports that the step producer is
// done.
type Step interface {
	// Advance runs one increment of work. The returned bool reports
	// whether more work is pending: true means y is meaningful and the
	// producer is not yet done; false means the producer has completed
	// (possibly with err set) and y is the zero value. A non-nil err
	// always implies the producer is done — the error propagates out of
	// the driving Coroutine's Resume, and the erroring frame is treated
	// as ended and disposed.
	Advance(cx *Cx) (y Yielded, pending bool, err error)
}

// Yielded is the closed marker-interface sum of the three things a Step
// may yield: Pause, Nested, or Op. The set is closed deliberately — a
// disciplined Advance loop must be exhaustive, so coro treats any other
// implementation as ErrMalformedYield rather than leaving the dispatch
// open-ended.
type Yielded interface {
	yielded() // unexported marker method
}

// Pause is the sentinel "come back next tick". Yielding Pause returns
// control to the driver without growing or shrinking the Coroutine's
// stack.
type Pause struct{}

func (Pause) yielded() {}

// pauseYielded is the canonical Pause value, shared to avoid an
// allocation at every pause point.
var pauseYielded = Pause{}

// Nested pushes Child onto the driving Coroutine's stack; the current top
// is suspended (not disposed) until Child completes.
type Nested struct {
	Child Step
}

func (Nested) yielded() {}

// Op carries an Operation, an extensible command from a Step to its
// driving Coroutine. This core defines exactly one Operation: Become.
type Op struct {
	Operation Operation
}

func (Op) yielded() {}

// Operation is a closed marker interface for commands a Step issues to
// its driving Coroutine. The vocabulary is closed to Become; Advance
// treats any other Operation as ErrMalformedYield.
type Operation interface {
	operation() // unexported marker method
}

// Become is a tail-replacement operation: it swaps the current top of the
// stack for Child without growing the stack, enabling recursive
// state-machine encodings (state A yields Become(B); B yields Become(A))
// in bounded stack depth. The replaced producer is disposed before Child
// becomes the new top.
type Become struct {
	Child Step
}

func (Become) operation() {}

// disposer is the optional interface a Step may implement to run scoped
// cleanup when the Coroutine machine disposes it, either on natural
// completion, on Become, or on explicit Coroutine.Dispose.
type disposer interface {
	Dispose()
}

// disposeStep runs s's cleanup if it implements disposer. Disposal is
// idempotent by convention of the disposer implementation (Defer already
// guarantees this); disposeStep itself does not track whether a given
// Step has been disposed before.
func disposeStep(s Step) {
	if d, ok := s.(disposer); ok {
		d.Dispose()
	}
}

// funcStep adapts a plain Advance function to the Step interface; it
// backs FromFunc, CompletionSource's future, and doneStep, so those need
// not declare a named Step type.
type funcStep func(cx *Cx) (Yielded, bool, error)

func (f funcStep) Advance(cx *Cx) (Yielded, bool, error) { return f(cx) }

// doneStep is the step producer that is immediately done; Value and
// Failed futures run it.
var doneStep Step = funcStep(func(*Cx) (Yielded, bool, error) { return nil, false, nil })
