// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

// LoopStep is the control record driving Loop and Wait: either continue
// iterating with a new state, or break out carrying the final state.
// Construct values with Break and Continue.
type LoopStep[S any] struct {
	state S
	brk   bool
}

// Break produces the LoopStep that stops iteration; s becomes the
// enclosing Loop or Wait future's result.
func Break[S any](s S) LoopStep[S] {
	return LoopStep[S]{state: s, brk: true}
}

// Continue produces the LoopStep that keeps iterating with s as the next
// state.
func Continue[S any](s S) LoopStep[S] {
	return LoopStep[S]{state: s}
}

func safeReduce[S any](reducer func(S) *Future[LoopStep[S]], s S) (f *Future[LoopStep[S]], err error) {
	defer func() {
		if r := recover(); r != nil {
			err = wrapf("coro: panic in loop reducer: %v", r)
		}
	}()
	f = reducer(s)
	return
}

func safeWaitReduce[S any](reducer func(S) LoopStep[S], s S) (ls LoopStep[S], err error) {
	defer func() {
		if r := recover(); r != nil {
			err = wrapf("coro: panic in wait reducer: %v", r)
		}
	}()
	ls = reducer(s)
	return
}

// loopStep alternates between calling the reducer to obtain the next
// effect future and yielding Nested to drive that effect to completion.
type loopStep[S any] struct {
	reducer func(S) *Future[LoopStep[S]]
	state   S
	out     *Future[S]
	effect  *Future[LoopStep[S]]
}

func (l *loopStep[S]) Advance(*Cx) (Yielded, bool, error) {
	if l.effect != nil {
		if err := l.effect.Err(); err != nil {
			l.out.setErr(err)
			return nil, false, nil
		}
		ls, _ := l.effect.Result()
		l.effect = nil
		if ls.brk {
			l.out.setResult(ls.state)
			return nil, false, nil
		}
		l.state = ls.state
	}
	effect, err := safeReduce(l.reducer, l.state)
	if err != nil {
		l.out.setErr(err)
		return nil, false, nil
	}
	if effect == nil {
		l.out.setErr(ErrNullReducerResult)
		return nil, false, nil
	}
	l.effect = effect
	return Nested{Child: effect.Run()}, true, nil
}

// Loop iterates reducer over an evolving state. Each iteration runs the
// effect future the reducer returns; the effect's LoopStep result either
// continues with a new state or breaks with the final one. A reducer
// returning nil finishes the Loop with ErrNullReducerResult; an effect
// error propagates unchanged.
func Loop[S any](reducer func(S) *Future[LoopStep[S]], initial S) *Future[S] {
	step := &loopStep[S]{reducer: reducer, state: initial}
	return newFuture[S](func(out *Future[S]) Step {
		step.out = out
		return step
	})
}

// waitStep evaluates the reducer once per Advance; a Continue result
// pauses until the next tick, a Break result completes the future.
type waitStep[S any] struct {
	reducer func(S) LoopStep[S]
	state   S
	out     *Future[S]
}

func (w *waitStep[S]) Advance(*Cx) (Yielded, bool, error) {
	ls, err := safeWaitReduce(w.reducer, w.state)
	if err != nil {
		w.out.setErr(err)
		return nil, false, nil
	}
	if ls.brk {
		w.out.setResult(ls.state)
		return nil, false, nil
	}
	w.state = ls.state
	return pauseYielded, true, nil
}

// Wait is the no-inner-future counterpart to Loop: it evaluates reducer
// immediately on its first Advance and once more per tick while the
// result is Continue, completing on Break. Pausing N times therefore
// invokes the reducer exactly N+1 times.
func Wait[S any](reducer func(S) LoopStep[S], initial S) *Future[S] {
	step := &waitStep[S]{reducer: reducer, state: initial}
	return newFuture[S](func(out *Future[S]) Step {
		step.out = out
		return step
	})
}

// WaitPred waits until pred returns false, pausing one tick per true
// result. The reducer-count contract of Wait applies: a pred that is
// true N times is called N+1 times in total.
func WaitPred(pred func() bool) *Future[struct{}] {
	return Wait(func(s struct{}) LoopStep[struct{}] {
		if pred() {
			return Continue(s)
		}
		return Break(s)
	}, struct{}{})
}
