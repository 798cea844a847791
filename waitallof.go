// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

// Outcome is the per-member completion status WaitAllOf reports: exactly
// one of Result (when Err is nil) or Err is meaningful, mirroring the
// mutual exclusivity Future itself upholds.
type Outcome[T any] struct {
	Result T
	Err    error
}

// waitAllOfStep drives WaitAllOf's runner: the same joinGroup shape as
// AllOf, but it never inspects member errors early — it simply waits for
// every member to terminate, then reports every Outcome at once.
type waitAllOfStep[T any] struct {
	group   *joinGroup
	members []*Future[T]
	out     *Future[[]Outcome[T]]
}

func (s *waitAllOfStep[T]) succeed() {
	outs := make([]Outcome[T], len(s.members))
	for i, m := range s.members {
		v, _ := m.Result()
		outs[i] = Outcome[T]{Result: v, Err: m.Err()}
	}
	s.out.setResult(outs)
}

func (s *waitAllOfStep[T]) Advance(cx *Cx) (Yielded, bool, error) {
	if s.group.finished() {
		s.succeed()
		return nil, false, nil
	}
	if err := s.group.tick(cx.Delta); err != nil {
		// A malformed yield is a programming error, not the per-member
		// domain error WaitAllOf is built to tolerate; it still aborts.
		s.out.setErr(err)
		s.group.dispose()
		return nil, false, nil
	}
	if s.group.finished() {
		s.succeed()
		return nil, false, nil
	}
	return pauseYielded, true, nil
}

func (s *waitAllOfStep[T]) Dispose() { s.group.dispose() }

// WaitAllOf runs every member concurrently and always completes once
// every member has terminated, regardless of how many failed. The
// result is one Outcome per member, in input order.
func WaitAllOf[T any](members []*Future[T]) *Future[[]Outcome[T]] {
	return newFuture[[]Outcome[T]](func(out *Future[[]Outcome[T]]) Step {
		steps := make([]Step, len(members))
		for i, m := range members {
			steps[i] = m.Run()
		}
		return &waitAllOfStep[T]{group: newJoinGroup(steps), members: members, out: out}
	})
}

// toTypedOutcome recovers a typed Outcome from an erased Outcome[any],
// used by the tuple convenience wrappers below.
func toTypedOutcome[T any](o Outcome[any]) Outcome[T] {
	if o.Err != nil {
		var zero T
		return Outcome[T]{Result: zero, Err: o.Err}
	}
	return Outcome[T]{Result: o.Result.(T), Err: nil}
}

// WaitAllOf2 is the fixed-arity tuple convenience over WaitAllOf,
// preserving each future's own result type.
func WaitAllOf2[T1, T2 any](f1 *Future[T1], f2 *Future[T2]) *Future[Pair[Outcome[T1], Outcome[T2]]] {
	erased1 := FutureMap(f1, func(v T1) any { return v })
	erased2 := FutureMap(f2, func(v T2) any { return v })
	all := WaitAllOf([]*Future[any]{erased1, erased2})
	return FutureMap(all, func(outs []Outcome[any]) Pair[Outcome[T1], Outcome[T2]] {
		return Pair[Outcome[T1], Outcome[T2]]{
			Fst: toTypedOutcome[T1](outs[0]),
			Snd: toTypedOutcome[T2](outs[1]),
		}
	})
}

// WaitAllOf3 is the fixed-arity tuple convenience over WaitAllOf for
// three members.
func WaitAllOf3[T1, T2, T3 any](f1 *Future[T1], f2 *Future[T2], f3 *Future[T3]) *Future[Triple[Outcome[T1], Outcome[T2], Outcome[T3]]] {
	erased1 := FutureMap(f1, func(v T1) any { return v })
	erased2 := FutureMap(f2, func(v T2) any { return v })
	erased3 := FutureMap(f3, func(v T3) any { return v })
	all := WaitAllOf([]*Future[any]{erased1, erased2, erased3})
	return FutureMap(all, func(outs []Outcome[any]) Triple[Outcome[T1], Outcome[T2], Outcome[T3]] {
		return Triple[Outcome[T1], Outcome[T2], Outcome[T3]]{
			Fst: toTypedOutcome[T1](outs[0]),
			Snd: toTypedOutcome[T2](outs[1]),
			Trd: toTypedOutcome[T3](outs[2]),
		}
	})
}
