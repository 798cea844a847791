// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

// Pair holds two values, used as the AllOf2/WaitAllOf2 result.
type Pair[A, B any] struct {
	Fst A
	Snd B
}

// Triple holds three values, used as the AllOf3/WaitAllOf3 result.
type Triple[A, B, C any] struct {
	Fst A
	Snd B
	Trd C
}

// joinGroup is the shared runner behind AllOf, FirstOf, and WaitAllOf: an
// internal Executor hosting one Coroutine per member Step, plus a Defer
// that disposes every member Coroutine on early abort. All three
// combinators construct a joinGroup over their members' Run() Steps and
// differ only in how they interpret per-member completion.
type joinGroup struct {
	coros []*Coroutine
	exec  *Executor
	def   *Defer
}

func newJoinGroup(steps []Step) *joinGroup {
	exec := NewExecutor()
	coros := make([]*Coroutine, len(steps))
	for i, s := range steps {
		c := New(s)
		coros[i] = c
		exec.Add(c)
	}
	def := NewDefer()
	for _, c := range coros {
		c := c
		def.Add(func() { c.Dispose() })
	}
	return &joinGroup{coros: coros, exec: exec, def: def}
}

func (g *joinGroup) finished() bool { return g.exec.Finished() }

func (g *joinGroup) tick(delta float64) error { return g.exec.Resume(delta) }

// dispose runs every member Coroutine's cleanup, in LIFO order, via the
// group's Defer. Disposal is idempotent.
func (g *joinGroup) dispose() { g.def.Dispose() }

// allOfStep drives AllOf[T]'s runner: while no member has errored and
// not every member has finished, resume the group and yield Pause. The
// first error seen aborts the group, disposing every member driver via
// the surrounding Defer; on success the result is the per-member
// results in input order.
type allOfStep[T any] struct {
	group   *joinGroup
	members []*Future[T]
	out     *Future[[]T]
}

func (s *allOfStep[T]) firstErr() error {
	for _, m := range s.members {
		if err := m.Err(); err != nil {
			return err
		}
	}
	return nil
}

func (s *allOfStep[T]) succeed() {
	results := make([]T, len(s.members))
	for i, m := range s.members {
		v, _ := m.Result()
		results[i] = v
	}
	s.out.setResult(results)
}

func (s *allOfStep[T]) Advance(cx *Cx) (Yielded, bool, error) {
	if err := s.firstErr(); err != nil {
		s.out.setErr(err)
		s.group.dispose()
		return nil, false, nil
	}
	if s.group.finished() {
		s.succeed()
		return nil, false, nil
	}
	if err := s.group.tick(cx.Delta); err != nil {
		s.out.setErr(err)
		s.group.dispose()
		return nil, false, nil
	}
	if err := s.firstErr(); err != nil {
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

func (s *allOfStep[T]) Dispose() { s.group.dispose() }

// AllOf runs every member concurrently under a shared internal Executor
// and completes with the per-member results in input order once every
// member has succeeded. The first member error seen aborts the whole
// group — every other member's Coroutine is disposed via scoped cleanup.
func AllOf[T any](members []*Future[T]) *Future[[]T] {
	return newFuture[[]T](func(out *Future[[]T]) Step {
		steps := make([]Step, len(members))
		for i, m := range members {
			steps[i] = m.Run()
		}
		return &allOfStep[T]{group: newJoinGroup(steps), members: members, out: out}
	})
}

// AllOf2 is the fixed-arity tuple convenience over AllOf, preserving
// each future's own result type rather than forcing a common element
// type.
func AllOf2[T1, T2 any](f1 *Future[T1], f2 *Future[T2]) *Future[Pair[T1, T2]] {
	erased1 := FutureMap(f1, func(v T1) any { return v })
	erased2 := FutureMap(f2, func(v T2) any { return v })
	all := AllOf([]*Future[any]{erased1, erased2})
	return FutureMap(all, func(vs []any) Pair[T1, T2] {
		return Pair[T1, T2]{Fst: vs[0].(T1), Snd: vs[1].(T2)}
	})
}

// AllOf3 is the fixed-arity tuple convenience over AllOf for three
// members.
func AllOf3[T1, T2, T3 any](f1 *Future[T1], f2 *Future[T2], f3 *Future[T3]) *Future[Triple[T1, T2, T3]] {
	erased1 := FutureMap(f1, func(v T1) any { return v })
	erased2 := FutureMap(f2, func(v T2) any { return v })
	erased3 := FutureMap(f3, func(v T3) any { return v })
	all := AllOf([]*Future[any]{erased1, erased2, erased3})
	return FutureMap(all, func(vs []any) Triple[T1, T2, T3] {
		return Triple[T1, T2, T3]{Fst: vs[0].(T1), Snd: vs[1].(T2), Trd: vs[2].(T3)}
	})
}
