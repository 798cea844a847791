// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

// safeBind calls binder, recovering any panic into an error so a
// misbehaving user function surfaces in the Future's error slot instead
// of unwinding through the driving Coroutine.
func safeBind[A, B any](binder func(A) *Future[B], a A) (f *Future[B], err error) {
	defer func() {
		if r := recover(); r != nil {
			err = wrapf("coro: panic in bind binder: %v", r)
		}
	}()
	f = binder(a)
	return
}

func safeSelect[A, B, C any](selector func(A, B) C, a A, b B) (c C, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = wrapf("coro: panic in bind selector: %v", r)
		}
	}()
	c = selector(a, b)
	return
}

func safeMap[A, B any](h func(A) B, a A) (b B, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = wrapf("coro: panic in map function: %v", r)
		}
	}()
	b = h(a)
	return
}

func safeHandle[A any](handler func(error) *Future[A], e error) (f *Future[A], err error) {
	defer func() {
		if r := recover(); r != nil {
			err = wrapf("coro: panic in catch handler: %v", r)
		}
	}()
	f = handler(e)
	return
}

// bindStep drives Bind's two-phase sequencing. Each phase yields Nested
// so the driving Coroutine's own stack mechanism brings control back to
// this Step once the nested Future's Run completes.
type bindStep[A, B, C any] struct {
	first    *Future[A]
	binder   func(A) *Future[B]
	selector func(A, B) C
	out      *Future[C]
	second   *Future[B]
	phase    int
}

const (
	bindPhaseStart = iota
	bindPhaseAfterFirst
	bindPhaseAfterSecond
)

func (b *bindStep[A, B, C]) Advance(*Cx) (Yielded, bool, error) {
	switch b.phase {
	case bindPhaseStart:
		b.phase = bindPhaseAfterFirst
		return Nested{Child: b.first.Run()}, true, nil
	case bindPhaseAfterFirst:
		if err := b.first.Err(); err != nil {
			b.out.setErr(err)
			return nil, false, nil
		}
		av, _ := b.first.Result()
		second, err := safeBind(b.binder, av)
		if err != nil {
			b.out.setErr(err)
			return nil, false, nil
		}
		if second == nil {
			b.out.setErr(wrapf("coro: bind binder returned a nil future"))
			return nil, false, nil
		}
		b.second = second
		b.phase = bindPhaseAfterSecond
		return Nested{Child: second.Run()}, true, nil
	default:
		if err := b.second.Err(); err != nil {
			b.out.setErr(err)
			return nil, false, nil
		}
		av, _ := b.first.Result()
		bv, _ := b.second.Result()
		cv, err := safeSelect(b.selector, av, bv)
		if err != nil {
			b.out.setErr(err)
		} else {
			b.out.setResult(cv)
		}
		return nil, false, nil
	}
}

// Bind sequences two futures: runs first, passes its result to binder to
// obtain second, runs second, and combines both results through
// selector. Any error from first or second propagates unchanged; a
// panic raised by binder or selector is recovered into the resulting
// Future's error.
func Bind[A, B, C any](first *Future[A], binder func(A) *Future[B], selector func(A, B) C) *Future[C] {
	step := &bindStep[A, B, C]{first: first, binder: binder, selector: selector}
	return newFuture[C](func(out *Future[C]) Step {
		step.out = out
		return step
	})
}

// Then sequences two futures, discarding first's result and completing
// with second's.
func Then[A, B any](first *Future[A], g func(A) *Future[B]) *Future[B] {
	return Bind(first, g, func(_ A, b B) B { return b })
}

// mapStep drives FutureMap's single-phase projection.
type mapStep[A, B any] struct {
	first   *Future[A]
	h       func(A) B
	out     *Future[B]
	started bool
}

func (m *mapStep[A, B]) Advance(*Cx) (Yielded, bool, error) {
	if !m.started {
		m.started = true
		return Nested{Child: m.first.Run()}, true, nil
	}
	if err := m.first.Err(); err != nil {
		m.out.setErr(err)
		return nil, false, nil
	}
	av, _ := m.first.Result()
	bv, err := safeMap(m.h, av)
	if err != nil {
		m.out.setErr(err)
	} else {
		m.out.setResult(bv)
	}
	return nil, false, nil
}

// FutureMap projects a Future's successful result through h, leaving
// errors untouched.
func FutureMap[A, B any](first *Future[A], h func(A) B) *Future[B] {
	step := &mapStep[A, B]{first: first, h: h}
	return newFuture[B](func(out *Future[B]) Step {
		step.out = out
		return step
	})
}

// catchStep drives Catch's two-phase recovery.
type catchStep[A any] struct {
	first    *Future[A]
	handler  func(error) *Future[A]
	out      *Future[A]
	recovery *Future[A]
	phase    int
}

const (
	catchPhaseStart = iota
	catchPhaseAfterFirst
	catchPhaseAfterRecovery
)

func (c *catchStep[A]) Advance(*Cx) (Yielded, bool, error) {
	switch c.phase {
	case catchPhaseStart:
		c.phase = catchPhaseAfterFirst
		return Nested{Child: c.first.Run()}, true, nil
	case catchPhaseAfterFirst:
		if err := c.first.Err(); err == nil {
			v, _ := c.first.Result()
			c.out.setResult(v)
			return nil, false, nil
		}
		recovery, herr := safeHandle(c.handler, c.first.Err())
		if herr != nil {
			c.out.setErr(herr)
			return nil, false, nil
		}
		if recovery == nil {
			c.out.setErr(wrapf("coro: catch handler returned a nil future"))
			return nil, false, nil
		}
		c.recovery = recovery
		c.phase = catchPhaseAfterRecovery
		return Nested{Child: recovery.Run()}, true, nil
	default:
		if err := c.recovery.Err(); err != nil {
			c.out.setErr(err)
		} else {
			v, _ := c.recovery.Result()
			c.out.setResult(v)
		}
		return nil, false, nil
	}
}

// Catch runs first; on success it mirrors first's result. On error it
// calls handler to obtain a recovery Future, runs that instead, and
// adopts its result or error.
func Catch[A any](first *Future[A], handler func(error) *Future[A]) *Future[A] {
	step := &catchStep[A]{first: first, handler: handler}
	return newFuture[A](func(out *Future[A]) Step {
		step.out = out
		return step
	})
}
