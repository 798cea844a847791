// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

// Join adapters convert a Resumable into a Step an outer Coroutine can
// await. Each checks its continuation condition, resumes the member, and
// rechecks the condition before deciding whether to yield Pause — so a
// member that finishes (or a predicate that turns false) as a direct
// result of that resume completes the Step in the same tick, rather than
// costing the caller an extra round trip through Pause.

type joinStep struct {
	r         Resumable
	pred      func() bool
	budget    float64
	hasBudget bool
}

// shouldContinue reports whether another resume is warranted, per the
// variant's stopping condition.
func (j *joinStep) shouldContinue() bool {
	if j.pred != nil {
		return j.pred()
	}
	if j.hasBudget {
		return j.budget > 0 && !j.r.Finished()
	}
	return !j.r.Finished()
}

func (j *joinStep) Advance(cx *Cx) (Yielded, bool, error) {
	if !j.shouldContinue() {
		return nil, false, nil
	}
	err := j.r.Resume(cx.Delta)
	if j.hasBudget {
		j.budget -= cx.Delta
	}
	if err != nil {
		return nil, false, err
	}
	if !j.shouldContinue() {
		return nil, false, nil
	}
	return pauseYielded, true, nil
}

// Join returns a Step that resumes r every tick until r.Finished, then
// completes. The condition is rechecked immediately after each resume,
// so a Resumable that finishes on its very first Resume never costs the
// caller an extra tick.
func Join(r Resumable) Step {
	return &joinStep{r: r}
}

// JoinWhile returns a Step that resumes r every tick while pred returns
// true, ignoring r.Finished entirely. The Step completes the first time
// pred returns false, whether checked before or immediately after a
// resume.
func JoinWhile(r Resumable, pred func() bool) Step {
	return &joinStep{r: r, pred: pred}
}

// TimedJoin returns a Step that resumes r every tick, subtracting the
// ambient delta from budget on every iteration, until budget drops to
// zero or below, or r.Finished. Unlike Join and JoinWhile, TimedJoin can
// complete on budget exhaustion even if r has not finished.
func TimedJoin(r Resumable, budget float64) Step {
	return &joinStep{r: r, budget: budget, hasBudget: true}
}
