// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

// firstOfStep drives FirstOf's runner: the same joinGroup shape as
// AllOf, but the first member to qualify as a winner breaks the loop
// immediately instead of waiting on every member.
type firstOfStep[T any] struct {
	group         *joinGroup
	members       []*Future[T]
	onlyCompleted bool
	out           *Future[T]
	decided       bool
}

// pickWinner scans members for one that qualifies as the winner under
// the onlyCompleted rule. When onlyCompleted is true only a successful
// member can win — a fault never short-circuits the group by itself, so
// two members finishing in the same tick with one success and one
// failure always resolve to the success, regardless of advance order.
func (s *firstOfStep[T]) pickWinner() (*Future[T], bool) {
	for i, m := range s.members {
		if !s.group.coros[i].Finished() {
			continue
		}
		if s.onlyCompleted && m.Err() != nil {
			continue
		}
		return m, true
	}
	return nil, false
}

func (s *firstOfStep[T]) allSettled() bool {
	for i := range s.members {
		if !s.group.coros[i].Finished() {
			return false
		}
	}
	return true
}

func (s *firstOfStep[T]) resolve() bool {
	if winner, ok := s.pickWinner(); ok {
		v, _ := winner.Result()
		if err := winner.Err(); err != nil {
			s.out.setErr(err)
		} else {
			s.out.setResult(v)
		}
		s.group.dispose()
		return true
	}
	if s.allSettled() {
		var errs []error
		for _, m := range s.members {
			if err := m.Err(); err != nil {
				errs = append(errs, err)
			}
		}
		if len(errs) == 0 {
			// Every member settled without error and without winning —
			// unreachable for well-formed futures, but fall back to the
			// first member's zero result rather than panic.
			v, _ := s.members[0].Result()
			s.out.setResult(v)
		} else {
			s.out.setErr(NewAggregateError(errs...))
		}
		s.group.dispose()
		return true
	}
	return false
}

func (s *firstOfStep[T]) Advance(cx *Cx) (Yielded, bool, error) {
	if !s.decided && s.resolve() {
		s.decided = true
	}
	if s.decided {
		return nil, false, nil
	}
	if err := s.group.tick(cx.Delta); err != nil {
		s.out.setErr(err)
		s.group.dispose()
		s.decided = true
		return nil, false, nil
	}
	if s.resolve() {
		s.decided = true
		return nil, false, nil
	}
	return pauseYielded, true, nil
}

func (s *firstOfStep[T]) Dispose() { s.group.dispose() }

// FirstOf races every member concurrently and completes with the first
// one to qualify as a winner: when onlyCompleted is false, the first
// member to finish at all, success or failure; when true, the first
// member to finish successfully. If onlyCompleted is true and every
// member finishes with an error, the result is an *AggregateError of all
// member errors.
func FirstOf[T any](members []*Future[T], onlyCompleted bool) *Future[T] {
	if len(members) == 0 {
		return Failed[T](wrapf("coro: first-of requires at least one member"))
	}
	return newFuture[T](func(out *Future[T]) Step {
		steps := make([]Step, len(members))
		for i, m := range members {
			steps[i] = m.Run()
		}
		return &firstOfStep[T]{group: newJoinGroup(steps), members: members, onlyCompleted: onlyCompleted, out: out}
	})
}

// FirstCompleted waits for the first member to finish successfully,
// ignoring faster members that fail, and only reports an AggregateError
// if every member eventually fails.
func FirstCompleted[T any](members []*Future[T]) *Future[T] {
	return FirstOf(members, true)
}

// FirstCompletedOrFaulted adopts whichever member finishes first,
// success or failure, without waiting for a success to appear.
func FirstCompletedOrFaulted[T any](members []*Future[T]) *Future[T] {
	return FirstOf(members, false)
}
