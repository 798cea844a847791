// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

// Executor multiplexes many Resumable values under a shared time step.
// Each Resume pass advances every member in reverse insertion order —
// this lets a member safely remove itself mid-pass without disturbing
// the indices of not-yet-advanced peers — then removes members whose
// Finished became true, preserving the relative order of survivors.
//
// Executor does not own its members in the lifecycle sense: a caller
// that wants disposal on termination must dispose members itself, or
// drive them through a Future combinator (AllOf, FirstOf, WaitAllOf)
// that owns its internal Executor and member drivers.
type Executor struct {
	members []Resumable
	logger  Logger
}

// NewExecutor creates an empty Executor.
func NewExecutor() *Executor {
	return &Executor{logger: NopLogger{}}
}

// SetLogger installs the optional observability seam; a nil logger
// restores the default no-op.
func (e *Executor) SetLogger(logger Logger) {
	if logger == nil {
		logger = NopLogger{}
	}
	e.logger = logger
}

// Add registers r. Adding the same Resumable more than once adds it more
// than once; Executor does not deduplicate.
func (e *Executor) Add(r Resumable) {
	e.members = append(e.members, r)
}

// Remove deregisters the first occurrence of r, preserving the relative
// order of the remaining members. Reports whether r was found.
func (e *Executor) Remove(r Resumable) bool {
	for i, m := range e.members {
		if m == r {
			e.members = append(e.members[:i], e.members[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the Executor. It does not dispose members.
func (e *Executor) Clear() {
	e.members = e.members[:0]
}

// Contains reports whether r is currently registered.
func (e *Executor) Contains(r Resumable) bool {
	for _, m := range e.members {
		if m == r {
			return true
		}
	}
	return false
}

// Len reports the number of registered members.
func (e *Executor) Len() int {
	return len(e.members)
}

// Each calls f for every currently registered member, in insertion
// order, stopping early if f returns false. f must not mutate the
// Executor.
func (e *Executor) Each(f func(Resumable) bool) {
	for _, m := range e.members {
		if !f(m) {
			return
		}
	}
}

// Finished reports whether the Executor has no members.
func (e *Executor) Finished() bool {
	return len(e.members) == 0
}

// Resume advances every member once, in reverse insertion order, then
// removes members whose Finished became true. The first error reported
// by a member's Resume is remembered and returned after the full pass
// completes — a misbehaving member does not starve its peers of their
// tick.
func (e *Executor) Resume(delta float64) error {
	var firstErr error
	for i := len(e.members) - 1; i >= 0; i-- {
		if err := e.members[i].Resume(delta); err != nil {
			e.logger.Warn("coro: executor member resume failed", Field{Key: "error", Value: err})
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if len(e.members) == 0 {
		return firstErr
	}
	survivors := e.members[:0]
	for _, m := range e.members {
		if !m.Finished() {
			survivors = append(survivors, m)
		}
	}
	e.members = survivors
	return firstErr
}
