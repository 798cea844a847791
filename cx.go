// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

// Cx carries the ambient per-tick context through a Resume call. It is
// passed explicitly down through every Advance call rather than held in
// a goroutine-local cell, so the dependency is visible in every
// signature that needs it and Coroutine stays reentrant-safe without
// runtime magic. A Cx is allocated once per top-level Resume and reused
// for every nested Advance within that tick; a combinator that drives an
// internal Executor constructs a child Cx from the same Delta it was
// handed, so nested resumables observe the same tick's delta as their
// parent unless a combinator deliberately scales it.
type Cx struct {
	// Delta is the time, in seconds, elapsed since the previous tick.
	Delta float64
}

// childCx returns a Cx for a nested Resume call that should observe the
// same delta as cx, without aliasing cx itself.
func (cx *Cx) childCx() *Cx {
	return &Cx{Delta: cx.Delta}
}
