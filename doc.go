// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package coro provides a cooperative coroutine runtime for host
// applications that drive time-stepped updates, such as a game engine's
// frame loop.
//
// # Design Philosophy
//
// coro gives ordinary step-yielding procedures four properties the Go
// runtime does not supply natively:
//
//   - a call stack for nested blocks, so one block can suspend on another
//   - concurrent composition of many blocks under a single driver
//   - a value-and-error channel layered on top of blocks, so they can
//     produce typed results
//   - deterministic resource release on early termination
//
// # Step Producers
//
// [Step] is the lazy, single-pass sequence at the bottom of the stack.
// Each call to [Step.Advance] returns a [Yielded] marker or reports
// completion:
//
//   - [Pause]: come back next tick
//   - [Nested]: push a child step producer onto the driving [Coroutine]
//   - [Op]: an [Operation] command to the driving coroutine; the only
//     operation this core defines is [Become], a tail-replacement
//
// # Coroutine Machine
//
// [Coroutine] owns a stack of step producers. [New] constructs one from a
// root [Step]; [Coroutine.Resume] advances it one tick. [Sleep] is a step
// producer that pauses for a number of seconds measured against the
// ambient delta carried in [Cx].
//
// # Executor
//
// [Executor] multiplexes many [Resumable] values under a shared time step,
// advancing members in reverse insertion order each tick so a member can
// safely remove itself mid-pass. [Join], [JoinWhile], and [TimedJoin]
// convert a Resumable into a Step an outer coroutine can await.
//
// # Futures
//
// [Future] is a typed, step-driven value-or-error producer. Constructors:
// [Value], [Failed], [FromFunc], [Block], [Threaded], [Pool]. Combinators:
// [Bind], [Then], [FutureMap], [Catch], [AllOf], [AllOf2], [AllOf3],
// [FirstOf], [WaitAllOf], [WaitAllOf2], [WaitAllOf3], [Loop], [Wait],
// [WaitPred]. [CompletionSource] is the out-of-band escape hatch for
// futures whose result arrives from outside the cooperative loop.
//
// # Scoped Cleanup
//
// [Defer] records cleanup thunks and runs them in reverse order (LIFO) on
// disposal; disposing twice is a no-op.
//
// # Errors
//
// [AggregateError] collects the inner errors from concurrent combinators
// and can [AggregateError.Flatten] nested aggregates. Sentinel errors
// ([ErrMalformedYield], [ErrBlockDidNotComplete], [ErrNullReducerResult],
// [ErrDoubleCompletion]) surface the protocol violations this core treats
// as programming errors rather than domain errors.
//
// # Out of Scope
//
// coro never reads environment variables or files, and never mandates a
// logging or configuration stack on its host. [Logger] is an optional,
// narrow observability seam a host may wire in; the default is silent.
package coro
