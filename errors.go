// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// Sentinel errors for the protocol violations this core treats as
// programming errors rather than ordinary domain errors.
var (
	// ErrMalformedYield is returned from Resume when a Step yields a
	// Yielded value this runtime does not recognize, or an Op carrying an
	// Operation other than Become. The operation vocabulary is closed:
	// Become is the only Operation this core defines.
	ErrMalformedYield = errors.New("coro: malformed yield")

	// ErrBlockDidNotComplete is the error a Block future reports when its
	// step producer terminates without calling Channel.Accept or
	// Channel.Fail.
	ErrBlockDidNotComplete = errors.New("coro: block did not complete")

	// ErrNullReducerResult is the error a Loop future reports when its
	// reducer returns a nil *Future.
	ErrNullReducerResult = errors.New("coro: loop reducer returned a nil future")

	// ErrDoubleCompletion is returned by CompletionSource.Accept or
	// CompletionSource.Fail when the source has already been completed.
	ErrDoubleCompletion = errors.New("coro: completion source completed twice")
)

// AggregateError holds a non-empty list of inner errors produced by a
// concurrent combinator (FirstOf's all-failed case, or a caller composing
// errors by hand), and can recursively flatten nested aggregates.
//
// AggregateError is backed by go.uber.org/multierr for list construction
// and errors.Is/As traversal; Flatten and Handle are this package's own
// additions on top.
type AggregateError struct {
	err error
}

// NewAggregateError builds an AggregateError from a non-empty list of
// inner errors. Panics if errs is empty — callers that do not know in
// advance whether they have at least one error should check len(errs)
// first.
func NewAggregateError(errs ...error) *AggregateError {
	if len(errs) == 0 {
		panic("coro: NewAggregateError requires at least one error")
	}
	return &AggregateError{err: multierr.Combine(errs...)}
}

// Error implements the error interface.
func (a *AggregateError) Error() string {
	if a == nil || a.err == nil {
		return "coro: empty aggregate error"
	}
	return a.err.Error()
}

// Unwrap exposes the inner error list to errors.Is/errors.As.
func (a *AggregateError) Unwrap() []error {
	return multierr.Errors(a.err)
}

// Errors returns the flat, pre-flatten list of inner errors exactly as
// stored.
func (a *AggregateError) Errors() []error {
	return multierr.Errors(a.err)
}

// Flatten recursively unwraps any inner *AggregateError, in order, so
// that Flatten of an AggregateError of AggregateErrors returns the fully
// flat leaf list.
func (a *AggregateError) Flatten() []error {
	var out []error
	var walk func(err error)
	walk = func(err error) {
		var inner *AggregateError
		if errors.As(err, &inner) {
			for _, e := range inner.Errors() {
				walk(e)
			}
			return
		}
		out = append(out, err)
	}
	for _, e := range a.Errors() {
		walk(e)
	}
	return out
}

// Handle returns the flattened inner errors matching predicate, without
// requiring callers to recurse through nested aggregates by hand.
func (a *AggregateError) Handle(predicate func(error) bool) []error {
	var out []error
	for _, e := range a.Flatten() {
		if predicate(e) {
			out = append(out, e)
		}
	}
	return out
}

// wrapf is a thin fmt.Errorf helper so call sites read as prose instead
// of repeating the verb soup.
func wrapf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}
