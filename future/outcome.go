// Licensed to Elasticsearch B.V. under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. Elasticsearch B.V. licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

// Package future implements a lock-free, single-assignment result cell and
// the combinator algebra built on top of it. A Cell is initially unresolved,
// becomes resolved at most once with either a value or an error, and
// notifies any number of observers when that happens. User callbacks never
// run inside the cell's own machinery; they are handed to a
// cellular/dispatch.Dispatcher.
package future

// Outcome is the sum of a successful value or a failure, stored exactly once
// in a Cell's resolved slot. The zero value is not meaningful; construct one
// with Value or Failure.
type Outcome[V any] struct {
	value V
	err   error
}

// Value builds a successful Outcome.
func Value[V any](v V) Outcome[V] {
	return Outcome[V]{value: v}
}

// Failure builds a failed Outcome. Passing a nil err is a programmer error
// and panics, since it would be indistinguishable from a successful Outcome
// of the zero value.
func Failure[V any](err error) Outcome[V] {
	if err == nil {
		panic("future: Failure called with a nil error")
	}
	return Outcome[V]{err: err}
}

// IsValue reports whether the outcome is a success.
func (o Outcome[V]) IsValue() bool { return o.err == nil }

// IsError reports whether the outcome is a failure.
func (o Outcome[V]) IsError() bool { return o.err != nil }

// Unpack returns the success value and true, or the zero value and false if
// the outcome is a failure.
func (o Outcome[V]) Unpack() (V, bool) { return o.value, o.err == nil }

// Err returns the failure, or nil if the outcome is a success.
func (o Outcome[V]) Err() error { return o.err }

// MapOutcome transforms a successful outcome's value with f, propagating any
// existing error unchanged and any error returned by f. Outcome does not
// expose this as a method because Go methods cannot introduce a second type
// parameter independent of the receiver's.
func MapOutcome[V, W any](o Outcome[V], f func(V) (W, error)) Outcome[W] {
	if o.err != nil {
		return Outcome[W]{err: o.err}
	}
	w, err := f(o.value)
	if err != nil {
		return Outcome[W]{err: err}
	}
	return Outcome[W]{value: w}
}

// FlatMapOutcome is MapOutcome for a transform that itself yields an
// Outcome, flattening the result instead of nesting it.
func FlatMapOutcome[V, W any](o Outcome[V], f func(V) Outcome[W]) Outcome[W] {
	if o.err != nil {
		return Outcome[W]{err: o.err}
	}
	return f(o.value)
}

// ApplyOutcome applies fo's function to o's value. If both are successful,
// the function result is returned; if either failed, o's error takes
// priority, matching the Cell Apply combinator's tie-break.
func ApplyOutcome[V, W any](o Outcome[V], fo Outcome[func(V) W]) Outcome[W] {
	if o.err != nil {
		return Outcome[W]{err: o.err}
	}
	if fo.err != nil {
		return Outcome[W]{err: fo.err}
	}
	return Outcome[W]{value: fo.value(o.value)}
}
