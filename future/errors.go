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

package future

import (
	"errors"
	"fmt"
)

// ErrAlreadyResolved is returned by Resolver.Resolve (and ResolveValue and
// ResolveError) when a cell has already been resolved by a prior call;
// Resolver.Cancel and Cell.Cancel report the same case by returning false.
// It is reported to the caller of the losing write, never to observers.
var ErrAlreadyResolved = errors.New("future: cell already resolved")

// ErrNoResult is the error FirstValue and FirstResolved resolve with when
// there is nothing to report: an empty input set, or (for FirstValue) every
// input resolving to an error.
var ErrNoResult = errors.New("future: no result")

// CancelError is the error a cell is resolved with when it is canceled,
// whether by an explicit Resolver.Cancel call, a Timeout combinator firing,
// or a Resolver being dropped without ever resolving its cell.
type CancelError struct {
	Reason string
}

func (e *CancelError) Error() string {
	if e.Reason == "" {
		return "future: canceled"
	}
	return fmt.Sprintf("future: canceled: %s", e.Reason)
}

// Canceled builds the error a cancellation resolves a cell with.
func Canceled(reason string) error {
	return &CancelError{Reason: reason}
}

// AsCanceled reports whether err is, or wraps, a CancelError, returning it.
func AsCanceled(err error) (*CancelError, bool) {
	var ce *CancelError
	ok := errors.As(err, &ce)
	return ce, ok
}
