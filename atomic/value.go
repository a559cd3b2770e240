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

package atomic

import "sync/atomic"

// Value is an atomically accessed pointer-sized box around an arbitrary
// type, built on the generic atomic.Pointer added to sync/atomic. It is used
// where a single value must be published with release/acquire semantics
// (e.g. a resolved slot) without resorting to interface{} and a type
// assertion at every read.
type Value[T any] struct {
	p atomic.Pointer[T]
}

// Load returns the most recently stored value and true, or the zero value
// and false if Store has never been called.
func (v *Value[T]) Load() (T, bool) {
	p := v.p.Load()
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}

// Store publishes val, overwriting any previous value.
func (v *Value[T]) Store(val T) {
	v.p.Store(&val)
}
