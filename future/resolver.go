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

import "runtime"

// Resolver is the writer-side capability bound to exactly one Cell. It is
// distinct from the Cell itself so that "who may produce a result" and "who
// may observe it" are different types: a Resolver can be handed to a single
// producer while the Cell is shared freely with observers.
//
// If a Resolver is dropped (becomes unreachable) without ever resolving its
// cell, the cell is automatically resolved with a "resolver went away"
// cancellation, the idiomatic Go stand-in for the destructor-driven
// auto-cancellation a GC-free language would run synchronously on drop.
type Resolver[V any] struct {
	cell *Cell[V]
}

func newResolver[V any](c *Cell[V]) *Resolver[V] {
	r := &Resolver[V]{cell: c}
	runtime.SetFinalizer(r, func(r *Resolver[V]) {
		r.cell.resolve(Failure[V](Canceled("resolver went away")))
	})
	return r
}

// Resolve is the sole write entry point. It returns ErrAlreadyResolved if
// the cell was already resolved by a prior call.
func (r *Resolver[V]) Resolve(o Outcome[V]) error {
	err := r.cell.resolve(o)
	if err == nil {
		runtime.SetFinalizer(r, nil)
	}
	return err
}

// ResolveValue resolves the cell with a successful value.
func (r *Resolver[V]) ResolveValue(v V) error {
	return r.Resolve(Value(v))
}

// ResolveError resolves the cell with a failure.
func (r *Resolver[V]) ResolveError(err error) error {
	return r.Resolve(Failure[V](err))
}

// Cancel resolves the cell with a Canceled(reason) error. It reports whether
// this call won the resolution race.
func (r *Resolver[V]) Cancel(reason string) bool {
	return r.Resolve(Failure[V](Canceled(reason))) == nil
}

// BeginExecution advisorily transitions the cell from Waiting to Executing.
// It is idempotent and has no effect once the cell has left Waiting.
func (r *Resolver[V]) BeginExecution() {
	r.cell.state.CAS(stateWaiting, stateExecuting)
}

// NeedsResolution reports whether any observer is currently registered and
// awaiting this cell's outcome. A producer that wants to abandon expensive
// work early can poll this and bail out once it turns false.
func (r *Resolver[V]) NeedsResolution() bool {
	return r.cell.refs.Count() > 0
}

// Cell returns the cell this resolver is bound to.
func (r *Resolver[V]) Cell() *Cell[V] {
	return r.cell
}
