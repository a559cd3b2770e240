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

import "github.com/nodalcore/cellular/dispatch"

// FromValue returns a cell pre-resolved to a successful value. It carries no
// dispatcher: since it is already resolved the instant it exists, Observe
// calls on it always take the synchronous fast path.
func FromValue[V any](v V) *Cell[V] {
	c := newCell[V](nil, nil)
	c.state.Store(stateResolved)
	c.outcome.Store(Value(v))
	return c
}

// FromError returns a cell pre-resolved to a failure.
func FromError[V any](err error) *Cell[V] {
	c := newCell[V](nil, nil)
	c.state.Store(stateResolved)
	c.outcome.Store(Failure[V](err))
	return c
}

// FromTask schedules f on queue via dispatcher; f's return value or error
// resolves the returned cell. The cell transitions to Executing immediately,
// before f is even submitted, since the producer is already committed to
// running.
func FromTask[V any](d dispatch.Dispatcher, queue dispatch.Queue, f func() (V, error)) *Cell[V] {
	c := newCell[V](d, queue)
	c.state.CAS(stateWaiting, stateExecuting)

	d.Submit(queue, func() {
		v, err := f()
		if err != nil {
			c.resolve(Failure[V](err))
			return
		}
		c.resolve(Value(v))
	})
	return c
}

// WithResolver creates a cell left Waiting, invokes init synchronously with
// a Resolver bound to it, and returns the cell. init is the hook through
// which external, non-task-shaped producers (callbacks from another API,
// data arriving off a socket, and so on) plug into the cell engine.
func WithResolver[V any](d dispatch.Dispatcher, queue dispatch.Queue, init func(*Resolver[V])) *Cell[V] {
	c := newCell[V](d, queue)
	r := newResolver(c)
	init(r)
	return c
}
