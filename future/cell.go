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
	"github.com/nodalcore/cellular"
	catomic "github.com/nodalcore/cellular/atomic"
	"github.com/nodalcore/cellular/dispatch"
)

// Cell is an asynchronous, single-assignment result container. It starts
// Waiting, may advance to Executing, and becomes Resolved at most once, at
// which point every registered observer is notified exactly once. A Cell's
// zero value is not usable; obtain one from a constructor in this package.
type Cell[V any] struct {
	state   catomic.Uint32
	outcome catomic.Value[Outcome[V]]
	waiters waiterStack[V]

	dispatcher dispatch.Dispatcher
	queue      dispatch.Queue

	// refs counts currently-pending waiters (registered callbacks and
	// parked Wait callers) that have not yet been notified. It backs
	// Resolver.NeedsResolution: a producer can check whether anything is
	// still depending on the result before doing expensive work.
	refs cellular.RefCount
}

func newCell[V any](d dispatch.Dispatcher, q dispatch.Queue) *Cell[V] {
	return &Cell[V]{dispatcher: d, queue: q}
}

func (c *Cell[V]) isResolved() bool {
	return c.state.Load() == stateResolved
}

// claim attempts to move the cell from a pre-resolved state (Waiting or
// Executing) to the transient, exclusive-write state. It reports whether
// the caller won the right to publish the slot.
func (c *Cell[V]) claim() bool {
	for {
		cur := c.state.Load()
		if cur != stateWaiting && cur != stateExecuting {
			return false
		}
		if c.state.CAS(cur, stateTransient) {
			return true
		}
	}
}

// resolve is the sole write path: it is reached by Resolver.Resolve, by the
// implicit resolver-went-away cancellation, and by combinators publishing to
// their own freshly constructed downstream cell.
func (c *Cell[V]) resolve(o Outcome[V]) error {
	if !c.claim() {
		return ErrAlreadyResolved
	}

	c.outcome.Store(o)
	c.state.Store(stateResolved)

	head := reverseFIFO(c.waiters.takeAll())
	for w := head; w != nil; {
		next := w.next.Load()
		w.next.Store(nil)
		if w.cb != nil {
			c.deliver(w.cb, o)
		} else {
			w.wake()
		}
		c.refs.Release()
		w = next
	}
	return nil
}

// deliver hands cb(o) to the cell's dispatcher, or calls it directly if the
// cell was never given one (the case for FromValue/FromError cells, which
// have nothing to dispatch through and are always already resolved anyway).
func (c *Cell[V]) deliver(cb func(Outcome[V]), o Outcome[V]) {
	if c.dispatcher != nil {
		c.dispatcher.Submit(c.queue, func() { cb(o) })
		return
	}
	cb(o)
}

// Peek returns the cell's outcome and true if it is resolved, or the zero
// Outcome and false otherwise. It never blocks.
func (c *Cell[V]) Peek() (Outcome[V], bool) {
	if !c.isResolved() {
		var zero Outcome[V]
		return zero, false
	}
	o, _ := c.outcome.Load()
	return o, true
}

// State reports the cell's current lifecycle phase.
func (c *Cell[V]) State() State {
	return externalize(c.state.Load())
}

// Observe registers cb to run exactly once with the cell's outcome. If the
// cell is already resolved, cb runs immediately (synchronously, if the cell
// has no dispatcher; otherwise submitted to the dispatcher right away).
// Otherwise cb is queued and dispatched when the cell resolves.
func (c *Cell[V]) Observe(cb func(Outcome[V])) {
	if o, ok := c.Peek(); ok {
		c.deliver(cb, o)
		return
	}

	c.refs.Retain()
	w := newCallbackWaiter(cb)
	if c.waiters.push(w) {
		return
	}

	// Lost the race: the cell resolved between our Peek and our push.
	c.refs.Release()
	o, _ := c.Peek()
	c.deliver(cb, o)
}

// Wait blocks the calling goroutine until the cell resolves, returning its
// outcome. It returns immediately if the cell is already resolved.
func (c *Cell[V]) Wait() Outcome[V] {
	if o, ok := c.Peek(); ok {
		return o
	}

	c.refs.Retain()
	w := newParkWaiter[V]()
	if !c.waiters.push(w) {
		c.refs.Release()
		o, _ := c.Peek()
		return o
	}

	w.park()
	o, _ := c.Peek()
	return o
}

// Cancel attempts to resolve the cell with a Canceled(reason) error,
// reporting whether this attempt won the resolution race. It is how
// observers abandon a derived cell: an already resolved cell is unaffected,
// and an upstream producer racing against the cancellation simply loses its
// own resolve attempt.
func (c *Cell[V]) Cancel(reason string) bool {
	return c.resolve(Failure[V](Canceled(reason))) == nil
}

// On returns a derived cell whose observers run on queue (using the same
// dispatcher), resolving with the same outcome as c. If c has no dispatcher
// (FromValue, FromError), neither has the derived cell: queue goes unused
// and its observers run synchronously.
func (c *Cell[V]) On(queue dispatch.Queue) *Cell[V] {
	out := newCell[V](c.dispatcher, queue)
	c.Observe(func(o Outcome[V]) { out.resolve(o) })
	return out
}
