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
	"sync"
	"time"

	"github.com/nodalcore/cellular"
	"github.com/nodalcore/cellular/dispatch"
)

// Map applies f to the source's value, propagating errors unchanged. If f
// returns an error, it becomes the derived cell's error. Go methods can't
// take an extra type parameter, so every combinator here is a free function
// rather than a method on Cell.
func Map[V, W any](c *Cell[V], f func(V) (W, error)) *Cell[W] {
	out := newCell[W](c.dispatcher, c.queue)
	c.Observe(func(o Outcome[V]) {
		out.resolve(MapOutcome(o, f))
	})
	return out
}

// FlatMap invokes f(value) on a successful upstream resolution to obtain an
// inner cell, then wires inner's outcome to the returned cell. inner is
// observed, not owned: canceling the returned cell has no effect on inner.
// Upstream errors propagate without calling f.
func FlatMap[V, W any](c *Cell[V], f func(V) *Cell[W]) *Cell[W] {
	out := newCell[W](c.dispatcher, c.queue)
	c.Observe(func(o Outcome[V]) {
		v, ok := o.Unpack()
		if !ok {
			out.resolve(Failure[W](o.Err()))
			return
		}
		f(v).Observe(func(io Outcome[W]) {
			out.resolve(io)
		})
	})
	return out
}

// Apply waits for both c and fc, then applies fc's function to c's value.
// If either failed, c's error takes priority when both resolved with one.
func Apply[V, W any](c *Cell[V], fc *Cell[func(V) W]) *Cell[W] {
	out := newCell[W](c.dispatcher, c.queue)

	var mu sync.Mutex
	var vOut Outcome[V]
	var fOut Outcome[func(V) W]
	var vDone, fDone bool

	settle := func() {
		if vDone && fDone {
			out.resolve(ApplyOutcome(vOut, fOut))
		}
	}

	c.Observe(func(o Outcome[V]) {
		mu.Lock()
		vOut, vDone = o, true
		settle()
		mu.Unlock()
	})
	fc.Observe(func(o Outcome[func(V) W]) {
		mu.Lock()
		fOut, fDone = o, true
		settle()
		mu.Unlock()
	})
	return out
}

// Recover passes a successful upstream value through unchanged; an upstream
// error is routed to f, whose returned cell resolves the result.
func Recover[V any](c *Cell[V], f func(error) *Cell[V]) *Cell[V] {
	out := newCell[V](c.dispatcher, c.queue)
	c.Observe(func(o Outcome[V]) {
		if o.IsValue() {
			out.resolve(o)
			return
		}
		f(o.Err()).Observe(func(io Outcome[V]) {
			out.resolve(io)
		})
	})
	return out
}

// Delay re-dispatches a successful upstream resolution after d using the
// cell's dispatcher. Errors bypass the delay and resolve immediately.
func Delay[V any](c *Cell[V], d time.Duration) *Cell[V] {
	out := newCell[V](c.dispatcher, c.queue)
	c.Observe(func(o Outcome[V]) {
		if o.IsError() {
			out.resolve(o)
			return
		}
		if c.dispatcher == nil {
			time.AfterFunc(d, func() { out.resolve(o) })
			return
		}
		c.dispatcher.SubmitAfter(c.queue, d, func() { out.resolve(o) })
	})
	return out
}

// Timeout arms a delayed cancellation on the returned cell. Whichever
// resolves first, the timer firing or the upstream cell resolving, wins;
// the loser's resolve attempt is silently discarded as AlreadyResolved.
func Timeout[V any](c *Cell[V], d time.Duration, reason string) *Cell[V] {
	out := newCell[V](c.dispatcher, c.queue)

	var cancelTimer func()
	if c.dispatcher != nil {
		cancelTimer = c.dispatcher.SubmitAfter(c.queue, d, func() {
			out.resolve(Failure[V](Canceled(reason)))
		})
	} else {
		t := time.AfterFunc(d, func() { out.resolve(Failure[V](Canceled(reason))) })
		cancelTimer = func() { t.Stop() }
	}

	c.Observe(func(o Outcome[V]) {
		if out.resolve(o) == nil {
			cancelTimer()
		}
	})
	return out
}

// Pair is the value Combine2 resolves with.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Triple is the value Combine3 resolves with.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Combine2 resolves once both a and b succeed. It is built from FlatMap over
// the pair rather than its own observer bookkeeping, so b is only looked at
// after a has resolved: if a fails, a's error is the result; otherwise b's
// error is. The combined cell does not resolve before a does, even when b
// has already failed.
func Combine2[A, B any](a *Cell[A], b *Cell[B]) *Cell[Pair[A, B]] {
	return FlatMap(a, func(av A) *Cell[Pair[A, B]] {
		return Map(b, func(bv B) (Pair[A, B], error) {
			return Pair[A, B]{First: av, Second: bv}, nil
		})
	})
}

// Combine3 resolves once a, b, and c all succeed, again via repeated
// FlatMap/Map over Combine2's pair. Errors are taken in argument order the
// same way: the earliest failing argument's error is the result, once every
// argument before it has resolved.
func Combine3[A, B, C any](a *Cell[A], b *Cell[B], c *Cell[C]) *Cell[Triple[A, B, C]] {
	pair := Combine2(a, b)
	return FlatMap(pair, func(p Pair[A, B]) *Cell[Triple[A, B, C]] {
		return Map(c, func(cv C) (Triple[A, B, C], error) {
			return Triple[A, B, C]{First: p.First, Second: p.Second, Third: cv}, nil
		})
	})
}

// FirstValue resolves with the first value produced by any of cs. If every
// input errors (or cs is empty), it resolves with ErrNoResult.
func FirstValue[V any](d dispatch.Dispatcher, queue dispatch.Queue, cs []*Cell[V]) *Cell[V] {
	out := newCell[V](d, queue)
	if len(cs) == 0 {
		out.resolve(Failure[V](ErrNoResult))
		return out
	}

	var mu sync.Mutex
	remaining := len(cs)

	for _, c := range cs {
		c.Observe(func(o Outcome[V]) {
			if v, ok := o.Unpack(); ok {
				out.resolve(Value(v))
				return
			}
			mu.Lock()
			remaining--
			last := remaining == 0
			mu.Unlock()
			if last {
				out.resolve(Failure[V](ErrNoResult))
			}
		})
	}
	return out
}

// FirstResolved resolves with whichever of cs resolves first, value or
// error. An empty cs resolves with ErrNoResult.
func FirstResolved[V any](d dispatch.Dispatcher, queue dispatch.Queue, cs []*Cell[V]) *Cell[V] {
	out := newCell[V](d, queue)
	if len(cs) == 0 {
		out.resolve(Failure[V](ErrNoResult))
		return out
	}

	for _, c := range cs {
		c.Observe(func(o Outcome[V]) {
			out.resolve(o)
		})
	}
	return out
}

// InParallel returns n cells, each running task(i) on d. A cellular.Barrier
// holds every task at its starting line until all n have been submitted and
// reached it, so they begin running genuinely concurrently rather than in
// whatever order the dispatcher happened to schedule them.
func InParallel[V any](d dispatch.Dispatcher, queue dispatch.Queue, n int, task func(i int) (V, error)) []*Cell[V] {
	barrier := cellular.NewBarrier(uint(n))
	cells := make([]*Cell[V], n)
	for i := 0; i < n; i++ {
		i := i
		cells[i] = FromTask(d, queue, func() (V, error) {
			barrier.Wait()
			return task(i)
		})
	}
	return cells
}
