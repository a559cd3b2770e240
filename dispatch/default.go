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

package dispatch

import (
	"log"
	"time"

	"github.com/nodalcore/cellular/atomic"
	"github.com/nodalcore/cellular/unison"
)

// DefaultDispatcher is a concrete Dispatcher good enough to drive the full
// combinator algebra and the stress scenarios: one priority queue per
// Priority level, each bounded to a fixed number of concurrently running
// tasks by a unison.Semaphore. Submission itself never blocks; a task
// waiting for a free permit sits in its own goroutine until one frees up.
type DefaultDispatcher struct {
	concurrency int
	queues      [priorityCount]*priorityQueue
	current     atomic.Value[Priority]
}

const priorityCount = int(UserInteractive) + 1

// NewDefaultDispatcher creates a dispatcher whose queues each allow up to
// perQueueConcurrency tasks to run at once. perQueueConcurrency must be at
// least 1.
func NewDefaultDispatcher(perQueueConcurrency int) *DefaultDispatcher {
	if perQueueConcurrency < 1 {
		panic("dispatch: perQueueConcurrency must be >= 1")
	}

	d := &DefaultDispatcher{concurrency: perQueueConcurrency}
	for p := 0; p < priorityCount; p++ {
		d.queues[p] = &priorityQueue{
			priority: Priority(p),
			sem:      unison.NewSemaphore(perQueueConcurrency),
		}
	}
	return d
}

// priorityQueue is the Queue implementation backing DefaultDispatcher.
type priorityQueue struct {
	priority Priority
	sem      *unison.Semaphore
	pending  atomic.Uint32
	warned   atomic.Bool
}

func (q *priorityQueue) Priority() Priority { return q.priority }

// saturatedAt is the pending-task count past which DefaultDispatcher logs a
// single pushback warning per queue, re-armed once the pending count falls
// back to saturatedAt/2 or below.
const saturatedAt = 64

func (d *DefaultDispatcher) queueFor(queue Queue) *priorityQueue {
	q, ok := queue.(*priorityQueue)
	if !ok || q == nil {
		panic("dispatch: queue was not obtained from this dispatcher")
	}
	return q
}

// Submit implements Dispatcher.
func (d *DefaultDispatcher) Submit(queue Queue, task Task) {
	q := d.queueFor(queue)

	if n := q.pending.Add(1); n > saturatedAt && q.warned.CAS(false, true) {
		log.Printf("dispatch: queue %s saturated, %d tasks pending", q.priority, n)
	}

	go func() {
		defer func() {
			if q.pending.Add(^uint32(0)) <= saturatedAt/2 {
				q.warned.Store(false)
			}
		}()

		q.sem.Acquire()
		defer q.sem.Release()

		d.current.Store(q.priority)
		task()
	}()
}

// SubmitAfter implements Dispatcher. The delay is honored by a stdlib timer;
// the returned cancel function stops that timer before it fires. Once the
// timer has fired and the task handed to Submit, cancel has no further
// effect.
func (d *DefaultDispatcher) SubmitAfter(queue Queue, delay time.Duration, task Task) func() {
	timer := time.AfterFunc(delay, func() {
		d.Submit(queue, task)
	})
	return func() { timer.Stop() }
}

// DefaultQueue implements Dispatcher. The same Queue value is returned for
// every call with the same hint.
func (d *DefaultDispatcher) DefaultQueue(hint Priority) Queue {
	if int(hint) < 0 || int(hint) >= priorityCount {
		hint = Unspecified
	}
	return d.queues[hint]
}

// CurrentPriority implements Dispatcher. It is a best-effort, dispatcher-wide
// signal: it reports the priority of whichever queue most recently started
// running a task, not a true per-goroutine value (Go has no supported
// goroutine-local storage). Combinators that inherit priority for a task
// submitted from within another task get the right answer in the common
// case of a task dispatching its own continuation; concurrent unrelated
// submissions can race the signal.
func (d *DefaultDispatcher) CurrentPriority() Priority {
	p, ok := d.current.Load()
	if !ok {
		return Unspecified
	}
	return p
}
