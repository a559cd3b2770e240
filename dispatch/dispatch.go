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

import "time"

// Task is a unit of work submitted to a Queue. It receives no arguments and
// returns nothing; any result is communicated by the caller closing over a
// future.Resolver or similar sink.
type Task func()

// Dispatcher is the external task-dispatch substrate the cell engine
// consumes. It never appears in the Cell/Resolver API surface directly;
// callers obtain a Queue once and pass it to constructors such as
// future.FromTask.
type Dispatcher interface {
	// Submit enqueues task for asynchronous execution on queue.
	Submit(queue Queue, task Task)

	// SubmitAfter enqueues task to run no earlier than delay from now.
	// It returns a cancel function; calling it before delay has elapsed
	// prevents task from running at all. Calling it after delay has
	// elapsed is a no-op, even if task has not started yet.
	SubmitAfter(queue Queue, delay time.Duration, task Task) (cancel func())

	// DefaultQueue returns a standard queue for the given priority hint.
	// Repeated calls with the same hint may return the same Queue value.
	DefaultQueue(hint Priority) Queue

	// CurrentPriority is a best-effort query of the calling goroutine's
	// effective priority, used by combinators that want to inherit the
	// priority of whatever triggered them. The answer for code running
	// outside of a Dispatcher-managed worker is not reliable;
	// DefaultDispatcher reports Unspecified there only until its first
	// task starts.
	CurrentPriority() Priority
}

// Queue is an opaque handle identifying one of a Dispatcher's execution
// contexts (serial or concurrent). Cells are immutable after construction
// with respect to their queue: a Cell always dispatches continuations to the
// Queue it was built with.
type Queue interface {
	// Priority reports the priority hint the queue was created with.
	Priority() Priority
}
