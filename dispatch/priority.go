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

// Package dispatch provides the queue-based task executor that
// cellular/future consumes to run user callbacks and combinators. The cell
// engine itself never spawns goroutines for user code; it hands resolved
// continuations to a Dispatcher, which decides where and when they run.
package dispatch

// Priority is a best-effort execution priority hint, a closed set mirrored
// after the common desktop/mobile QoS classes. The DefaultDispatcher uses it
// only to pick a worker pool; it never preempts or reorders already-running
// work.
type Priority int

const (
	// Unspecified carries no particular hint; DefaultDispatcher gives it a
	// worker pool of its own, sized like every other level's, and maps
	// out-of-range hints to it.
	Unspecified Priority = iota
	Background
	Utility
	Default
	UserInitiated
	UserInteractive
)

// String renders the priority the way log output and test failure messages
// want to see it.
func (p Priority) String() string {
	switch p {
	case UserInteractive:
		return "user_interactive"
	case UserInitiated:
		return "user_initiated"
	case Default:
		return "default"
	case Utility:
		return "utility"
	case Background:
		return "background"
	default:
		return "unspecified"
	}
}
