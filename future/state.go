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

// State is a cell's externally observable lifecycle phase. It is monotonic:
// once a cell reports Resolved, it never reports anything else again.
type State uint32

const (
	// Waiting is a cell's initial phase: no producer has claimed it yet.
	Waiting State = iota
	// Executing means a producer has claimed the right to resolve the
	// cell (or advisory demand was signaled) but has not yet done so.
	Executing
	// Resolved means the cell's slot holds a final Outcome.
	Resolved
)

// internalState extends State with transient, the internal exclusive-write
// phase between a resolver claiming the right to publish and the publish
// itself. transient is never returned by Cell.State; observers that load it
// must report Executing, since from the outside a cell mid-resolve looks
// identical to one whose producer has merely started working.
type internalState = uint32

const (
	stateWaiting internalState = iota
	stateExecuting
	stateTransient
	stateResolved
)

func externalize(s internalState) State {
	if s == stateResolved {
		return Resolved
	}
	if s == stateWaiting {
		return Waiting
	}
	// stateExecuting and stateTransient both read as Executing from the
	// outside; transient is an implementation detail of the resolve
	// handshake.
	return Executing
}
