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
	"github.com/nodalcore/cellular/dispatch"
	"github.com/nodalcore/cellular/unison"
)

// KeyedTaskRunner memoizes in-flight tasks by a string key: concurrent
// callers asking for the same key while the task is still running, or while
// any prior caller still holds its cell, share the same Cell instead of
// each triggering their own call to f. It is the future-typed instantiation
// of unison.KeyedRegistry, which stays generic over any V so that unison
// never has to import future.
type KeyedTaskRunner[V any] struct {
	dispatcher dispatch.Dispatcher
	queue      dispatch.Queue
	registry   unison.KeyedRegistry[*Cell[V]]
}

// NewKeyedTaskRunner creates a runner whose tasks are submitted to queue.
func NewKeyedTaskRunner[V any](d dispatch.Dispatcher, queue dispatch.Queue) *KeyedTaskRunner[V] {
	return &KeyedTaskRunner[V]{dispatcher: d, queue: queue}
}

// Run returns the cell running f under key, creating and submitting f if no
// such task is currently registered. The returned release function must be
// called once the caller no longer needs the shared entry; the entry is
// evicted once every caller has released it, so a later Run with the same
// key starts a fresh task rather than replaying a stale result forever.
func (k *KeyedTaskRunner[V]) Run(key string, f func() (V, error)) (cell *Cell[V], release func()) {
	return k.registry.GetOrCreate(key, func() *Cell[V] {
		return FromTask(k.dispatcher, k.queue, f)
	})
}

// Forget evicts key's entry immediately, regardless of how many callers
// still hold a release function for it. Those release functions become
// no-ops. It does not affect a task already running; its result simply
// won't be shared with anyone asking for key afterward.
func (k *KeyedTaskRunner[V]) Forget(key string) {
	k.registry.ForceRelease(key, nil)
}

// Len reports how many distinct keys currently have a live, shared cell.
func (k *KeyedTaskRunner[V]) Len() int {
	return k.registry.Len()
}
