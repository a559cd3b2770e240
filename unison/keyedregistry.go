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

package unison

import (
	"sync"

	"github.com/nodalcore/cellular"
)

// KeyedRegistry is a ref-counted table of shared values, keyed by a string.
// The first caller for a given key builds the value; every later caller for
// the same key, while at least one strong reference is still outstanding,
// gets the same value back instead of building a second one. The entry is
// dropped from the table the instant the last reference releases it.
//
// future.KeyedTaskRunner uses a KeyedRegistry[*future.Cell[V]] to memoize
// in-flight tasks by key: one entry per key, ref-counted, force-releasable.
type KeyedRegistry[V any] struct {
	mu    sync.Mutex
	table map[string]*registryEntry[V]
}

type registryEntry[V any] struct {
	key   string
	value V
	ref   cellular.RefCount
}

// GetOrCreate returns the value registered under key, retaining a reference
// on it. If no value is registered yet, create is called to build one and
// register it. The returned release function must be called exactly once,
// when the caller is done with the value; the entry is removed from the
// registry when the last outstanding reference is released.
func (r *KeyedRegistry[V]) GetOrCreate(key string, create func() V) (value V, release func()) {
	r.mu.Lock()
	entry, ok := r.table[key]
	if ok {
		entry.ref.Retain()
	} else {
		entry = &registryEntry[V]{key: key, value: create()}
		if r.table == nil {
			r.table = map[string]*registryEntry[V]{}
		}
		r.table[key] = entry
	}
	r.mu.Unlock()

	return entry.value, func() { r.release(entry) }
}

// release runs under r.mu so the final Release of an entry cannot interleave
// with a GetOrCreate retaining the same entry it is about to evict.
func (r *KeyedRegistry[V]) release(entry *registryEntry[V]) {
	r.mu.Lock()
	if entry.ref.Release() && r.table[entry.key] == entry {
		delete(r.table, entry.key)
	}
	r.mu.Unlock()
}

// ForceRelease immediately evicts key's entry, regardless of any outstanding
// references, and invokes onForce with the evicted value, if the key was
// present. Later calls to the release functions already handed out for that
// entry no longer affect the table.
func (r *KeyedRegistry[V]) ForceRelease(key string, onForce func(V)) {
	r.mu.Lock()
	entry, ok := r.table[key]
	if ok {
		delete(r.table, key)
	}
	r.mu.Unlock()

	if ok && onForce != nil {
		onForce(entry.value)
	}
}

// Len reports the number of distinct keys currently registered.
func (r *KeyedRegistry[V]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.table)
}
