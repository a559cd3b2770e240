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

package cellular

import (
	"sync"
	"sync/atomic"
)

// RefCount is an atomic reference counter. It tracks a shared resource's
// lifetime and executes an action once it is clear the resource is not
// needed anymore.
//
// future.Cell uses a RefCount to back Resolver.NeedsResolution: every
// registered, not yet notified waiter (an Observe callback or a parked Wait
// caller) retains the count, and the cell releases it once per waiter it
// notifies. No Action is configured there; the "resolver went away"
// cancellation comes from the Resolver's finalizer.
//
// The zero value of RefCount is already in a valid state, which can be
// Released immediately.
type RefCount struct {
	// Action runs exactly once, when the reference count reaches zero. It
	// receives the error Err reports at that point, or nil if Fail was never
	// called.
	Action func(err error)
	// OnError combines a newly failed error with any already recorded error.
	// The zero value keeps the first error reported and ignores the rest.
	OnError func(old, new error) error

	count uint32
	mu    sync.Mutex
	err   error
	noCopy noCopy
}

// refCountFree indicates when a RefCount.Release shall return true.  It's
// chosen such that the zero value of RefCount is a valid value which will
// return true if Release is called without calling Retain before.
const refCountFree uint32 = ^uint32(0)
const refCountOops uint32 = refCountFree - 1

// Retain increases the ref count.
func (c *RefCount) Retain() {
	x := atomic.AddUint32(&c.count, 1)
	if x == 0 {
		panic("retaining released ref count")
	}
}

// Release decreases the reference count. It returns true, if the reference
// count has reached a 'free' state. Releasing a reference count in a free
// state will trigger a panic. If an Action is configured, then this action
// will be run once the refcount becomes free.
func (c *RefCount) Release() bool {
	return c.release(nil)
}

// Fail records err (subject to OnError) and releases the reference count,
// exactly as Release does. It returns true under the same condition Release
// does.
func (c *RefCount) Fail(err error) bool {
	return c.release(err)
}

// Err reports the error recorded by Fail, as combined by OnError (by default
// the first error reported), or nil if Fail was never called.
func (c *RefCount) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Count returns the number of outstanding references. It is a probe for
// callers that need a "does anything besides my own baseline reference still
// hold this" signal (future.Resolver.NeedsResolution) rather than a precise
// count to act on; it must not be used to decide whether Release is safe to
// call, since the count can change concurrently.
func (c *RefCount) Count() uint32 {
	return atomic.LoadUint32(&c.count)
}

func (c *RefCount) release(fail error) bool {
	if fail != nil {
		c.mu.Lock()
		if c.OnError != nil {
			c.err = c.OnError(c.err, fail)
		} else if c.err == nil {
			c.err = fail
		}
		c.mu.Unlock()
	}

	x := atomic.AddUint32(&c.count, ^uint32(0))
	switch {
	case x == refCountFree:
		if c.Action != nil {
			c.Action(c.Err())
		}
		return true
	case x == refCountOops:
		panic("ref count released too often")
	default:
		return false
	}
}

// noCopy can be embedded in a struct to get vet's copylocks check to flag
// accidental copies of types that must not be copied after first use.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
