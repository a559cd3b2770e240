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

package future_test

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodalcore/cellular/future"
)

func TestResolver_cancelResolvesWithCanceledError(t *testing.T) {
	d, q := newDispatcher(t)
	var r *future.Resolver[int]
	c := future.WithResolver[int](d, q, func(rr *future.Resolver[int]) { r = rr })

	assert.True(t, r.Cancel("stop"))

	o := c.Wait()
	ce, ok := future.AsCanceled(o.Err())
	require.True(t, ok)
	assert.Equal(t, "stop", ce.Reason)
}

func TestResolver_cancelLosesRaceAgainstPriorResolve(t *testing.T) {
	d, q := newDispatcher(t)
	var r *future.Resolver[int]
	c := future.WithResolver[int](d, q, func(rr *future.Resolver[int]) { r = rr })

	require.NoError(t, r.ResolveValue(5))
	assert.False(t, r.Cancel("too late"))

	o := c.Wait()
	v, ok := o.Unpack()
	require.True(t, ok)
	assert.Equal(t, 5, v)
}

func TestResolver_needsResolutionReflectsObserverPresence(t *testing.T) {
	d, q := newDispatcher(t)
	var r *future.Resolver[int]
	c := future.WithResolver[int](d, q, func(rr *future.Resolver[int]) { r = rr })

	assert.False(t, r.NeedsResolution())

	release := make(chan struct{})
	go func() {
		c.Observe(func(future.Outcome[int]) {})
		close(release)
	}()

	require.Eventually(t, r.NeedsResolution, time.Second, time.Millisecond)

	require.NoError(t, r.ResolveValue(1))
	<-release
}

// Cancellation travels downstream through the combinator algebra like any
// other error: canceling the source surfaces as a Canceled outcome at the
// end of a Map chain.
func TestResolver_cancelPropagation(t *testing.T) {
	d, q := newDispatcher(t)
	var ra *future.Resolver[int]
	a := future.WithResolver[int](d, q, func(rr *future.Resolver[int]) { ra = rr })

	b := future.Map(a, func(v int) (int, error) { return v + 1, nil })
	c := future.Map(b, func(v int) (int, error) { return v * 2, nil })

	assert.True(t, ra.Cancel("stop"))

	o := c.Wait()
	ce, ok := future.AsCanceled(o.Err())
	require.True(t, ok)
	assert.Equal(t, "stop", ce.Reason)
}

func TestResolver_resolveAfterDroppedResolverSynthesizesCancellation(t *testing.T) {
	d, q := newDispatcher(t)

	var c *future.Cell[int]
	func() {
		c = future.WithResolver[int](d, q, func(*future.Resolver[int]) {
			// Resolver deliberately never resolved and goes out of scope here.
		})
	}()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		runtime.GC()
		if _, ok := c.Peek(); ok {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	o, ok := c.Peek()
	require.True(t, ok, "dropped resolver should eventually auto-cancel its cell")
	ce, isCanceled := future.AsCanceled(o.Err())
	require.True(t, isCanceled)
	assert.Contains(t, ce.Reason, "resolver went away")
}
