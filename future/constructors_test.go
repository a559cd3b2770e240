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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodalcore/cellular/future"
)

func TestConstructors_fromValueIsImmediatelyResolved(t *testing.T) {
	c := future.FromValue("hi")
	assert.Equal(t, future.Resolved, c.State())

	o, ok := c.Peek()
	require.True(t, ok)
	v, isVal := o.Unpack()
	require.True(t, isVal)
	assert.Equal(t, "hi", v)
}

func TestConstructors_fromErrorIsImmediatelyResolved(t *testing.T) {
	boom := errors.New("boom")
	c := future.FromError[int](boom)
	assert.Equal(t, future.Resolved, c.State())

	o, ok := c.Peek()
	require.True(t, ok)
	assert.Equal(t, boom, o.Err())
}

func TestConstructors_fromTaskTransitionsToExecutingImmediately(t *testing.T) {
	d, q := newDispatcher(t)

	started := make(chan struct{})
	proceed := make(chan struct{})
	c := future.FromTask(d, q, func() (int, error) {
		close(started)
		<-proceed
		return 1, nil
	})

	// State flips to Executing synchronously, before the task even starts
	// running on the dispatcher.
	assert.Equal(t, future.Executing, c.State())

	close(proceed)
	<-started
	o := c.Wait()
	v, ok := o.Unpack()
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestConstructors_fromTaskPropagatesError(t *testing.T) {
	d, q := newDispatcher(t)
	boom := errors.New("boom")
	c := future.FromTask(d, q, func() (int, error) { return 0, boom })

	o := c.Wait()
	assert.Equal(t, boom, o.Err())
}

func TestConstructors_withResolverInvokesInitSynchronously(t *testing.T) {
	d, q := newDispatcher(t)

	initCalled := false
	c := future.WithResolver[int](d, q, func(r *future.Resolver[int]) {
		initCalled = true
		require.NoError(t, r.ResolveValue(3))
	})

	assert.True(t, initCalled)
	o, ok := c.Peek()
	require.True(t, ok)
	v, _ := o.Unpack()
	assert.Equal(t, 3, v)
}
