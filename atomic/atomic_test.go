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

package atomic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nodalcore/cellular/atomic"
)

func TestBool(t *testing.T) {
	b := atomic.MakeBool(false)
	assert.False(t, b.Load())

	b.Store(true)
	assert.True(t, b.Load())

	assert.True(t, b.CAS(true, false))
	assert.False(t, b.Load())
	assert.False(t, b.CAS(true, true), "CAS must fail when the expected value does not match")

	assert.False(t, b.Swap(true))
	assert.True(t, b.Load())
}

func TestUint32(t *testing.T) {
	var u atomic.Uint32
	assert.Equal(t, uint32(0), u.Load())

	assert.Equal(t, uint32(1), u.Add(1))
	u.Store(5)
	assert.Equal(t, uint32(5), u.Load())

	assert.True(t, u.CAS(5, 6))
	assert.Equal(t, uint32(6), u.Load())
	assert.False(t, u.CAS(5, 7))
}

func TestValue(t *testing.T) {
	var v atomic.Value[string]

	_, ok := v.Load()
	assert.False(t, ok)

	v.Store("hello")
	got, ok := v.Load()
	assert.True(t, ok)
	assert.Equal(t, "hello", got)
}
