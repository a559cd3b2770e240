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

package ctxtool

import (
	"context"
	"time"
)

// WithFunc creates a context that will execute the given function once the
// parent context gets cancelled, or the returned cancel function is called.
// The cancellation signal is not propagated to the returned context before
// the function has returned.
func WithFunc(ctx context.Context, fn func()) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)

	chDone := make(chan struct{})
	go func() {
		defer close(chDone)
		<-ctx.Done()
		fn()
	}()

	return WithChannel(valueOnlyContext{ctx}, chDone), cancel
}

// valueOnlyContext hides the parent's cancellation and deadline, keeping only
// its values. WithFunc uses it so the derived context's Done is driven by the
// post-fn channel alone rather than racing the parent's own Done.
type valueOnlyContext struct{ context.Context }

func (valueOnlyContext) Deadline() (deadline time.Time, ok bool) { return }
func (valueOnlyContext) Done() <-chan struct{}                   { return nil }
func (valueOnlyContext) Err() error                              { return nil }
