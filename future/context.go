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
	"context"

	"github.com/nodalcore/cellular/ctxtool"
	"github.com/nodalcore/cellular/dispatch"
)

// Context returns a context.Context derived from parent that is additionally
// marked Done once c resolves, whatever the outcome. It lets host code that
// already threads context.Context through its call stack wait on a cell
// alongside its usual cancellation sources, via ctxtool.WithChannel.
func Context[V any](parent context.Context, c *Cell[V]) context.Context {
	return ctxtool.WithChannel(parent, doneChannel(c))
}

func doneChannel[V any](c *Cell[V]) <-chan struct{} {
	ch := make(chan struct{})
	c.Observe(func(Outcome[V]) { close(ch) })
	return ch
}

// FromContext returns a cell that resolves with a Canceled error carrying
// ctx.Err()'s text the moment ctx is done. It is the inverse of Context: a
// bridge for wiring an upstream cancellation source into the combinator
// algebra (e.g. as one input to FirstResolved alongside a real task cell).
func FromContext(d dispatch.Dispatcher, queue dispatch.Queue, ctx context.Context) *Cell[struct{}] {
	return WithResolver[struct{}](d, queue, func(r *Resolver[struct{}]) {
		go func() {
			<-ctx.Done()
			r.ResolveError(Canceled(ctx.Err().Error()))
		}()
	})
}
