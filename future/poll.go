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
	"errors"
	"time"

	"github.com/urso/sderr"

	"github.com/nodalcore/cellular/dispatch"
	"github.com/nodalcore/cellular/timed"
)

var errPollNotReady = errors.New("future: poll not ready")

// PollUntil turns a polling function into a cell: poll is called every
// period, on the dispatcher, until it reports ready, timeout elapses, or ctx
// is done, whichever happens first. The retry loop is timed.RetryUntil.
func PollUntil[V any](d dispatch.Dispatcher, queue dispatch.Queue, ctx context.Context, timeout, period time.Duration, poll func() (V, bool)) *Cell[V] {
	return WithResolver[V](d, queue, func(r *Resolver[V]) {
		d.Submit(queue, func() {
			var result V
			err := timed.RetryUntil(ctx, timeout, period, func(_ timed.Canceler) error {
				v, ready := poll()
				if !ready {
					return errPollNotReady
				}
				result = v
				return nil
			})
			if err != nil {
				r.ResolveError(sderr.Wrap(err, "future: PollUntil never became ready"))
				return
			}
			r.ResolveValue(result)
		})
	})
}
