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

// Package ctxtool provides helpers for merging, deriving, and adapting
// context.Context values from other cancellation sources.
package ctxtool

// canceller is the minimal subset of context.Context needed to observe
// cancellation. Types that only provide Done and Err can be adapted into a
// full context.Context via FromCanceller.
type canceller interface {
	Done() <-chan struct{}
	Err() error
}
