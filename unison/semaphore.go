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
	"time"
)

// Semaphore is a counting semaphore built on Waitlist. cellular/dispatch
// uses one per priority queue to bound how many tasks may run concurrently.
type Semaphore struct {
	mu      sync.Mutex
	n       int
	waiters Waitlist
}

// NewSemaphore creates a semaphore with n initial permits.
func NewSemaphore(n int) *Semaphore {
	return &Semaphore{n: n}
}

// Acquire blocks until a permit is available.
func (s *Semaphore) Acquire() {
	s.AcquireContext(nil)
}

// AcquireContext blocks until a permit is available or context is done.
func (s *Semaphore) AcquireContext(context doneContext) error {
	s.mu.Lock()
	s.n--
	if s.n >= 0 {
		s.mu.Unlock()
		return nil
	}

	// need to wait. Create waiter before unlock, so to ensure the wait is
	// already in the list before the semaphore can send a signal.
	waiter := s.waiters.Enqueue(false, nil)
	s.mu.Unlock()

	if context == nil {
		waiter.Wait()
		return nil
	}

	err := waiter.WaitContext(context)
	if err != nil {
		s.abort(waiter)
	}
	return err
}

// AcquireTimeout blocks until a permit is available or the timeout elapses.
func (s *Semaphore) AcquireTimeout(dur time.Duration) bool {
	switch {
	case dur == 0:
		return s.TryAcquire()
	case dur < 0:
		s.Acquire()
		return true
	}

	s.mu.Lock()
	s.n--
	if s.n >= 0 {
		s.mu.Unlock()
		return true
	}

	waiter := s.waiters.Enqueue(false, nil)
	s.mu.Unlock()

	ok := waiter.WaitTimeout(dur)
	if !ok {
		s.abort(waiter)
	}
	return ok
}

// TryAcquire acquires a permit without blocking, reporting whether it
// succeeded.
func (s *Semaphore) TryAcquire() bool {
	s.mu.Lock()
	ok := s.n > 0
	if ok {
		s.n--
	}
	s.mu.Unlock()
	return ok
}

// Release returns a permit to the semaphore, waking the oldest waiter if
// any.
func (s *Semaphore) Release() {
	s.mu.Lock()
	s.doRelease()
	s.mu.Unlock()
}

func (s *Semaphore) abort(w *Waiter) {
	s.mu.Lock()
	// Notify only runs under s.mu, so the waiter's state cannot change here.
	w.list.mu.Lock()
	notified := w.state == waiterNotified
	w.list.mu.Unlock()
	w.Cancel()
	if notified {
		// the waiter was handed a permit it will not use: pass it on
		s.doRelease()
	} else {
		// the waiter never got a permit: only undo its own decrement
		s.n++
	}
	s.mu.Unlock()
}

func (s *Semaphore) doRelease() {
	s.n++
	if s.n <= 0 {
		s.waiters.Notify()
	}
}
