// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Release actuator.

package drop

import (
	"errors"
	"sync"
	"time"
)

// ErrClosed is returned when pulsing a Release that has been closed.
var ErrClosed = errors.New("release closed")

// Output is a digital output line.
type Output interface {
	Set(int) error
}

// Release drives the ball release actuator.
// The output is only driven while holding mu, so a Close cannot
// interleave with a pulse.
type Release struct {
	mu     sync.Mutex
	out    Output
	clock  Clock
	width  time.Duration
	closed bool
}

// NewRelease creates a Release that pulses out for width.
func NewRelease(out Output, clock Clock, width time.Duration) *Release {
	r := new(Release)
	r.out = out
	r.clock = clock
	r.width = width
	return r
}

// Pulse asserts the output for the pulse width then clears it.
// The output is cleared however Pulse exits, including a panic
// while the pulse is being held.
// A closed Release is never pulsed.
func (r *Release) Pulse() (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	defer func() {
		if e := r.out.Set(0); e != nil && err == nil {
			err = e
		}
	}()
	if err = r.out.Set(1); err != nil {
		return err
	}
	r.clock.Sleep(r.width)
	return nil
}

// Off clears the output.
func (r *Release) Off() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.out.Set(0)
}

// Close waits for any pulse in progress to finish, then clears the
// output. Once closed, the output is not driven high again.
func (r *Release) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return r.out.Set(0)
}
