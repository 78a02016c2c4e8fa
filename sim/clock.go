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

// Package sim simulates the drop apparatus.
package sim

import (
	"sync"
	"time"
)

// Clock is a simulated clock. Sleeping advances the clock
// immediately, so timing can be tested without delays.
type Clock struct {
	mu  sync.Mutex
	now time.Time
	// Hook, if set, is called with the time before each Sleep.
	Hook func(now time.Time, d time.Duration)
}

// NewClock creates a Clock set to start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the simulated time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Sleep advances the simulated time by d.
func (c *Clock) Sleep(d time.Duration) {
	if c.Hook != nil {
		c.Hook(c.Now(), d)
	}
	if d <= 0 {
		return
	}
	c.Advance(d)
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
