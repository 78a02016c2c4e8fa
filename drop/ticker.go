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

// Timed sampling loop.

package drop

import (
	"time"
)

// Clock is the time source used for all sampling and waiting, so that
// the sequencing can be run against a simulated clock.
type Clock interface {
	Now() time.Time
	Sleep(time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// SystemClock is the real time clock.
var SystemClock Clock = systemClock{}

// Ticker paces a sampling loop at a fixed period.
// Each Wait sleeps until the next deadline, measured from when the
// Ticker was created, so time spent reading sensors does not accumulate
// as drift. If a deadline has already passed, Wait returns immediately;
// samples are late rather than skipped.
type Ticker struct {
	clock  Clock
	period time.Duration
	next   time.Time
	Late   int // Number of deadlines missed
}

// NewTicker creates a Ticker starting now.
func NewTicker(clock Clock, period time.Duration) *Ticker {
	t := new(Ticker)
	t.clock = clock
	t.period = period
	t.next = clock.Now()
	return t
}

// Wait sleeps until the next period boundary.
func (t *Ticker) Wait() {
	t.next = t.next.Add(t.period)
	d := t.next.Sub(t.clock.Now())
	if d <= 0 {
		t.Late++
		return
	}
	t.clock.Sleep(d)
}

// Seconds returns the period in seconds.
func (t *Ticker) Seconds() float64 {
	return t.period.Seconds()
}
