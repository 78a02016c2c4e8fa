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

// Drop scheduling.

package drop

import (
	"errors"
	"math"
	"time"
)

// ErrNoRotation is returned when a drop is requested while the disk is not turning.
var ErrNoRotation = errors.New("disk is not rotating")

// Hole is one hole class on the disk. Target is the counter value
// at which the hole sits directly under the drop point.
type Hole struct {
	Name    string
	Degrees float64 // Angular width required for the ball
	Target  int
}

// Plan is the result of scheduling a drop.
type Plan struct {
	Current int           // Counter value when the plan was made
	Target  int           // Counter value at which to release
	Ticks   int           // Ticks to wait, always in [0, revolution)
	Wait    time.Duration // Time to wait before release
}

// Schedule computes when to release the ball so that it arrives at the
// disk as the hole passes underneath. The disk is assumed to keep turning at
// rate for the duration of the wait; the rate is not measured again.
// trim is subtracted from the wait (clamped at zero).
func Schedule(g Geometry, current int, rate, height float64, hole Hole, trim time.Duration) (Plan, error) {
	if !(rate > 0) {
		return Plan{}, ErrNoRotation
	}
	var p Plan
	p.Current = Wrap(current, g.Ticks)
	// The disk advances rate * fall time ticks while the ball is falling,
	// so release that far before the hole reaches the drop point.
	lead := rate * g.FallTime(height)
	p.Target = Wrap(int(math.Floor(float64(hole.Target)-lead)), g.Ticks)
	p.Ticks = Ahead(p.Current, p.Target, g.Ticks)
	p.Wait = time.Duration(float64(p.Ticks)/rate*float64(time.Second)) - trim
	if p.Wait < 0 {
		p.Wait = 0
	}
	return p, nil
}
