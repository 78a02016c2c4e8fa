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

// Drop feasibility model.

package drop

import (
	"math"
)

const (
	degrees             = 360.0
	millimetresPerMetre = 1000.0
)

// Geometry holds the fixed dimensions of the apparatus.
type Geometry struct {
	Ticks   int     // Counter ticks per disk revolution
	Ball    float64 // Ball diameter in mm
	Disk    float64 // Disk thickness in mm
	Gravity float64 // m/s^2
}

// FallTime returns the time in seconds for the ball to fall height metres.
// height must not be negative.
func (g Geometry) FallTime(height float64) float64 {
	return math.Sqrt(2*height) / math.Sqrt(g.Gravity)
}

// MaxRate returns the highest rotation rate (ticks per second) at which a
// hole of the given angular width still lets a ball dropped from height
// metres through.
func (g Geometry) MaxRate(hole, height float64) float64 {
	return hole / degrees / (g.Ball + g.Disk) * millimetresPerMetre * g.Gravity * g.FallTime(height) * float64(g.Ticks)
}

// Possible returns true if a ball falling height metres can pass
// through a hole of hole degrees while the disk turns at rate ticks
// per second. A stationary or reversing disk is always possible.
func (g Geometry) Possible(hole, height, rate float64) bool {
	return rate < g.MaxRate(hole, height)
}
