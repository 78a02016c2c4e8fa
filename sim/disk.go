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

package sim

import (
	"errors"
	"math"
	"sync"
	"time"
)

// ErrOffline is returned by an offline sensor.
var ErrOffline = errors.New("sensor offline")

// Timer is the time source for the Disk.
type Timer interface {
	Now() time.Time
}

// Drop records one release of the ball.
type Drop struct {
	When     time.Time
	Position int     // Counter value at release
	Arrival  float64 // Disk position (ticks) when the ball reaches the disk
	Pass     bool    // Ball passed through the hole
}

// Disk simulates the spinning disk, the counter reading its position,
// the distance sensor and the release actuator.
// The counter position at time t is offset + rate * (t - start).
type Disk struct {
	mu      sync.Mutex
	clock   Timer
	start   time.Time
	ticks   int
	offset  float64
	rate    float64 // ticks per second
	height  float64 // metres
	gravity float64
	hole    float64 // Hole target position
	window  float64 // Half hole width in ticks
	output  int
	drops   []Drop
	Offline bool // Sensors return ErrOffline
	Reads   int  // Counter reads
}

// NewDisk creates a Disk with ticks per revolution, starting at offset
// and turning at rate ticks per second, with the ball height metres above it.
func NewDisk(clock Timer, ticks int, offset, rate, height float64) *Disk {
	d := new(Disk)
	d.clock = clock
	d.start = clock.Now()
	d.ticks = ticks
	d.offset = offset
	d.rate = rate
	d.height = height
	d.gravity = 9.81
	return d
}

// SetHole sets the hole that a released ball is judged against.
// target is the counter value with the hole under the drop point, and
// degrees is the usable width of the hole.
func (d *Disk) SetHole(target int, degrees float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hole = float64(target)
	d.window = degrees / 360 * float64(d.ticks) / 2
}

// SetRate changes the rotation rate from now on.
func (d *Disk) SetRate(rate float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := d.clock.Now()
	d.offset = d.at(now)
	d.start = now
	d.rate = rate
}

// SetHeight changes the height of the ball.
func (d *Disk) SetHeight(h float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.height = h
}

// at returns the unwrapped disk position at time t.
func (d *Disk) at(t time.Time) float64 {
	return d.offset + d.rate*t.Sub(d.start).Seconds()
}

func (d *Disk) wrap(p float64) float64 {
	r := math.Mod(p, float64(d.ticks))
	if r < 0 {
		r += float64(d.ticks)
	}
	return r
}

// Position returns the counter value.
func (d *Disk) Position() (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Offline {
		return 0, ErrOffline
	}
	d.Reads++
	return int(d.wrap(d.at(d.clock.Now()))), nil
}

// Height returns the height of the ball above the disk.
func (d *Disk) Height() (float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Offline {
		return 0, ErrOffline
	}
	return d.height, nil
}

// Set drives the release actuator. The ball is released on
// the rising edge.
func (d *Disk) Set(v int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if v != 0 && d.output == 0 {
		now := d.clock.Now()
		fall := math.Sqrt(2 * d.height / d.gravity)
		arrival := d.wrap(d.at(now) + d.rate*fall)
		miss := math.Abs(d.wrap(arrival-d.hole+float64(d.ticks)/2) - float64(d.ticks)/2)
		d.drops = append(d.drops, Drop{
			When:     now,
			Position: int(d.wrap(d.at(now))),
			Arrival:  arrival,
			Pass:     miss <= d.window,
		})
	}
	d.output = v
	return nil
}

// Output returns the current level of the release actuator.
func (d *Disk) Output() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.output
}

// Drops returns the releases so far.
func (d *Disk) Drops() []Drop {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Drop(nil), d.drops...)
}
