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

// Drop sequencing.

package drop

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

// Counter reads the rotation counter of the disk.
type Counter interface {
	Position() (int, error)
}

// HeightSensor reads the fall height in metres.
type HeightSensor interface {
	Height() (float64, error)
}

// State is a step in a drop attempt.
type State int

const (
	MeasureHeight State = iota
	SampleVelocity
	Decide
	Idle
	Waiting
	Trigger
	Done
)

var stateNames = []string{"MeasureHeight", "SampleVelocity", "Decide", "Idle", "Waiting", "Trigger", "Done"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// Attempt records the progress and outcome of one drop attempt.
type Attempt struct {
	Hole     Hole
	States   []State // States entered, in order
	Height   float64 // metres
	Rate     float64 // ticks per second
	Possible bool
	Plan     Plan
	Actual   int // Counter value on waking, before release
	Drift    int // Actual - Plan.Target (shortest signed distance)
	Released bool
}

// State returns the last state entered.
func (a *Attempt) State() State {
	if len(a.States) == 0 {
		return MeasureHeight
	}
	return a.States[len(a.States)-1]
}

func (a *Attempt) enter(s State) {
	a.States = append(a.States, s)
}

// Telemetry is one sample of the diagnostic mode.
type Telemetry struct {
	When     time.Time
	Height   float64
	Rate     float64
	Position int
	Primed   bool // Rate is averaged over a full window
	Large    bool // Large hole possible
	Small    bool // Small hole possible
}

func (t Telemetry) String() string {
	return fmt.Sprintf("%d mm, %d tps, %d ticks, possible: small %t, large %t",
		int(t.Height*millimetresPerMetre), int(t.Rate), t.Position, t.Small, t.Large)
}

// Sequencer owns the sensors and the release actuator of the apparatus
// and runs drop attempts. Only one attempt or diagnostic run may be in
// progress at any time.
type Sequencer struct {
	Name    string
	cfg     *Config
	counter Counter
	height  HeightSensor
	release *Release
	clock   Clock
}

// NewSequencer creates a Sequencer. The release output is cleared.
func NewSequencer(cfg *Config, counter Counter, height HeightSensor, out Output, clock Clock) (*Sequencer, error) {
	s := new(Sequencer)
	s.Name = "drop"
	s.cfg = cfg
	s.counter = counter
	s.height = height
	s.clock = clock
	s.release = NewRelease(out, clock, cfg.Pulse)
	if err := s.release.Off(); err != nil {
		return nil, fmt.Errorf("release: %w", err)
	}
	return s, nil
}

// Close leaves the release actuator off. No further drops are
// released after Close, including one in progress.
func (s *Sequencer) Close() error {
	return s.release.Close()
}

// position reads the counter, reduced to a single revolution.
func (s *Sequencer) position() (int, error) {
	p, err := s.counter.Position()
	if err != nil {
		return 0, fmt.Errorf("counter: %w", err)
	}
	return Wrap(p, s.cfg.Ticks), nil
}

// Run performs one drop attempt aiming for hole.
// The height is measured, then the rotation rate is measured over a full
// sampling window. If the ball can pass the hole, the release is
// scheduled from the current position and rate, and after waiting the
// actuator is pulsed. An attempt that is not possible returns with the
// Attempt in the Idle state and no error.
// A sensor error aborts the attempt before the actuator is touched.
func (s *Sequencer) Run(hole Hole) (*Attempt, error) {
	a := &Attempt{Hole: hole}
	a.enter(MeasureHeight)
	h, err := s.height.Height()
	if err != nil {
		return a, err
	}
	a.Height = h
	log.Printf("%s: Height is %d mm", s.Name, int(h*millimetresPerMetre))

	a.enter(SampleVelocity)
	start, err := s.position()
	if err != nil {
		return a, err
	}
	est := NewEstimator(s.cfg.Ticks, s.cfg.Samples, start)
	t := NewTicker(s.clock, s.cfg.Period)
	for i := 0; i < s.cfg.Samples; i++ {
		t.Wait()
		p, err := s.position()
		if err != nil {
			return a, err
		}
		est.Sample(p, t.Seconds())
	}
	a.Rate = est.Rate()
	if t.Late != 0 {
		log.Printf("%s: %d samples late", s.Name, t.Late)
	}
	log.Printf("%s: Turn speed is %d tps", s.Name, int(a.Rate))

	a.enter(Decide)
	a.Possible = s.cfg.Possible(hole.Degrees, h, a.Rate)
	if !a.Possible {
		log.Printf("%s: Not possible (%s hole)", s.Name, hole.Name)
		a.enter(Idle)
		return a, nil
	}
	current, err := s.position()
	if err != nil {
		return a, err
	}
	a.Plan, err = Schedule(s.cfg.Geometry, current, a.Rate, h, hole, s.cfg.Trim)
	if errors.Is(err, ErrNoRotation) {
		log.Printf("%s: Not possible, disk is not turning", s.Name)
		a.Possible = false
		a.enter(Idle)
		return a, nil
	} else if err != nil {
		return a, err
	}
	log.Printf("%s: Current position is %d ticks, drop position is %d ticks", s.Name, a.Plan.Current, a.Plan.Target)

	a.enter(Waiting)
	log.Printf("%s: Waiting %d ticks (%s)", s.Name, a.Plan.Ticks, a.Plan.Wait)
	s.clock.Sleep(a.Plan.Wait)
	// The drift is reported only; the rate is not remeasured.
	if a.Actual, err = s.position(); err != nil {
		// Still drop: the release time is already committed.
		log.Printf("%s: Drift not available: %v", s.Name, err)
	} else {
		a.Drift = Offset(a.Plan.Target, a.Actual, s.cfg.Ticks)
		log.Printf("%s: Dropping at %d ticks (off by %d)", s.Name, a.Actual, a.Drift)
	}

	a.enter(Trigger)
	if err := s.release.Pulse(); err != nil {
		return a, fmt.Errorf("release: %w", err)
	}
	a.Released = true
	a.enter(Done)
	return a, nil
}

// Diagnose samples the sensors at the sample period until ctx is done,
// passing each Telemetry sample to report. The actuator is never pulsed.
// Sensor errors are returned.
func (s *Sequencer) Diagnose(ctx context.Context, report func(Telemetry)) error {
	start, err := s.position()
	if err != nil {
		return err
	}
	est := NewEstimator(s.cfg.Ticks, s.cfg.Samples, start)
	t := NewTicker(s.clock, s.cfg.Period)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		t.Wait()
		p, err := s.position()
		if err != nil {
			return err
		}
		h, err := s.height.Height()
		if err != nil {
			return err
		}
		rate := est.Sample(p, t.Seconds())
		tm := Telemetry{
			When:     s.clock.Now(),
			Height:   h,
			Rate:     rate,
			Position: p,
			Primed:   est.Primed(),
			Large:    s.cfg.Possible(s.cfg.Large.Degrees, h, rate),
			Small:    s.cfg.Possible(s.cfg.Small.Degrees, h, rate),
		}
		if report != nil {
			report(tm)
		}
	}
}
