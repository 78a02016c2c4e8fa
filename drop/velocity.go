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

// Rotation rate estimation.

package drop

// Estimator converts periodic counter samples into a rotation rate.
// The per-interval deltas of the last N samples are held in a ring,
// and the rate is the average delta divided by the sample period.
// Until the ring has been filled once, the unfilled slots count as zero,
// so the rate reads low.
type Estimator struct {
	ticks  int
	deltas []float64
	pos    int
	full   bool
	last   int // Last absolute position
	rate   float64
}

// NewEstimator creates an Estimator for a counter that wraps at ticks,
// averaging over size intervals. start is the position at the beginning
// of the first interval.
func NewEstimator(ticks, size, start int) *Estimator {
	e := new(Estimator)
	e.ticks = ticks
	e.deltas = make([]float64, size)
	e.last = Wrap(start, ticks)
	return e
}

// Sample records the position read at the end of an interval of
// period seconds, and returns the updated rate in ticks per second.
// The delta is taken modulo ticks, so the counter wrapping between
// two samples is harmless as long as the disk turns less than one
// revolution per interval.
func (e *Estimator) Sample(pos int, period float64) float64 {
	pos = Wrap(pos, e.ticks)
	e.deltas[e.pos] = float64(Ahead(e.last, pos, e.ticks))
	e.last = pos
	e.pos++
	if e.pos >= len(e.deltas) {
		e.pos = 0
		e.full = true
	}
	e.rate = average(e.deltas) / period
	return e.rate
}

// Rate returns the most recent rate estimate in ticks per second.
func (e *Estimator) Rate() float64 {
	return e.rate
}

// Primed returns true once a full window of intervals has been sampled.
func (e *Estimator) Primed() bool {
	return e.full
}

func average(v []float64) float64 {
	var sum float64
	for _, d := range v {
		sum += d
	}
	return sum / float64(len(v))
}
