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

package drop

import (
	"errors"
	"testing"
	"time"

	"github.com/aamcrae/balldrop/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pin struct {
	levels []int
	fail   int // Fail writes of this level, if non-zero
}

func (p *pin) Set(v int) error {
	if p.fail != 0 && v == p.fail {
		return errors.New("write failed")
	}
	p.levels = append(p.levels, v)
	return nil
}

func (p *pin) level() int {
	if len(p.levels) == 0 {
		return 0
	}
	return p.levels[len(p.levels)-1]
}

func TestPulse(t *testing.T) {
	start := time.Unix(0, 0)
	c := sim.NewClock(start)
	p := &pin{}
	r := NewRelease(p, c, 25*time.Millisecond)
	require.NoError(t, r.Pulse())
	assert.Equal(t, []int{1, 0}, p.levels)
	assert.Equal(t, start.Add(25*time.Millisecond), c.Now())
}

func TestPulseInterrupted(t *testing.T) {
	c := sim.NewClock(time.Unix(0, 0))
	p := &pin{}
	c.Hook = func(now time.Time, d time.Duration) {
		assert.Equal(t, 1, p.level())
		panic("interrupted")
	}
	r := NewRelease(p, c, 25*time.Millisecond)
	assert.Panics(t, func() { r.Pulse() })
	assert.Equal(t, 0, p.level())
}

func TestPulseSetFails(t *testing.T) {
	c := sim.NewClock(time.Unix(0, 0))
	p := &pin{fail: 1}
	r := NewRelease(p, c, 25*time.Millisecond)
	assert.Error(t, r.Pulse())
	assert.Equal(t, []int{0}, p.levels)
}

func TestCloseDuringPulse(t *testing.T) {
	c := sim.NewClock(time.Unix(0, 0))
	p := &pin{}
	r := NewRelease(p, c, 25*time.Millisecond)
	done := make(chan struct{})
	c.Hook = func(now time.Time, d time.Duration) {
		// Stopped while the pulse is held.
		go func() {
			r.Close()
			close(done)
		}()
	}
	require.NoError(t, r.Pulse())
	<-done
	assert.Equal(t, []int{1, 0, 0}, p.levels)
	// Nothing raises the output after Close.
	c.Hook = nil
	assert.ErrorIs(t, r.Pulse(), ErrClosed)
	assert.Equal(t, 0, p.level())
	assert.Equal(t, []int{1, 0, 0}, p.levels)
}

func TestCloseBeforePulse(t *testing.T) {
	c := sim.NewClock(time.Unix(0, 0))
	p := &pin{}
	r := NewRelease(p, c, 25*time.Millisecond)
	require.NoError(t, r.Close())
	assert.ErrorIs(t, r.Pulse(), ErrClosed)
	assert.Equal(t, []int{0}, p.levels)
	assert.Equal(t, time.Unix(0, 0), c.Now())
}
