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
	"testing"
	"time"

	"github.com/aamcrae/balldrop/sim"
	"github.com/stretchr/testify/assert"
)

func TestTickerDeadlines(t *testing.T) {
	start := time.Unix(1000, 0)
	c := sim.NewClock(start)
	tk := NewTicker(c, 25*time.Millisecond)
	for i := 0; i < 10; i++ {
		tk.Wait()
		// Time spent reading sensors is absorbed by the next wait.
		c.Advance(5 * time.Millisecond)
	}
	assert.Equal(t, start.Add(255*time.Millisecond), c.Now())
	assert.Equal(t, 0, tk.Late)
	assert.Equal(t, 0.025, tk.Seconds())
}

func TestTickerLate(t *testing.T) {
	start := time.Unix(1000, 0)
	c := sim.NewClock(start)
	tk := NewTicker(c, 25*time.Millisecond)
	tk.Wait()
	c.Advance(60 * time.Millisecond)
	// Two deadlines have passed; both samples are taken immediately.
	tk.Wait()
	tk.Wait()
	assert.Equal(t, 2, tk.Late)
	assert.Equal(t, start.Add(85*time.Millisecond), c.Now())
	tk.Wait()
	assert.Equal(t, start.Add(100*time.Millisecond), c.Now())
}
