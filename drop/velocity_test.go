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

	"github.com/stretchr/testify/assert"
)

func TestEstimatorConstantRate(t *testing.T) {
	e := NewEstimator(2048, 10, 0)
	pos := 0
	for i := 0; i < 10; i++ {
		pos += 20
		e.Sample(pos, 0.025)
	}
	assert.True(t, e.Primed())
	assert.Equal(t, 800.0, e.Rate())
}

func TestEstimatorWrap(t *testing.T) {
	e := NewEstimator(2048, 10, 2000)
	pos := 2000
	for i := 0; i < 10; i++ {
		pos = Wrap(pos+20, 2048)
		e.Sample(pos, 0.025)
	}
	assert.Equal(t, 800.0, e.Rate())
	assert.Equal(t, 152, e.last)
}

func TestEstimatorColdStart(t *testing.T) {
	e := NewEstimator(2048, 10, 100)
	// Unfilled slots count as zero, so the first rate reads low.
	assert.Equal(t, 80.0, e.Sample(120, 0.025))
	assert.False(t, e.Primed())
}

func TestEstimatorWindow(t *testing.T) {
	e := NewEstimator(2048, 4, 0)
	for _, p := range []int{10, 20, 30, 40} {
		e.Sample(p, 1)
	}
	assert.Equal(t, 10.0, e.Rate())
	// Oldest intervals are overwritten.
	for _, p := range []int{70, 100, 130, 160} {
		e.Sample(p, 1)
	}
	assert.Equal(t, 30.0, e.Rate())
}
