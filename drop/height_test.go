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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type adc struct {
	volts float64
	err   error
}

func (a *adc) Volts() (float64, error) {
	return a.volts, a.err
}

func TestHeight(t *testing.T) {
	s := DefaultConfig().Sensor
	for _, tc := range []struct {
		volts, height float64
	}{
		{0, 0.081},
		{5, 0.281},
		{10, 0.481},
	} {
		h, err := NewHeightAdapter(&adc{volts: tc.volts}, s).Height()
		require.NoError(t, err)
		assert.InDelta(t, tc.height, h, 1e-9, "%gV", tc.volts)
	}
}

func TestHeightUnavailable(t *testing.T) {
	offline := errors.New("no device")
	_, err := NewHeightAdapter(&adc{err: offline}, DefaultConfig().Sensor).Height()
	assert.ErrorIs(t, err, offline)
}
