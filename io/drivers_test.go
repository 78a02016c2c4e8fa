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

package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounter(t *testing.T) {
	root := fakeSys(t, map[string]string{
		"bus/counter/devices/counter0/count2/count": "4294967295\n",
	})
	c, err := NewCounter(0, 2)
	require.NoError(t, err)
	defer c.Close()
	p, err := c.Position()
	require.NoError(t, err)
	assert.Equal(t, 4294967295, p)
	assert.Equal(t, 2047, p%2048)

	f := filepath.Join(root, "bus/counter/devices/counter0/count2/count")
	require.NoError(t, os.WriteFile(f, []byte("1400\n"), 0644))
	p, err = c.Position()
	require.NoError(t, err)
	assert.Equal(t, 1400, p)

	require.NoError(t, os.WriteFile(f, []byte("junk\n"), 0644))
	_, err = c.Position()
	assert.Error(t, err)
}

func TestCounterUnavailable(t *testing.T) {
	fakeSys(t, nil)
	_, err := NewCounter(0, 2)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestADC(t *testing.T) {
	fakeSys(t, map[string]string{
		"bus/iio/devices/iio:device0/in_voltage7_raw":  "2048\n",
		"bus/iio/devices/iio:device0/in_voltage_scale": "2.441406250\n",
	})
	a, err := NewADC(0, 7)
	require.NoError(t, err)
	defer a.Close()
	v, err := a.Volts()
	require.NoError(t, err)
	assert.InDelta(t, 5.0, v, 1e-6)
}

func TestADCChannelScale(t *testing.T) {
	fakeSys(t, map[string]string{
		"bus/iio/devices/iio:device1/in_voltage3_raw":   "100",
		"bus/iio/devices/iio:device1/in_voltage3_scale": "10",
		"bus/iio/devices/iio:device1/in_voltage_scale":  "1",
	})
	a, err := NewADC(1, 3)
	require.NoError(t, err)
	defer a.Close()
	v, err := a.Volts()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v, 1e-9)
}

func TestADCUnavailable(t *testing.T) {
	fakeSys(t, nil)
	_, err := NewADC(0, 7)
	assert.ErrorIs(t, err, ErrUnavailable)
}
