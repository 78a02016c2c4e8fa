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

// Height sensor adapter.

package drop

import (
	"fmt"
)

// VoltageReader reads an analog input in volts.
type VoltageReader interface {
	Volts() (float64, error)
}

// Sensor holds the calibration of the analog distance sensor.
// The sensor output is linear, from Min metres at 0V to Max metres
// at FullScale volts. Bias is the distance from the sensor's zero
// to the disk surface.
type Sensor struct {
	FullScale float64
	Min       float64
	Max       float64
	Bias      float64
}

// Height converts a voltage to a fall height in metres.
func (s Sensor) Height(volts float64) float64 {
	return volts/s.FullScale*(s.Max-s.Min) + s.Min - s.Bias
}

// HeightAdapter provides the fall height from an analog distance sensor.
type HeightAdapter struct {
	adc    VoltageReader
	sensor Sensor
}

// NewHeightAdapter creates a HeightAdapter reading from adc.
func NewHeightAdapter(adc VoltageReader, sensor Sensor) *HeightAdapter {
	return &HeightAdapter{adc: adc, sensor: sensor}
}

// Height returns the current fall height in metres.
func (h *HeightAdapter) Height() (float64, error) {
	v, err := h.adc.Volts()
	if err != nil {
		return 0, fmt.Errorf("height: %w", err)
	}
	return h.sensor.Height(v), nil
}
