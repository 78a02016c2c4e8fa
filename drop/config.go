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
	"fmt"
	"time"

	"github.com/aamcrae/config"
)

// IOConfig selects the hardware devices for the apparatus.
type IOConfig struct {
	CounterDevice int // Counter device number (counterN)
	Count         int // Count within the counter device
	ADCDevice     int // IIO device number (iio:deviceN)
	Channel       int // ADC voltage channel of the distance sensor
	Release       int // GPIO for the release actuator
	Button        int // GPIO for the start button, -1 if none
}

// Config holds the calibration of the apparatus.
type Config struct {
	Geometry
	Period  time.Duration // Sample period
	Samples int           // Samples in the rate averaging window
	Pulse   time.Duration // Release pulse width
	Trim    time.Duration // Fixed amount subtracted from the computed wait
	Large   Hole
	Small   Hole
	Sensor  Sensor
	IO      IOConfig
}

// DefaultConfig returns the calibration of the reference apparatus.
func DefaultConfig() *Config {
	return &Config{
		Geometry: Geometry{
			Ticks:   2048,
			Ball:    10.0,
			Disk:    5.0,
			Gravity: 9.81,
		},
		Period:  25 * time.Millisecond,
		Samples: 10,
		Pulse:   25 * time.Millisecond,
		Large:   Hole{Name: "large", Degrees: 13.2, Target: 1400},
		Small:   Hole{Name: "small", Degrees: 4.4, Target: 400},
		Sensor: Sensor{
			FullScale: 10.0,
			Min:       0.1,
			Max:       0.5,
			Bias:      0.019,
		},
		IO: IOConfig{
			CounterDevice: 0,
			Count:         2,
			ADCDevice:     0,
			Channel:       7,
			Release:       17,
			Button:        -1,
		},
	}
}

// section is the subset of a config file section used here.
type section interface {
	Has(string) bool
	GetArg(string) (string, error)
	Parse(string, string, ...interface{}) (int, error)
}

// ReadConfig reads the apparatus calibration from a config file.
// Keys that are absent keep their default values.
// Sample config:
//  [apparatus]
//  ticks=2048         # Counter ticks per disk revolution
//  period=25ms        # Sample period
//  samples=10         # Samples averaged for the rotation rate
//  ball=10.0          # Ball diameter (mm)
//  disk=5.0           # Disk thickness (mm)
//  gravity=9.81
//  pulse=25ms         # Release pulse width
//  trim=0s            # Subtracted from the computed wait
//  [large]
//  hole=13.2,1400     # Hole width in degrees, counter value with hole under drop point
//  [small]
//  hole=4.4,400
//  [sensor]
//  scale=10.0         # Full scale voltage
//  range=0.1,0.5      # Distance at 0V and full scale (m)
//  bias=0.019         # Sensor zero to disk surface (m)
//  [io]
//  counter=0,2        # Counter device, count
//  adc=0,7            # IIO device, voltage channel
//  release=17         # GPIO for release actuator
//  button=-1          # GPIO for start button
func ReadConfig(conf *config.Config) (*Config, error) {
	c := DefaultConfig()
	if s := conf.GetSection("apparatus"); s != nil {
		if err := c.apparatus(s); err != nil {
			return nil, fmt.Errorf("apparatus: %v", err)
		}
	}
	if s := conf.GetSection("large"); s != nil {
		if err := readHole(s, &c.Large); err != nil {
			return nil, fmt.Errorf("large: %v", err)
		}
	}
	if s := conf.GetSection("small"); s != nil {
		if err := readHole(s, &c.Small); err != nil {
			return nil, fmt.Errorf("small: %v", err)
		}
	}
	if s := conf.GetSection("sensor"); s != nil {
		if err := c.sensor(s); err != nil {
			return nil, fmt.Errorf("sensor: %v", err)
		}
	}
	if s := conf.GetSection("io"); s != nil {
		if err := c.io(s); err != nil {
			return nil, fmt.Errorf("io: %v", err)
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) apparatus(s section) error {
	if err := parse(s, "ticks", "%d", 1, &c.Ticks); err != nil {
		return err
	}
	if err := duration(s, "period", &c.Period); err != nil {
		return err
	}
	if err := parse(s, "samples", "%d", 1, &c.Samples); err != nil {
		return err
	}
	if err := parse(s, "ball", "%f", 1, &c.Ball); err != nil {
		return err
	}
	if err := parse(s, "disk", "%f", 1, &c.Disk); err != nil {
		return err
	}
	if err := parse(s, "gravity", "%f", 1, &c.Gravity); err != nil {
		return err
	}
	if err := duration(s, "pulse", &c.Pulse); err != nil {
		return err
	}
	return duration(s, "trim", &c.Trim)
}

func readHole(s section, h *Hole) error {
	return parse(s, "hole", "%f,%d", 2, &h.Degrees, &h.Target)
}

func (c *Config) sensor(s section) error {
	if err := parse(s, "scale", "%f", 1, &c.Sensor.FullScale); err != nil {
		return err
	}
	if err := parse(s, "range", "%f,%f", 2, &c.Sensor.Min, &c.Sensor.Max); err != nil {
		return err
	}
	return parse(s, "bias", "%f", 1, &c.Sensor.Bias)
}

func (c *Config) io(s section) error {
	if err := parse(s, "counter", "%d,%d", 2, &c.IO.CounterDevice, &c.IO.Count); err != nil {
		return err
	}
	if err := parse(s, "adc", "%d,%d", 2, &c.IO.ADCDevice, &c.IO.Channel); err != nil {
		return err
	}
	if err := parse(s, "release", "%d", 1, &c.IO.Release); err != nil {
		return err
	}
	return parse(s, "button", "%d", 1, &c.IO.Button)
}

// Validate checks that the calibration values are usable.
func (c *Config) Validate() error {
	if c.Ticks <= 0 {
		return fmt.Errorf("ticks: %d must be positive", c.Ticks)
	}
	if c.Period <= 0 {
		return fmt.Errorf("period: %s must be positive", c.Period)
	}
	if c.Samples <= 0 {
		return fmt.Errorf("samples: %d must be positive", c.Samples)
	}
	if c.Gravity <= 0 {
		return fmt.Errorf("gravity: %g must be positive", c.Gravity)
	}
	if c.Ball+c.Disk <= 0 {
		return fmt.Errorf("ball and disk sizes must be positive")
	}
	if c.Pulse <= 0 {
		return fmt.Errorf("pulse: %s must be positive", c.Pulse)
	}
	if c.Sensor.FullScale <= 0 || c.Sensor.Max <= c.Sensor.Min {
		return fmt.Errorf("sensor: invalid range")
	}
	for _, h := range []Hole{c.Large, c.Small} {
		if h.Degrees <= 0 || h.Degrees >= degrees {
			return fmt.Errorf("%s: hole width %g out of range", h.Name, h.Degrees)
		}
	}
	return nil
}

// Hole returns the hole class with the given name.
func (c *Config) Hole(name string) (Hole, error) {
	switch name {
	case c.Large.Name:
		return c.Large, nil
	case c.Small.Name:
		return c.Small, nil
	}
	return Hole{}, fmt.Errorf("%s: unknown hole", name)
}

// parse parses a key if it is present. n is the expected number of values.
func parse(s section, key, format string, n int, args ...interface{}) error {
	if !s.Has(key) {
		return nil
	}
	c, err := s.Parse(key, format, args...)
	if err != nil {
		return fmt.Errorf("%s: %v", key, err)
	}
	if c != n {
		return fmt.Errorf("%s: argument count", key)
	}
	return nil
}

// duration parses a duration key if it is present.
func duration(s section, key string, d *time.Duration) error {
	if !s.Has(key) {
		return nil
	}
	a, err := s.GetArg(key)
	if err != nil {
		return fmt.Errorf("%s: %v", key, err)
	}
	*d, err = time.ParseDuration(a)
	if err != nil {
		return fmt.Errorf("%s: %v", key, err)
	}
	return nil
}
