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

// Analog input driver.

package io

import (
	"fmt"
	"os"
	"strconv"
)

// ADC reads one voltage channel of an IIO analog input device.
type ADC struct {
	name  string
	raw   *os.File
	scale float64 // millivolts per count
	buf   []byte
}

// NewADC opens voltage channel ch of IIO device dev.
func NewADC(dev, ch int) (*ADC, error) {
	a := new(ADC)
	a.name = fmt.Sprintf("iio:device%d/in_voltage%d", dev, ch)
	base := fmt.Sprintf("%s/bus/iio/devices/iio:device%d/", sysfs, dev)
	a.buf = make([]byte, 32)
	// The scale may be per channel or shared by all channels.
	sf, err := open(fmt.Sprintf("%sin_voltage%d_scale", base, ch), os.O_RDONLY)
	if err != nil {
		sf, err = open(base+"in_voltage_scale", os.O_RDONLY)
		if err != nil {
			return nil, err
		}
	}
	defer sf.Close()
	s, err := readAttr(sf, a.buf)
	if err != nil {
		return nil, fmt.Errorf("%s: scale: %v", a.name, err)
	}
	if a.scale, err = strconv.ParseFloat(s, 64); err != nil {
		return nil, fmt.Errorf("%s: scale: %v", a.name, err)
	}
	a.raw, err = open(fmt.Sprintf("%sin_voltage%d_raw", base, ch), os.O_RDONLY)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Volts returns the voltage on the channel.
func (a *ADC) Volts() (float64, error) {
	s, err := readAttr(a.raw, a.buf)
	if err != nil {
		return 0, fmt.Errorf("%s: %v", a.name, err)
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s: %v", a.name, err)
	}
	return float64(v) * a.scale / 1000, nil
}

// Close closes the ADC.
func (a *ADC) Close() {
	a.raw.Close()
}
