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

// Apparatus drivers.

package io

import (
	"fmt"

	"github.com/aamcrae/balldrop/drop"
)

// Apparatus holds the drivers for the sensors and actuator of the drop apparatus.
type Apparatus struct {
	Counter *Counter
	ADC     *ADC
	Release *Gpio
}

// Open opens the devices selected in c.
func Open(c drop.IOConfig) (*Apparatus, error) {
	a := new(Apparatus)
	var err error
	if a.Counter, err = NewCounter(c.CounterDevice, c.Count); err != nil {
		return nil, fmt.Errorf("counter: %w", err)
	}
	if a.ADC, err = NewADC(c.ADCDevice, c.Channel); err != nil {
		a.Close()
		return nil, fmt.Errorf("distance sensor: %w", err)
	}
	if a.Release, err = OutputPin(c.Release); err != nil {
		a.Close()
		return nil, fmt.Errorf("release: %w", err)
	}
	return a, nil
}

// Close releases the devices, leaving the release actuator off.
func (a *Apparatus) Close() {
	if a.Release != nil {
		a.Release.Close()
	}
	if a.ADC != nil {
		a.ADC.Close()
	}
	if a.Counter != nil {
		a.Counter.Close()
	}
}
