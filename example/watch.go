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

// Program to check the apparatus drivers by printing the
// raw counter and distance sensor readings.

package main

import (
	"flag"
	"log"
	"time"

	"github.com/aamcrae/balldrop/drop"
	"github.com/aamcrae/balldrop/io"
)

var counter = flag.Int("counter", 0, "Counter device")
var count = flag.Int("count", 2, "Count within the counter device")
var adc = flag.Int("adc", 0, "IIO device of the distance sensor")
var channel = flag.Int("channel", 7, "Voltage channel of the distance sensor")
var interval = flag.Duration("interval", 250*time.Millisecond, "Time between readings")

func main() {
	flag.Parse()
	c, err := io.NewCounter(*counter, *count)
	if err != nil {
		log.Fatalf("Counter %d/%d: %v", *counter, *count, err)
	}
	defer c.Close()
	a, err := io.NewADC(*adc, *channel)
	if err != nil {
		log.Fatalf("ADC %d/%d: %v", *adc, *channel, err)
	}
	defer a.Close()
	sensor := drop.DefaultConfig().Sensor
	for {
		p, err := c.Position()
		if err != nil {
			log.Fatalf("Counter: %v", err)
		}
		v, err := a.Volts()
		if err != nil {
			log.Fatalf("ADC: %v", err)
		}
		log.Printf("counter %d, %.3fV (%d mm)\n", p, v, int(sensor.Height(v)*1000))
		time.Sleep(*interval)
	}
}
