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

// Simulator for the drop apparatus. Runs drop attempts against a
// simulated spinning disk and reports whether the ball passed the hole.

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/aamcrae/balldrop/drop"
	"github.com/aamcrae/balldrop/sim"
)

var attempts = flag.Int("n", 20, "Number of drop attempts")
var minRate = flag.Float64("min", 50, "Minimum disk speed (ticks per second)")
var maxRate = flag.Float64("max", 4000, "Maximum disk speed (ticks per second)")
var holeName = flag.String("hole", "large", "Hole to drop the ball through (large or small)")
var realtime = flag.Bool("realtime", false, "Run in real time rather than simulated time")
var diag = flag.Bool("diag", false, "Run the diagnostic mode in real time with a telemetry server")
var port = flag.Int("port", 8080, "Telemetry server port number")
var seed = flag.Int64("seed", 1, "Random seed")

func main() {
	flag.Parse()
	cfg := drop.DefaultConfig()
	hole, err := cfg.Hole(*holeName)
	if err != nil {
		log.Fatalf("%v", err)
	}
	var clock drop.Clock = sim.NewClock(time.Now())
	if *realtime || *diag {
		clock = drop.SystemClock
	}
	rnd := rand.New(rand.NewSource(*seed))
	height := func() float64 {
		return cfg.Sensor.Min + rnd.Float64()*(cfg.Sensor.Max-cfg.Sensor.Min)
	}
	rate := func() float64 {
		return *minRate + rnd.Float64()*(*maxRate-*minRate)
	}
	disk := sim.NewDisk(clock, cfg.Ticks, rnd.Float64()*float64(cfg.Ticks), rate(), height())
	disk.SetHole(hole.Target, hole.Degrees)
	seq, err := drop.NewSequencer(cfg, disk, disk, disk, clock)
	if err != nil {
		log.Fatalf("Sequencer: %v", err)
	}
	defer seq.Close()
	if *diag {
		diagnose(seq, cfg)
		return
	}
	var tried, passed, skipped int
	for i := 0; i < *attempts; i++ {
		disk.SetRate(rate())
		disk.SetHeight(height())
		a, err := seq.Run(hole)
		if err != nil {
			log.Fatalf("Attempt %d: %v", i, err)
		}
		if !a.Released {
			skipped++
			continue
		}
		tried++
		drops := disk.Drops()
		d := drops[len(drops)-1]
		if d.Pass {
			passed++
		}
		fmt.Printf("%3d: %5d tps, %3d mm, released at %4d (drift %d), arrived at %7.1f, pass %t\n",
			i, int(a.Rate), int(a.Height*1000), d.Position, a.Drift, d.Arrival, d.Pass)
	}
	fmt.Printf("%d attempts: %d not possible, %d dropped, %d passed\n", *attempts, skipped, tried, passed)
}

func diagnose(seq *drop.Sequencer, cfg *drop.Config) {
	m := drop.NewMonitor()
	go func() {
		log.Printf("Telemetry server: %v", drop.TelemetryServer(*port, m, cfg))
	}()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err := seq.Diagnose(ctx, func(t drop.Telemetry) {
		m.Update(t)
		if m.Samples%40 == 0 {
			if t.Primed {
				log.Printf("%s", t)
			} else {
				log.Printf("%s (warming up)", t)
			}
		}
	})
	if err != nil {
		log.Printf("Diagnostics stopped: %v", err)
	}
}
