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

// Ball drop program

package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aamcrae/balldrop/drop"
	"github.com/aamcrae/balldrop/io"
	"github.com/aamcrae/config"
)

var configFile = flag.String("config", "", "Configuration file")
var holeName = flag.String("hole", "large", "Hole to drop the ball through (large or small)")

func main() {
	flag.Parse()
	cfg := drop.DefaultConfig()
	if *configFile != "" {
		conf, err := config.ParseFile(*configFile)
		if err != nil {
			log.Fatalf("%s: %v", *configFile, err)
		}
		cfg, err = drop.ReadConfig(conf)
		if err != nil {
			log.Fatalf("%s: %v", *configFile, err)
		}
	}
	hole, err := cfg.Hole(*holeName)
	if err != nil {
		log.Fatalf("%v", err)
	}
	app, err := io.Open(cfg.IO)
	if err != nil {
		log.Fatalf("Apparatus: %v", err)
	}
	defer app.Close()
	seq, err := drop.NewSequencer(cfg, app.Counter, drop.NewHeightAdapter(app.ADC, cfg.Sensor), app.Release, drop.SystemClock)
	if err != nil {
		app.Close()
		log.Fatalf("Sequencer: %v", err)
	}
	// Never leave the actuator on if the program is stopped. Closing the
	// sequencer waits for a pulse in progress and blocks any later one.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		s := <-sig
		seq.Close()
		app.Close()
		log.Fatalf("Stopped (%s)", s)
	}()

	if cfg.IO.Button < 0 {
		attempt(seq, hole)
		return
	}
	btn, err := io.Pin(cfg.IO.Button)
	if err != nil {
		app.Close()
		log.Fatalf("Button %d: %v", cfg.IO.Button, err)
	}
	defer btn.Close()
	if err := btn.Edge(io.FALLING); err != nil {
		app.Close()
		log.Fatalf("Button %d: %v", cfg.IO.Button, err)
	}
	// The first read returns immediately with the current level.
	btn.Get()
	for {
		log.Printf("Waiting for button")
		if _, err := btn.Get(); err != nil {
			app.Close()
			log.Fatalf("Button %d: %v", cfg.IO.Button, err)
		}
		attempt(seq, hole)
	}
}

// attempt runs one drop and reports the outcome.
func attempt(seq *drop.Sequencer, hole drop.Hole) {
	a, err := seq.Run(hole)
	if errors.Is(err, io.ErrUnavailable) {
		log.Printf("Drop aborted in %s, sensor offline: %v", a.State(), err)
		return
	} else if err != nil {
		log.Printf("Drop aborted in %s: %v", a.State(), err)
		return
	}
	if a.Released {
		log.Printf("Released for %s hole, %s wait, drift %d ticks", hole.Name, a.Plan.Wait, a.Drift)
	} else {
		log.Printf("No drop: %s hole not possible at %d tps from %d mm", hole.Name, int(a.Rate), int(a.Height*1000))
	}
}
