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

// Calibration utility. Samples the apparatus continuously and
// reports the telemetry; the release actuator is never pulsed.

package main

import (
	"context"
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
var port = flag.Int("port", 8080, "Telemetry server port number, 0 to disable")
var every = flag.Int("every", 1, "Log every N samples")

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
	seq.Name = "calibrate"
	m := drop.NewMonitor()
	if *port != 0 {
		go func() {
			log.Printf("Telemetry server: %v", drop.TelemetryServer(*port, m, cfg))
		}()
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = seq.Diagnose(ctx, func(t drop.Telemetry) {
		m.Update(t)
		if m.Samples%*every == 0 {
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
