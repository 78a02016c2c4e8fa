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

// HTTP server for diagnostic telemetry.

package drop

import (
	"fmt"
	"log"
	"math"
	"net/http"
	"sync"

	"github.com/fogleman/gg"
)

const (
	imageSize  = 400
	diskRadius = 160
	holeWidth  = 12
)

// Monitor holds the most recent telemetry sample for display.
type Monitor struct {
	mu      sync.Mutex
	last    Telemetry
	Samples int
}

// NewMonitor creates an empty Monitor.
func NewMonitor() *Monitor {
	return new(Monitor)
}

// Update records a new telemetry sample.
func (m *Monitor) Update(t Telemetry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = t
	m.Samples++
}

// Last returns the most recent sample, and false if there is none yet.
func (m *Monitor) Last() (Telemetry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last, m.Samples != 0
}

// TelemetryServer serves the telemetry held in m on port.
func TelemetryServer(port int, m *Monitor, cfg *Config) error {
	url := fmt.Sprintf(":%d", port)
	log.Printf("Starting telemetry server on %s", url)
	server := &http.Server{Addr: url, Handler: Handler(m, cfg)}
	return server.ListenAndServe()
}

// Handler returns the telemetry handlers:
//  /disk.png   - image of the disk showing the holes relative to the drop point
//  /telemetry  - the latest sample as text
func Handler(m *Monitor, cfg *Config) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/disk.png", func(w http.ResponseWriter, r *http.Request) {
		t, ok := m.Last()
		if !ok {
			http.Error(w, "no telemetry", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		if err := drawDisk(cfg, t).EncodePNG(w); err != nil {
			log.Printf("Error writing image: %v", err)
		}
	})
	mux.HandleFunc("/telemetry", func(w http.ResponseWriter, r *http.Request) {
		t, ok := m.Last()
		if !ok {
			http.Error(w, "no telemetry", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprintln(w, t.String())
	})
	return mux
}

// drawDisk draws the disk as seen from above, with the drop point at the top.
// A hole is under the drop point when the counter reads the hole target.
func drawDisk(cfg *Config, t Telemetry) *gg.Context {
	c := gg.NewContext(imageSize, imageSize)
	c.SetRGB(1, 1, 1)
	c.Clear()
	mid := float64(imageSize) / 2
	c.SetRGB(0.7, 0.7, 0.7)
	c.DrawCircle(mid, mid, diskRadius)
	c.Fill()
	for _, h := range []struct {
		hole     Hole
		possible bool
	}{{cfg.Large, t.Large}, {cfg.Small, t.Small}} {
		if h.possible {
			c.SetRGB(0, 0.6, 0)
		} else {
			c.SetRGB(0.8, 0, 0)
		}
		centre := angle(Ahead(t.Position, h.hole.Target, cfg.Ticks), cfg.Ticks)
		half := h.hole.Degrees * math.Pi / degrees
		c.SetLineWidth(holeWidth)
		c.DrawArc(mid, mid, diskRadius-holeWidth, centre-half, centre+half)
		c.Stroke()
	}
	// Drop point.
	c.SetRGB(0, 0, 1)
	c.SetLineWidth(2)
	c.DrawLine(mid, mid-diskRadius-20, mid, mid-diskRadius+20)
	c.Stroke()
	c.SetRGB(0, 0, 0)
	c.DrawString(t.String(), 10, imageSize-10)
	return c
}

// angle returns the drawing angle of a point that is ahead ticks
// from reaching the drop point.
func angle(ahead, ticks int) float64 {
	return -math.Pi/2 - float64(ahead)*2*math.Pi/float64(ticks)
}
