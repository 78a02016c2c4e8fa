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

// GPIO lines for the release actuator and start button.

package io

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Mode
const (
	IN  = iota // Default
	OUT = iota
)

// Edge
const (
	NONE    = iota // Default
	RISING  = iota
	FALLING = iota
	BOTH    = iota
)

var edgeNames = []string{"none", "rising", "falling", "both"}

// Gpio represents one GPIO pin.
type Gpio struct {
	number    int
	base      string
	value     *os.File
	buf       []byte
	direction int
	edge      int
	pollfd    []unix.PollFd
}

func gpioDir() string {
	return sysfs + "/class/gpio/"
}

// OutputPin opens a GPIO pin as an output, initially low.
func OutputPin(gpio int) (*Gpio, error) {
	g, err := Pin(gpio)
	if err != nil {
		return nil, err
	}
	if err = g.Direction(OUT); err != nil {
		g.Close()
		return nil, err
	}
	if err = g.Set(0); err != nil {
		g.Close()
		return nil, err
	}
	return g, nil
}

// Pin opens a GPIO pin as an input.
func Pin(gpio int) (*Gpio, error) {
	g := new(Gpio)
	g.number = gpio
	g.base = fmt.Sprintf("%sgpio%d/", gpioDir(), gpio)
	g.buf = make([]byte, 1)

	err := export(g.base+"value", gpioDir()+"export", gpio)
	if err != nil {
		return nil, fmt.Errorf("gpio%d: %w", gpio, err)
	}
	if err = g.Direction(IN); err != nil {
		unexport(gpioDir()+"unexport", gpio)
		return nil, err
	}
	if err = g.Edge(NONE); err != nil {
		unexport(gpioDir()+"unexport", gpio)
		return nil, err
	}
	g.value, err = open(g.base+"value", os.O_RDWR)
	if err != nil {
		unexport(gpioDir()+"unexport", gpio)
		return nil, fmt.Errorf("gpio%d: %w", gpio, err)
	}
	g.pollfd = []unix.PollFd{{Fd: int32(g.value.Fd()), Events: unix.POLLPRI | unix.POLLERR}}
	return g, nil
}

// Direction sets the mode (direction) of the GPIO pin.
func (g *Gpio) Direction(d int) error {
	var s string
	switch d {
	case IN:
		s = "in"
	case OUT:
		// "low" sets the direction without a glitch on the output.
		s = "low"
	default:
		return fmt.Errorf("gpio%d: unknown direction", g.number)
	}
	err := writeFile(g.base+"direction", s)
	if err == nil {
		g.direction = d
	}
	return err
}

// Edge sets the edge detection on an input pin.
func (g *Gpio) Edge(e int) error {
	if g.direction != IN {
		return fmt.Errorf("gpio%d: not set as an input pin", g.number)
	}
	if e < NONE || e > BOTH {
		return fmt.Errorf("gpio%d: unknown edge", g.number)
	}
	err := writeFile(g.base+"edge", edgeNames[e])
	if err == nil {
		g.edge = e
	}
	return err
}

// Set the output of the GPIO pin (only valid for output pins)
func (g *Gpio) Set(v int) error {
	if g.direction != OUT {
		return fmt.Errorf("gpio%d: is not output", g.number)
	}
	switch v {
	case 0:
		g.buf[0] = '0'
	case 1:
		g.buf[0] = '1'
	default:
		return fmt.Errorf("gpio%d: illegal value", g.number)
	}
	_, err := g.value.WriteAt(g.buf, 0)
	return err
}

// Get returns the value of the GPIO pin. If edge detection is
// enabled, Get waits for the next edge.
func (g *Gpio) Get() (int, error) {
	if g.edge != NONE {
		g.pollfd[0].Revents = 0
		if _, err := unix.Poll(g.pollfd, -1); err != nil {
			return 0, err
		}
	}
	if _, err := g.value.ReadAt(g.buf, 0); err != nil {
		return 0, err
	}
	switch g.buf[0] {
	case '0':
		return 0, nil
	case '1':
		return 1, nil
	}
	return 0, fmt.Errorf("gpio%d: unknown value %s", g.number, g.buf)
}

// Close drives an output pin low, then closes and unexports the pin.
func (g *Gpio) Close() {
	if g.value != nil {
		if g.direction == OUT {
			g.Set(0)
		}
		g.value.Close()
	}
	unexport(gpioDir()+"unexport", g.number)
}
