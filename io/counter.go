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

// Rotation counter driver.

package io

import (
	"fmt"
	"os"
	"strconv"
)

// Counter reads a free running hardware counter through the Linux
// counter subsystem. The kernel latches the full 32 bit count on each
// read, so a value is never torn across its bytes.
type Counter struct {
	name  string
	value *os.File
	buf   []byte
}

// NewCounter opens count number count of counter device dev.
func NewCounter(dev, count int) (*Counter, error) {
	c := new(Counter)
	c.name = fmt.Sprintf("counter%d/count%d", dev, count)
	var err error
	c.value, err = open(fmt.Sprintf("%s/bus/counter/devices/%s/count", sysfs, c.name), os.O_RDONLY)
	if err != nil {
		return nil, err
	}
	c.buf = make([]byte, 32)
	return c, nil
}

// Position returns the raw counter value. The counter wraps at 2^32,
// which is a whole number of revolutions for any power of 2 ticks per
// revolution.
func (c *Counter) Position() (int, error) {
	s, err := readAttr(c.value, c.buf)
	if err != nil {
		return 0, fmt.Errorf("%s: %v", c.name, err)
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s: %v", c.name, err)
	}
	return int(v), nil
}

// Close closes the counter.
func (c *Counter) Close() {
	c.value.Close()
}
