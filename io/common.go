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

// Package io provides the Linux sysfs drivers for the drop apparatus.

package io

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

// ErrUnavailable is returned when a device is not present.
var ErrUnavailable = errors.New("driver unavailable")

// Setter is an interface for setting an output value on a GPIO
type Setter interface {
	Set(int) error
}

// Root of the sysfs tree.
var sysfs = "/sys"

const verifyTimeout = 2 * time.Second

// Verify will enable waiting for exported files to become writable.
// This is necessary if the process is not running as root - systemd
// and udev will change the group permissions on the exported files, but
// this takes some time to do.
var Verify = false

func init() {
	// If the user is not root, enable Verify mode
	u, err := user.Current()
	if err == nil && u.Uid != "0" {
		Verify = true
	}
}

// unexport writes a unit number to an unexport file.
func unexport(f string, g int) error {
	return writeFile(f, fmt.Sprintf("%d", g))
}

// export will check whether f is accessible, and if not will write
// a unit number to an export file, and then optionally wait for the file
// to appear and become writable.
func export(f, expfile string, g int) error {
	if unix.Access(f, unix.W_OK|unix.R_OK) == nil {
		return nil
	}
	err := writeFile(expfile, fmt.Sprintf("%d", g))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", expfile, ErrUnavailable)
	}
	if err == nil && Verify {
		return verifyFile(f)
	}
	return err
}

// Write a string to a file.
func writeFile(fname, s string) error {
	f, err := os.OpenFile(fname, os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write([]byte(s))
	return err
}

// open opens a device attribute, mapping a missing file to ErrUnavailable.
func open(fname string, flag int) (*os.File, error) {
	f, err := os.OpenFile(fname, flag, 0600)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", fname, ErrUnavailable)
	}
	return f, err
}

// readAttr reads an attribute value from an open file.
func readAttr(f *os.File, buf []byte) (string, error) {
	n, err := f.ReadAt(buf, 0)
	if n == 0 && err != nil {
		return "", err
	}
	return strings.TrimSpace(string(buf[:n])), nil
}

// Wait for file to become writable.
func verifyFile(f string) error {
	var tout time.Duration
	sl := time.Millisecond
	for tout = 0; tout < verifyTimeout; tout += sl {
		err := unix.Access(f, unix.W_OK)
		if err == nil {
			return nil
		}
		time.Sleep(sl)
	}
	return fmt.Errorf("%s: not writable", f)
}
