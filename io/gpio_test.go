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

package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSys points the drivers at a temporary sysfs tree populated with files.
func fakeSys(t *testing.T, files map[string]string) string {
	root := t.TempDir()
	old := sysfs
	sysfs = root
	t.Cleanup(func() { sysfs = old })
	for name, v := range files {
		p := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(v), 0644))
	}
	return root
}

func readFile(t *testing.T, p string) string {
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	return string(b)
}

func TestOutputPin(t *testing.T) {
	root := fakeSys(t, map[string]string{
		"class/gpio/export":           "",
		"class/gpio/unexport":         "",
		"class/gpio/gpio17/value":     "1",
		"class/gpio/gpio17/direction": "in",
		"class/gpio/gpio17/edge":      "none",
	})
	g, err := OutputPin(17)
	require.NoError(t, err)
	dir := filepath.Join(root, "class/gpio/gpio17")
	assert.Equal(t, "low", readFile(t, filepath.Join(dir, "direction")))
	assert.Equal(t, "0", readFile(t, filepath.Join(dir, "value")))
	require.NoError(t, g.Set(1))
	assert.Equal(t, "1", readFile(t, filepath.Join(dir, "value")))
	v, err := g.Get()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Error(t, g.Set(2))
	assert.Error(t, g.Edge(RISING))
	g.Close()
	// Closing leaves the actuator off.
	assert.Equal(t, "0", readFile(t, filepath.Join(dir, "value")))
	assert.Equal(t, "17", readFile(t, filepath.Join(root, "class/gpio/unexport")))
}

func TestInputPin(t *testing.T) {
	root := fakeSys(t, map[string]string{
		"class/gpio/export":          "",
		"class/gpio/unexport":        "",
		"class/gpio/gpio5/value":     "0",
		"class/gpio/gpio5/direction": "out",
		"class/gpio/gpio5/edge":      "both",
	})
	g, err := Pin(5)
	require.NoError(t, err)
	defer g.Close()
	assert.Equal(t, "in", readFile(t, filepath.Join(root, "class/gpio/gpio5/direction")))
	assert.Equal(t, "none", readFile(t, filepath.Join(root, "class/gpio/gpio5/edge")))
	assert.Error(t, g.Set(1))
	require.NoError(t, g.Edge(FALLING))
	assert.Equal(t, "falling", readFile(t, filepath.Join(root, "class/gpio/gpio5/edge")))
}

func TestPinUnavailable(t *testing.T) {
	fakeSys(t, nil)
	_, err := OutputPin(17)
	assert.ErrorIs(t, err, ErrUnavailable)
}
