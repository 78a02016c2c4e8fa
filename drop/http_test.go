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

package drop

import (
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	m := NewMonitor()
	h := Handler(m, DefaultConfig())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/disk.png", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	m.Update(Telemetry{Height: 0.3048, Rate: 800, Position: 1380, Large: true})

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/disk.png", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	img, err := png.Decode(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, imageSize, img.Bounds().Dx())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/telemetry", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "304 mm, 800 tps, 1380 ticks, possible: small false, large true\n", rec.Body.String())
}

func TestAngle(t *testing.T) {
	assert.InDelta(t, -1.5708, angle(0, 2048), 1e-4)
	assert.InDelta(t, -1.5708-3.14159, angle(1024, 2048), 1e-4)
}
