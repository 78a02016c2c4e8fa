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

// Cyclic arithmetic over the encoder counting domain.

package drop

// Wrap returns the true modulo of a by b, i.e a value in [0, b)
// even when a is negative. b must be positive.
func Wrap(a, b int) int {
	return ((a % b) + b) % b
}

// Ahead returns how many ticks the counter must advance to get from
// position from to position to. The result is always in [0, ticks).
func Ahead(from, to, ticks int) int {
	return Wrap(to-from, ticks)
}

// Offset returns the signed shortest distance from want to got,
// in the range [-ticks/2, ticks/2). Used for reporting only.
func Offset(want, got, ticks int) int {
	return Wrap(got-want+ticks/2, ticks) - ticks/2
}
