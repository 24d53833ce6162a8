// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package invariants provides assertions that are only checked when built
// with the "invariants" or "race" build tags.
package invariants

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// CheckBounds panics if the index is not in the range [0, n). No-op in
// non-invariant builds.
func CheckBounds[T constraints.Integer](i, n T) {
	if Enabled && (i < 0 || i >= n) {
		panic(fmt.Sprintf("index %d out of bounds [0, %d)", i, n))
	}
}
