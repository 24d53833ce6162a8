// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import (
	"time"

	"github.com/cockroachdb/crlib/crtime"
)

// DeterministicDurationForTesting is for tests that want every Stopwatch to
// report the same elapsed time. The return value is a function that must be
// called before the test exits.
func DeterministicDurationForTesting() func() {
	prev := deterministicDurationForTesting
	deterministicDurationForTesting = true
	return func() {
		deterministicDurationForTesting = prev
	}
}

var deterministicDurationForTesting = false

// DeterministicDuration is the value reported by Stopwatch.Stop while
// DeterministicDurationForTesting is in effect.
const DeterministicDuration = 7 * time.Microsecond

// Stopwatch measures monotonic wall-clock time from the moment it is made.
type Stopwatch struct {
	startTime crtime.Mono
}

// MakeStopwatch starts a new Stopwatch.
func MakeStopwatch() Stopwatch {
	return Stopwatch{startTime: crtime.NowMono()}
}

// Stop returns the time elapsed since MakeStopwatch.
func (w Stopwatch) Stop() time.Duration {
	if deterministicDurationForTesting {
		return DeterministicDuration
	}
	return w.startTime.Elapsed()
}
