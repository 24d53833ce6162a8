// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package hashkey provides the functions used to derive the 64-bit comparison
// keys of a filetree Record from its name and path.
//
// Any deterministic function is acceptable: keys are only ever compared for
// equality, and collisions between distinct strings are reported as matches.
package hashkey

import (
	"math/bits"
	"reflect"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
)

// Func maps a string to a 64-bit key. It must be deterministic.
type Func func(s string) uint64

// XXHash derives keys with the 64-bit xxHash of s.
func XXHash(s string) uint64 {
	return xxhash.Sum64String(s)
}

// rotatingSeed is the initial multiplier of Rotating.
const rotatingSeed = 0x030153912FF

// Rotating derives keys with a rotate/xor/multiply mix over the bytes of s.
// The multiplier is itself perturbed by each intermediate result.
//
// Bytes are sign-extended before mixing, so non-ASCII input produces the
// same keys as implementations that hash signed chars.
func Rotating(s string) uint64 {
	h := uint64(rotatingSeed)
	var result uint64
	for i := 0; i < len(s); i++ {
		result ^= uint64(int64(int8(s[i])))
		result *= h
		h -= result
		result = bits.RotateLeft64(result, -16)
		result <<= 6
	}
	return result
}

// Default is the Func used when none is configured.
var Default Func = XXHash

// DefaultName is the registered name of Default.
const DefaultName = "xxhash"

var registry = map[string]Func{
	"xxhash":   XXHash,
	"rotating": Rotating,
}

// ByName returns the Func registered under name.
func ByName(name string) (Func, error) {
	if fn, ok := registry[name]; ok {
		return fn, nil
	}
	return nil, errors.Newf("filetree: unknown key func %q", errors.Safe(name))
}

// CustomName is reported by NameOf for a Func that is not registered. It is
// never accepted by ByName.
const CustomName = "<custom>"

// NameOf returns the name fn is registered under, or CustomName and false if
// fn is not a registered Func.
func NameOf(fn Func) (string, bool) {
	if fn == nil {
		return CustomName, false
	}
	p := reflect.ValueOf(fn).Pointer()
	for name, r := range registry {
		if reflect.ValueOf(r).Pointer() == p {
			return name, true
		}
	}
	return CustomName, false
}

// Names returns the registered Func names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
