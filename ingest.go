// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package filetree

import (
	"io"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/swiss"
	"github.com/ghemawat/stream"
)

// Load parses paths into Records, drops records whose path was already seen
// (unless opts.KeepDuplicatePaths is set), sorts the rest by name and builds a
// Tree. Duplicates are detected by exact path, so distinct paths whose keys
// collide are all kept. The first invalid path is logged with opts.Logger and
// aborts the load.
//
// The returned Tree retains opts, with defaults filled in.
func Load(paths []string, opts *Options) (*Tree, error) {
	opts = opts.EnsureDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(paths))
	var seen swiss.Map[string, int]
	seen.Init(len(paths))
	dups := 0
	for i, p := range paths {
		r, err := MakeRecord(p, opts.KeyFunc)
		if err != nil {
			opts.Logger.Errorf("filetree: rejecting path %d: %v", i, err)
			return nil, errors.Wrapf(err, "filetree: path %d", errors.Safe(i))
		}
		if !opts.KeepDuplicatePaths {
			if prev, ok := seen.Get(p); ok {
				opts.Logger.Infof("filetree: dropping duplicate path %q (first seen at %d)", p, prev)
				dups++
				continue
			}
			seen.Put(p, i)
		}
		records = append(records, r)
	}
	slices.SortStableFunc(records, func(a, b Record) int {
		return a.CompareNames(&b)
	})

	t := buildWithOptions(records, opts)
	opts.Logger.Infof("filetree: loaded %d records (%d duplicates dropped), height %d",
		t.Len(), dups, t.Height())
	return t, nil
}

// ReadPaths reads one path per line from r. Surrounding whitespace is
// trimmed; blank lines and lines starting with '#' are skipped.
func ReadPaths(r io.Reader) ([]string, error) {
	var paths []string
	err := stream.ForEach(
		stream.Sequence(
			stream.ReadLines(r),
			stream.GrepNot(`^\s*(#|$)`),
		), func(s string) {
			paths = append(paths, strings.TrimSpace(s))
		})
	if err != nil {
		return nil, errors.Wrap(err, "filetree: reading paths")
	}
	return paths, nil
}
