// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package filetree

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/filetree/hashkey"
	"github.com/cockroachdb/redact"
)

// ErrInvalidPath is returned when a Record cannot be constructed from a path:
// the path is empty, has no '/' separator, or yields an empty file name.
var ErrInvalidPath = errors.New("filetree: invalid path")

// MaxFileSize bounds the synthetic size derived for every Record, in
// kilobytes.
const MaxFileSize = 3_000_000

// Record describes a single file. A Record is immutable once constructed.
type Record struct {
	name    string
	path    string
	size    uint64
	nameKey uint64
	pathKey uint64
}

// ParseRecord constructs a Record from path, deriving its keys with
// hashkey.Default.
func ParseRecord(path string) (Record, error) {
	return MakeRecord(path, hashkey.Default)
}

// MakeRecord constructs a Record from path, deriving its name and path keys
// with fn.
//
// The name is the segment after the last '/' and before the last '.' of that
// segment. A segment without an extension is used as-is.
func MakeRecord(path string, fn hashkey.Func) (Record, error) {
	name, err := nameFromPath(path)
	if err != nil {
		return Record{}, err
	}
	r := Record{
		name:    name,
		path:    path,
		nameKey: fn(name),
		pathKey: fn(path),
	}
	r.size = (r.nameKey - r.pathKey) % MaxFileSize
	return r, nil
}

func nameFromPath(path string) (string, error) {
	if path == "" {
		return "", errors.Mark(errors.Newf("filetree: empty path"), ErrInvalidPath)
	}
	slash := strings.LastIndexByte(path, '/')
	if slash < 0 {
		return "", errors.Mark(errors.Newf("filetree: path %q has no directory separator", path), ErrInvalidPath)
	}
	name := path[slash+1:]
	if dot := strings.LastIndexByte(name, '.'); dot >= 0 {
		name = name[:dot]
	}
	if name == "" {
		return "", errors.Mark(errors.Newf("filetree: path %q has an empty file name", path), ErrInvalidPath)
	}
	return name, nil
}

// Name returns the file name, without directory or extension.
func (r *Record) Name() string { return r.name }

// Path returns the full path the Record was constructed from.
func (r *Record) Path() string { return r.path }

// Size returns the derived file size in kilobytes.
func (r *Record) Size() uint64 { return r.size }

// NameKey returns the key derived from the file name.
func (r *Record) NameKey() uint64 { return r.nameKey }

// PathKey returns the key derived from the full path.
func (r *Record) PathKey() uint64 { return r.pathKey }

// CompareNames compares the file names of r and other byte-wise, returning
// -1, 0 or +1. The comparison is case-sensitive.
func (r *Record) CompareNames(other *Record) int {
	return strings.Compare(r.name, other.name)
}

// String implements fmt.Stringer.
func (r Record) String() string {
	return redact.StringWithoutMarkers(r)
}

// SafeFormat implements redact.SafeFormatter. The name and path are user data
// and are redactable; the keys and size are not.
func (r Record) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("%s (%s) size=%dKB name-key=%016x path-key=%016x",
		r.name, r.path, redact.Safe(r.size), redact.Safe(r.nameKey), redact.Safe(r.pathKey))
}
