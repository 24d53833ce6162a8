// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package filetree

import (
	"bytes"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/filetree/hashkey"
	"github.com/cockroachdb/filetree/internal/base"
)

// Logger defines an interface for writing log messages.
type Logger = base.Logger

// DefaultLogger logs to the Go stdlib logs.
var DefaultLogger = base.DefaultLogger{}

// Options configures how a Tree is loaded and searched. The zero value is
// usable; EnsureDefaults fills in unset fields.
type Options struct {
	// KeyFunc derives Record keys. KeyFuncName is the registered name of
	// KeyFunc (see hashkey.ByName) and is what String and Parse persist. If
	// KeyFunc is nil it is resolved from KeyFuncName; if KeyFuncName is empty
	// it is resolved from KeyFunc, and an unregistered KeyFunc is named
	// hashkey.CustomName, which Parse rejects.
	KeyFunc     hashkey.Func
	KeyFuncName string

	// KeepDuplicatePaths disables the removal of records whose path was
	// already seen during Load.
	KeepDuplicatePaths bool

	// FindParallelism is the default number of concurrent searches run by
	// Tree.FindMany.
	FindParallelism int

	// Logger used to write log messages.
	Logger Logger

	// Metrics, if set, records every Tree.Find.
	Metrics *Metrics
}

// EnsureDefaults ensures that the default values for all options are set if a
// valid value was not already specified. Returns the new options.
func (o *Options) EnsureDefaults() *Options {
	if o == nil {
		o = &Options{}
	}
	if o.KeyFuncName == "" {
		if o.KeyFunc != nil {
			// A func set without a name is persisted under its registered
			// name, or as hashkey.CustomName which Parse rejects.
			o.KeyFuncName, _ = hashkey.NameOf(o.KeyFunc)
		} else {
			o.KeyFuncName = hashkey.DefaultName
		}
	}
	if o.KeyFunc == nil {
		if fn, err := hashkey.ByName(o.KeyFuncName); err == nil {
			o.KeyFunc = fn
		} else {
			o.KeyFunc = hashkey.Default
		}
	}
	if o.FindParallelism <= 0 {
		o.FindParallelism = runtime.GOMAXPROCS(0)
	}
	if o.Logger == nil {
		o.Logger = DefaultLogger
	}
	return o
}

// String returns a new Options value in the INI-style format understood by
// Parse.
func (o *Options) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "[Options]\n")
	fmt.Fprintf(&buf, "  find_parallelism=%d\n", o.FindParallelism)
	fmt.Fprintf(&buf, "  keep_duplicate_paths=%t\n", o.KeepDuplicatePaths)
	fmt.Fprintf(&buf, "  key_func=%s\n", o.KeyFuncName)
	return buf.String()
}

// Parse parses the options from the specified string, as produced by String.
// Blank lines and lines starting with '#' or ';' are ignored. KeyFunc is
// resolved from the parsed key_func.
func (o *Options) Parse(s string) error {
	var section string
	for lineNum, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if len(line) == 0 || line[0] == ';' || line[0] == '#' {
			continue
		}
		n := len(line)
		if line[0] == '[' && line[n-1] == ']' {
			section = line[1 : n-1]
			continue
		}
		pos := strings.Index(line, "=")
		if pos < 0 {
			return errors.Errorf("filetree: invalid key=value syntax on line %d: %q", errors.Safe(lineNum+1), line)
		}
		key := strings.TrimSpace(line[:pos])
		value := strings.TrimSpace(line[pos+1:])
		if section != "Options" {
			return errors.Errorf("filetree: unknown option: %s.%s", errors.Safe(section), errors.Safe(key))
		}

		var err error
		switch key {
		case "find_parallelism":
			o.FindParallelism, err = strconv.Atoi(value)
		case "keep_duplicate_paths":
			o.KeepDuplicatePaths, err = strconv.ParseBool(value)
		case "key_func":
			o.KeyFuncName = value
			o.KeyFunc, err = hashkey.ByName(value)
		default:
			return errors.Errorf("filetree: unknown option: %s.%s", errors.Safe(section), errors.Safe(key))
		}
		if err != nil {
			return errors.Wrapf(err, "filetree: parsing %s.%s", errors.Safe(section), errors.Safe(key))
		}
	}
	return nil
}

// Validate verifies that the options are mutually consistent. It presumes
// EnsureDefaults has been called.
func (o *Options) Validate() error {
	var buf strings.Builder
	if o.FindParallelism < 1 {
		fmt.Fprintf(&buf, "FindParallelism (%d) must be >= 1\n", o.FindParallelism)
	}
	// An unregistered KeyFunc is usable but cannot be persisted.
	_, registered := hashkey.NameOf(o.KeyFunc)
	customKeyFunc := o.KeyFunc != nil && !registered && o.KeyFuncName == hashkey.CustomName
	if _, err := hashkey.ByName(o.KeyFuncName); err != nil && !customKeyFunc {
		fmt.Fprintf(&buf, "KeyFuncName (%q) must be one of %s\n", o.KeyFuncName, strings.Join(hashkey.Names(), ", "))
	}
	if buf.Len() == 0 {
		return nil
	}
	return errors.New(buf.String())
}
