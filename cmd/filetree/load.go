// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/filetree"
	"github.com/cockroachdb/filetree/internal/base"
	"github.com/cockroachdb/filetree/internal/pathgen"
)

// loadFlags holds the persistent flags that select and configure the input.
type loadFlags struct {
	pathsFile      string
	count          int
	seed           uint64
	optionsFile    string
	keyFunc        string
	keepDuplicates bool
	verbose        bool
}

var loadConfig loadFlags

// readInputPaths returns the paths selected by the global flags.
func readInputPaths(stdin io.Reader) ([]string, error) {
	switch {
	case loadConfig.pathsFile == "-":
		return filetree.ReadPaths(stdin)
	case loadConfig.pathsFile != "":
		f, err := os.Open(loadConfig.pathsFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return filetree.ReadPaths(f)
	case loadConfig.count > 0:
		return pathgen.New(loadConfig.seed).Synthetic(loadConfig.count), nil
	default:
		return pathgen.Samples[:], nil
	}
}

// makeOptions builds Options from --options, then applies the flags that
// override it.
func makeOptions() (*filetree.Options, error) {
	opts := &filetree.Options{}
	if loadConfig.optionsFile != "" {
		data, err := os.ReadFile(loadConfig.optionsFile)
		if err != nil {
			return nil, err
		}
		if err := opts.Parse(string(data)); err != nil {
			return nil, errors.Wrapf(err, "parsing %s", loadConfig.optionsFile)
		}
	}
	if loadConfig.keyFunc != "" {
		opts.KeyFuncName = loadConfig.keyFunc
		opts.KeyFunc = nil
	}
	if loadConfig.keepDuplicates {
		opts.KeepDuplicatePaths = true
	}
	if loadConfig.verbose {
		opts.Logger = filetree.DefaultLogger
	} else {
		opts.Logger = base.NoopLogger{}
	}
	return opts.EnsureDefaults(), nil
}

func loadTree(stdin io.Reader, opts *filetree.Options) (*filetree.Tree, error) {
	paths, err := readInputPaths(stdin)
	if err != nil {
		return nil, err
	}
	return filetree.Load(paths, opts)
}
