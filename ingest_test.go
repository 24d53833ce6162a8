// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package filetree

import (
	"slices"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/filetree/hashkey"
	"github.com/cockroachdb/filetree/internal/pathgen"
	"github.com/cockroachdb/filetree/internal/testutils"
	"github.com/stretchr/testify/require"
)

func TestLoadSamples(t *testing.T) {
	logger := &testutils.Logger{T: t}
	tree, err := Load(pathgen.Samples[:], &Options{Logger: logger})
	require.NoError(t, err)
	require.Equal(t, len(pathgen.Samples), tree.Len())
	require.Equal(t, MaxHeight(len(pathgen.Samples)), tree.Height())
	require.NoError(t, tree.Verify())

	var names []string
	for n := range tree.Walk(InOrder) {
		names = append(names, n.Record().Name())
	}
	require.True(t, slices.IsSorted(names))
	require.Equal(t, "backup", names[0])
	require.Equal(t, "track01", names[len(names)-1])

	require.Equal(t, []string{"filetree: loaded 26 records (0 duplicates dropped), height 5"}, logger.Messages())
}

func TestLoadDuplicates(t *testing.T) {
	paths := pathgen.New(3).Draw(200)
	unique := make(map[string]bool)
	for _, p := range paths {
		unique[p] = true
	}

	logger := &testutils.Logger{T: t}
	tree, err := Load(paths, &Options{Logger: logger})
	require.NoError(t, err)
	require.Equal(t, len(unique), tree.Len())
	require.NoError(t, tree.Verify())
	// One message per dropped duplicate, plus the summary.
	require.Len(t, logger.Messages(), 200-len(unique)+1)

	seen := make(map[string]bool)
	for n := range tree.Walk(PreOrder) {
		require.False(t, seen[n.Record().Path()])
		seen[n.Record().Path()] = true
	}

	tree, err = Load(paths, &Options{Logger: logger, KeepDuplicatePaths: true})
	require.NoError(t, err)
	require.Equal(t, 200, tree.Len())
	require.NoError(t, tree.Verify())
}

func TestLoadCollidingKeys(t *testing.T) {
	// Every path shares one key; only exact repeats are dropped.
	constKey := func(string) uint64 { return 1 }
	paths := []string{"C:/x/a.txt", "D:/y/b.txt", "C:/x/a.txt", "E:/z/c.txt"}
	logger := &testutils.Logger{T: t}
	tree, err := Load(paths, &Options{KeyFunc: constKey, Logger: logger})
	require.NoError(t, err)
	require.Equal(t, 3, tree.Len())
	require.Equal(t, []string{
		`filetree: dropping duplicate path "C:/x/a.txt" (first seen at 0)`,
		"filetree: loaded 3 records (1 duplicates dropped), height 2",
	}, logger.Messages())

	var got []string
	for n := range tree.Walk(InOrder) {
		got = append(got, n.Record().Path())
	}
	require.Equal(t, []string{"C:/x/a.txt", "D:/y/b.txt", "E:/z/c.txt"}, got)
}

func TestLoadStable(t *testing.T) {
	// Records with equal names keep their input order.
	tree, err := Load([]string{"D:/b.txt", "C:/x/a.txt", "E:/y/a.bin", "F:/a"}, &Options{Logger: &testutils.Logger{T: t}})
	require.NoError(t, err)
	var paths []string
	for n := range tree.Walk(InOrder) {
		paths = append(paths, n.Record().Path())
	}
	require.Equal(t, []string{"C:/x/a.txt", "E:/y/a.bin", "F:/a", "D:/b.txt"}, paths)
}

func TestLoadKeyFunc(t *testing.T) {
	tree, err := Load([]string{"C:/x/a.txt"}, &Options{KeyFuncName: "rotating", Logger: &testutils.Logger{T: t}})
	require.NoError(t, err)
	require.Equal(t, hashkey.Rotating("a"), tree.Root().Record().NameKey())
}

func TestLoadInvalid(t *testing.T) {
	logger := &testutils.Logger{T: t}
	_, err := Load([]string{"C:/x/a.txt", "C:/x/"}, &Options{Logger: logger})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidPath))
	require.Contains(t, err.Error(), "path 1")
	require.Equal(t, []string{
		`filetree: rejecting path 1: filetree: path "C:/x/" has an empty file name`,
	}, logger.Messages())

	_, err = Load(nil, &Options{KeyFuncName: "crc"})
	require.Error(t, err)
}

func TestReadPaths(t *testing.T) {
	input := `# sample corpus
C:/Program Files/App/data.bin

  D:/Downloads/installer.exe  
	# indented comment
E:/Games/RPG/saves/character.sav
`
	paths, err := ReadPaths(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, []string{
		"C:/Program Files/App/data.bin",
		"D:/Downloads/installer.exe",
		"E:/Games/RPG/saves/character.sav",
	}, paths)

	paths, err = ReadPaths(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, paths)
}
