// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package filetree

import (
	"runtime"
	"testing"

	"github.com/cockroachdb/filetree/hashkey"
	"github.com/stretchr/testify/require"
)

func TestOptionsEnsureDefaults(t *testing.T) {
	var nilOpts *Options
	opts := nilOpts.EnsureDefaults()
	require.NotNil(t, opts)
	require.Equal(t, hashkey.DefaultName, opts.KeyFuncName)
	require.NotNil(t, opts.KeyFunc)
	require.Equal(t, hashkey.XXHash("x"), opts.KeyFunc("x"))
	require.Equal(t, runtime.GOMAXPROCS(0), opts.FindParallelism)
	require.NotNil(t, opts.Logger)
	require.Nil(t, opts.Metrics)
	require.NoError(t, opts.Validate())

	opts = (&Options{KeyFuncName: "rotating", FindParallelism: 3}).EnsureDefaults()
	require.Equal(t, hashkey.Rotating("x"), opts.KeyFunc("x"))
	require.Equal(t, 3, opts.FindParallelism)
}

func TestOptionsString(t *testing.T) {
	opts := (&Options{KeyFuncName: "rotating", FindParallelism: 4, KeepDuplicatePaths: true}).EnsureDefaults()
	const expected = `[Options]
  find_parallelism=4
  keep_duplicate_paths=true
  key_func=rotating
`
	require.Equal(t, expected, opts.String())

	var parsed Options
	require.NoError(t, parsed.Parse(opts.String()))
	require.Equal(t, opts.String(), parsed.String())
	require.Equal(t, hashkey.Rotating("x"), parsed.KeyFunc("x"))
}

func TestOptionsParse(t *testing.T) {
	var opts Options
	require.NoError(t, opts.Parse(`
# comment
; another comment
[Options]
  key_func = xxhash
  find_parallelism=2
`))
	require.Equal(t, "xxhash", opts.KeyFuncName)
	require.Equal(t, 2, opts.FindParallelism)
	require.False(t, opts.KeepDuplicatePaths)

	for _, s := range []string{
		"[Options]\n  bogus=1\n",
		"[Other]\n  key_func=xxhash\n",
		"[Options]\n  key_func\n",
		"[Options]\n  key_func=sha1\n",
		"[Options]\n  find_parallelism=many\n",
		"[Options]\n  keep_duplicate_paths=maybe\n",
	} {
		require.Error(t, new(Options).Parse(s), "%q", s)
	}
}

func TestOptionsValidate(t *testing.T) {
	opts := (&Options{}).EnsureDefaults()
	opts.FindParallelism = 0
	opts.KeyFuncName = "md5"
	err := opts.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "FindParallelism (0) must be >= 1")
	require.Contains(t, err.Error(), `KeyFuncName ("md5") must be one of rotating, xxhash`)
}

func TestOptionsKeyFuncWithoutName(t *testing.T) {
	opts := (&Options{KeyFunc: hashkey.Rotating}).EnsureDefaults()
	require.Equal(t, "rotating", opts.KeyFuncName)
	require.NoError(t, opts.Validate())
	require.Contains(t, opts.String(), "key_func=rotating\n")

	var parsed Options
	require.NoError(t, parsed.Parse(opts.String()))
	parsed.EnsureDefaults()
	for _, s := range []string{"a", "/b.txt", "C:/dir/c.go"} {
		require.Equal(t, opts.KeyFunc(s), parsed.KeyFunc(s), "%q", s)
	}

	constKey := func(string) uint64 { return 1 }
	opts = (&Options{KeyFunc: constKey}).EnsureDefaults()
	require.Equal(t, hashkey.CustomName, opts.KeyFuncName)
	require.NoError(t, opts.Validate())
	require.Equal(t, uint64(1), opts.KeyFunc("x"))
	require.Contains(t, opts.String(), "key_func="+hashkey.CustomName+"\n")
	require.Error(t, new(Options).Parse(opts.String()))

	// A custom name without a func is still rejected.
	opts = (&Options{KeyFuncName: hashkey.CustomName}).EnsureDefaults()
	require.Error(t, opts.Validate())
}
