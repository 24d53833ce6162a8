// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package filetree

import (
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/require"
)

func walkNames(it *Iterator) []string {
	var names []string
	for n := it.Next(); n != nil; n = it.Next() {
		names = append(names, n.Record().Name())
	}
	return names
}

// requireSameListing fails with a unified diff if the two listings differ.
func requireSameListing(t *testing.T, expected, actual []string) {
	t.Helper()
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(strings.Join(expected, "\n") + "\n"),
		B:        difflib.SplitLines(strings.Join(actual, "\n") + "\n"),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  1,
	})
	require.NoError(t, err)
	if len(diff) > 0 {
		t.Fatalf("Diff:\n%s", diff)
	}
}

func TestIterProperties(t *testing.T) {
	for n := 0; n <= 300; n++ {
		records := makeSortedRecords(t, n)
		tree := Build(records)

		var sorted []string
		for i := range records {
			sorted = append(sorted, records[i].Name())
		}
		requireSameListing(t, sorted, walkNames(tree.NewIter(InOrder)))

		for _, s := range Strategies {
			first := walkNames(tree.NewIter(s))
			require.Len(t, first, n, "%s n=%d", s, n)
			// Every walk of the same tree yields the same sequence.
			requireSameListing(t, first, walkNames(tree.NewIter(s)))

			seen := make(map[int]bool, n)
			for nd := range tree.Walk(s) {
				require.False(t, seen[nd.Index()], "%s yielded %d twice", s, nd.Index())
				seen[nd.Index()] = true
			}
		}

		// Breadth-first yields the root first and parents before children.
		seen := make(map[int]bool, n)
		for nd := range tree.Walk(BreadthFirst) {
			if p := nd.Parent(); p != nil {
				require.True(t, seen[p.Index()], "n=%d: %d before parent %d", n, nd.Index(), p.Index())
			} else {
				require.Same(t, tree.Root(), nd)
				require.Empty(t, seen)
			}
			seen[nd.Index()] = true
		}

		// Post-order yields children before parents; pre-order the reverse.
		for _, s := range []Strategy{PreOrder, PostOrder} {
			seen := make(map[int]bool, n)
			for nd := range tree.Walk(s) {
				if p := nd.Parent(); p != nil {
					require.Equal(t, s == PreOrder, seen[p.Index()], "%s n=%d", s, n)
				}
				seen[nd.Index()] = true
			}
		}
	}
}

func TestIterSubtree(t *testing.T) {
	tree := Build(makeSortedRecords(t, 7))
	left := tree.Root().Left()
	require.Equal(t, []string{"f0000", "f0001", "f0002"}, walkNames(NewIter(left, InOrder)))
	require.Equal(t, []string{"f0001", "f0000", "f0002"}, walkNames(NewIter(left, PreOrder)))
	require.Equal(t, []string{"f0000", "f0002", "f0001"}, walkNames(NewIter(left, PostOrder)))
	require.Equal(t, []string{"f0001", "f0000", "f0002"}, walkNames(NewIter(left, BreadthFirst)))
	require.Equal(t, []string{"f0006"}, walkNames(NewIter(tree.Root().Right().Right(), PreOrder)))
}

func TestIterNilRoot(t *testing.T) {
	for _, s := range Strategies {
		it := NewIter(nil, s)
		require.Nil(t, it.Next())
		require.Nil(t, it.Next())
		require.Equal(t, s, it.Strategy())
	}
}

func TestIterNotRestartable(t *testing.T) {
	tree := Build(makeSortedRecords(t, 5))
	for _, s := range Strategies {
		it := tree.NewIter(s)
		require.Len(t, walkNames(it), 5)
		require.Nil(t, it.Next())
		require.Empty(t, walkNames(it))
	}
}

func TestIterAll(t *testing.T) {
	tree := Build(makeSortedRecords(t, 10))
	it := tree.NewIter(InOrder)
	var got []string
	for n := range it.All() {
		got = append(got, n.Record().Name())
		if len(got) == 3 {
			break
		}
	}
	// The iterator resumes after the last node received.
	require.Equal(t, "f0003", it.Next().Record().Name())
	for n := range it.All() {
		got = append(got, n.Record().Name())
	}
	require.Len(t, got, 9)
	require.Equal(t, "f0009", got[8])

	// Walk starts over every time.
	for range 2 {
		count := 0
		for range tree.Walk(BreadthFirst) {
			count++
		}
		require.Equal(t, 10, count)
	}
}

func TestIterClose(t *testing.T) {
	tree := Build(makeSortedRecords(t, 10))
	for _, s := range Strategies {
		it := tree.NewIter(s)
		require.NotNil(t, it.Next())
		it.Close()
		require.Nil(t, it.Next())
	}
}

func TestIterStackSpill(t *testing.T) {
	var s iterStack
	for i := range int32(20) {
		s.push(iterFrame{n: i})
		require.Equal(t, int(i)+1, s.len())
		require.Equal(t, i, s.top().n)
	}
	for i := int32(19); i >= 0; i-- {
		require.Equal(t, i, s.top().n)
		s.pop()
	}
	require.Equal(t, 0, s.len())
}

func TestNodeQueue(t *testing.T) {
	var q nodeQueue
	_, ok := q.pop()
	require.False(t, ok)
	for i := range int32(5) {
		q.push(i)
	}
	for i := range int32(5) {
		v, ok := q.pop()
		require.True(t, ok)
		require.Equal(t, i, v)
	}
	require.Equal(t, 0, q.len())
	q.push(7)
	require.Equal(t, 1, q.len())
	v, _ := q.pop()
	require.Equal(t, int32(7), v)
}

func TestParseStrategy(t *testing.T) {
	for _, s := range Strategies {
		got, err := ParseStrategy(s.String())
		require.NoError(t, err)
		require.Equal(t, s, got)
	}
	for alias, s := range map[string]Strategy{
		"depth-first": InOrder,
		"dfs":         InOrder,
		"bfs":         BreadthFirst,
	} {
		got, err := ParseStrategy(alias)
		require.NoError(t, err)
		require.Equal(t, s, got)
	}
	_, err := ParseStrategy("level-order")
	require.Error(t, err)
	require.Equal(t, "unknown", Strategy(42).String())
}
