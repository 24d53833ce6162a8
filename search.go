// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package filetree

import (
	"context"
	"time"

	"github.com/cockroachdb/filetree/internal/base"
	"github.com/cockroachdb/redact"
	"golang.org/x/sync/errgroup"
)

// Target describes the key a search looks for. At least one of the keys must
// be present for a search to visit any node.
type Target struct {
	NameKey    uint64
	PathKey    uint64
	HasNameKey bool
	HasPathKey bool
}

// NameTarget returns a Target matching records whose name key is k.
func NameTarget(k uint64) Target {
	return Target{NameKey: k, HasNameKey: true}
}

// PathTarget returns a Target matching records whose path key is k.
func PathTarget(k uint64) Target {
	return Target{PathKey: k, HasPathKey: true}
}

// RecordTarget returns a Target carrying both keys of r. Since the name key
// takes priority, it matches the first record visited with r's name.
func RecordTarget(r *Record) Target {
	return Target{NameKey: r.NameKey(), PathKey: r.PathKey(), HasNameKey: true, HasPathKey: true}
}

// Empty returns true if the target carries no key.
func (t Target) Empty() bool { return !t.HasNameKey && !t.HasPathKey }

// matches compares the selected key of t against n. The name key is used
// whenever it is present, since the tree is ordered by name.
func (t Target) matches(n *Node) bool {
	if t.HasNameKey {
		return n.rec.nameKey == t.NameKey
	}
	return n.rec.pathKey == t.PathKey
}

// SearchResult reports the outcome of a search.
//
// A search for an empty Target visits no nodes. A search that exhausts the
// traversal without a match has a nil Node and a non-zero Visited count
// (unless the tree is empty).
type SearchResult struct {
	// Node is the first node matching the target, or nil.
	Node *Node
	// Visited is the number of nodes pulled from the traversal, including the
	// match.
	Visited int
	// Elapsed is the wall-clock duration of the traversal.
	Elapsed time.Duration
	// Strategy is the traversal order used.
	Strategy Strategy
}

// Found returns true if a matching node was found.
func (r SearchResult) Found() bool { return r.Node != nil }

// String implements fmt.Stringer.
func (r SearchResult) String() string {
	return redact.StringWithoutMarkers(r)
}

// SafeFormat implements redact.SafeFormatter.
func (r SearchResult) SafeFormat(w redact.SafePrinter, _ rune) {
	if r.Node != nil {
		w.Printf("%s: found %s after %d nodes in %s",
			r.Strategy, r.Node.rec.name, redact.Safe(r.Visited), redact.Safe(r.Elapsed))
		return
	}
	w.Printf("%s: not found after %d nodes in %s", r.Strategy, redact.Safe(r.Visited), redact.Safe(r.Elapsed))
}

// Find walks the subtree rooted at root in the order of s and returns the
// first node matching t. It does not take advantage of the tree's ordering:
// every strategy may visit all nodes.
//
// An empty target returns immediately without starting the traversal or the
// timer. Hash collisions are reported as matches.
func Find(root *Node, s Strategy, t Target) SearchResult {
	res := SearchResult{Strategy: s}
	if t.Empty() {
		return res
	}
	sw := base.MakeStopwatch()
	it := NewIter(root, s)
	for n := it.Next(); n != nil; n = it.Next() {
		res.Visited++
		if t.matches(n) {
			res.Node = n
			break
		}
	}
	res.Elapsed = sw.Stop()
	return res
}

// Find searches the whole tree. If the tree was configured with Metrics, the
// search is recorded.
func (t *Tree) Find(s Strategy, target Target) SearchResult {
	if t != nil {
		t.closeChecker.AssertNotClosed()
	}
	res := Find(t.Root(), s, target)
	if t != nil && t.opts != nil && t.opts.Metrics != nil && !target.Empty() {
		t.opts.Metrics.record(res)
	}
	return res
}

// FindMany runs one search per target, with up to parallelism searches in
// flight. Results are returned in the order of targets. A parallelism of zero
// uses Options.FindParallelism, or 1 for a nil tree.
//
// The tree is read-only, so searches proceed without coordination. FindMany
// returns early with the context's error if ctx is canceled.
func (t *Tree) FindMany(
	ctx context.Context, s Strategy, targets []Target, parallelism int,
) ([]SearchResult, error) {
	if t != nil {
		t.closeChecker.AssertNotClosed()
	}
	if parallelism <= 0 {
		parallelism = 1
		if t != nil && t.opts != nil {
			parallelism = t.opts.FindParallelism
		}
	}
	results := make([]SearchResult, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i := range targets {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = t.Find(s, targets[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
