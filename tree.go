// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package filetree

import (
	"math/bits"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/filetree/internal/invariants"
)

// noNode marks an absent parent or child link.
const noNode = -1

// Node is a vertex of a Tree. It holds one Record and links to at most two
// children and its parent.
//
// Nodes live in an arena owned by their Tree; links are arena indexes rather
// than pointers, so the parent link never forms an ownership cycle. The arena
// index of a node is its position in the sorted input.
type Node struct {
	rec    Record
	tree   *Tree
	index  int32
	parent int32
	left   int32
	right  int32
}

// Record returns the Record held by the node.
func (n *Node) Record() *Record { return &n.rec }

// Index returns the position of the node's Record in the input the tree was
// built from. It is also the node's in-order position.
func (n *Node) Index() int { return int(n.index) }

// Left returns the left child, or nil.
func (n *Node) Left() *Node { return n.tree.node(n.left) }

// Right returns the right child, or nil.
func (n *Node) Right() *Node { return n.tree.node(n.right) }

// Parent returns the node's parent, or nil for the root.
func (n *Node) Parent() *Node { return n.tree.node(n.parent) }

// IsLeaf returns true if the node has no children.
func (n *Node) IsLeaf() bool { return n.left == noNode && n.right == noNode }

// Depth returns the number of nodes on the path from the root to n,
// inclusive. The root has depth 1.
func (n *Node) Depth() int {
	d := 1
	for p := n.parent; p != noNode; p = n.tree.nodes[p].parent {
		d++
	}
	return d
}

// Tree is an ordered binary tree of Records, built once by Build and
// immutable afterwards. A Tree is safe for concurrent use by readers.
type Tree struct {
	nodes  []Node
	root   int32
	height int
	opts   *Options

	closeChecker invariants.CloseChecker
}

func (t *Tree) node(i int32) *Node {
	if i == noNode {
		return nil
	}
	invariants.CheckBounds(i, int32(len(t.nodes)))
	return &t.nodes[i]
}

// Build constructs a Tree from records, which must already be sorted by
// Record.CompareNames in ascending order. Build does not sort.
//
// The tree is partitioned by index midpoint, so its height is
// ceil(log2(n+1)) regardless of how the names are distributed. The records
// are copied into the tree.
func Build(records []Record) *Tree {
	return buildWithOptions(records, nil)
}

func buildWithOptions(records []Record, opts *Options) *Tree {
	if invariants.Enabled {
		for i := 1; i < len(records); i++ {
			if records[i-1].CompareNames(&records[i]) > 0 {
				panic(errors.AssertionFailedf("filetree: records not sorted at %d: %q > %q",
					i, records[i-1].Name(), records[i].Name()))
			}
		}
	}
	t := &Tree{
		nodes: make([]Node, len(records)),
		root:  noNode,
		opts:  opts.EnsureDefaults(),
	}
	for i := range records {
		t.nodes[i] = Node{
			rec:    records[i],
			tree:   t,
			index:  int32(i),
			parent: noNode,
			left:   noNode,
			right:  noNode,
		}
	}
	t.root = t.buildRange(0, int32(len(records))-1, noNode, 1)
	return t
}

// buildRange links the nodes in [start, end] into a subtree under parent and
// returns the subtree's root.
func (t *Tree) buildRange(start, end, parent int32, depth int) int32 {
	if start > end {
		return noNode
	}
	mid := start + (end-start)/2
	n := &t.nodes[mid]
	n.parent = parent
	t.height = max(t.height, depth)
	n.left = t.buildRange(start, mid-1, mid, depth+1)
	n.right = t.buildRange(mid+1, end, mid, depth+1)
	return mid
}

// Root returns the root node, or nil if the tree is empty.
func (t *Tree) Root() *Node {
	if t == nil {
		return nil
	}
	return t.node(t.root)
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

// Height returns the number of nodes on the longest root-to-leaf path.
func (t *Tree) Height() int {
	if t == nil {
		return 0
	}
	return t.height
}

// MaxHeight returns the height bound of a tree built from n records:
// ceil(log2(n+1)).
func MaxHeight(n int) int {
	return bits.Len(uint(n))
}

// Verify checks the structural invariants of the tree: every parent link
// points to the node that owns the child, names are ordered, every node is
// reachable from the root exactly once and the height is within MaxHeight.
func (t *Tree) Verify() error {
	if t == nil {
		return nil
	}
	if t.root == noNode {
		if len(t.nodes) != 0 {
			return errors.AssertionFailedf("filetree: empty root with %d nodes", len(t.nodes))
		}
		return nil
	}
	if p := t.nodes[t.root].parent; p != noNode {
		return errors.AssertionFailedf("filetree: root %d has parent %d", t.root, p)
	}
	seen := 0
	height := 0
	// A pre-order walk that carries the name bounds inherited from ancestors.
	type frame struct {
		i      int32
		lo, hi *Record
		depth  int
	}
	stack := []frame{{i: t.root, depth: 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[f.i]
		seen++
		height = max(height, f.depth)
		if seen > len(t.nodes) {
			return errors.AssertionFailedf("filetree: cycle detected at node %d", f.i)
		}
		if n.index != f.i || n.tree != t {
			return errors.AssertionFailedf("filetree: node %d has index %d", f.i, n.index)
		}
		if f.lo != nil && f.lo.CompareNames(&n.rec) > 0 {
			return errors.AssertionFailedf("filetree: node %d name %q sorts before ancestor %q",
				f.i, n.rec.Name(), f.lo.Name())
		}
		if f.hi != nil && f.hi.CompareNames(&n.rec) < 0 {
			return errors.AssertionFailedf("filetree: node %d name %q sorts after ancestor %q",
				f.i, n.rec.Name(), f.hi.Name())
		}
		for _, c := range [2]int32{n.left, n.right} {
			if c == noNode {
				continue
			}
			if c < 0 || int(c) >= len(t.nodes) {
				return errors.AssertionFailedf("filetree: node %d has out of range child %d", f.i, c)
			}
			if p := t.nodes[c].parent; p != f.i {
				return errors.AssertionFailedf("filetree: child %d of node %d points to parent %d", c, f.i, p)
			}
		}
		if n.right != noNode {
			stack = append(stack, frame{i: n.right, lo: &n.rec, hi: f.hi, depth: f.depth + 1})
		}
		if n.left != noNode {
			stack = append(stack, frame{i: n.left, lo: f.lo, hi: &n.rec, depth: f.depth + 1})
		}
	}
	if seen != len(t.nodes) {
		return errors.AssertionFailedf("filetree: %d of %d nodes reachable from the root", seen, len(t.nodes))
	}
	if height != t.height {
		return errors.AssertionFailedf("filetree: recorded height %d, actual %d", t.height, height)
	}
	if bound := MaxHeight(len(t.nodes)); height > bound {
		return errors.AssertionFailedf("filetree: height %d exceeds bound %d for %d nodes", height, bound, len(t.nodes))
	}
	return nil
}

// Release unlinks every node and drops the arena. The tree is empty
// afterwards. Release must not be called concurrently with readers, and
// nodes obtained before Release must not be used after it.
//
// Teardown is iterative (post-order over an explicit stack), so it does not
// depend on the tree's height.
func (t *Tree) Release() {
	if t == nil {
		return
	}
	t.closeChecker.Close()
	it := NewIter(t.Root(), PostOrder)
	for n := it.Next(); n != nil; n = it.Next() {
		n.rec = Record{}
		n.parent, n.left, n.right = noNode, noNode, noNode
		n.tree = nil
	}
	t.nodes = nil
	t.root = noNode
	t.height = 0
}
