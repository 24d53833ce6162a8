// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package filetree

import (
	"iter"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// Strategy selects the order in which an Iterator visits the nodes of a tree.
type Strategy uint8

const (
	// InOrder visits the left subtree, the node, then the right subtree. On a
	// tree produced by Build it yields Records in their sorted order.
	InOrder Strategy = iota
	// PreOrder visits the node, then its left and right subtrees.
	PreOrder
	// PostOrder visits the left and right subtrees, then the node.
	PostOrder
	// BreadthFirst visits nodes level by level, left to right.
	BreadthFirst
	numStrategies
)

// Strategies lists every Strategy.
var Strategies = [numStrategies]Strategy{InOrder, PreOrder, PostOrder, BreadthFirst}

var strategyNames = [numStrategies]string{
	InOrder:      "in-order",
	PreOrder:     "pre-order",
	PostOrder:    "post-order",
	BreadthFirst: "breadth-first",
}

// String implements fmt.Stringer.
func (s Strategy) String() string {
	if s < numStrategies {
		return strategyNames[s]
	}
	return "unknown"
}

// SafeFormat implements redact.SafeFormatter.
func (s Strategy) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Print(redact.SafeString(s.String()))
}

// ParseStrategy parses the name of a Strategy. "depth-first" and "dfs" are
// accepted as aliases for InOrder and "bfs" for BreadthFirst.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "depth-first", "dfs":
		return InOrder, nil
	case "bfs":
		return BreadthFirst, nil
	}
	for i, name := range strategyNames {
		if name == s {
			return Strategy(i), nil
		}
	}
	return 0, errors.Newf("filetree: unknown traversal strategy %q", errors.Safe(s))
}

// visitStep records how far a depth-first frame has progressed through its
// node.
type visitStep uint8

const (
	stepEnter visitStep = iota
	stepLeftDone
	stepRightDone
)

type iterFrame struct {
	n    int32
	step visitStep
}

// iterStack holds the frames of a depth-first walk. Frames live in the
// inline array until it overflows, after which they are moved to s.
type iterStack struct {
	a    iterStackArr
	aLen int16 // -1 when using s
	s    []iterFrame
}

// Used to avoid allocations for trees of up to 2^8-1 nodes.
type iterStackArr [8]iterFrame

func (is *iterStack) push(f iterFrame) {
	if is.aLen == -1 {
		is.s = append(is.s, f)
	} else if int(is.aLen) == len(is.a) {
		is.s = make([]iterFrame, int(is.aLen)+1, 2*int(is.aLen))
		copy(is.s, is.a[:])
		is.s[int(is.aLen)] = f
		is.aLen = -1
	} else {
		is.a[is.aLen] = f
		is.aLen++
	}
}

func (is *iterStack) pop() {
	if is.aLen == -1 {
		is.s = is.s[:len(is.s)-1]
		return
	}
	is.aLen--
}

// top returns the innermost frame. The pointer is invalidated by push.
func (is *iterStack) top() *iterFrame {
	if is.aLen == -1 {
		return &is.s[len(is.s)-1]
	}
	return &is.a[is.aLen-1]
}

func (is *iterStack) len() int {
	if is.aLen == -1 {
		return len(is.s)
	}
	return int(is.aLen)
}

func (is *iterStack) reset() {
	is.aLen = 0
	is.s = nil
}

// nodeQueue is a FIFO of arena indexes used by breadth-first iteration.
type nodeQueue struct {
	buf  []int32
	head int
}

func (q *nodeQueue) push(i int32) {
	if q.head > 0 && q.head == len(q.buf) {
		q.buf = q.buf[:0]
		q.head = 0
	}
	q.buf = append(q.buf, i)
}

func (q *nodeQueue) pop() (int32, bool) {
	if q.head == len(q.buf) {
		return noNode, false
	}
	i := q.buf[q.head]
	q.head++
	return i, true
}

func (q *nodeQueue) len() int { return len(q.buf) - q.head }

func (q *nodeQueue) reset() {
	q.buf = nil
	q.head = 0
}

// Iterator yields the nodes of a subtree one at a time in the order of its
// Strategy. The producer suspends between calls to Next and resumes where it
// left off. An Iterator is finite and is not restartable: once Next returns
// nil it keeps returning nil.
//
// An Iterator may be abandoned at any point without cleanup. It must not be
// used from more than one goroutine at a time, though any number of Iterators
// may walk the same tree concurrently.
type Iterator struct {
	tree     *Tree
	strategy Strategy
	stack    iterStack
	queue    nodeQueue
}

// NewIter returns an Iterator over the subtree rooted at root. A nil root
// yields no nodes.
func NewIter(root *Node, s Strategy) *Iterator {
	i := &Iterator{strategy: s}
	if root == nil {
		return i
	}
	i.tree = root.tree
	if s == BreadthFirst {
		i.queue.push(root.index)
	} else {
		i.stack.push(iterFrame{n: root.index})
	}
	return i
}

// NewIter returns an Iterator over the whole tree.
func (t *Tree) NewIter(s Strategy) *Iterator {
	if t != nil {
		t.closeChecker.AssertNotClosed()
	}
	return NewIter(t.Root(), s)
}

// Walk returns a sequence over the whole tree. Every range over the sequence
// starts a fresh Iterator.
func (t *Tree) Walk(s Strategy) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		it := t.NewIter(s)
		for n := it.Next(); n != nil; n = it.Next() {
			if !yield(n) {
				return
			}
		}
	}
}

// Strategy returns the Strategy the iterator was created with.
func (i *Iterator) Strategy() Strategy { return i.strategy }

// Next returns the next node, or nil once the walk is exhausted.
func (i *Iterator) Next() *Node {
	if i.tree == nil {
		return nil
	}
	if i.strategy == BreadthFirst {
		return i.nextBreadthFirst()
	}
	return i.nextDepthFirst()
}

func (i *Iterator) nextBreadthFirst() *Node {
	idx, ok := i.queue.pop()
	if !ok {
		i.Close()
		return nil
	}
	n := &i.tree.nodes[idx]
	if n.left != noNode {
		i.queue.push(n.left)
	}
	if n.right != noNode {
		i.queue.push(n.right)
	}
	return n
}

// nextDepthFirst advances the frame stack until the current Strategy's yield
// point is reached. Pre-order yields on entering a node, in-order once its
// left subtree is done and post-order once both subtrees are done.
func (i *Iterator) nextDepthFirst() *Node {
	for i.stack.len() > 0 {
		f := i.stack.top()
		n := &i.tree.nodes[f.n]
		switch f.step {
		case stepEnter:
			f.step = stepLeftDone
			if n.left != noNode {
				i.stack.push(iterFrame{n: n.left})
			}
			if i.strategy == PreOrder {
				return n
			}
		case stepLeftDone:
			f.step = stepRightDone
			if n.right != noNode {
				i.stack.push(iterFrame{n: n.right})
			}
			if i.strategy == InOrder {
				return n
			}
		case stepRightDone:
			i.stack.pop()
			if i.strategy == PostOrder {
				return n
			}
		}
	}
	i.Close()
	return nil
}

// All returns the nodes the iterator has yet to yield as a sequence. Breaking
// out of a range loop over the sequence leaves the iterator positioned after
// the last node received.
func (i *Iterator) All() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for n := i.Next(); n != nil; n = i.Next() {
			if !yield(n) {
				return
			}
		}
	}
}

// Close releases the iterator's stack and queue. Subsequent calls to Next
// return nil.
func (i *Iterator) Close() {
	i.tree = nil
	i.stack.reset()
	i.queue.reset()
}
