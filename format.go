// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package filetree

import (
	"bufio"
	"io"
	"strings"
)

type branch uint8

const (
	rootBranch branch = iota
	leftBranch
	rightBranch
)

// Format writes one line per node in pre-order. Each non-root line is the
// accumulated prefix followed by "L├── " for a left child or "R└── " for a
// right child, then the node's name. An empty tree writes nothing.
//
//	m
//	L├── c
//	│    L├── a
//	│    R└── e
//	R└── t
func (t *Tree) Format(w io.Writer) error {
	root := t.Root()
	if root == nil {
		return nil
	}
	type frame struct {
		n      *Node
		b      branch
		prefix string
	}
	bw := bufio.NewWriter(w)
	stack := []frame{{n: root, b: rootBranch}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		bw.WriteString(f.prefix)
		childPrefix := f.prefix
		switch f.b {
		case leftBranch:
			bw.WriteString("L├── ")
			childPrefix += "│    "
		case rightBranch:
			bw.WriteString("R└── ")
			childPrefix += "     "
		}
		bw.WriteString(f.n.rec.name)
		bw.WriteByte('\n')

		if r := f.n.Right(); r != nil {
			stack = append(stack, frame{n: r, b: rightBranch, prefix: childPrefix})
		}
		if l := f.n.Left(); l != nil {
			stack = append(stack, frame{n: l, b: leftBranch, prefix: childPrefix})
		}
	}
	return bw.Flush()
}

// String renders the tree as Format does.
func (t *Tree) String() string {
	var b strings.Builder
	_ = t.Format(&b)
	return b.String()
}
