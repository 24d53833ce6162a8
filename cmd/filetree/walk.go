// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"fmt"

	"github.com/cockroachdb/filetree"
	"github.com/spf13/cobra"
)

var walkCmd = &cobra.Command{
	Use:   "walk <strategy>",
	Short: "list the records in traversal order",
	Long: `
Lists the records in the order visited by the given strategy: in-order,
pre-order, post-order or breadth-first (aliases: depth-first, dfs, bfs).
`,
	Args: cobra.ExactArgs(1),
	RunE: runWalk,
}

func runWalk(cmd *cobra.Command, args []string) error {
	s, err := filetree.ParseStrategy(args[0])
	if err != nil {
		return err
	}
	opts, err := makeOptions()
	if err != nil {
		return err
	}
	t, err := loadTree(cmd.InOrStdin(), opts)
	if err != nil {
		return err
	}
	defer t.Release()

	stdout := cmd.OutOrStdout()
	for n := range t.Walk(s) {
		fmt.Fprintf(stdout, "%3d depth=%d %s\n", n.Index(), n.Depth(), n.Record())
	}
	return nil
}
