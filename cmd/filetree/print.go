// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"fmt"

	"github.com/cockroachdb/filetree"
	"github.com/spf13/cobra"
)

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "print the tree structure",
	Long: `
Prints the tree one node per line. Left children are marked "L├── " and right
children "R└── ".
`,
	Args: cobra.NoArgs,
	RunE: runPrint,
}

func runPrint(cmd *cobra.Command, args []string) error {
	opts, err := makeOptions()
	if err != nil {
		return err
	}
	t, err := loadTree(cmd.InOrStdin(), opts)
	if err != nil {
		return err
	}
	defer t.Release()
	if err := t.Verify(); err != nil {
		return err
	}
	stdout := cmd.OutOrStdout()
	fmt.Fprintf(stdout, "%d records, height %d (bound %d)\n",
		t.Len(), t.Height(), filetree.MaxHeight(t.Len()))
	return t.Format(stdout)
}
