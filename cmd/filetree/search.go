// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/filetree"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var searchConfig struct {
	strategy string
}

var searchCmd = &cobra.Command{
	Use:   "search <name-or-path>...",
	Short: "search the tree with every traversal strategy",
	Long: `
Searches the tree for each argument. An argument containing '/' is matched
against record paths; anything else against record names. Every traversal
strategy is tried in turn and the nodes visited and time taken are reported.
`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

// queryTarget returns the Target for a command-line query.
func queryTarget(opts *filetree.Options, q string) filetree.Target {
	if strings.Contains(q, "/") {
		return filetree.PathTarget(opts.KeyFunc(q))
	}
	return filetree.NameTarget(opts.KeyFunc(q))
}

func selectedStrategies(name string) ([]filetree.Strategy, error) {
	if name == "" {
		return filetree.Strategies[:], nil
	}
	s, err := filetree.ParseStrategy(name)
	if err != nil {
		return nil, err
	}
	return []filetree.Strategy{s}, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	strategies, err := selectedStrategies(searchConfig.strategy)
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

	tbl := tablewriter.NewWriter(cmd.OutOrStdout())
	tbl.SetAutoWrapText(false)
	tbl.SetHeader([]string{"Query", "Strategy", "Result", "Visited", "Elapsed", "Per node"})
	for _, q := range args {
		target := queryTarget(opts, q)
		for _, s := range strategies {
			res := t.Find(s, target)
			result := "not found"
			if res.Found() {
				result = res.Node.Record().Path()
			}
			tbl.Append([]string{
				q,
				s.String(),
				result,
				fmt.Sprintf("%d", res.Visited),
				res.Elapsed.String(),
				perNode(res.Elapsed, res.Visited).String(),
			})
		}
	}
	tbl.Render()
	return nil
}

func perNode(d time.Duration, visited int) time.Duration {
	if visited == 0 {
		return 0
	}
	return d / time.Duration(visited)
}
