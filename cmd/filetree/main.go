// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "filetree [command] (flags)",
	Short: "filetree traversal and search tool",
	Long: `
Builds a balanced tree of file records from a list of paths and walks or
searches it. Paths are read from --paths (one per line, '#' comments allowed)
or generated from the built-in sample corpus.
`,
	SilenceUsage: true,
}

func main() {
	log.SetFlags(0)

	cobra.EnableCommandSorting = false
	rootCmd.AddCommand(
		printCmd,
		walkCmd,
		searchCmd,
		benchCmd,
	)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&loadConfig.pathsFile, "paths", "p", "",
		"file with one path per line (\"-\" for stdin); defaults to the sample corpus")
	pf.IntVarP(&loadConfig.count, "count", "n", 0,
		"generate this many synthetic paths instead of using the sample corpus")
	pf.Uint64Var(&loadConfig.seed, "seed", 1, "seed for generated paths")
	pf.StringVar(&loadConfig.optionsFile, "options", "",
		"file with [Options] in INI format")
	pf.StringVar(&loadConfig.keyFunc, "key-func", "",
		"key function used to derive record keys (xxhash, rotating)")
	pf.BoolVar(&loadConfig.keepDuplicates, "keep-duplicates", false,
		"keep records whose path was already seen")
	pf.BoolVarP(&loadConfig.verbose, "verbose", "v", false, "enable verbose logging")

	searchCmd.Flags().StringVarP(&searchConfig.strategy, "strategy", "s", "",
		"only search with this traversal strategy")

	benchCmd.Flags().IntVarP(&benchConfig.concurrency, "concurrency", "c", 1,
		"number of concurrent searchers")
	benchCmd.Flags().IntVar(&benchConfig.ops, "ops", 10000,
		"number of searches per strategy")
	benchCmd.Flags().Float64Var(&benchConfig.rate, "rate", 0,
		"maximum searches per second (0 means unlimited)")
	benchCmd.Flags().Float64Var(&benchConfig.missPercent, "miss-percent", 10,
		"percent (0-100) of searches for keys that are not in the tree")
	benchCmd.Flags().IntVar(&benchConfig.plotHeight, "plot-height", 10,
		"height of the visited-nodes plot (0 disables it)")

	if err := rootCmd.Execute(); err != nil {
		// Cobra has already printed the error message.
		os.Exit(1)
	}
}
