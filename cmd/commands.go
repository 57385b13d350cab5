// Copyright 2026 The wktbench Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package cmd

import (
	"os"
	"path"

	"github.com/spf13/cobra"
)

// RootCommand is the base CLI command that all subcommands are added to.
// Running it without a subcommand executes the benchmark pass.
var RootCommand = &cobra.Command{
	Use:   path.Base(os.Args[0]) + " [flags] [index...]",
	Short: "Compare the CPU cost of WKT parsers",
	Long: `Compare the CPU cost of a grammar-based WKT parser against the go-geom WKT reader.

Every registered benchmark gets a 1-based index in registration order. Passing
one or more indices runs only those benchmarks; passing none runs all of them.
With -d or --dry-run the benchmarks are listed without being timed.

Example running only the second benchmark over a custom corpus:

	wktbench -c ./cases/wkt.csv 2
`,
	Args: cobra.ArbitraryArgs,
	// Flags are parsed in PreRunE by splitArgs so that unknown flags never
	// swallow the index that follows them.
	DisableFlagParsing: true,
	SilenceUsage:       true,
}
