// Copyright 2026 The wktbench Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package cmd

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/wktbench/wktbench/corpus"
	"github.com/wktbench/wktbench/util"
)

const (
	defaultIterations = 10000
	defaultThreads    = 10
)

func addDryRunFlag(fs *pflag.FlagSet, dryRun *bool) {
	fs.BoolVarP(dryRun, "dry-run", "d", false, "list the selected benchmarks without running them")
}

func addIterationsFlag(fs *pflag.FlagSet, iterations *int) {
	fs.IntVarP(iterations, "iterations", "n", defaultIterations, "set the number of passes over the corpus per worker")
}

func addThreadsFlag(fs *pflag.FlagSet, threads *int) {
	fs.IntVarP(threads, "threads", "t", defaultThreads, "set the number of concurrent workers (0 runs once on the calling thread)")
}

func addCorpusFlag(fs *pflag.FlagSet, path *string) {
	fs.StringVarP(path, "corpus", "c", corpus.DefaultPath, "set the path of the WKT corpus file")
}

func addFreshGrammarFlag(fs *pflag.FlagSet, fresh *bool) {
	fs.BoolVarP(fresh, "fresh-grammar", "", false, "also benchmark the custom parser building its grammar for every geometry")
}

func addOutputFormat(fs *pflag.FlagSet, outputFormat *util.EnumFlag) {
	fs.VarP(outputFormat, "format", "f", "set output format")
}

func addConfigFileFlag(fs *pflag.FlagSet, file *string) {
	fs.StringVarP(file, "config-file", "", "", "set path of a YAML file supplying flag values")
}

func addLogLevelFlag(fs *pflag.FlagSet, logLevel *util.EnumFlag) {
	fs.VarP(logLevel, "log-level", "l", "set log level")
}

func addLogFormatFlag(fs *pflag.FlagSet, logFormat *util.EnumFlag) {
	fs.Var(logFormat, "log-format", "set log format")
}

// addBenchFlags registers every flag of the benchmark pass on fs.
func addBenchFlags(fs *pflag.FlagSet, params *benchCommandParams) {
	addDryRunFlag(fs, &params.dryRun)
	addIterationsFlag(fs, &params.iterations)
	addThreadsFlag(fs, &params.threads)
	addCorpusFlag(fs, &params.corpusPath)
	addFreshGrammarFlag(fs, &params.freshGrammar)
	addOutputFormat(fs, params.outputFormat)
	addConfigFileFlag(fs, &params.configFile)
	addLogLevelFlag(fs, params.logLevel)
	addLogFormatFlag(fs, params.logFormat)
}

// splitArgs separates the flags registered on fs, together with the values
// they take, from all other tokens. Unknown flags go to rest on their own and
// never consume the token after them. Tokens after "--" always go to rest.
func splitArgs(fs *pflag.FlagSet, args []string) (flags, rest []string) {
	for i := 0; i < len(args); i++ {
		tok := args[i]
		if tok == "--" {
			rest = append(rest, args[i+1:]...)
			break
		}

		var known, needsValue bool
		switch {
		case len(tok) < 2 || tok[0] != '-':
		case strings.HasPrefix(tok, "--"):
			known, needsValue = longFlag(fs, tok[2:])
		default:
			known, needsValue = shorthandFlags(fs, tok[1:])
		}

		if !known {
			rest = append(rest, tok)
			continue
		}
		flags = append(flags, tok)
		if needsValue && i+1 < len(args) {
			i++
			flags = append(flags, args[i])
		}
	}
	return flags, rest
}

func longFlag(fs *pflag.FlagSet, name string) (known, needsValue bool) {
	name, _, attached := strings.Cut(name, "=")
	f := fs.Lookup(name)
	if f == nil {
		return false, false
	}
	return true, !attached && f.NoOptDefVal == ""
}

// shorthandFlags follows pflag's rules for a cluster such as "-dn5": letters
// are boolean flags until one takes a value, which is the rest of the cluster
// or else the next token.
func shorthandFlags(fs *pflag.FlagSet, cluster string) (known, needsValue bool) {
	for j := 0; j < len(cluster); j++ {
		if cluster[j] == '=' {
			return j > 0, false
		}
		f := fs.ShorthandLookup(cluster[j : j+1])
		if f == nil {
			return false, false
		}
		if f.NoOptDefVal == "" {
			return true, j == len(cluster)-1
		}
	}
	return true, false
}
