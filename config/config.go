// Copyright 2026 The wktbench Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package config implements the run configuration of a benchmark pass: the
// dry-run switch and the set of benchmark indices selected on the command
// line.
package config

import (
	"slices"
	"strconv"
	"strings"
)

// Tokens that switch a pass into dry-run mode.
const (
	DryRunShort = "-d"
	DryRunLong  = "--dry-run"
)

// RunConfig is built once before any benchmark runs and is read-only
// afterwards.
type RunConfig struct {
	DryRun   bool
	Selected map[int]struct{}
}

// ParseTokens scans command-line tokens. Dry-run tokens set DryRun,
// non-negative decimal integers (optionally signed with '+') are added to
// the selection and everything else is ignored.
func ParseTokens(tokens []string) *RunConfig {
	cfg := &RunConfig{Selected: map[int]struct{}{}}
	for _, tok := range tokens {
		switch {
		case tok == DryRunShort || tok == DryRunLong:
			cfg.DryRun = true
		case tok == "" || strings.HasPrefix(tok, "-"):
		default:
			if i, ok := parseIndex(tok); ok {
				cfg.Selected[i] = struct{}{}
			}
		}
	}
	return cfg
}

// parseIndex accepts decimal digits with at most one leading '+'. Anything
// else, such as "0x1" or "1a", is ignored like any other unrecognized token.
func parseIndex(tok string) (int, bool) {
	digits := strings.TrimPrefix(tok, "+")
	if digits == "" {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	i, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return i, true
}

// ShouldRun reports whether the benchmark with index i is selected. An empty
// selection selects everything.
func (c *RunConfig) ShouldRun(i int) bool {
	if len(c.Selected) == 0 {
		return true
	}
	_, ok := c.Selected[i]
	return ok
}

// Indices returns the selected indices in ascending order.
func (c *RunConfig) Indices() []int {
	out := make([]int, 0, len(c.Selected))
	for i := range c.Selected {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}
