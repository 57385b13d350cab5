// Copyright 2026 The wktbench Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/wktbench/wktbench/metrics"
	"github.com/wktbench/wktbench/wkt"
)

// Custom benchmarks the grammar-based parser in package wkt.
type Custom struct {
	workload
	fresh bool
}

// NewCustom returns a custom parser adapter over corpus.
func NewCustom(corpus []string, iterations, threads int, opts ...Option) *Custom {
	o := newOptions(opts)
	return &Custom{
		workload: workload{
			corpus:     corpus,
			iterations: iterations,
			threads:    threads,
			metrics:    o.metrics,
		},
		fresh: o.freshGrammar,
	}
}

// Run parses the corpus iterations times with a single grammar, or with a
// fresh grammar per string when configured with WithFreshGrammar.
func (c *Custom) Run(ctx context.Context) error {
	defer c.track(time.Now())

	parse := wkt.Parse
	if !c.fresh {
		start := time.Now()
		p, err := wkt.NewParser()
		if err != nil {
			return err
		}
		c.metrics.Histogram(metrics.GrammarBuild).Update(time.Since(start).Nanoseconds())
		parse = p.Parse
	}

	for range c.iterations {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, text := range c.corpus {
			var paths wkt.Paths
			if err := parse(text, &paths); err != nil {
				return fmt.Errorf("%w: %v", ErrParseFailed, err)
			}
		}
		c.round()
	}
	return nil
}
