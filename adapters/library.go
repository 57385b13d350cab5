// Copyright 2026 The wktbench Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/wktbench/wktbench/internal/geomlib"
	"github.com/wktbench/wktbench/metrics"
)

// Library benchmarks the go-geom WKT reader. geomlib.Init must have been
// called before the first Run.
type Library struct {
	workload
}

// NewLibrary returns a library reader adapter over corpus.
func NewLibrary(corpus []string, iterations, threads int, opts ...Option) *Library {
	o := newOptions(opts)
	return &Library{
		workload: workload{
			corpus:     corpus,
			iterations: iterations,
			threads:    threads,
			metrics:    o.metrics,
		},
	}
}

// Run parses the corpus iterations times with one reader. Each geometry is
// destroyed as soon as it is read and the reader is closed on every return
// path.
func (l *Library) Run(ctx context.Context) error {
	defer l.track(time.Now())

	reader, err := geomlib.NewReader()
	if err != nil {
		return err
	}
	defer reader.Close()
	l.metrics.Counter(metrics.ReadersOpened).Incr()

	for range l.iterations {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, text := range l.corpus {
			g, err := reader.Read(text)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidGeometry, err)
			}
			g.Destroy()
		}
		l.round()
	}
	return nil
}
