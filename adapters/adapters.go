// Copyright 2026 The wktbench Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package adapters wraps each WKT parsing backend behind the
// benchmark.Workload interface. Every adapter parses the whole corpus
// a fixed number of times per Run and is safe to Run concurrently: the corpus
// is only read and each Run owns its parser state.
package adapters

import (
	"errors"
	"time"

	"github.com/wktbench/wktbench/metrics"
)

var (
	// ErrParseFailed is returned when the custom parser rejects a corpus entry.
	ErrParseFailed = errors.New("Failed to parse WKT") //nolint:staticcheck // reported verbatim

	// ErrInvalidGeometry is returned when the library reader rejects a corpus
	// entry.
	ErrInvalidGeometry = errors.New("invalid geometry specified")
)

type options struct {
	metrics      metrics.Metrics
	freshGrammar bool
}

// Option configures an adapter.
type Option func(*options)

// WithMetrics records parse counts and worker timings into m. A nil m
// leaves metrics disabled.
func WithMetrics(m metrics.Metrics) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithFreshGrammar makes the custom adapter compile a new grammar for every
// string instead of reusing one per Run. Other adapters ignore it.
func WithFreshGrammar() Option {
	return func(o *options) {
		o.freshGrammar = true
	}
}

func newOptions(opts []Option) options {
	o := options{metrics: metrics.NoOp()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type workload struct {
	corpus     []string
	iterations int
	threads    int
	metrics    metrics.Metrics
}

// Validate always succeeds; neither backend has a precondition to check.
func (*workload) Validate() bool {
	return true
}

// Threads returns the number of concurrent workers requested.
func (w *workload) Threads() int {
	return w.threads
}

// Metrics returns the metrics the adapter records into.
func (w *workload) Metrics() metrics.Metrics {
	return w.metrics
}

// track records the wall time of one Run into the worker histogram. Use as
// defer w.track(time.Now()).
func (w *workload) track(start time.Time) {
	w.metrics.Histogram(metrics.WorkerWall).Update(time.Since(start).Nanoseconds())
}

func (w *workload) round() {
	w.metrics.Counter(metrics.GeometriesParsed).Add(uint64(len(w.corpus)))
}
