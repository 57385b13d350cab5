// Copyright 2026 The wktbench Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package metrics collects the counters and histograms a workload records
// while it runs. Results carry a flattened snapshot of them.
package metrics

import (
	"sync"
	"sync/atomic"

	go_metrics "github.com/rcrowley/go-metrics"
)

// Names recorded by the parse adapters.
const (
	GeometriesParsed = "geometries_parsed"
	GrammarBuild     = "grammar_build_ns"
	WorkerWall       = "worker_wall_ns"
	ReadersOpened    = "readers_opened"
)

// Key prefixes used by All.
const (
	histogramPrefix = "histogram_"
	counterPrefix   = "counter_"
)

// sampleSize bounds the reservoir of each histogram. A run records one
// sample per worker or per grammar build, far fewer than this.
const sampleSize = 1028

// Metrics is a named set of histograms and counters, safe for concurrent use
// by the workers of one benchmark.
type Metrics interface {
	Histogram(name string) Histogram
	Counter(name string) Counter

	// All snapshots every metric, keyed "histogram_<name>" and
	// "counter_<name>".
	All() map[string]any
}

// Histogram summarizes a distribution of int64 samples.
type Histogram interface {
	Update(v int64)
	Value() any
}

// Counter is a monotonically increasing count.
type Counter interface {
	Incr()
	Add(n uint64)
	Value() any
}

type registry struct {
	mu         sync.Mutex
	histograms map[string]*histogram
	counters   map[string]*counter
}

// New returns an empty Metrics.
func New() Metrics {
	return &registry{
		histograms: make(map[string]*histogram),
		counters:   make(map[string]*counter),
	}
}

func (r *registry) Histogram(name string) Histogram {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok := r.histograms[name]; ok {
		return h
	}
	h := &histogram{h: go_metrics.NewHistogram(go_metrics.NewUniformSample(sampleSize))}
	r.histograms[name] = h
	return h
}

func (r *registry) Counter(name string) Counter {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.counters[name]; ok {
		return c
	}
	c := &counter{}
	r.counters[name] = c
	return c
}

func (r *registry) All() map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]any, len(r.histograms)+len(r.counters))
	for name, h := range r.histograms {
		out[histogramPrefix+name] = h.Value()
	}
	for name, c := range r.counters {
		out[counterPrefix+name] = c.Value()
	}
	return out
}

type histogram struct {
	h go_metrics.Histogram
}

func (h *histogram) Update(v int64) {
	h.h.Update(v)
}

// Value reports count, extremes, mean, standard deviation and the median,
// 90th and 99th percentiles.
func (h *histogram) Value() any {
	s := h.h.Snapshot()
	ps := s.Percentiles([]float64{0.5, 0.9, 0.99})
	return map[string]any{
		"count":  s.Count(),
		"min":    s.Min(),
		"max":    s.Max(),
		"mean":   s.Mean(),
		"stddev": s.StdDev(),
		"median": ps[0],
		"90%":    ps[1],
		"99%":    ps[2],
	}
}

type counter struct {
	n atomic.Uint64
}

func (c *counter) Incr()        { c.n.Add(1) }
func (c *counter) Add(n uint64) { c.n.Add(n) }
func (c *counter) Value() any   { return c.n.Load() }

// NoOp returns a Metrics that records nothing.
func NoOp() Metrics {
	return noOp{}
}

type noOp struct{}

func (noOp) Histogram(string) Histogram { return noOp{} }
func (noOp) Counter(string) Counter     { return noOp{} }
func (noOp) All() map[string]any        { return nil }
func (noOp) Update(int64)               {}
func (noOp) Incr()                      {}
func (noOp) Add(uint64)                 {}
func (noOp) Value() any                 { return nil }
