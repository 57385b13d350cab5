// Copyright 2026 The wktbench Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package benchmark runs numbered benchmarks and reports the process CPU time
// each one consumed.
//
// A Runner is driven from a single goroutine: benchmarks are registered by
// calling Run in order, and every call consumes one index whether or not the
// benchmark executes. A failing benchmark is reported and contained so the
// ones after it still run.
package benchmark

import (
	"context"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/wktbench/wktbench/config"
	"github.com/wktbench/wktbench/internal/cputime"
	"github.com/wktbench/wktbench/logging"
	"github.com/wktbench/wktbench/metrics"
)

// Workload is a unit of benchmark work.
type Workload interface {
	// Validate checks preconditions. A false result is reported but does
	// not stop the benchmark from running.
	Validate() bool

	// Threads is the number of concurrent workers. Zero runs the workload
	// once on the calling goroutine; N > 0 runs N independent copies of the
	// full workload in parallel.
	Threads() int

	// Run executes the full workload once. It is called concurrently when
	// Threads is non-zero.
	Run(ctx context.Context) error
}

// Instrumented is implemented by workloads that collect metrics while they
// run. The metrics are attached to the benchmark result.
type Instrumented interface {
	Metrics() metrics.Metrics
}

// Status describes what happened to a benchmark.
type Status string

// Benchmark statuses.
const (
	StatusSkipped   Status = "skipped"
	StatusListed    Status = "listed"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Result records the outcome of one Run call.
type Result struct {
	Index   int
	Name    string
	Threads int
	Status  Status
	Times   cputime.Times
	Err     error
	Metrics map[string]any
}

// Runner runs benchmarks under a run configuration.
type Runner struct {
	cfg     *config.RunConfig
	index   int
	runID   string
	out     io.Writer
	logger  logging.Logger
	clock   cputime.Clock
	format  string
	results []Result
	warned  bool
}

// Output sets the writer results are reported to. Defaults to os.Stderr.
func Output(w io.Writer) func(*Runner) {
	return func(r *Runner) {
		r.out = w
	}
}

// Logger sets the logger for validation and failure diagnostics.
func Logger(l logging.Logger) func(*Runner) {
	return func(r *Runner) {
		r.logger = l
	}
}

// Clock sets the clock used to time benchmarks. Defaults to the process CPU
// clock.
func Clock(c cputime.Clock) func(*Runner) {
	return func(r *Runner) {
		r.clock = c
	}
}

// Format sets the result format. See Formats.
func Format(f string) func(*Runner) {
	return func(r *Runner) {
		r.format = f
	}
}

// NewRunner returns a Runner whose first benchmark has index 1.
func NewRunner(cfg *config.RunConfig, opts ...func(*Runner)) *Runner {
	r := &Runner{
		cfg:    cfg,
		index:  1,
		runID:  uuid.NewString(),
		out:    os.Stderr,
		logger: logging.NewNoOpLogger(),
		clock:  cputime.Process,
		format: FormatPretty,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Index returns the index the next call to Run will use.
func (r *Runner) Index() int {
	return r.index
}

// RunID returns the identifier attached to this pass's results.
func (r *Runner) RunID() string {
	return r.runID
}

// Results returns one result per Run call, in call order.
func (r *Runner) Results() []Result {
	return r.results
}

// Run registers and, if selected, executes the workload under name. Errors
// returned by the workload are logged and do not propagate.
func (r *Runner) Run(ctx context.Context, w Workload, name string) {
	res := r.run(ctx, w, name)
	r.results = append(r.results, res)
	r.index++
}

func (r *Runner) run(ctx context.Context, w Workload, name string) Result {
	res := Result{
		Index:   r.index,
		Name:    name,
		Threads: w.Threads(),
		Status:  StatusSkipped,
	}

	if !r.cfg.ShouldRun(res.Index) && !r.cfg.DryRun {
		return res
	}

	logger := r.logger.WithFields(map[string]any{
		"index": res.Index,
		"name":  name,
	})

	if !w.Validate() {
		logger.Warn("test did not validate: %s", name)
	}

	if r.cfg.DryRun {
		res.Status = StatusListed
		r.report(res)
		return res
	}

	if !r.clock.Supported() && !r.warned {
		r.warned = true
		r.logger.Warn("process CPU clock unavailable on %s, reporting wall-clock time", runtime.GOOS)
	}

	logger.Debug("starting benchmark with %d thread(s)", res.Threads)

	times, err := r.measure(ctx, w)
	if im, ok := w.(Instrumented); ok {
		res.Metrics = im.Metrics().All()
	}
	if err != nil {
		res.Status = StatusFailed
		res.Err = err
		logger.Error("test runner did not complete: %v", err)
		return res
	}

	res.Status = StatusCompleted
	res.Times = times
	logger.WithFields(map[string]any{
		"user_ms":   times.User.Milliseconds(),
		"system_ms": times.System.Milliseconds(),
		"real_ms":   times.Real.Milliseconds(),
	}).Debug("benchmark completed")
	r.report(res)
	return res
}

// measure brackets the full spawn-to-join window of the workload.
func (r *Runner) measure(ctx context.Context, w Workload) (cputime.Times, error) {
	n := w.Threads()
	start := r.clock.Now()

	var err error
	if n > 0 {
		var g errgroup.Group
		for range n {
			g.Go(func() error {
				runtime.LockOSThread()
				defer runtime.UnlockOSThread()
				return w.Run(ctx)
			})
		}
		err = g.Wait()
	} else {
		err = w.Run(ctx)
	}

	return r.clock.Now().Sub(start), err
}

func millis(d time.Duration) int64 {
	return d.Milliseconds()
}
