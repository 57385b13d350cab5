// Copyright 2026 The wktbench Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package benchmark

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fortytw2/leaktest"
	"github.com/google/go-cmp/cmp"

	"github.com/wktbench/wktbench/config"
	"github.com/wktbench/wktbench/internal/cputime"
	"github.com/wktbench/wktbench/logging"
	logtest "github.com/wktbench/wktbench/logging/test"
	"github.com/wktbench/wktbench/metrics"
)

// stepClock advances user time by step on every reading.
type stepClock struct {
	mtx       sync.Mutex
	step      time.Duration
	now       cputime.Sample
	supported bool
}

func (c *stepClock) Now() cputime.Sample {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	s := c.now
	c.now.User += c.step
	c.now.System += c.step / 10
	c.now.Real += c.step / 2
	return s
}

func (c *stepClock) Supported() bool {
	return c.supported
}

type fakeWorkload struct {
	threads int
	invalid bool
	err     error
	runs    atomic.Int32
	active  atomic.Int32
	peak    atomic.Int32
	hold    time.Duration
	m       metrics.Metrics
}

func (w *fakeWorkload) Validate() bool { return !w.invalid }
func (w *fakeWorkload) Threads() int   { return w.threads }

func (w *fakeWorkload) Run(context.Context) error {
	w.runs.Add(1)
	n := w.active.Add(1)
	defer w.active.Add(-1)
	for {
		p := w.peak.Load()
		if n <= p || w.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if w.hold > 0 {
		time.Sleep(w.hold)
	}
	if w.m != nil {
		w.m.Counter(metrics.GeometriesParsed).Add(3)
	}
	return w.err
}

func (w *fakeWorkload) Metrics() metrics.Metrics {
	if w.m == nil {
		return metrics.NoOp()
	}
	return w.m
}

var errParse = errors.New("Failed to parse WKT")

func newTestRunner(tokens []string, opts ...func(*Runner)) (*Runner, *bytes.Buffer, *logtest.Logger) {
	var buf bytes.Buffer
	logger := logtest.New()
	all := append([]func(*Runner){
		Output(&buf),
		Logger(logger),
		Clock(&stepClock{step: 1500 * time.Millisecond, supported: true}),
	}, opts...)
	return NewRunner(config.ParseTokens(tokens), all...), &buf, logger
}

func TestIndexAdvancesOnEveryBranch(t *testing.T) {
	tests := []struct {
		note   string
		tokens []string
		w      *fakeWorkload
	}{
		{"skipped", []string{"99"}, &fakeWorkload{}},
		{"dry run", []string{"-d"}, &fakeWorkload{}},
		{"timed success", nil, &fakeWorkload{}},
		{"timed failure", nil, &fakeWorkload{err: errParse}},
		{"threaded failure", nil, &fakeWorkload{threads: 3, err: errParse}},
	}

	for _, tc := range tests {
		t.Run(tc.note, func(t *testing.T) {
			r, _, _ := newTestRunner(tc.tokens)
			const k = 4
			for range k {
				r.Run(context.Background(), tc.w, "bench")
			}
			if r.Index() != k+1 {
				t.Fatalf("Expected index %d after %d benchmarks, got %d", k+1, k, r.Index())
			}
			if len(r.Results()) != k {
				t.Fatalf("Expected %d results, got %d", k, len(r.Results()))
			}
		})
	}
}

func TestTimedSingleThreaded(t *testing.T) {
	r, buf, _ := newTestRunner(nil)
	w := &fakeWorkload{}

	r.Run(context.Background(), w, "custom")

	if n := w.runs.Load(); n != 1 {
		t.Fatalf("Expected exactly one execution, got %d", n)
	}
	// 1500ms user + 150ms system per clock step.
	if exp := "1) custom: 1650 ms\n"; buf.String() != exp {
		t.Fatalf("Expected %q but got %q", exp, buf.String())
	}

	res := r.Results()[0]
	if res.Status != StatusCompleted || res.Times.User != 1500*time.Millisecond || res.Times.Real != 750*time.Millisecond {
		t.Fatalf("Unexpected result: %+v", res)
	}
}

func TestTimedThreaded(t *testing.T) {
	defer leaktest.Check(t)()

	r, buf, _ := newTestRunner(nil)
	w := &fakeWorkload{threads: 4, hold: 50 * time.Millisecond}

	r.Run(context.Background(), w, "go-geom")

	if n := w.runs.Load(); n != 4 {
		t.Fatalf("Expected 4 executions, got %d", n)
	}
	if p := w.peak.Load(); p < 2 {
		t.Fatalf("Expected workers to overlap, peak concurrency was %d", p)
	}
	if exp := "1) threaded -> go-geom: 1650 ms\n"; buf.String() != exp {
		t.Fatalf("Expected %q but got %q", exp, buf.String())
	}
}

func TestDryRunListsWithoutExecuting(t *testing.T) {
	r, buf, _ := newTestRunner([]string{"--dry-run", "2"})
	custom := &fakeWorkload{}
	lib := &fakeWorkload{threads: 10}

	r.Run(context.Background(), custom, "custom")
	r.Run(context.Background(), lib, "go-geom")

	if custom.runs.Load() != 0 || lib.runs.Load() != 0 {
		t.Fatal("Expected no workload to execute in dry-run mode")
	}
	if exp := "1) custom\n2) threaded -> go-geom\n"; buf.String() != exp {
		t.Fatalf("Expected %q but got %q", exp, buf.String())
	}

	var statuses []Status
	for _, res := range r.Results() {
		statuses = append(statuses, res.Status)
	}
	if diff := cmp.Diff([]Status{StatusListed, StatusListed}, statuses); diff != "" {
		t.Fatalf("Unexpected statuses (-want, +got):\n%s", diff)
	}
}

func TestSelection(t *testing.T) {
	r, buf, _ := newTestRunner([]string{"2"})
	first := &fakeWorkload{}
	second := &fakeWorkload{}

	r.Run(context.Background(), first, "custom")
	r.Run(context.Background(), second, "go-geom")

	if first.runs.Load() != 0 {
		t.Fatal("Expected benchmark 1 to be skipped")
	}
	if second.runs.Load() != 1 {
		t.Fatal("Expected benchmark 2 to run")
	}
	if exp := "2) go-geom: 1650 ms\n"; buf.String() != exp {
		t.Fatalf("Expected %q but got %q", exp, buf.String())
	}
}

func TestFailureIsContained(t *testing.T) {
	r, buf, logger := newTestRunner(nil)
	failing := &fakeWorkload{err: errParse}
	next := &fakeWorkload{}

	r.Run(context.Background(), failing, "custom")
	r.Run(context.Background(), next, "go-geom")

	if next.runs.Load() != 1 {
		t.Fatal("Expected the benchmark after a failure to run")
	}
	if exp := "2) go-geom: 1650 ms\n"; buf.String() != exp {
		t.Fatalf("Expected only the second benchmark to report, got %q", buf.String())
	}

	errs := logger.Messages(logging.Error)
	if diff := cmp.Diff([]string{"test runner did not complete: Failed to parse WKT"}, errs); diff != "" {
		t.Fatalf("Unexpected error logs (-want, +got):\n%s", diff)
	}

	res := r.Results()[0]
	if res.Status != StatusFailed || !errors.Is(res.Err, errParse) {
		t.Fatalf("Unexpected result: %+v", res)
	}
}

func TestThreadedFailureJoinsAllWorkers(t *testing.T) {
	defer leaktest.Check(t)()

	r, _, logger := newTestRunner(nil)
	w := &fakeWorkload{threads: 5, err: errParse}

	r.Run(context.Background(), w, "custom")

	if n := w.runs.Load(); n != 5 {
		t.Fatalf("Expected all 5 workers to run, got %d", n)
	}
	if n := w.active.Load(); n != 0 {
		t.Fatalf("Expected all workers joined, %d still active", n)
	}
	if len(logger.Messages(logging.Error)) != 1 {
		t.Fatalf("Expected a single failure report, got %v", logger.Messages(logging.Error))
	}
}

func TestValidationFailureIsNotFatal(t *testing.T) {
	r, buf, logger := newTestRunner(nil)
	w := &fakeWorkload{invalid: true}

	r.Run(context.Background(), w, "custom")

	if w.runs.Load() != 1 {
		t.Fatal("Expected workload to run despite failed validation")
	}
	if diff := cmp.Diff([]string{"test did not validate: custom"}, logger.Messages(logging.Warn)); diff != "" {
		t.Fatalf("Unexpected warnings (-want, +got):\n%s", diff)
	}
	if !strings.HasPrefix(buf.String(), "1) custom: ") {
		t.Fatalf("Expected timed result, got %q", buf.String())
	}
}

func TestUnsupportedClockWarnsOnce(t *testing.T) {
	r, _, logger := newTestRunner(nil, Clock(&stepClock{step: time.Millisecond}))

	r.Run(context.Background(), &fakeWorkload{}, "a")
	r.Run(context.Background(), &fakeWorkload{}, "b")

	warnings := logger.Messages(logging.Warn)
	if len(warnings) != 1 || !strings.Contains(warnings[0], "wall-clock") {
		t.Fatalf("Expected a single wall-clock warning, got %v", warnings)
	}
}

func TestJSONFormat(t *testing.T) {
	r, buf, _ := newTestRunner(nil, Format(FormatJSON))
	w := &fakeWorkload{threads: 2, m: metrics.New()}

	r.Run(context.Background(), w, "custom")

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Unexpected error: %v\n%s", err, buf.String())
	}

	exp := map[string]any{
		"run_id":    r.RunID(),
		"index":     1.0,
		"name":      "custom",
		"threads":   2.0,
		"status":    "completed",
		"cpu_ms":    1650.0,
		"user_ms":   1500.0,
		"system_ms": 150.0,
		"real_ms":   750.0,
		"metrics":   map[string]any{"counter_geometries_parsed": 6.0},
	}
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Fatalf("Unexpected JSON result (-want, +got):\n%s", diff)
	}
}

func TestJSONFormatDryRun(t *testing.T) {
	r, buf, _ := newTestRunner([]string{"-d"}, Format(FormatJSON))

	r.Run(context.Background(), &fakeWorkload{}, "custom")

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Unexpected error: %v\n%s", err, buf.String())
	}
	if _, ok := got["cpu_ms"]; ok {
		t.Fatalf("Expected no timing fields in dry run, got %v", got)
	}
	if got["status"] != "listed" {
		t.Fatalf("Expected listed status, got %v", got["status"])
	}
}

func TestTableSummary(t *testing.T) {
	r, buf, _ := newTestRunner([]string{"1", "3"}, Format(FormatTable))

	r.Run(context.Background(), &fakeWorkload{m: metrics.New()}, "custom")
	r.Run(context.Background(), &fakeWorkload{}, "skipped-bench")
	r.Run(context.Background(), &fakeWorkload{err: errParse}, "failing-bench")
	buf.Reset()

	r.Summarize()

	out := buf.String()
	for _, exp := range []string{"custom", "1650", "completed", "failing-bench", "failed", "Geometries"} {
		if !strings.Contains(out, exp) {
			t.Fatalf("Expected summary to contain %q:\n%s", exp, out)
		}
	}
	if strings.Contains(out, "skipped-bench") {
		t.Fatalf("Expected skipped benchmark to be omitted:\n%s", out)
	}
}

func TestSummarizeOnlyInTableFormat(t *testing.T) {
	r, buf, _ := newTestRunner(nil)
	r.Run(context.Background(), &fakeWorkload{}, "custom")
	buf.Reset()

	r.Summarize()

	if buf.Len() != 0 {
		t.Fatalf("Expected no summary in pretty format, got %q", buf.String())
	}
}
