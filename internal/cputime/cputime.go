// Copyright 2026 The wktbench Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package cputime provides a process CPU-time clock. Readings cover the time
// spent on CPU by every thread of the process, so work done in parallel on N
// cores accumulates roughly N times faster than wall-clock time.
package cputime

import (
	"time"
)

// Sample is a point-in-time reading of the process clocks.
type Sample struct {
	Real   time.Duration
	User   time.Duration
	System time.Duration
}

// Sub returns the time elapsed between o and s.
func (s Sample) Sub(o Sample) Times {
	return Times{
		Real:   s.Real - o.Real,
		User:   s.User - o.User,
		System: s.System - o.System,
	}
}

// Times holds the durations elapsed between two samples.
type Times struct {
	Real   time.Duration
	User   time.Duration
	System time.Duration
}

// CPU returns the combined user and system time.
func (t Times) CPU() time.Duration {
	return t.User + t.System
}

// Clock reads the process clocks.
type Clock interface {
	Now() Sample

	// Supported reports whether User and System reflect actual CPU time. When
	// false, User carries wall-clock time and System is always zero.
	Supported() bool
}

// Process is the clock of the running process.
var Process Clock = processClock{}

var epoch = time.Now()

type processClock struct{}

func (processClock) Now() Sample {
	user, system := usage()
	return Sample{
		Real:   time.Since(epoch),
		User:   user,
		System: system,
	}
}

func (processClock) Supported() bool {
	return supported
}
