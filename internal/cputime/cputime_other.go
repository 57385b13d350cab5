// Copyright 2026 The wktbench Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

//go:build !(linux || darwin || freebsd)

package cputime

import (
	"time"
)

const supported = false

func usage() (time.Duration, time.Duration) {
	return time.Since(epoch), 0
}
