// Copyright 2026 The wktbench Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package geomlib exposes the go-geom WKT reader through a handle-based API:
// the library is initialized once per process, readers are created and
// closed explicitly and every parsed geometry is destroyed by its owner.
package geomlib

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// ErrNotInitialized is returned when a reader is requested before Init.
var ErrNotInitialized = errors.New("geomlib: library not initialized")

// Handler receives library notices and errors. Handlers are only invoked from
// Init and Finish, never while a Reader parses, so they run on the goroutine
// that owns the library.
type Handler func(format string, a ...any)

type library struct {
	notice  Handler
	errorf  Handler
	readers atomic.Int64
}

var (
	mtx sync.Mutex
	lib *library
)

func discard(string, ...any) {}

// Init initializes the library for the process. Calls after the first one
// are no-ops until Finish is called. Nil handlers discard their messages.
func Init(notice, errorf Handler) {
	mtx.Lock()
	defer mtx.Unlock()
	if lib != nil {
		return
	}
	if notice == nil {
		notice = discard
	}
	if errorf == nil {
		errorf = discard
	}
	lib = &library{notice: notice, errorf: errorf}
	notice("geomlib initialized")
}

// Initialized reports whether Init has been called without a matching Finish.
func Initialized() bool {
	mtx.Lock()
	defer mtx.Unlock()
	return lib != nil
}

// Finish releases the library. Readers still open keep working but no new
// readers can be created until Init is called again.
func Finish() {
	mtx.Lock()
	defer mtx.Unlock()
	if lib == nil {
		return
	}
	if n := lib.readers.Load(); n > 0 {
		lib.errorf("geomlib: finished with %d reader(s) still open", n)
	}
	lib.notice("geomlib finished")
	lib = nil
}

// Reader parses WKT text. A Reader must not be used from more than one
// goroutine at a time.
type Reader struct {
	lib    *library
	closed bool
}

// NewReader creates a reader. The caller must Close it.
func NewReader() (*Reader, error) {
	mtx.Lock()
	defer mtx.Unlock()
	if lib == nil {
		return nil, ErrNotInitialized
	}
	lib.readers.Add(1)
	return &Reader{lib: lib}, nil
}

// Read parses text. The returned geometry must be destroyed by the caller.
// Parse failures are only returned.
func (r *Reader) Read(text string) (*Geometry, error) {
	if r.closed {
		return nil, errors.New("geomlib: read from closed reader")
	}
	g, err := wkt.Unmarshal(text)
	if err != nil {
		return nil, fmt.Errorf("geomlib: %w", err)
	}
	if g == nil {
		return nil, fmt.Errorf("geomlib: no geometry in %q", text)
	}
	return &Geometry{g: g}, nil
}

// Close releases the reader. Closing twice is a no-op.
func (r *Reader) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.lib.readers.Add(-1)
}

// OpenReaders returns the number of readers created and not yet closed.
func OpenReaders() int64 {
	mtx.Lock()
	defer mtx.Unlock()
	if lib == nil {
		return 0
	}
	return lib.readers.Load()
}

// Geometry is a parsed geometry owned by the caller.
type Geometry struct {
	g geom.T
}

// T returns the go-geom geometry, or nil once destroyed.
func (g *Geometry) T() geom.T {
	return g.g
}

// Destroy releases the geometry.
func (g *Geometry) Destroy() {
	g.g = nil
}
