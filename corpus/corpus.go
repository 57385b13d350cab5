// Copyright 2026 The wktbench Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package corpus loads the WKT geometry corpus shared by all benchmarks.
//
// A corpus file holds one quoted WKT string per line. Blank lines and lines
// starting with '#' are skipped:
//
//	# points
//	"POINT (1 1)"
//	"LINESTRING (0 0, 1 1)"
package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// DefaultPath is the corpus location used when none is configured.
const DefaultPath = "./cases/wkt.csv"

// ErrMalformedLine is returned for corpus lines that are not a single quoted
// string.
var ErrMalformedLine = errors.New("malformed corpus line")

// maxLineSize bounds a single corpus line; large polygons can run to several
// megabytes of text.
const maxLineSize = 64 << 20

// Load reads the corpus file at path.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open: '%s': %w", path, err)
	}
	defer f.Close()

	wkts, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return wkts, nil
}

// Read returns the dequoted geometry strings read from r, in order.
func Read(r io.Reader) ([]string, error) {
	var wkts []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" || line[0] == '#' {
			continue
		}
		s, err := dequote(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		wkts = append(wkts, s)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return wkts, nil
}

func dequote(line string) (string, error) {
	if len(line) < 2 {
		return "", fmt.Errorf("%w: too short: %q", ErrMalformedLine, line)
	}
	first, last := line[0], line[len(line)-1]
	if (first != '"' && first != '\'') || last != first {
		return "", fmt.Errorf("%w: expected a quoted string: %q", ErrMalformedLine, line)
	}
	return line[1 : len(line)-1], nil
}

// Fingerprint returns a digest of the corpus contents and order, used to tell
// apart runs over different corpora in the logs.
func Fingerprint(wkts []string) string {
	d := xxhash.New()
	for _, w := range wkts {
		_, _ = d.WriteString(w)
		_, _ = d.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", d.Sum64())
}
