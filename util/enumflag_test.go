// Copyright 2026 The wktbench Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package util

import (
	"strings"
	"testing"
)

func TestEnumFlag(t *testing.T) {
	flag := NewEnumFlag("pretty", []string{"pretty", "json", "table"})

	if flag.String() != "pretty" || flag.IsSet() {
		t.Fatalf("Expected unset default value pretty but got: %v", flag.String())
	}

	if err := flag.Set("table"); err != nil {
		t.Fatalf("Unexpected error on set: %v", err)
	}

	if flag.String() != "table" || !flag.IsSet() {
		t.Fatalf("Expected value to be table but got: %v", flag.String())
	}

	if !strings.Contains(flag.Type(), "pretty,json,table") {
		t.Fatalf("Expected flag type to contain pretty,json,table but got: %v", flag.Type())
	}

	if err := flag.Set("csv"); err == nil {
		t.Fatalf("Expected error from set")
	}
	if flag.String() != "table" {
		t.Fatalf("Expected failed set to keep the previous value, got: %v", flag.String())
	}
}
