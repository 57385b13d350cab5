// Copyright 2026 The wktbench Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestWithFields(t *testing.T) {
	logger := New().WithFields(map[string]any{"benchmark": "custom"})

	fieldvalue, ok := logger.(*StandardLogger).fields["benchmark"]
	if !ok {
		t.Fatal("Logger did not contain configured field")
	}

	if fieldvalue.(string) != "custom" {
		t.Fatal("Logger did not contain configured field value")
	}
}

func TestWithFieldsOverridesAndMerges(t *testing.T) {
	base := New().WithFields(map[string]any{"benchmark": "custom"})
	logger := base.
		WithFields(map[string]any{"benchmark": "go-geom"}).
		WithFields(map[string]any{"index": 2})

	fields := logger.(*StandardLogger).fields
	if fields["benchmark"] != "go-geom" || fields["index"] != 2 {
		t.Fatalf("Unexpected fields: %v", fields)
	}

	// The parent logger must not see fields added to its children.
	if _, ok := base.(*StandardLogger).fields["index"]; ok {
		t.Fatal("Parent logger was mutated by WithFields")
	}
}

func TestLevels(t *testing.T) {
	logger := New()
	for _, level := range []Level{Error, Warn, Info, Debug} {
		logger.SetLevel(level)
		if logger.GetLevel() != level {
			t.Fatalf("Expected level %v but got %v", level, logger.GetLevel())
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New()
	logger.SetOutput(&buf)
	logger.SetLevel(Warn)

	logger.Info("hidden %d", 1)
	logger.Warn("shown %d", 2)
	logger.Error("also shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("Expected info message to be filtered:\n%s", out)
	}
	if !strings.Contains(out, "shown 2") || !strings.Contains(out, "also shown") {
		t.Fatalf("Expected warn and error messages:\n%s", out)
	}
}

func TestNoOpLogger(t *testing.T) {
	logger := NewNoOpLogger()
	logger.SetLevel(Debug)
	if logger.GetLevel() != Debug {
		t.Fatalf("Expected debug level but got %v", logger.GetLevel())
	}
	if l := logger.WithFields(map[string]any{"a": 1}); l.GetLevel() != Debug {
		t.Fatal("Expected derived logger to keep the level")
	}
}
