// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgressHiddenBelowVerbose(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(VerbosityDefault, &buf)
	l.Progress("building %s", "repo")
	if buf.Len() != 0 {
		t.Fatalf("expected no output at default verbosity, got %q", buf.String())
	}
}

func TestProgressShownAtVerbose(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(VerbosityVerbose, &buf)
	l.Progress("building %s", "repo")
	if !strings.Contains(buf.String(), "building repo") {
		t.Fatalf("expected progress line, got %q", buf.String())
	}
}

func TestWarningAlwaysShown(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(VerbosityQuiet, &buf)
	l.Warning("cache miss for %s", "snap1")
	if !strings.Contains(buf.String(), "cache miss for snap1") {
		t.Fatalf("expected warning at quiet verbosity, got %q", buf.String())
	}
}

func TestDebugOnlyAtDebugVerbosity(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(VerbosityVerbose, &buf)
	l.Debug("internal state: %d", 42)
	if buf.Len() != 0 {
		t.Fatalf("expected no debug output below debug verbosity, got %q", buf.String())
	}
}
