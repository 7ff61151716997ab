// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestUserErrorUnwrapsUnderlyingError(t *testing.T) {
	underlying := errors.New("disk full")
	ue := NewIOError("cannot write snapshot", "disk full", "free up space", underlying)

	if !errors.Is(ue, underlying) {
		t.Fatalf("expected errors.Is to find the wrapped underlying error")
	}
	if ue.ExitCode != ExitIO {
		t.Fatalf("expected ExitIO, got %d", ue.ExitCode)
	}
}

func TestFormatOmitsEmptyCauseAndFix(t *testing.T) {
	ue := NewUsageError("missing project path", "", "")
	out := ue.Format(true)
	if strings.Contains(out, "Cause:") || strings.Contains(out, "Fix:") {
		t.Fatalf("expected empty Cause/Fix to be omitted, got %q", out)
	}
	if !strings.Contains(out, "missing project path") {
		t.Fatalf("expected message in output, got %q", out)
	}
}

func TestToJSONOmitsEmptyFields(t *testing.T) {
	ue := NewIntegrityError("snapshot corrupted", "", "")
	j := ue.ToJSON()
	if j.ExitCode != ExitIntegrity {
		t.Fatalf("expected ExitIntegrity, got %d", j.ExitCode)
	}
	if j.Cause != "" || j.Fix != "" {
		t.Fatalf("expected empty Cause/Fix fields, got %+v", j)
	}
}

func TestExitCodesMatchSpec(t *testing.T) {
	cases := map[int]int{
		ExitSuccess:   0,
		ExitUsage:     1,
		ExitIO:        2,
		ExitIntegrity: 3,
		ExitBudget:    4,
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("exit code mismatch: got %d, want %d", got, want)
		}
	}
}
