// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package errors provides structured, user-facing errors for the codeintel
// CLI, ported near-verbatim in shape from kraklabs-cie's internal/errors
// package, narrowed to the exit codes spec §6 names: 0 success, 1 usage,
// 2 I/O, 3 integrity, 4 budget exhausted.
package errors

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Exit codes, spec §6.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitUsage indicates bad command-line arguments or invalid configuration.
	ExitUsage = 1

	// ExitIO indicates filesystem or snapshot store I/O failure.
	ExitIO = 2

	// ExitIntegrity indicates a snapshot failed its content-hash
	// verification (internal/snapshot.Store.VerifyIntegrity).
	ExitIntegrity = 3

	// ExitBudget indicates a query or build exceeded its configured budget.
	ExitBudget = 4
)

// UserError carries structured context for an end-user-facing failure:
// what went wrong, why, and how to fix it, plus the exit code the CLI
// should use.
type UserError struct {
	Message  string
	Cause    string
	Fix      string
	ExitCode int
	Err      error
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUsageError creates a usage error with exit code ExitUsage.
func NewUsageError(msg, cause, fix string) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitUsage}
}

// NewIOError creates an I/O error with exit code ExitIO.
func NewIOError(msg, cause, fix string, err error) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitIO, Err: err}
}

// NewIntegrityError creates an integrity error with exit code ExitIntegrity.
// Use when Store.VerifyIntegrity reports a content-hash mismatch.
func NewIntegrityError(msg, cause, fix string) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitIntegrity}
}

// NewBudgetError creates a budget error with exit code ExitBudget.
func NewBudgetError(msg, cause, fix string) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitBudget}
}

var (
	colorError = color.New(color.FgRed, color.Bold)
	colorCause = color.New(color.FgYellow)
	colorFix   = color.New(color.FgGreen)
)

// Format renders the error for terminal display with colored sections.
// Color is disabled when noColor is set or NO_COLOR is present in the
// environment.
func (e *UserError) Format(noColor bool) string {
	originalNoColor := color.NoColor
	defer func() { color.NoColor = originalNoColor }()

	if noColor || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	var out strings.Builder
	out.WriteString(colorError.Sprint("Error: "))
	out.WriteString(e.Message)
	out.WriteString("\n")

	if e.Cause != "" {
		out.WriteString(colorCause.Sprint("Cause: "))
		out.WriteString(e.Cause)
		out.WriteString("\n")
	}
	if e.Fix != "" {
		out.WriteString(colorFix.Sprint("Fix:   "))
		out.WriteString(e.Fix)
		out.WriteString("\n")
	}
	return out.String()
}

// JSON is the machine-readable form of a UserError, for --json CLI output.
type JSON struct {
	Error    string `json:"error"`
	Cause    string `json:"cause,omitempty"`
	Fix      string `json:"fix,omitempty"`
	ExitCode int    `json:"exit_code"`
}

// ToJSON converts the error to its JSON-serializable form.
func (e *UserError) ToJSON() JSON {
	return JSON{Error: e.Message, Cause: e.Cause, Fix: e.Fix, ExitCode: e.ExitCode}
}

// Fatal prints err and exits with its exit code. Non-UserError values exit
// with ExitIO, on the assumption that an unclassified error at the CLI
// boundary is most often a wrapped filesystem failure.
func Fatal(err error, jsonOutput bool) {
	if err == nil {
		return
	}

	if ue, ok := err.(*UserError); ok {
		if jsonOutput {
			enc := json.NewEncoder(os.Stderr)
			enc.SetIndent("", "  ")
			_ = enc.Encode(ue.ToJSON())
		} else {
			fmt.Fprint(os.Stderr, ue.Format(false))
		}
		os.Exit(ue.ExitCode)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(ExitIO)
}
