// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

// Command codeintel is the CLI front for the layered IR builder, taint
// matcher, and query engine: build/query/watch/repair subcommands wired
// against internal/engine, grounded on the teacher's cmd/root.go +
// cmd/scan.go orchestration shape.
package main

import (
	"os"

	apperrors "github.com/codeintel-oss/engine/internal/errors"
)

func main() {
	if err := Execute(); err != nil {
		if noColorFlag {
			os.Setenv("NO_COLOR", "1")
		}
		apperrors.Fatal(err, jsonOutputFlag)
	}
}
