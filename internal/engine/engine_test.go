// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/codeintel-oss/engine/internal/config"
	"github.com/codeintel-oss/engine/internal/taint"
)

const sqlInjectionAtoms = `
atoms:
  - id: go.source.input
    kind: source
    severity: high
    tags: [user-input]
    match:
      - call: input
  - id: go.sink.db-execute
    kind: sink
    severity: critical
    tags: [sql-injection]
    cwe: ["CWE-89"]
    match:
      - base_type: db
        call: execute
        args: [0]
`

const taintedHandler = `package main

func input() string { return "" }

type dbConn struct{}

func (c *dbConn) execute(query string) {}

func handle() {
	q := input()
	var db dbConn
	db.execute(q)
}
`

// TestBuildFindsSQLInjectionRoundTrip exercises the full pipeline
// (discover -> parse -> resolve -> extract entities -> match ->
// interprocedural analyze) against a minimal tainted source/sink pair, the
// same scenario internal/taint's own fixtures use at the unit level.
func TestBuildFindsSQLInjectionRoundTrip(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "handler.go"), []byte(taintedHandler), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	rules, errs := taint.Load("atoms.yaml", []byte(sqlInjectionAtoms))
	if len(errs) != 0 {
		t.Fatalf("unexpected compile errors: %v", errs)
	}

	cfg := config.Default()
	reg := NewRegistry()
	result, err := Build(context.Background(), dir, cfg, reg, rules)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	var sawSource, sawSink bool
	for _, m := range result.Matches {
		switch m.RuleID {
		case "go.source.input":
			sawSource = true
		case "go.sink.db-execute":
			sawSink = true
		}
	}
	if !sawSource || !sawSink {
		t.Fatalf("expected both source and sink matches, got %+v", result.Matches)
	}

	if len(result.Paths) == 0 {
		t.Fatalf("expected at least one taint path from input() to db.execute")
	}
}

func TestBuildIsDeterministicAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "handler.go"), []byte(taintedHandler), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	rules, _ := taint.Load("atoms.yaml", []byte(sqlInjectionAtoms))
	cfg := config.Default()

	a, err := Build(context.Background(), dir, cfg, NewRegistry(), rules)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	b, err := Build(context.Background(), dir, cfg, NewRegistry(), rules)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if a.Snapshot.ComputeID() != b.Snapshot.ComputeID() {
		t.Fatalf("expected identical snapshot IDs across runs with the same parallel worker count, got %q and %q",
			a.Snapshot.ComputeID(), b.Snapshot.ComputeID())
	}
}
