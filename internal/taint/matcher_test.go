// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package taint

import "testing"

const sqlInjectionAtoms = `
atoms:
  - id: py.source.input
    kind: source
    severity: high
    tags: [user-input]
    match:
      - call: input
  - id: py.sink.db-execute
    kind: sink
    severity: critical
    tags: [sql-injection]
    cwe: ["CWE-89"]
    match:
      - base_type: db
        call: execute
`

func TestLoadAndMatchSQLInjectionScenario(t *testing.T) {
	rules, errs := Load("atoms.yaml", []byte(sqlInjectionAtoms))
	if len(errs) != 0 {
		t.Fatalf("unexpected compile errors: %v", errs)
	}
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rules))
	}

	entities := []Entity{
		{ID: "e1", Kind: EntityCall, CallName: "input", NodeID: "n1"},
		{ID: "e2", Kind: EntityCall, BaseType: "db", CallName: "execute", Args: []string{"q"}, NodeID: "n2", CFGProven: true},
	}
	m := NewMatcher(entities)
	matches := m.Match(rules)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d: %+v", len(matches), matches)
	}

	byRule := map[string]AtomMatch{}
	for _, mt := range matches {
		byRule[mt.RuleID] = mt
	}
	src, ok := byRule["py.source.input"]
	if !ok || src.EntityID != "e1" {
		t.Fatalf("expected source match on e1, got %+v", byRule)
	}
	sink, ok := byRule["py.sink.db-execute"]
	if !ok || sink.EntityID != "e2" {
		t.Fatalf("expected sink match on e2, got %+v", byRule)
	}
	if sink.Confidence != 0.95 {
		t.Fatalf("expected CFG-proven sink with args to score 0.95, got %v", sink.Confidence)
	}
	if sink.Sanitized {
		t.Fatalf("expected unsanitized sink match")
	}
}

func TestMatchDowngradesSanitizedGuard(t *testing.T) {
	rules, errs := Load("atoms.yaml", []byte(sqlInjectionAtoms))
	if len(errs) != 0 {
		t.Fatalf("unexpected compile errors: %v", errs)
	}
	entities := []Entity{
		{ID: "e2", Kind: EntityCall, BaseType: "db", CallName: "execute", Args: []string{"q"}, NodeID: "n2", Guards: []string{"sql-injection"}},
	}
	m := NewMatcher(entities)
	matches := m.Match(rules)
	var sink *AtomMatch
	for i := range matches {
		if matches[i].RuleID == "py.sink.db-execute" {
			sink = &matches[i]
		}
	}
	if sink == nil {
		t.Fatalf("expected sink match, got %+v", matches)
	}
	if !sink.Sanitized {
		t.Fatalf("expected guard sql-injection to sanitize sink atom tagged sql-injection")
	}
}

func TestCandidatePatternMatch(t *testing.T) {
	rules, errs := Load("atoms.yaml", []byte(`
atoms:
  - id: py.sink.db-any-exec
    kind: sink
    severity: critical
    tags: [sql-injection]
    match:
      - base_type: db
        call_pattern: "exec*"
`))
	if len(errs) != 0 {
		t.Fatalf("unexpected compile errors: %v", errs)
	}
	entities := []Entity{
		{ID: "e1", Kind: EntityCall, BaseType: "db", CallName: "executemany", NodeID: "n1"},
		{ID: "e2", Kind: EntityCall, BaseType: "db", CallName: "commit", NodeID: "n2"},
	}
	m := NewMatcher(entities)
	matches := m.Match(rules)
	if len(matches) != 1 || matches[0].EntityID != "e1" {
		t.Fatalf("expected exactly e1 to match exec* pattern, got %+v", matches)
	}
}
