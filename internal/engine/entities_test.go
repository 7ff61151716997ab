// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"testing"

	"github.com/codeintel-oss/engine/internal/ir"
	"github.com/codeintel-oss/engine/internal/taint"
)

func TestExtractEntitiesSplitsBaseTypeAndCallName(t *testing.T) {
	doc := &ir.IRDocument{
		RepoID:   "repo",
		FilePath: "handler.go",
		Language: ir.LangGo,
	}
	fn := ir.Node{ID: "fn1", Kind: ir.NodeFunction, FQN: "pkg.Handle", Name: "Handle", Language: ir.LangGo}
	call := ir.Node{
		ID:       "fn1#call#db.Query",
		Kind:     ir.NodeExpression,
		Name:     "db.Query",
		ParentID: "fn1",
		Language: ir.LangGo,
		Attrs:    map[string]any{"expr_kind": "call", "call_name": "db.Query"},
	}
	bare := ir.Node{
		ID:       "fn1#call#input",
		Kind:     ir.NodeExpression,
		Name:     "input",
		ParentID: "fn1",
		Language: ir.LangGo,
		Attrs:    map[string]any{"expr_kind": "call", "call_name": "input"},
	}
	doc.Nodes = []ir.Node{fn, call, bare}

	snap := ir.NewSnapshot("repo", "dev")
	snap.AddDocument(doc)

	entities, owner := ExtractEntities(snap)
	if len(entities) != 2 {
		t.Fatalf("expected 2 call entities, got %d", len(entities))
	}

	var qualified, plain bool
	for _, e := range entities {
		switch e.ID {
		case call.ID:
			qualified = true
			if e.BaseType != "db" || e.CallName != "Query" {
				t.Fatalf("expected BaseType=db CallName=Query, got %+v", e)
			}
			if owner[e.ID] != "pkg.Handle" {
				t.Fatalf("expected owner pkg.Handle, got %q", owner[e.ID])
			}
		case bare.ID:
			plain = true
			if e.BaseType != "" || e.CallName != "input" {
				t.Fatalf("expected BaseType=\"\" CallName=input, got %+v", e)
			}
		}
	}
	if !qualified || !plain {
		t.Fatalf("expected both qualified and plain call entities, got %+v", entities)
	}
}

func TestApplyTaintTagsStampsMatchedNodeFromRuleTags(t *testing.T) {
	doc := &ir.IRDocument{RepoID: "repo", FilePath: "handler.go", Language: ir.LangGo}
	call := ir.Node{
		ID:    "fn1#call#db.Query",
		Kind:  ir.NodeExpression,
		Name:  "db.Query",
		Attrs: map[string]any{"expr_kind": "call", "call_name": "db.Query"},
	}
	doc.Nodes = []ir.Node{call}
	snap := ir.NewSnapshot("repo", "dev")
	snap.AddDocument(doc)

	rules := map[string]taint.AtomRule{
		"sql-sink": {ID: "sql-sink", Kind: taint.KindSink, Tags: []string{"sql-injection"}},
	}
	matches := []taint.AtomMatch{{RuleID: "sql-sink", NodeID: call.ID, Kind: taint.KindSink}}

	ApplyTaintTags(snap, matches, rules)

	for _, n := range snap.AllNodes() {
		if n.ID != call.ID {
			continue
		}
		tags, _ := n.Attr("taint_tags")
		list, _ := tags.([]string)
		if len(list) != 1 || list[0] != "sql-injection" {
			t.Fatalf("expected taint_tags=[sql-injection], got %v", list)
		}
		return
	}
	t.Fatalf("call node not found after tagging")
}

func TestExtractEntitiesIgnoresNonCallExpressions(t *testing.T) {
	doc := &ir.IRDocument{RepoID: "repo", FilePath: "model.py", Language: ir.LangPython}
	doc.Nodes = []ir.Node{
		{
			ID:       "base1",
			Kind:     ir.NodeExpression,
			Name:     "Base",
			Language: ir.LangPython,
			Attrs:    map[string]any{"expr_kind": "base_class", "base_name": "Base"},
		},
	}
	snap := ir.NewSnapshot("repo", "dev")
	snap.AddDocument(doc)

	entities, owner := ExtractEntities(snap)
	if len(entities) != 0 || len(owner) != 0 {
		t.Fatalf("expected no entities from a non-call expression, got %d entities, %d owners", len(entities), len(owner))
	}
}
