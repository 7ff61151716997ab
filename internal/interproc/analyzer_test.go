// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package interproc

import (
	"testing"

	"github.com/codeintel-oss/engine/internal/ir"
	"github.com/codeintel-oss/engine/internal/taint"
)

func TestFindPathsAcrossTwoHops(t *testing.T) {
	doc := &ir.IRDocument{FilePath: "app.py", Language: ir.LangPython}
	doc.Nodes = []ir.Node{
		{ID: "fn:handler", Kind: ir.NodeFunction, FQN: "app.handler"},
		{ID: "fn:build_query", Kind: ir.NodeFunction, FQN: "app.build_query"},
		{ID: "fn:execute", Kind: ir.NodeFunction, FQN: "app.execute"},
	}
	doc.Edges = []ir.Edge{
		ir.NewEdge(ir.EdgeCalls, "fn:handler", "fn:build_query", nil),
		ir.NewEdge(ir.EdgeCalls, "fn:build_query", "fn:execute", nil),
	}
	snap := ir.NewSnapshot("repo", "test")
	snap.AddDocument(doc)

	matches := []taint.AtomMatch{
		{RuleID: "src", EntityID: "e-src", Kind: taint.KindSource, Confidence: 0.9},
		{RuleID: "sink", EntityID: "e-sink", Kind: taint.KindSink, Confidence: 0.95},
	}
	owners := map[string]string{
		"e-src":  "app.handler",
		"e-sink": "app.execute",
	}

	a := NewAnalyzer(snap, matches, owners, 10)
	paths := a.FindPaths(matches)
	if len(paths) != 1 {
		t.Fatalf("expected 1 taint path, got %d: %+v", len(paths), paths)
	}
	p := paths[0]
	if p.Confidence != 0.9 {
		t.Fatalf("expected path confidence to be min(0.9, 0.95)=0.9, got %v", p.Confidence)
	}
	want := []string{"app.handler", "app.build_query", "app.execute"}
	if len(p.CallChain) != len(want) {
		t.Fatalf("expected chain %v, got %v", want, p.CallChain)
	}
	for i := range want {
		if p.CallChain[i] != want[i] {
			t.Fatalf("expected chain %v, got %v", want, p.CallChain)
		}
	}
}

func TestFindPathsSkipsUnreachableSink(t *testing.T) {
	doc := &ir.IRDocument{FilePath: "app.py", Language: ir.LangPython}
	doc.Nodes = []ir.Node{
		{ID: "fn:a", Kind: ir.NodeFunction, FQN: "app.a"},
		{ID: "fn:b", Kind: ir.NodeFunction, FQN: "app.b"},
	}
	snap := ir.NewSnapshot("repo", "test")
	snap.AddDocument(doc)

	matches := []taint.AtomMatch{
		{EntityID: "e-src", Kind: taint.KindSource, Confidence: 0.9},
		{EntityID: "e-sink", Kind: taint.KindSink, Confidence: 0.9},
	}
	owners := map[string]string{"e-src": "app.a", "e-sink": "app.b"}

	a := NewAnalyzer(snap, matches, owners, 10)
	if paths := a.FindPaths(matches); len(paths) != 0 {
		t.Fatalf("expected no path between disconnected functions, got %+v", paths)
	}
}
