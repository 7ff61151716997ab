// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package ir

import "testing"

func TestNodeIDStableAcrossRuns(t *testing.T) {
	span := Span{StartLine: 1, StartCol: 1, EndLine: 3, EndCol: 2}
	id1 := NodeID(NodeFunction, "pkg.Foo", span, LangGo, "")
	id2 := NodeID(NodeFunction, "pkg.Foo", span, LangGo, "")
	if id1 != id2 {
		t.Fatalf("NodeID not stable: %s != %s", id1, id2)
	}
}

func TestNodeIDDiffersOnSpan(t *testing.T) {
	a := NodeID(NodeFunction, "pkg.Foo", Span{1, 1, 3, 2}, LangGo, "")
	b := NodeID(NodeFunction, "pkg.Foo", Span{2, 1, 4, 2}, LangGo, "")
	if a == b {
		t.Fatalf("expected different IDs for different spans")
	}
}

func TestNormalizePathCrossPlatform(t *testing.T) {
	cases := map[string]string{
		"./foo/bar.go": "foo/bar.go",
		"/foo/bar.go":  "foo/bar.go",
		"foo//bar.go":  "foo/bar.go",
	}
	for in, want := range cases {
		if got := NormalizePath(in); got != want {
			t.Errorf("NormalizePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEdgeIDDeterministic(t *testing.T) {
	span := Span{1, 1, 1, 5}
	e1 := NewEdge(EdgeCalls, "func:aaa", "func:bbb", &span)
	e2 := NewEdge(EdgeCalls, "func:aaa", "func:bbb", &span)
	if e1.ID != e2.ID {
		t.Fatalf("edge IDs differ: %s != %s", e1.ID, e2.ID)
	}
}

func TestDocumentCanonicalizeOrdersBySpan(t *testing.T) {
	doc := &IRDocument{
		Nodes: []Node{
			{ID: "b", Kind: NodeFunction, Span: Span{5, 1, 6, 1}},
			{ID: "a", Kind: NodeFunction, Span: Span{1, 1, 2, 1}},
		},
	}
	doc.Canonicalize()
	if doc.Nodes[0].ID != "a" || doc.Nodes[1].ID != "b" {
		t.Fatalf("nodes not canonicalized by span: %+v", doc.Nodes)
	}
}
