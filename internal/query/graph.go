// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package query

import "github.com/codeintel-oss/engine/internal/ir"

// Index is a query-time adjacency index built once per snapshot, so
// repeated queries don't re-scan AllEdges(). Grounded on the teacher's
// core.CallGraph adjacency maps (graph/callgraph/core/types.go).
type Index struct {
	nodes   map[string]*ir.Node
	forward map[string][]adj // sourceID -> targets
	back    map[string][]adj // targetID -> sources
}

type adj struct {
	edgeID string
	kind   ir.EdgeKind
	other  string // target for forward, source for backward
}

// BuildIndex indexes every node and edge in a snapshot.
func BuildIndex(snap *ir.Snapshot) *Index {
	idx := &Index{
		nodes:   make(map[string]*ir.Node),
		forward: make(map[string][]adj),
		back:    make(map[string][]adj),
	}
	for _, n := range snap.AllNodes() {
		idx.nodes[n.ID] = n
	}
	for _, e := range snap.AllEdges() {
		idx.forward[e.SourceID] = append(idx.forward[e.SourceID], adj{edgeID: e.ID, kind: e.Kind, other: e.TargetID})
		idx.back[e.TargetID] = append(idx.back[e.TargetID], adj{edgeID: e.ID, kind: e.Kind, other: e.SourceID})
	}
	return idx
}

// SelectNodes returns every indexed node a selector matches.
func (idx *Index) SelectNodes(sel Selector) []*ir.Node {
	var out []*ir.Node
	for _, n := range idx.nodes {
		if sel.Matches(n) {
			out = append(out, n)
		}
	}
	return out
}

// neighbors returns the adjacency list to expand from nodeID for the given
// edge selector, following backward edges when the selector asks for it.
func (idx *Index) neighbors(nodeID string, es EdgeSelector) []adj {
	table := idx.forward
	if es.Backward {
		table = idx.back
	}
	all := table[nodeID]
	if len(es.Kinds) == 0 {
		return all
	}
	var out []adj
	for _, a := range all {
		if es.has(a.kind) {
			out = append(out, a)
		}
	}
	return out
}
