// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package interproc

import (
	"github.com/codeintel-oss/engine/internal/ir"
	"github.com/codeintel-oss/engine/internal/taint"
)

// TaintPath is one confirmed interprocedural flow from a source AtomMatch
// to a sink AtomMatch, with the call chain between them (spec §4.6:
// "emit TaintPaths from declared sources to declared sinks").
type TaintPath struct {
	SourceEntityID string
	SinkEntityID   string
	CallChain      []string // function FQNs, source's owner to sink's owner
	Confidence     float64
	Sanitized      bool
}

// Analyzer runs the BFS described in spec §4.6 over a snapshot's call
// graph. NewAnalyzer also derives per-function summaries from the
// intra-procedural AtomMatches, but FindPaths does not consult them:
// reachability over Calls edges alone decides whether taint crosses a
// call boundary.
type Analyzer struct {
	idx       *callIndex
	summaries map[string]*FunctionSummary
	maxDepth  int
}

type callIndex struct {
	calleesOf map[string][]string // caller FQN -> callee FQNs
	ownerOf   map[string]string   // node ID -> owning function FQN
}

// NewAnalyzer builds the call index from a snapshot plus resolved cross-
// file Calls edges, and derives a FunctionSummary per function from the
// given AtomMatch set (expected to already carry Sanitized/Confidence
// from internal/taint.Matcher).
func NewAnalyzer(snap *ir.Snapshot, matches []taint.AtomMatch, entityOwner map[string]string, maxDepth int) *Analyzer {
	idx := &callIndex{calleesOf: make(map[string][]string), ownerOf: make(map[string]string)}

	fqnByNodeID := make(map[string]string)
	for _, n := range snap.AllNodes() {
		if n.Kind == ir.NodeFunction || n.Kind == ir.NodeMethod {
			fqnByNodeID[n.ID] = n.FQN
		}
	}
	for _, e := range snap.AllEdges() {
		if e.Kind != ir.EdgeCalls {
			continue
		}
		caller, ok1 := fqnByNodeID[e.SourceID]
		callee, ok2 := fqnByNodeID[e.TargetID]
		if ok1 && ok2 {
			idx.calleesOf[caller] = append(idx.calleesOf[caller], callee)
		}
	}

	summaries := make(map[string]*FunctionSummary)
	for entityID, ownerFQN := range entityOwner {
		idx.ownerOf[entityID] = ownerFQN
	}
	for _, m := range matches {
		owner, ok := idx.ownerOf[m.EntityID]
		if !ok {
			continue
		}
		s := summaries[owner]
		if s == nil {
			s = NewFunctionSummary(owner)
			summaries[owner] = s
		}
		switch m.Kind {
		case taint.KindSource:
			s.MarkReturnTainted(m.Confidence)
		case taint.KindSink:
			s.MarkParamTainted(0, m.Confidence)
		}
	}

	if maxDepth <= 0 {
		maxDepth = 40
	}
	return &Analyzer{idx: idx, summaries: summaries, maxDepth: maxDepth}
}

// FindPaths BFS's from every source-owning function to every sink-owning
// function, honoring maxDepth and cycle detection, emitting a TaintPath
// per reachable (source, sink) AtomMatch pair. Sanitized sources are
// skipped; sanitizing matches between the two functions are not looked
// at, and a path's Sanitized flag is copied from its sink match.
func (a *Analyzer) FindPaths(matches []taint.AtomMatch) []TaintPath {
	var sources, sinks []taint.AtomMatch
	for _, m := range matches {
		switch m.Kind {
		case taint.KindSource:
			if !m.Sanitized {
				sources = append(sources, m)
			}
		case taint.KindSink:
			sinks = append(sinks, m)
		}
	}

	var paths []TaintPath
	for _, src := range sources {
		srcOwner, ok := a.idx.ownerOf[src.EntityID]
		if !ok {
			continue
		}
		reached := a.bfs(srcOwner)
		for _, sink := range sinks {
			sinkOwner, ok := a.idx.ownerOf[sink.EntityID]
			if !ok {
				continue
			}
			chain, ok := reached[sinkOwner]
			if !ok {
				continue
			}
			confidence := src.Confidence
			if sink.Confidence < confidence {
				confidence = sink.Confidence
			}
			paths = append(paths, TaintPath{
				SourceEntityID: src.EntityID,
				SinkEntityID:   sink.EntityID,
				CallChain:      chain,
				Confidence:     confidence,
				Sanitized:      sink.Sanitized,
			})
		}
	}
	return paths
}

// bfs explores the call graph from start up to a.maxDepth hops, returning
// the first (shortest) chain of FQNs found to every reachable function.
// Cycle detection is implicit: a visited-set BFS never revisits a node.
func (a *Analyzer) bfs(start string) map[string][]string {
	type item struct {
		fqn   string
		chain []string
	}
	visited := map[string]bool{start: true}
	queue := []item{{fqn: start, chain: []string{start}}}
	reached := map[string][]string{start: {start}}

	for depth := 0; len(queue) > 0 && depth < a.maxDepth; depth++ {
		var next []item
		for _, it := range queue {
			for _, callee := range a.idx.calleesOf[it.fqn] {
				if visited[callee] {
					continue
				}
				visited[callee] = true
				chain := append(append([]string{}, it.chain...), callee)
				reached[callee] = chain
				next = append(next, item{fqn: callee, chain: chain})
			}
		}
		queue = next
	}
	return reached
}
