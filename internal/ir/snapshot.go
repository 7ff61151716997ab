// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
)

// Snapshot is an immutable point-in-time IR of a whole repository, keyed by
// a content-addressed ID (spec glossary). It aggregates every file's
// IRDocument plus the cross-file edges the resolver adds on top (those
// edges cannot live inside a single IRDocument because both endpoints may
// be in different files — spec §3's IRDocument invariant only requires
// endpoints to live "in some document of the same snapshot").
type Snapshot struct {
	ID         string
	RepoID     string
	Documents  map[string]*IRDocument // keyed by normalized file path
	GlobalEdges []Edge                 // References/Calls edges added by the cross-file resolver
	ToolVersion string
}

// NewSnapshot creates an empty snapshot container; Computing its ID
// happens once all documents are known, via ComputeID.
func NewSnapshot(repoID, toolVersion string) *Snapshot {
	return &Snapshot{
		RepoID:      repoID,
		Documents:   make(map[string]*IRDocument),
		ToolVersion: toolVersion,
	}
}

// AddDocument stores a freshly parsed document, canonicalizing it first.
func (s *Snapshot) AddDocument(doc *IRDocument) {
	doc.Canonicalize()
	doc.SnapshotID = s.ID
	s.Documents[NormalizePath(doc.FilePath)] = doc
}

// ComputeID derives the snapshot's content-addressed ID from the sorted
// per-file content hashes plus the tool version (spec §6: "snapshot_id is
// content-addressed over the sorted per-file content hashes plus the tool
// version"). Must be called after all documents are added and before the
// snapshot is persisted or queried by ID.
func (s *Snapshot) ComputeID() string {
	paths := make([]string, 0, len(s.Documents))
	for p := range s.Documents {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	h := sha256.New()
	h.Write([]byte(s.ToolVersion))
	for _, p := range paths {
		doc := s.Documents[p]
		h.Write([]byte(p))
		for _, n := range doc.Nodes {
			h.Write([]byte(n.ID))
		}
	}
	s.ID = hex.EncodeToString(h.Sum(nil))[:32]
	return s.ID
}

// NodeByID searches every document for a node. Callers on a hot path
// (resolver, taint matcher) should build their own index instead; this
// exists for diagnostics and tests.
func (s *Snapshot) NodeByID(id string) (*Node, *IRDocument, bool) {
	for _, doc := range s.Documents {
		if n, ok := doc.NodeByID(id); ok {
			return n, doc, true
		}
	}
	return nil, nil, false
}

// AllNodes returns every node across every document, in a stable order
// (sorted by file path, then by the per-document canonical order).
func (s *Snapshot) AllNodes() []*Node {
	paths := make([]string, 0, len(s.Documents))
	for p := range s.Documents {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var out []*Node
	for _, p := range paths {
		doc := s.Documents[p]
		for i := range doc.Nodes {
			out = append(out, &doc.Nodes[i])
		}
	}
	return out
}

// AllEdges returns every per-document edge plus the resolver's global
// edges, in a stable order.
func (s *Snapshot) AllEdges() []Edge {
	paths := make([]string, 0, len(s.Documents))
	for p := range s.Documents {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var out []Edge
	for _, p := range paths {
		out = append(out, s.Documents[p].Edges...)
	}
	out = append(out, s.GlobalEdges...)
	return out
}

// Validate checks spec §8 invariant 2: every edge endpoint must resolve to
// a node that lives in some document of this snapshot.
func (s *Snapshot) Validate() []Diagnostic {
	index := make(map[string]bool)
	for _, n := range s.AllNodes() {
		index[n.ID] = true
	}
	var diags []Diagnostic
	for _, e := range s.AllEdges() {
		if !index[e.SourceID] || !index[e.TargetID] {
			diags = append(diags, NewDiagnostic(SeverityError, CodeResolverConflict,
				"edge endpoint does not resolve to a node in this snapshot", "", nil))
		}
	}
	return diags
}
