// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package ir

import "sort"

// IRDocument is the per-file unit of the layered IR. Once emitted for a
// snapshot it is immutable (spec §3 "Lifecycles", §5 "No global mutation
// after emission") — callers that need a changed version produce a new
// IRDocument under a new snapshot ID rather than mutating this one.
type IRDocument struct {
	RepoID       string
	SnapshotID   string
	FilePath     string
	Language     Language
	Nodes        []Node
	Edges        []Edge
	Occurrences  []Occurrence
	TemplateSlots []TemplateSlot
	Diagnostics  []Diagnostic

	// IsPartial is set when the CST recoverer produced only some of the
	// declarations in the file. Security rules must treat a partial file
	// as review-required, never as clean (spec §4.2).
	IsPartial  bool
	ErrorCount int
}

// Canonicalize sorts the document into a deterministic order — nodes by
// span then kind, edges by kind then source ID then target ID,
// occurrences by span then role, template slots by span — so that hashing
// or serializing two structurally-identical documents yields
// byte-identical output regardless of CST traversal or worker-pool
// scheduling order.
func (d *IRDocument) Canonicalize() {
	sort.SliceStable(d.Nodes, func(i, j int) bool {
		if d.Nodes[i].Span != d.Nodes[j].Span {
			return d.Nodes[i].Span.Less(d.Nodes[j].Span)
		}
		return d.Nodes[i].Kind < d.Nodes[j].Kind
	})
	sort.SliceStable(d.Edges, func(i, j int) bool {
		if d.Edges[i].Kind != d.Edges[j].Kind {
			return d.Edges[i].Kind < d.Edges[j].Kind
		}
		if d.Edges[i].SourceID != d.Edges[j].SourceID {
			return d.Edges[i].SourceID < d.Edges[j].SourceID
		}
		return d.Edges[i].TargetID < d.Edges[j].TargetID
	})
	sort.SliceStable(d.Occurrences, func(i, j int) bool {
		if d.Occurrences[i].Span != d.Occurrences[j].Span {
			return d.Occurrences[i].Span.Less(d.Occurrences[j].Span)
		}
		return d.Occurrences[i].Role < d.Occurrences[j].Role
	})
	sort.SliceStable(d.TemplateSlots, func(i, j int) bool {
		return d.TemplateSlots[i].Span.Less(d.TemplateSlots[j].Span)
	})
}

// NodeByID does a linear lookup; callers holding many documents should
// build their own index (see internal/resolver for the cross-file one).
func (d *IRDocument) NodeByID(id string) (*Node, bool) {
	for i := range d.Nodes {
		if d.Nodes[i].ID == id {
			return &d.Nodes[i], true
		}
	}
	return nil, false
}

// AddDiagnostic appends diag to the document's diagnostics.
func (d *IRDocument) AddDiagnostic(diag Diagnostic) {
	d.Diagnostics = append(d.Diagnostics, diag)
}

// Empty reports whether this document has nothing but its identity — the
// expected shape for an empty source file (spec §8 boundary behaviors).
func (d *IRDocument) Empty() bool {
	return len(d.Nodes) == 0 && len(d.Edges) == 0 && len(d.Occurrences) == 0
}
