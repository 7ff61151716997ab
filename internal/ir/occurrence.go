// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package ir

// OccurrenceRole distinguishes a definition from a reference mention.
type OccurrenceRole string

const (
	RoleDefinition OccurrenceRole = "definition"
	RoleReference  OccurrenceRole = "reference"
)

// Occurrence is every textual mention of a symbol, supporting go-to-
// definition and find-references without re-parsing.
type Occurrence struct {
	ID       string
	NodeID   string // the Node this mention refers to, once resolved
	FilePath string
	Span     Span
	Role     OccurrenceRole
	Name     string
}

// NewOccurrence builds an Occurrence and computes its ID.
func NewOccurrence(filePath string, span Span, role OccurrenceRole, name, nodeID string) Occurrence {
	return Occurrence{
		ID:       OccurrenceID(filePath, span, role),
		NodeID:   nodeID,
		FilePath: filePath,
		Span:     span,
		Role:     role,
		Name:     name,
	}
}
