// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package taint

// EntityKind classifies what an Entity projects from the IR (spec §3).
type EntityKind string

const (
	EntityCall   EntityKind = "call"
	EntityRead   EntityKind = "read"
	EntityAssign EntityKind = "assign"
)

// Entity is a projection of a Node plus its surrounding edges, shaped for
// rule matching without re-walking the IR graph per rule.
type Entity struct {
	ID             string
	Kind           EntityKind
	BaseType       string
	CallName       string
	ReadName       string
	Args           []string
	Kwargs         map[string]string
	QualifiedCall  string
	Guards         []string
	NodeID         string // originating ir.Node, for AtomMatch → IR traceback
	CFGProven      bool   // whether base_type/guards came from CFG/DFG analysis vs AST-only
}
