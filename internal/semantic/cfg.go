// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package semantic

import (
	"fmt"

	"github.com/codeintel-oss/engine/internal/ir"
)

// BlockKind names a basic block's role, mirroring the teacher's BlockType
// (cfg.go) but trimmed to the subset spec §4.4 requires (entry, exit,
// branch, loop, try/catch); switch/finally share BlockBranch/BlockTry
// since the IR only needs a CFG edge kind, not a block-level distinction.
type BlockKind string

const (
	BlockEntry  BlockKind = "entry"
	BlockExit   BlockKind = "exit"
	BlockNormal BlockKind = "normal"
	BlockBranch BlockKind = "branch"
	BlockLoop   BlockKind = "loop"
	BlockTry    BlockKind = "try"
	BlockCatch  BlockKind = "catch"
)

// CFGBuilder accumulates basic blocks and control-flow edges for one
// function body, appending each ir.Node/ir.Edge to the document as soon
// as it is created; Seal adds the final fall-through edge to exit. One
// builder is created per function; language plugins drive it while
// walking that function's body statements. Grounded on the teacher's
// ControlFlowGraph/BasicBlock (cfg.go), generalized to target the shared
// IR graph instead of a standalone CFG struct.
type CFGBuilder struct {
	doc       *ir.IRDocument
	funcID    string
	funcFQN   string
	filePath  string
	language  ir.Language
	entryID    string
	exitID     string
	blockN     int
	current    string
	sealedFrom map[string]bool
}

// NewCFGBuilder opens entry/exit blocks for a function and returns a
// builder positioned at entry.
func NewCFGBuilder(doc *ir.IRDocument, funcID, funcFQN, filePath string, language ir.Language) *CFGBuilder {
	b := &CFGBuilder{doc: doc, funcID: funcID, funcFQN: funcFQN, filePath: filePath, language: language, sealedFrom: make(map[string]bool)}
	b.entryID = b.addBlock(BlockEntry, ir.Span{})
	b.exitID = b.addBlock(BlockExit, ir.Span{})
	b.current = b.entryID
	return b
}

// Current returns the block ID control flow is presently positioned at.
func (b *CFGBuilder) Current() string { return b.current }

// SetCurrent repositions control flow without adding an edge — used after
// a branch's arms have already been linked into a shared merge block.
func (b *CFGBuilder) SetCurrent(id string) { b.current = id }

// EntryID returns the function's single entry block ID.
func (b *CFGBuilder) EntryID() string { return b.entryID }

// ExitID returns the function's single exit block ID.
func (b *CFGBuilder) ExitID() string { return b.exitID }

// AddBlock creates a new basic block of the given kind, as a child of the
// owning function.
func (b *CFGBuilder) AddBlock(kind BlockKind, span ir.Span) string {
	return b.addBlock(kind, span)
}

func (b *CFGBuilder) addBlock(kind BlockKind, span ir.Span) string {
	b.blockN++
	fqn := fmt.Sprintf("%s#%s#%d", b.funcFQN, kind, b.blockN)
	id := ir.NodeID(ir.NodeBlock, fqn, span, b.language, "")
	node := ir.Node{
		ID:       id,
		Kind:     ir.NodeBlock,
		FQN:      fqn,
		Name:     string(kind),
		FilePath: b.filePath,
		Span:     span,
		Language: b.language,
		ParentID: b.funcID,
	}
	node.SetAttr("block_kind", string(kind))
	node.SetAttr("block_index", b.blockN)
	b.doc.Nodes = append(b.doc.Nodes, node)
	b.doc.Edges = append(b.doc.Edges, ir.NewEdge(ir.EdgeContains, b.funcID, node.ID, nil))
	return node.ID
}

// Link adds a CFG edge between two blocks and advances Current to `to`
// when advance is true (sequential statements stay linear; branch/loop
// constructs call Link per arm and reposition manually).
func (b *CFGBuilder) Link(from, to string, branch ir.CFGBranchKind, advance bool) {
	edge := ir.NewEdge(ir.EdgeCFG, from, to, nil)
	edge.Attrs = map[string]any{"branch": string(branch)}
	b.doc.Edges = append(b.doc.Edges, edge)
	b.sealedFrom[from] = true
	if advance {
		b.current = to
	}
}

// Seal links the current block to the exit block if it has no outgoing
// CFG edge yet (a function body that falls off the end, rather than
// returning explicitly). Must be called once after the body is walked.
func (b *CFGBuilder) Seal() {
	if !b.sealedFrom[b.current] {
		b.Link(b.current, b.exitID, ir.CFGNormal, false)
	}
}
