// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package golang

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/codeintel-oss/engine/internal/ir"
	"github.com/codeintel-oss/engine/internal/semantic"
)

// buildSemantics adds the Semantic IR layer (spec §4.4) on top of a
// function body already walked for structural declarations: control-flow
// blocks for branch/loop statements and Reads/Writes edges recovered
// through a per-function scope stack. The call Expression nodes that
// walkCallsInBody already emitted are left as they are; no base-type
// annotation is added here.
func (g *generator) buildSemantics(body *sitter.Node, funcID, fqn string, params []paramBinding) {
	scope := semantic.NewScopeStack(g.pkgName)
	scope.Push(fqn)
	for _, p := range params {
		scope.Declare(p.name, p.nodeID)
	}

	cfg := semantic.NewCFGBuilder(g.doc, funcID, fqn, g.filePath, ir.LangGo)
	dfg := semantic.NewDFGEmitter(g.doc, scope, funcID)

	w := &semanticWalker{g: g, scope: scope, cfg: cfg, dfg: dfg, funcID: funcID}
	w.walkBlock(body)
	cfg.Seal()
}

type semanticWalker struct {
	g      *generator
	scope  *semantic.ScopeStack
	cfg    *semantic.CFGBuilder
	dfg    *semantic.DFGEmitter
	funcID string
}

// walkBlock sequences a block's statements along the current CFG block,
// opening child blocks for branch/loop constructs.
func (w *semanticWalker) walkBlock(block *sitter.Node) {
	if block == nil {
		return
	}
	for i := 0; i < int(block.ChildCount()); i++ {
		w.walkStatement(block.Child(i))
	}
}

func (w *semanticWalker) walkStatement(stmt *sitter.Node) {
	if stmt == nil {
		return
	}
	switch stmt.Type() {
	case "if_statement":
		w.walkIf(stmt)
	case "for_statement":
		w.walkFor(stmt)
	case "short_var_declaration":
		w.walkShortVarDecl(stmt)
	case "assignment_statement":
		w.walkAssignment(stmt)
	case "return_statement":
		w.walkExprTree(stmt)
		w.cfg.Link(w.cfg.Current(), w.cfg.ExitID(), ir.CFGNormal, false)
	default:
		w.walkExprTree(stmt)
	}
}

func (w *semanticWalker) walkIf(n *sitter.Node) {
	cond := n.ChildByFieldName("condition")
	if cond != nil {
		w.walkExprTree(cond)
	}
	condBlock := w.cfg.AddBlock(semantic.BlockBranch, spanOf(n))
	w.cfg.Link(w.cfg.Current(), condBlock, ir.CFGNormal, true)

	entering := condBlock
	consequence := n.ChildByFieldName("consequence")
	trueBlock := w.cfg.AddBlock(semantic.BlockNormal, spanOf(consequence))
	w.cfg.Link(entering, trueBlock, ir.CFGTrueBranch, true)
	w.walkBlock(consequence)
	afterTrue := w.cfg.Current()

	merge := w.cfg.AddBlock(semantic.BlockNormal, spanOf(n))
	w.cfg.Link(afterTrue, merge, ir.CFGNormal, false)

	alt := n.ChildByFieldName("alternative")
	if alt != nil {
		falseBlock := w.cfg.AddBlock(semantic.BlockNormal, spanOf(alt))
		w.cfg.Link(entering, falseBlock, ir.CFGFalseBranch, true)
		if alt.Type() == "if_statement" {
			w.walkIf(alt)
		} else {
			w.walkBlock(alt)
		}
		w.cfg.Link(w.cfg.Current(), merge, ir.CFGNormal, false)
	} else {
		w.cfg.Link(entering, merge, ir.CFGFalseBranch, false)
	}
	w.cfg.SetCurrent(merge)
}

func (w *semanticWalker) walkFor(n *sitter.Node) {
	header := n.Child(1)
	if header != nil && header.Type() != "block" {
		w.walkExprTree(header)
	}
	loopBlock := w.cfg.AddBlock(semantic.BlockLoop, spanOf(n))
	w.cfg.Link(w.cfg.Current(), loopBlock, ir.CFGNormal, true)

	body := n.ChildByFieldName("body")
	w.walkBlock(body)
	w.cfg.Link(w.cfg.Current(), loopBlock, ir.CFGNormal, false) // back-edge

	after := w.cfg.AddBlock(semantic.BlockNormal, spanOf(n))
	w.cfg.Link(loopBlock, after, ir.CFGFalseBranch, true)
}

func (w *semanticWalker) walkShortVarDecl(n *sitter.Node) {
	left := n.ChildByFieldName("left")
	right := n.ChildByFieldName("right")
	if right != nil {
		w.walkExprTree(right)
	}
	if left == nil {
		return
	}
	for i := 0; i < int(left.ChildCount()); i++ {
		c := left.Child(i)
		if c.Type() != "identifier" {
			continue
		}
		name := w.g.text(c)
		span := spanOf(c)
		vNode := ir.Node{
			ID:       ir.NodeID(ir.NodeVariable, w.funcID+"."+name, span, ir.LangGo, ""),
			Kind:     ir.NodeVariable,
			Name:     name,
			FilePath: w.g.filePath,
			Span:     span,
			Language: ir.LangGo,
			ParentID: w.funcID,
		}
		w.g.doc.Nodes = append(w.g.doc.Nodes, vNode)
		w.g.doc.Edges = append(w.g.doc.Edges, ir.NewEdge(ir.EdgeContains, w.funcID, vNode.ID, &span))
		w.scope.Declare(name, vNode.ID)
		w.dfg.Write(name, &span)
	}
}

func (w *semanticWalker) walkAssignment(n *sitter.Node) {
	left := n.ChildByFieldName("left")
	right := n.ChildByFieldName("right")
	if right != nil {
		w.walkExprTree(right)
	}
	if left != nil && left.Type() == "identifier" {
		span := spanOf(left)
		w.dfg.Write(w.g.text(left), &span)
	}
}

// walkExprTree emits Reads edges for bare identifier references anywhere
// in an expression subtree (condition, call argument, right-hand side).
func (w *semanticWalker) walkExprTree(n *sitter.Node) {
	if n == nil {
		return
	}
	if n.Type() == "identifier" {
		span := spanOf(n)
		w.dfg.Read(w.g.text(n), &span)
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		w.walkExprTree(n.Child(i))
	}
}
