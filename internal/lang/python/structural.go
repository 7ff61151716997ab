// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package python

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/codeintel-oss/engine/internal/ir"
	"github.com/codeintel-oss/engine/internal/parserregistry"
)

// Generate walks a Python CST, emitting Module/Class/Function/Method/Import
// nodes, Contains/Inherits edges, and reference Occurrences for calls.
// Python has no package-declared name, so FQNs are derived from the module's
// dotted path (the file path relative to the source root, minus .py).
func Generate(tree *parserregistry.ParseTree, filePath string) *ir.IRDocument {
	doc := &ir.IRDocument{
		FilePath:   filePath,
		Language:   ir.LangPython,
		IsPartial:  tree.IsPartial,
		ErrorCount: tree.ErrorCount,
	}
	if tree.IsPartial {
		doc.AddDiagnostic(ir.NewDiagnostic(ir.SeverityWarning, ir.CodeParsePartial,
			fmt.Sprintf("file parsed with %d syntax error node(s); IR is partial", tree.ErrorCount), filePath, nil))
	}

	root, _ := tree.Root.(*sitter.Node)
	content := tree.Content
	moduleFQN := modulePath(filePath)
	fileSpan := spanOf(root)

	fileNode := ir.Node{
		ID:       ir.NodeID(ir.NodeModule, moduleFQN, fileSpan, ir.LangPython, ir.ContentDigest(content)),
		Kind:     ir.NodeModule,
		FQN:      moduleFQN,
		Name:     moduleFQN,
		FilePath: filePath,
		Span:     fileSpan,
		Language: ir.LangPython,
	}
	doc.Nodes = append(doc.Nodes, fileNode)

	g := &generator{doc: doc, content: content, filePath: filePath, moduleFQN: moduleFQN, moduleID: fileNode.ID}
	g.walkBlock(root, moduleFQN, fileNode.ID)

	return doc
}

type generator struct {
	doc       *ir.IRDocument
	content   []byte
	filePath  string
	moduleFQN string
	moduleID  string
}

func (g *generator) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(g.content)
}

func spanOf(n *sitter.Node) ir.Span {
	if n == nil {
		return ir.Span{}
	}
	start := n.StartPoint()
	end := n.EndPoint()
	return ir.Span{
		StartLine: int(start.Row) + 1,
		StartCol:  int(start.Column) + 1,
		EndLine:   int(end.Row) + 1,
		EndCol:    int(end.Column) + 1,
	}
}

func modulePath(filePath string) string {
	p := ir.NormalizePath(filePath)
	p = strings.TrimSuffix(p, ".py")
	return strings.ReplaceAll(p, "/", ".")
}

// walkBlock processes one level of statements (module body, class body, or
// function body), emitting declarations found directly in it. It does not
// recurse into nested function bodies for declarations — only for calls.
func (g *generator) walkBlock(n *sitter.Node, ownerFQN, ownerID string) {
	if n == nil {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		g.walkStatement(n.Child(i), ownerFQN, ownerID)
	}
}

func (g *generator) walkStatement(n *sitter.Node, ownerFQN, ownerID string) {
	switch n.Type() {
	case "import_statement", "import_from_statement":
		g.emitImport(n, ownerID)
	case "function_definition":
		g.emitFunction(n, ownerFQN, ownerID)
	case "class_definition":
		g.emitClass(n, ownerFQN, ownerID)
	case "expression_statement":
		g.walkCalls(n, ownerID)
	default:
		for i := 0; i < int(n.ChildCount()); i++ {
			g.walkStatement(n.Child(i), ownerFQN, ownerID)
		}
	}
}

// emitImport parses both `import a.b as c` and `from a.b import c, d as e`
// into alias→module entries the resolver can use, instead of keeping only
// the raw statement text.
func (g *generator) emitImport(n *sitter.Node, ownerID string) {
	span := spanOf(n)
	raw := g.text(n)
	impNode := ir.Node{
		ID:       ir.NodeID(ir.NodeImport, raw, span, ir.LangPython, ""),
		Kind:     ir.NodeImport,
		FQN:      raw,
		Name:     raw,
		FilePath: g.filePath,
		Span:     span,
		Language: ir.LangPython,
		ParentID: ownerID,
	}

	var entries []map[string]string
	if n.Type() == "import_from_statement" {
		module := g.text(n.ChildByFieldName("module_name"))
		for i := 0; i < int(n.ChildCount()); i++ {
			c := n.Child(i)
			switch c.Type() {
			case "dotted_name":
				if c == n.ChildByFieldName("module_name") {
					continue
				}
				entries = append(entries, map[string]string{"alias": g.text(c), "module": module})
			case "aliased_import":
				name := g.text(c.ChildByFieldName("name"))
				alias := g.text(c.ChildByFieldName("alias"))
				entries = append(entries, map[string]string{"alias": alias, "module": module + "." + name})
			case "wildcard_import":
				entries = append(entries, map[string]string{"alias": "*", "module": module})
			}
		}
	} else {
		for i := 0; i < int(n.ChildCount()); i++ {
			c := n.Child(i)
			switch c.Type() {
			case "dotted_name":
				mod := g.text(c)
				alias := mod
				if idx := strings.LastIndex(mod, "."); idx >= 0 {
					alias = mod[idx+1:]
				}
				entries = append(entries, map[string]string{"alias": alias, "module": mod})
			case "aliased_import":
				mod := g.text(c.ChildByFieldName("name"))
				alias := g.text(c.ChildByFieldName("alias"))
				entries = append(entries, map[string]string{"alias": alias, "module": mod})
			}
		}
	}
	impNode.SetAttr("entries", entries)

	g.doc.Nodes = append(g.doc.Nodes, impNode)
	g.doc.Edges = append(g.doc.Edges, ir.NewEdge(ir.EdgeContains, ownerID, impNode.ID, &span))
	g.doc.Edges = append(g.doc.Edges, ir.NewEdge(ir.EdgeImports, ownerID, impNode.ID, &span))
}

func (g *generator) emitFunction(n *sitter.Node, ownerFQN, ownerID string) {
	nameNode := n.ChildByFieldName("name")
	name := g.text(nameNode)
	if name == "" {
		return
	}
	fqn := ownerFQN + "." + name
	kind := ir.NodeFunction
	if ownerFQN != g.moduleFQN {
		kind = ir.NodeMethod
	}
	span := spanOf(n)
	body := n.ChildByFieldName("body")
	digest := ""
	if body != nil {
		digest = ir.ContentDigest([]byte(g.text(body)))
	}
	fNode := ir.Node{
		ID:       ir.NodeID(kind, fqn, span, ir.LangPython, digest),
		Kind:     kind,
		FQN:      fqn,
		Name:     name,
		FilePath: g.filePath,
		Span:     span,
		Language: ir.LangPython,
		ParentID: ownerID,
	}
	fNode.SetAttr("is_async", hasAsyncKeyword(n, g.content))
	g.doc.Nodes = append(g.doc.Nodes, fNode)
	g.doc.Edges = append(g.doc.Edges, ir.NewEdge(ir.EdgeContains, ownerID, fNode.ID, &span))
	g.doc.Occurrences = append(g.doc.Occurrences, ir.NewOccurrence(g.filePath, spanOf(nameNode), ir.RoleDefinition, name, fNode.ID))

	g.walkParams(n, fNode.ID)
	if body != nil {
		g.walkCalls(body, fNode.ID)
	}
}

func (g *generator) walkParams(fn *sitter.Node, funcID string) {
	params := fn.ChildByFieldName("parameters")
	if params == nil {
		return
	}
	for i := 0; i < int(params.ChildCount()); i++ {
		p := params.Child(i)
		var nameNode *sitter.Node
		switch p.Type() {
		case "identifier":
			nameNode = p
		case "typed_parameter", "default_parameter", "typed_default_parameter":
			nameNode = p.Child(0)
		}
		if nameNode == nil || nameNode.Type() != "identifier" {
			continue
		}
		span := spanOf(nameNode)
		pNode := ir.Node{
			ID:       ir.NodeID(ir.NodeParameter, funcID+"."+g.text(nameNode), span, ir.LangPython, ""),
			Kind:     ir.NodeParameter,
			Name:     g.text(nameNode),
			FilePath: g.filePath,
			Span:     span,
			Language: ir.LangPython,
			ParentID: funcID,
		}
		g.doc.Nodes = append(g.doc.Nodes, pNode)
		g.doc.Edges = append(g.doc.Edges, ir.NewEdge(ir.EdgeContains, funcID, pNode.ID, &span))
	}
}

func (g *generator) emitClass(n *sitter.Node, ownerFQN, ownerID string) {
	nameNode := n.ChildByFieldName("name")
	name := g.text(nameNode)
	if name == "" {
		return
	}
	fqn := ownerFQN + "." + name
	span := spanOf(n)
	body := n.ChildByFieldName("body")
	digest := ""
	if body != nil {
		digest = ir.ContentDigest([]byte(g.text(body)))
	}
	cNode := ir.Node{
		ID:       ir.NodeID(ir.NodeClass, fqn, span, ir.LangPython, digest),
		Kind:     ir.NodeClass,
		FQN:      fqn,
		Name:     name,
		FilePath: g.filePath,
		Span:     span,
		Language: ir.LangPython,
		ParentID: ownerID,
	}
	g.doc.Nodes = append(g.doc.Nodes, cNode)
	g.doc.Edges = append(g.doc.Edges, ir.NewEdge(ir.EdgeContains, ownerID, cNode.ID, &span))
	g.doc.Occurrences = append(g.doc.Occurrences, ir.NewOccurrence(g.filePath, spanOf(nameNode), ir.RoleDefinition, name, cNode.ID))

	if superclasses := n.ChildByFieldName("superclasses"); superclasses != nil {
		for i := 0; i < int(superclasses.ChildCount()); i++ {
			arg := superclasses.Child(i)
			if arg.Type() != "identifier" && arg.Type() != "attribute" {
				continue
			}
			baseName := g.text(arg)
			baseSpan := spanOf(arg)
			g.doc.Occurrences = append(g.doc.Occurrences, ir.NewOccurrence(g.filePath, baseSpan, ir.RoleReference, baseName, ""))
			placeholderID := ir.NodeID(ir.NodeExpression, cNode.ID+"#base#"+baseName, baseSpan, ir.LangPython, "")
			g.doc.Nodes = append(g.doc.Nodes, ir.Node{
				ID:       placeholderID,
				Kind:     ir.NodeExpression,
				Name:     baseName,
				FilePath: g.filePath,
				Span:     baseSpan,
				Language: ir.LangPython,
				ParentID: cNode.ID,
				Attrs:    map[string]any{"expr_kind": "base_class", "base_name": baseName},
			})
			g.doc.Edges = append(g.doc.Edges, ir.NewEdge(ir.EdgeInherits, cNode.ID, placeholderID, &baseSpan))
		}
	}

	if body != nil {
		g.walkBlock(body, fqn, cNode.ID)
	}
}

// walkCalls records a reference Occurrence (and an unresolved Expression
// node) for every call expression; resolution happens in internal/resolver.
func (g *generator) walkCalls(n *sitter.Node, ownerID string) {
	if n == nil {
		return
	}
	if n.Type() == "call" {
		fn := n.ChildByFieldName("function")
		if fn != nil {
			name := g.text(fn)
			span := spanOf(fn)
			g.doc.Occurrences = append(g.doc.Occurrences, ir.NewOccurrence(g.filePath, span, ir.RoleReference, name, ""))
			g.doc.Nodes = append(g.doc.Nodes, ir.Node{
				ID:       ir.NodeID(ir.NodeExpression, ownerID+"#call#"+name, span, ir.LangPython, span.String()),
				Kind:     ir.NodeExpression,
				Name:     name,
				FilePath: g.filePath,
				Span:     span,
				Language: ir.LangPython,
				ParentID: ownerID,
				Attrs:    map[string]any{"expr_kind": "call", "call_name": name, "args": g.callArgs(n)},
			})
		}
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		g.walkCalls(n.Child(i), ownerID)
	}
}

// callArgs returns the source text of each argument in a call's argument
// list, for internal/taint.Entity.Args. Keyword arguments (`keyword_argument`
// nodes) are included by their full `name=value` text since Entity has no
// separate Kwargs population path yet in any language plugin.
func (g *generator) callArgs(call *sitter.Node) []string {
	argList := call.ChildByFieldName("arguments")
	if argList == nil {
		return nil
	}
	var args []string
	for i := 0; i < int(argList.NamedChildCount()); i++ {
		args = append(args, g.text(argList.NamedChild(i)))
	}
	return args
}

func hasAsyncKeyword(n *sitter.Node, content []byte) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(i).Type() == "async" {
			return true
		}
	}
	return false
}
