// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package typescript

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/codeintel-oss/engine/internal/ir"
	"github.com/codeintel-oss/engine/internal/parserregistry"
)

// Generate walks a TypeScript/JavaScript CST, emitting Module/Class/
// Function/Method/Import declarations, Contains/Inherits edges, reference
// Occurrences for calls, and — the one thing no other language plugin
// does — TemplateSlots for JSX interpolation points (spec §4.2), since JSX
// embeds the template language directly in the host syntax tree instead of
// a separate template file.
func Generate(tree *parserregistry.ParseTree, filePath string) *ir.IRDocument {
	doc := &ir.IRDocument{
		FilePath:   filePath,
		Language:   tree.Language,
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

	moduleNode := ir.Node{
		ID:       ir.NodeID(ir.NodeModule, moduleFQN, fileSpan, tree.Language, ir.ContentDigest(content)),
		Kind:     ir.NodeModule,
		FQN:      moduleFQN,
		Name:     moduleFQN,
		FilePath: filePath,
		Span:     fileSpan,
		Language: tree.Language,
	}
	doc.Nodes = append(doc.Nodes, moduleNode)

	g := &generator{doc: doc, content: content, filePath: filePath, lang: tree.Language, moduleFQN: moduleFQN, moduleID: moduleNode.ID}
	g.walkBlock(root, moduleFQN, moduleNode.ID)

	return doc
}

type generator struct {
	doc       *ir.IRDocument
	content   []byte
	filePath  string
	lang      ir.Language
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
	for _, ext := range []string{".tsx", ".ts", ".jsx", ".mjs", ".cjs", ".js"} {
		if strings.HasSuffix(p, ext) {
			p = strings.TrimSuffix(p, ext)
			break
		}
	}
	return strings.ReplaceAll(p, "/", ".")
}

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
	case "import_statement":
		g.emitImport(n, ownerID)
	case "export_statement":
		for i := 0; i < int(n.ChildCount()); i++ {
			g.walkStatement(n.Child(i), ownerFQN, ownerID)
		}
	case "function_declaration":
		g.emitFunction(n, ownerFQN, ownerID)
	case "class_declaration":
		g.emitClass(n, ownerFQN, ownerID)
	case "lexical_declaration", "variable_declaration":
		g.walkCallsAndJSX(n, ownerID)
	case "expression_statement":
		g.walkCallsAndJSX(n, ownerID)
	default:
		for i := 0; i < int(n.ChildCount()); i++ {
			g.walkStatement(n.Child(i), ownerFQN, ownerID)
		}
	}
}

func (g *generator) emitImport(n *sitter.Node, ownerID string) {
	span := spanOf(n)
	raw := g.text(n)
	impNode := ir.Node{
		ID:       ir.NodeID(ir.NodeImport, raw, span, g.lang, ""),
		Kind:     ir.NodeImport,
		FQN:      raw,
		Name:     raw,
		FilePath: g.filePath,
		Span:     span,
		Language: g.lang,
		ParentID: ownerID,
	}
	var source string
	var entries []map[string]string
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.Type() == "string" {
			source = strings.Trim(g.text(c), `"'`)
		}
		if c.Type() == "import_clause" {
			entries = append(entries, g.parseImportClause(c)...)
		}
	}
	impNode.SetAttr("source", source)
	for i := range entries {
		entries[i]["module"] = source
	}
	impNode.SetAttr("entries", entries)
	g.doc.Nodes = append(g.doc.Nodes, impNode)
	g.doc.Edges = append(g.doc.Edges, ir.NewEdge(ir.EdgeContains, ownerID, impNode.ID, &span))
	g.doc.Edges = append(g.doc.Edges, ir.NewEdge(ir.EdgeImports, ownerID, impNode.ID, &span))
}

// parseImportClause handles `import X`, `import {a, b as c}`, and
// `import * as ns` forms, returning alias entries without the module
// (filled in by the caller, which already has the source string).
func (g *generator) parseImportClause(clause *sitter.Node) []map[string]string {
	var entries []map[string]string
	for i := 0; i < int(clause.ChildCount()); i++ {
		c := clause.Child(i)
		switch c.Type() {
		case "identifier":
			entries = append(entries, map[string]string{"alias": g.text(c), "imported": "default"})
		case "namespace_import":
			entries = append(entries, map[string]string{"alias": g.text(c.Child(c.ChildCount() - 1)), "imported": "*"})
		case "named_imports":
			for j := 0; j < int(c.ChildCount()); j++ {
				spec := c.Child(j)
				if spec.Type() != "import_specifier" {
					continue
				}
				name := g.text(spec.ChildByFieldName("name"))
				alias := g.text(spec.ChildByFieldName("alias"))
				if alias == "" {
					alias = name
				}
				entries = append(entries, map[string]string{"alias": alias, "imported": name})
			}
		}
	}
	return entries
}

func (g *generator) emitFunction(n *sitter.Node, ownerFQN, ownerID string) {
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
	fNode := ir.Node{
		ID:       ir.NodeID(ir.NodeFunction, fqn, span, g.lang, digest),
		Kind:     ir.NodeFunction,
		FQN:      fqn,
		Name:     name,
		FilePath: g.filePath,
		Span:     span,
		Language: g.lang,
		ParentID: ownerID,
	}
	fNode.SetAttr("is_async", isAsync(n, g.content))
	g.doc.Nodes = append(g.doc.Nodes, fNode)
	g.doc.Edges = append(g.doc.Edges, ir.NewEdge(ir.EdgeContains, ownerID, fNode.ID, &span))
	g.doc.Occurrences = append(g.doc.Occurrences, ir.NewOccurrence(g.filePath, spanOf(nameNode), ir.RoleDefinition, name, fNode.ID))

	if body != nil {
		g.walkCallsAndJSX(body, fNode.ID)
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
	cNode := ir.Node{
		ID:       ir.NodeID(ir.NodeClass, fqn, span, g.lang, ""),
		Kind:     ir.NodeClass,
		FQN:      fqn,
		Name:     name,
		FilePath: g.filePath,
		Span:     span,
		Language: g.lang,
		ParentID: ownerID,
	}
	g.doc.Nodes = append(g.doc.Nodes, cNode)
	g.doc.Edges = append(g.doc.Edges, ir.NewEdge(ir.EdgeContains, ownerID, cNode.ID, &span))
	g.doc.Occurrences = append(g.doc.Occurrences, ir.NewOccurrence(g.filePath, spanOf(nameNode), ir.RoleDefinition, name, cNode.ID))

	if heritage := n.ChildByFieldName("heritage"); heritage != nil {
		baseName := strings.TrimSpace(strings.TrimPrefix(g.text(heritage), "extends"))
		if baseName != "" {
			baseSpan := spanOf(heritage)
			placeholderID := ir.NodeID(ir.NodeExpression, cNode.ID+"#base#"+baseName, baseSpan, g.lang, "")
			g.doc.Nodes = append(g.doc.Nodes, ir.Node{
				ID: placeholderID, Kind: ir.NodeExpression, Name: baseName, FilePath: g.filePath,
				Span: baseSpan, Language: g.lang, ParentID: cNode.ID,
				Attrs: map[string]any{"expr_kind": "base_class", "base_name": baseName},
			})
			g.doc.Edges = append(g.doc.Edges, ir.NewEdge(ir.EdgeInherits, cNode.ID, placeholderID, &baseSpan))
		}
	}

	body := n.ChildByFieldName("body")
	if body == nil {
		return
	}
	for i := 0; i < int(body.ChildCount()); i++ {
		m := body.Child(i)
		if m.Type() != "method_definition" {
			continue
		}
		mNameNode := m.ChildByFieldName("name")
		mName := g.text(mNameNode)
		if mName == "" {
			continue
		}
		mFQN := fqn + "." + mName
		mSpan := spanOf(m)
		mBody := m.ChildByFieldName("body")
		mDigest := ""
		if mBody != nil {
			mDigest = ir.ContentDigest([]byte(g.text(mBody)))
		}
		mNode := ir.Node{
			ID:       ir.NodeID(ir.NodeMethod, mFQN, mSpan, g.lang, mDigest),
			Kind:     ir.NodeMethod,
			FQN:      mFQN,
			Name:     mName,
			FilePath: g.filePath,
			Span:     mSpan,
			Language: g.lang,
			ParentID: cNode.ID,
		}
		g.doc.Nodes = append(g.doc.Nodes, mNode)
		g.doc.Edges = append(g.doc.Edges, ir.NewEdge(ir.EdgeContains, cNode.ID, mNode.ID, &mSpan))
		g.doc.Occurrences = append(g.doc.Occurrences, ir.NewOccurrence(g.filePath, spanOf(mNameNode), ir.RoleDefinition, mName, mNode.ID))
		if mBody != nil {
			g.walkCallsAndJSX(mBody, mNode.ID)
		}
	}
}

// walkCallsAndJSX is the combined traversal for anything that can appear
// inside a function/method body: call expressions (Occurrences, for the
// resolver) and JSX elements (TemplateSlots, for the taint matcher).
func (g *generator) walkCallsAndJSX(n *sitter.Node, ownerID string) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "call_expression":
		fn := n.ChildByFieldName("function")
		if fn != nil {
			name := g.text(fn)
			span := spanOf(fn)
			g.doc.Occurrences = append(g.doc.Occurrences, ir.NewOccurrence(g.filePath, span, ir.RoleReference, name, ""))
			g.doc.Nodes = append(g.doc.Nodes, ir.Node{
				ID: ir.NodeID(ir.NodeExpression, ownerID+"#call#"+name, span, g.lang, span.String()),
				Kind: ir.NodeExpression, Name: name, FilePath: g.filePath, Span: span, Language: g.lang,
				ParentID: ownerID, Attrs: map[string]any{"expr_kind": "call", "call_name": name, "args": g.callArgs(n)},
			})
		}
	case "jsx_attribute":
		g.emitJSXAttributeSlot(n, ownerID)
	case "jsx_expression":
		g.emitJSXTextSlot(n, ownerID)
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		g.walkCallsAndJSX(n.Child(i), ownerID)
	}
}

// callArgs returns the source text of each argument in a call's arguments
// list, for internal/taint.Entity.Args.
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

// emitJSXAttributeSlot classifies `attr={expr}` as RAW_HTML, URL_ATTR,
// EVENT_HANDLER, or falls through to HTML_TEXT, following spec §4.2.
func (g *generator) emitJSXAttributeSlot(n *sitter.Node, ownerID string) {
	nameNode := n.Child(0)
	if nameNode == nil {
		return
	}
	attrName := g.text(nameNode)
	var valueExpr *sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(i).Type() == "jsx_expression" {
			valueExpr = n.Child(i)
		}
	}
	if valueExpr == nil {
		return
	}
	isEvent := strings.HasPrefix(attrName, "on") && len(attrName) > 2 && attrName[2] >= 'A' && attrName[2] <= 'Z'
	ctxKind, isSink, escape := ir.ClassifyAttrContext(attrName, isEvent)
	span := spanOf(valueExpr)
	slot := ir.NewTemplateSlot(g.filePath, span, g.text(valueExpr), ctxKind, isSink, escape)
	g.doc.TemplateSlots = append(g.doc.TemplateSlots, slot)
}

// emitJSXTextSlot handles a bare `{expr}` interpolation inside element
// children, which renders as plain text content (auto-escaped by React).
func (g *generator) emitJSXTextSlot(n *sitter.Node, ownerID string) {
	parent := n.Parent()
	if parent != nil && parent.Type() == "jsx_attribute" {
		return // handled by emitJSXAttributeSlot
	}
	span := spanOf(n)
	slot := ir.NewTemplateSlot(g.filePath, span, g.text(n), ir.ContextHTMLText, false, ir.EscapeAuto)
	g.doc.TemplateSlots = append(g.doc.TemplateSlots, slot)
}

func isAsync(n *sitter.Node, content []byte) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(i).Type() == "async" {
			return true
		}
	}
	return false
}
