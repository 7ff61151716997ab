// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package golang

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/codeintel-oss/engine/internal/ir"
	"github.com/codeintel-oss/engine/internal/parserregistry"
)

// Generate walks a Go CST and emits the structural IR for one file: File,
// Function/Method, Variable and Import nodes; Contains edges between them;
// and Occurrences for declaration names and for the callee of each call
// expression (other identifier references get no Occurrence).
// Scope resolution at this layer is lexical (a scope stack per function
// body, spec §4.2) — cross-file resolution happens later in
// internal/resolver.
//
// Grounded on graph/golang/declarations.go and graph/parser_golang.go's
// two-pass walk (collect declarations, then walk bodies for references).
func Generate(tree *parserregistry.ParseTree, filePath string) *ir.IRDocument {
	doc := &ir.IRDocument{
		FilePath:   filePath,
		Language:   ir.LangGo,
		IsPartial:  tree.IsPartial,
		ErrorCount: tree.ErrorCount,
	}
	if tree.IsPartial {
		doc.AddDiagnostic(ir.NewDiagnostic(ir.SeverityWarning, ir.CodeParsePartial,
			fmt.Sprintf("file parsed with %d syntax error node(s); IR is partial", tree.ErrorCount), filePath, nil))
	}

	root, _ := tree.Root.(*sitter.Node)
	content := tree.Content

	pkgName := packageName(root, content)
	fileSpan := spanOf(root)
	fileNode := ir.Node{
		ID:       ir.NodeID(ir.NodeFile, ir.NormalizePath(filePath), fileSpan, ir.LangGo, ir.ContentDigest(content)),
		Kind:     ir.NodeFile,
		FQN:      ir.NormalizePath(filePath),
		Name:     filePath,
		FilePath: filePath,
		Span:     fileSpan,
		Language: ir.LangGo,
	}
	fileNode.SetAttr("package", pkgName)
	doc.Nodes = append(doc.Nodes, fileNode)

	g := &generator{doc: doc, content: content, filePath: filePath, pkgName: pkgName, fileID: fileNode.ID}
	g.walkTopLevel(root)

	return doc
}

type generator struct {
	doc      *ir.IRDocument
	content  []byte
	filePath string
	pkgName  string
	fileID   string
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

func packageName(root *sitter.Node, content []byte) string {
	if root == nil {
		return ""
	}
	for i := 0; i < int(root.ChildCount()); i++ {
		c := root.Child(i)
		if c.Type() == "package_clause" {
			for j := 0; j < int(c.ChildCount()); j++ {
				if c.Child(j).Type() == "package_identifier" {
					return c.Child(j).Content(content)
				}
			}
		}
	}
	return ""
}

// walkTopLevel emits Import, Function/Method, and top-level Variable/Constant
// nodes, plus Contains edges from the file node.
func (g *generator) walkTopLevel(root *sitter.Node) {
	if root == nil {
		return
	}
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		switch child.Type() {
		case "import_declaration":
			g.emitImports(child)
		case "function_declaration":
			g.emitFunction(child, "")
		case "method_declaration":
			g.emitMethod(child)
		case "const_declaration", "var_declaration":
			g.emitTopLevelVars(child, child.Type() == "const_declaration")
		case "type_declaration":
			g.emitTypeDecl(child)
		}
	}
}

func (g *generator) emitImports(n *sitter.Node) {
	for i := 0; i < int(n.ChildCount()); i++ {
		spec := n.Child(i)
		if spec.Type() != "import_spec" {
			continue
		}
		var alias, path string
		for j := 0; j < int(spec.ChildCount()); j++ {
			c := spec.Child(j)
			switch c.Type() {
			case "interpreted_string_literal":
				path = strings.Trim(g.text(c), `"`)
			case "package_identifier", "blank_identifier", "dot":
				alias = g.text(c)
			}
		}
		if path == "" {
			continue
		}
		if alias == "" {
			alias = path
			if idx := strings.LastIndex(alias, "/"); idx >= 0 {
				alias = alias[idx+1:]
			}
		}
		span := spanOf(spec)
		impNode := ir.Node{
			ID:       ir.NodeID(ir.NodeImport, path, span, ir.LangGo, ""),
			Kind:     ir.NodeImport,
			FQN:      path,
			Name:     path,
			FilePath: g.filePath,
			Span:     span,
			Language: ir.LangGo,
			ParentID: g.fileID,
		}
		impNode.SetAttr("alias", alias)
		impNode.SetAttr("entries", []map[string]string{{"alias": alias, "module": path}})
		g.doc.Nodes = append(g.doc.Nodes, impNode)
		g.doc.Edges = append(g.doc.Edges, ir.NewEdge(ir.EdgeContains, g.fileID, impNode.ID, &span))
		g.doc.Edges = append(g.doc.Edges, ir.NewEdge(ir.EdgeImports, g.fileID, impNode.ID, &span))
	}
}

func (g *generator) emitFunction(n *sitter.Node, receiverType string) string {
	nameNode := n.ChildByFieldName("name")
	name := g.text(nameNode)
	if name == "" {
		return ""
	}
	fqn := g.pkgName + "." + name
	kind := ir.NodeFunction
	if receiverType != "" {
		fqn = g.pkgName + "." + receiverType + "." + name
		kind = ir.NodeMethod
	}
	span := spanOf(n)
	body := n.ChildByFieldName("body")
	digest := ""
	if body != nil {
		digest = ir.ContentDigest([]byte(g.text(body)))
	}
	node := ir.Node{
		ID:       ir.NodeID(kind, fqn, span, ir.LangGo, digest),
		Kind:     kind,
		FQN:      fqn,
		Name:     name,
		FilePath: g.filePath,
		Span:     span,
		Language: ir.LangGo,
		ParentID: g.fileID,
	}
	node.SetAttr("exported", isExported(name))
	node.SetAttr("signature", signatureOf(n, g.content))
	if receiverType != "" {
		node.SetAttr("receiver_type", receiverType)
	}
	g.doc.Nodes = append(g.doc.Nodes, node)
	g.doc.Edges = append(g.doc.Edges, ir.NewEdge(ir.EdgeContains, g.fileID, node.ID, &span))

	occSpan := spanOf(nameNode)
	g.doc.Occurrences = append(g.doc.Occurrences, ir.NewOccurrence(g.filePath, occSpan, ir.RoleDefinition, name, node.ID))

	scope := g.walkParams(n, node.ID)
	if body != nil {
		g.walkCallsInBody(body, node.ID)
		g.buildSemantics(body, node.ID, fqn, scope)
	}
	return node.ID
}

func (g *generator) emitMethod(n *sitter.Node) {
	recv := n.ChildByFieldName("receiver")
	receiverType := ""
	if recv != nil {
		receiverType = extractReceiverType(recv, g.content)
	}
	g.emitFunction(n, receiverType)
}

// paramBinding pairs a parameter name with its declaring node, feeding the
// semantic builder's scope stack (semantic.go) without re-walking the CST.
type paramBinding struct {
	name     string
	nodeID   string
	typeName string
}

func (g *generator) walkParams(fn *sitter.Node, funcID string) []paramBinding {
	params := fn.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}
	var bindings []paramBinding
	for i := 0; i < int(params.ChildCount()); i++ {
		p := params.Child(i)
		if p.Type() != "parameter_declaration" {
			continue
		}
		nameNode := p.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		span := spanOf(p)
		pNode := ir.Node{
			ID:       ir.NodeID(ir.NodeParameter, funcID+"."+g.text(nameNode), span, ir.LangGo, ""),
			Kind:     ir.NodeParameter,
			Name:     g.text(nameNode),
			FilePath: g.filePath,
			Span:     span,
			Language: ir.LangGo,
			ParentID: funcID,
		}
		typeName := ""
		if tNode := p.ChildByFieldName("type"); tNode != nil {
			typeName = g.text(tNode)
			pNode.SetAttr("type", typeName)
		}
		g.doc.Nodes = append(g.doc.Nodes, pNode)
		g.doc.Edges = append(g.doc.Edges, ir.NewEdge(ir.EdgeContains, funcID, pNode.ID, &span))
		bindings = append(bindings, paramBinding{name: pNode.Name, nodeID: pNode.ID, typeName: typeName})
	}
	return bindings
}

// walkCallsInBody records an Occurrence for every call expression's callee
// identifier. Resolution to a target node (same file or cross-file) is
// deferred: here the occurrence's NodeID is left empty to mark it
// unresolved, which internal/resolver treats as work to do.
func (g *generator) walkCallsInBody(n *sitter.Node, callerID string) {
	if n == nil {
		return
	}
	if n.Type() == "call_expression" {
		fn := n.ChildByFieldName("function")
		if fn != nil {
			name := g.text(fn)
			span := spanOf(fn)
			g.doc.Occurrences = append(g.doc.Occurrences, ir.NewOccurrence(g.filePath, span, ir.RoleReference, name, ""))
			g.doc.Nodes = append(g.doc.Nodes, ir.Node{
				ID:       ir.NodeID(ir.NodeExpression, callerID+"#call#"+name, span, ir.LangGo, span.String()),
				Kind:     ir.NodeExpression,
				Name:     name,
				FilePath: g.filePath,
				Span:     span,
				Language: ir.LangGo,
				ParentID: callerID,
				Attrs:    map[string]any{"expr_kind": "call", "call_name": name, "args": g.callArgs(n)},
			})
		}
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		g.walkCallsInBody(n.Child(i), callerID)
	}
}

// callArgs returns the source text of each argument expression in a call's
// argument_list, for internal/taint.Entity.Args (spec §4.4 "argument
// indices/kinds" feeding a rule's args/constraints clauses).
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

func (g *generator) emitTopLevelVars(n *sitter.Node, isConst bool) {
	kind := ir.NodeVariable
	if isConst {
		kind = ir.NodeConstant
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		spec := n.Child(i)
		if spec.Type() != "var_spec" && spec.Type() != "const_spec" {
			continue
		}
		for j := 0; j < int(spec.ChildCount()); j++ {
			c := spec.Child(j)
			if c.Type() != "identifier" {
				continue
			}
			name := g.text(c)
			fqn := g.pkgName + "." + name
			span := spanOf(c)
			vNode := ir.Node{
				ID:       ir.NodeID(kind, fqn, span, ir.LangGo, ""),
				Kind:     kind,
				FQN:      fqn,
				Name:     name,
				FilePath: g.filePath,
				Span:     span,
				Language: ir.LangGo,
				ParentID: g.fileID,
			}
			vNode.SetAttr("exported", isExported(name))
			g.doc.Nodes = append(g.doc.Nodes, vNode)
			g.doc.Edges = append(g.doc.Edges, ir.NewEdge(ir.EdgeContains, g.fileID, vNode.ID, &span))
			g.doc.Occurrences = append(g.doc.Occurrences, ir.NewOccurrence(g.filePath, span, ir.RoleDefinition, name, vNode.ID))
		}
	}
}

func (g *generator) emitTypeDecl(n *sitter.Node) {
	for i := 0; i < int(n.ChildCount()); i++ {
		spec := n.Child(i)
		if spec.Type() != "type_spec" {
			continue
		}
		nameNode := spec.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		name := g.text(nameNode)
		fqn := g.pkgName + "." + name
		span := spanOf(spec)
		typeBody := spec.ChildByFieldName("type")
		kind := ir.NodeClass
		digest := ""
		if typeBody != nil {
			digest = ir.ContentDigest([]byte(g.text(typeBody)))
		}
		tNode := ir.Node{
			ID:       ir.NodeID(kind, fqn, span, ir.LangGo, digest),
			Kind:     kind,
			FQN:      fqn,
			Name:     name,
			FilePath: g.filePath,
			Span:     span,
			Language: ir.LangGo,
			ParentID: g.fileID,
		}
		tNode.SetAttr("exported", isExported(name))
		if typeBody != nil {
			tNode.SetAttr("underlying_kind", typeBody.Type())
			if typeBody.Type() == "struct_type" {
				g.emitStructFields(typeBody, tNode.ID, fqn)
			}
			if typeBody.Type() == "interface_type" {
				tNode.SetAttr("is_interface", true)
			}
		}
		g.doc.Nodes = append(g.doc.Nodes, tNode)
		g.doc.Edges = append(g.doc.Edges, ir.NewEdge(ir.EdgeContains, g.fileID, tNode.ID, &span))
		g.doc.Occurrences = append(g.doc.Occurrences, ir.NewOccurrence(g.filePath, spanOf(nameNode), ir.RoleDefinition, name, tNode.ID))
	}
}

func (g *generator) emitStructFields(structType *sitter.Node, ownerID, ownerFQN string) {
	fieldList := structType.ChildByFieldName("body")
	if fieldList == nil {
		return
	}
	for i := 0; i < int(fieldList.ChildCount()); i++ {
		decl := fieldList.Child(i)
		if decl.Type() != "field_declaration" {
			continue
		}
		typeNode := decl.ChildByFieldName("type")
		typeName := g.text(typeNode)
		for j := 0; j < int(decl.ChildCount()); j++ {
			c := decl.Child(j)
			if c.Type() != "field_identifier" {
				continue
			}
			name := g.text(c)
			span := spanOf(c)
			fNode := ir.Node{
				ID:       ir.NodeID(ir.NodeField, ownerFQN+"."+name, span, ir.LangGo, ""),
				Kind:     ir.NodeField,
				FQN:      ownerFQN + "." + name,
				Name:     name,
				FilePath: g.filePath,
				Span:     span,
				Language: ir.LangGo,
				ParentID: ownerID,
			}
			fNode.SetAttr("type", typeName)
			g.doc.Nodes = append(g.doc.Nodes, fNode)
			g.doc.Edges = append(g.doc.Edges, ir.NewEdge(ir.EdgeContains, ownerID, fNode.ID, &span))
		}
	}
}

func isExported(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z'
}

func signatureOf(fn *sitter.Node, content []byte) string {
	nameNode := fn.ChildByFieldName("name")
	params := fn.ChildByFieldName("parameters")
	result := fn.ChildByFieldName("result")
	sig := ""
	if nameNode != nil {
		sig += nameNode.Content(content)
	}
	if params != nil {
		sig += params.Content(content)
	}
	if result != nil {
		sig += " " + result.Content(content)
	}
	return sig
}

func extractReceiverType(recv *sitter.Node, content []byte) string {
	for i := 0; i < int(recv.ChildCount()); i++ {
		p := recv.Child(i)
		if p.Type() != "parameter_declaration" {
			continue
		}
		t := p.ChildByFieldName("type")
		if t == nil {
			continue
		}
		name := t.Content(content)
		name = strings.TrimPrefix(name, "*")
		return name
	}
	return ""
}
