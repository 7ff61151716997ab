// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package typescript implements the TypeScript/JSX language plugin. It is
// the one plugin that also emits TemplateSlots (spec §4.2), since TSX
// embeds a template language (JSX) directly in the same syntax tree.
package typescript

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"

	"github.com/codeintel-oss/engine/internal/ir"
	"github.com/codeintel-oss/engine/internal/parserregistry"
)

// Parser implements parserregistry.Parser for TypeScript/TSX/JavaScript/JSX
// source. One grammar is picked per file extension (Register wires .ts and
// .tsx to the TSX grammar, which also parses JSX, and .js/.jsx/.mjs/.cjs
// to the JavaScript one),
// following the same extension-to-grammar split the pack's multi-language
// parsers use.
type Parser struct {
	sitterLang *sitter.Language
	lang       ir.Language
}

// NewParser constructs the TypeScript/TSX plugin.
func NewParser() (parserregistry.Parser, error) {
	return &Parser{sitterLang: tsx.GetLanguage(), lang: ir.LangTypeScript}, nil
}

// NewJavaScriptParser constructs the sibling JavaScript plugin, sharing the
// structural generator since JS is a syntactic subset of the TS grammar's
// surface this package walks.
func NewJavaScriptParser() (parserregistry.Parser, error) {
	return &Parser{sitterLang: javascript.GetLanguage(), lang: ir.LangJavaScript}, nil
}

// Language implements parserregistry.Parser.
func (p *Parser) Language() ir.Language { return p.lang }

// Parse implements parserregistry.Parser.
func (p *Parser) Parse(ctx context.Context, content []byte) (*parserregistry.ParseTree, error) {
	content = parserregistry.StripBOM(content)

	sp := sitter.NewParser()
	sp.SetLanguage(p.sitterLang)
	tree, err := sp.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("%s: tree-sitter parse: %w", p.lang, err)
	}

	root := tree.RootNode()
	errCount := countErrorNodes(root)

	return &parserregistry.ParseTree{
		Language:   p.lang,
		Content:    content,
		Root:       root,
		IsPartial:  errCount > 0,
		ErrorCount: errCount,
	}, nil
}

func countErrorNodes(n *sitter.Node) int {
	if n == nil {
		return 0
	}
	count := 0
	if n.IsError() || n.IsMissing() {
		count++
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		count += countErrorNodes(n.Child(i))
	}
	return count
}
