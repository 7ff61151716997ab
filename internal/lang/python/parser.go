// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package python implements the Python language plugin, following the same
// tree-sitter-wrapper-plus-structural-generator split as internal/lang/golang.
package python

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/codeintel-oss/engine/internal/ir"
	"github.com/codeintel-oss/engine/internal/parserregistry"
)

// Parser implements parserregistry.Parser for Python source.
type Parser struct {
	sitterLang *sitter.Language
}

// NewParser constructs the Python plugin.
func NewParser() (parserregistry.Parser, error) {
	return &Parser{sitterLang: python.GetLanguage()}, nil
}

// Language implements parserregistry.Parser.
func (p *Parser) Language() ir.Language { return ir.LangPython }

// Parse implements parserregistry.Parser.
func (p *Parser) Parse(ctx context.Context, content []byte) (*parserregistry.ParseTree, error) {
	content = parserregistry.StripBOM(content)

	sp := sitter.NewParser()
	sp.SetLanguage(p.sitterLang)
	tree, err := sp.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("python: tree-sitter parse: %w", err)
	}

	root := tree.RootNode()
	errCount := countErrorNodes(root)

	return &parserregistry.ParseTree{
		Language:   ir.LangPython,
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
