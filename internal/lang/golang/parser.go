// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package golang implements the Go language plugin: a tree-sitter backed
// parser plus the structural IR generator that walks its CST. Grounded on
// the teacher's graph/parser_golang.go and graph/golang/*.go, generalized
// from the teacher's single hardcoded Go-only pipeline into one of several
// plugins registered with internal/parserregistry.
package golang

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/codeintel-oss/engine/internal/ir"
	"github.com/codeintel-oss/engine/internal/parserregistry"
)

// Parser implements parserregistry.Parser for Go source using tree-sitter.
type Parser struct {
	sitterLang *sitter.Language
}

// NewParser constructs the Go parser plugin. Construction is cheap; the
// registry caches the instance it returns, so this normally runs once per
// registry (concurrent first lookups may each construct one, and Register
// drops the cached instance).
func NewParser() (parserregistry.Parser, error) {
	return &Parser{sitterLang: golang.GetLanguage()}, nil
}

// Language implements parserregistry.Parser.
func (p *Parser) Language() ir.Language { return ir.LangGo }

// Parse implements parserregistry.Parser. It never fails on malformed
// input (spec §4.1) — tree-sitter's error-recovery parser always returns a
// tree; this function classifies how damaged that tree is instead of
// returning an error for it.
func (p *Parser) Parse(ctx context.Context, content []byte) (*parserregistry.ParseTree, error) {
	content = parserregistry.StripBOM(content)

	sp := sitter.NewParser()
	sp.SetLanguage(p.sitterLang)
	tree, err := sp.ParseCtx(ctx, nil, content)
	if err != nil {
		// Only a cancelled context or similarly genuine I/O failure
		// reaches here; tree-sitter itself does not error on bad syntax.
		return nil, fmt.Errorf("golang: tree-sitter parse: %w", err)
	}

	root := tree.RootNode()
	errCount := countErrorNodes(root)

	return &parserregistry.ParseTree{
		Language:   ir.LangGo,
		Content:    content,
		Root:       root,
		IsPartial:  errCount > 0,
		ErrorCount: errCount,
	}, nil
}

// countErrorNodes walks the tree counting tree-sitter ERROR/MISSING nodes,
// the signal spec §4.1 calls out as `error_count`.
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
