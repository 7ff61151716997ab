// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package engine wires the Layered IR Builder, Taint Rule Compiler &
// Matcher, and Query Engine into the single build pipeline spec §5
// describes: discover files, parse them in parallel, assemble a snapshot,
// resolve cross-file calls, extract taint entities, and match compiled
// rules. Grounded on the teacher's cmd/scan.go orchestration shape
// (graph.Initialize -> registry.BuildModuleRegistry -> builder.BuildCallGraph
// -> loader.ExecuteRule), generalized from its Python-DSL rule execution
// into calls against internal/taint and internal/interproc.
package engine

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/codeintel-oss/engine/internal/config"
	"github.com/codeintel-oss/engine/internal/interproc"
	"github.com/codeintel-oss/engine/internal/ir"
	"github.com/codeintel-oss/engine/internal/lang/golang"
	"github.com/codeintel-oss/engine/internal/lang/python"
	"github.com/codeintel-oss/engine/internal/lang/typescript"
	"github.com/codeintel-oss/engine/internal/metrics"
	"github.com/codeintel-oss/engine/internal/parserregistry"
	"github.com/codeintel-oss/engine/internal/resolver"
	"github.com/codeintel-oss/engine/internal/taint"
)

// NewRegistry builds a parser registry with every language plugin this
// binary ships registered. Grammars themselves are lazy-loaded per
// parserregistry.Registry.ParserFor; registering here only binds
// extensions to factories.
func NewRegistry() *parserregistry.Registry {
	reg := parserregistry.New()
	golang.Register(reg)
	python.Register(reg)
	typescript.Register(reg)
	return reg
}

// Result is everything one build pass produces, handed to the CLI for
// reporting, to internal/sarif for serialization, and to internal/snapshot
// for persistence.
type Result struct {
	Snapshot *ir.Snapshot
	Matches  []taint.AtomMatch
	Paths    []interproc.TaintPath
}

// Build discovers, parses, resolves, and matches rules over repoRoot in
// one pass (spec §5's "fast" path, with no incremental reuse). cfg governs
// file-size limits and worker-pool width; rules is the already-compiled
// atom set from internal/taint.Load.
func Build(ctx context.Context, repoRoot string, cfg *config.Config, reg *parserregistry.Registry, rules []taint.AtomRule) (*Result, error) {
	metrics.BuildStarted()

	files, err := reg.Discover(repoRoot, cfg.MaxFileSizeBytes, nil, nil)
	if err != nil {
		metrics.BuildFailed()
		return nil, fmt.Errorf("discover files: %w", err)
	}

	snap := ir.NewSnapshot(repoRoot, "dev")
	docs := make([]*ir.IRDocument, len(files))

	workers := cfg.ParallelWorkers
	if workers <= 0 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			doc, err := parseOne(gctx, reg, f)
			if err != nil {
				return fmt.Errorf("parse %s: %w", f.Path, err)
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		metrics.BuildFailed()
		return nil, err
	}

	parsed := 0
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		snap.AddDocument(doc)
		parsed += len(doc.Nodes)
	}
	metrics.SymbolsParsed(parsed)

	res := resolver.Build(snap)
	snap.GlobalEdges = append(snap.GlobalEdges, res.ResolveCalls(snap)...)

	entities, entityOwner := ExtractEntities(snap)
	matcher := taint.NewMatcher(entities)
	matches := matcher.Match(rules)
	for range matches {
		metrics.TaintMatch()
	}

	ruleByID := make(map[string]taint.AtomRule, len(rules))
	for _, r := range rules {
		ruleByID[r.ID] = r
	}
	ApplyTaintTags(snap, matches, ruleByID)

	analyzer := interproc.NewAnalyzer(snap, matches, entityOwner, 0)
	paths := analyzer.FindPaths(matches)
	for range paths {
		metrics.TaintPath()
	}

	metrics.BuildCompleted(0)
	return &Result{Snapshot: snap, Matches: matches, Paths: paths}, nil
}

func parseOne(ctx context.Context, reg *parserregistry.Registry, f parserregistry.DiscoveredFile) (*ir.IRDocument, error) {
	content, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, err
	}
	content = parserregistry.StripBOM(content)

	parser, err := reg.ParserFor(f.Language)
	if err != nil {
		return nil, err
	}
	tree, err := parser.Parse(ctx, content)
	if err != nil {
		return nil, err
	}

	switch f.Language {
	case ir.LangGo:
		return golang.Generate(tree, f.Path), nil
	case ir.LangPython:
		return python.Generate(tree, f.Path), nil
	case ir.LangTypeScript, ir.LangJavaScript:
		return typescript.Generate(tree, f.Path), nil
	default:
		return nil, fmt.Errorf("no structural generator for language %q", f.Language)
	}
}
