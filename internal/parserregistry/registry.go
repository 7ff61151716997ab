// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package parserregistry maps file extensions to languages and languages to
// lazily-constructed parser instances (spec §4.1). It is the single source
// of truth other subsystems consult to find out "what language is this
// file, and who parses it" — generalized from the teacher's hardcoded
// extension switch (graph/parser_compose.go) into an explicit registration
// API per SPEC_FULL.md §C.2, so a new language plugin can register itself
// without editing this package.
package parserregistry

import (
	"context"
	"fmt"
	"sync"

	"github.com/codeintel-oss/engine/internal/ir"
)

// ParseTree wraps a concrete-syntax tree with the metadata the rest of the
// pipeline needs without caring which tree-sitter grammar produced it.
type ParseTree struct {
	Language   ir.Language
	Content    []byte
	Root       any // *sitter.Node, kept as `any` so this package has no hard tree-sitter dependency
	IsPartial  bool
	ErrorCount int
}

// Parser is implemented once per language plugin (internal/lang/*).
type Parser interface {
	Language() ir.Language
	// Parse returns a ParseTree. It must never return an error for
	// malformed input — spec §4.1: "The registry never raises on
	// malformed input". A genuine I/O error from ctx cancellation is the
	// only legitimate error return.
	Parse(ctx context.Context, content []byte) (*ParseTree, error)
}

// ParserFactory lazily constructs a Parser the first time its language is
// needed, so grammars nobody uses in a given run are never loaded.
type ParserFactory func() (Parser, error)

// Registry is the extension→language→parser table. Safe for concurrent
// use: the per-file parallel parsing worker pool (spec §5) calls
// ParserFor/ParserForExt from many goroutines.
type Registry struct {
	mu          sync.RWMutex
	extToLang   map[string]ir.Language
	factories   map[ir.Language]ParserFactory
	instances   map[ir.Language]Parser
}

// New returns an empty registry. Use Register to populate it; see
// internal/lang/*/register.go for the language plugins this binary ships.
func New() *Registry {
	return &Registry{
		extToLang: make(map[string]ir.Language),
		factories: make(map[ir.Language]ParserFactory),
		instances: make(map[ir.Language]Parser),
	}
}

// Register binds a language to its file extensions and parser factory.
// Calling Register twice for the same language replaces the factory and
// drops any cached instance, which is convenient for tests that want to
// swap in a fake parser.
func (r *Registry) Register(lang ir.Language, exts []string, factory ParserFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ext := range exts {
		r.extToLang[ext] = lang
	}
	r.factories[lang] = factory
	delete(r.instances, lang)
}

// LanguageForExt looks up the language registered for a file extension
// (including the leading dot, e.g. ".go").
func (r *Registry) LanguageForExt(ext string) (ir.Language, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lang, ok := r.extToLang[ext]
	return lang, ok
}

// ParserFor lazily constructs (or returns the cached) parser for a
// language. The re-entrant lock shape matches spec §5's "Parser Registry
// lazy-loads and caches parser instances; the cache is guarded by a
// re-entrant lock" — Go has no built-in reentrant mutex, so construction
// happens outside the lock to avoid self-deadlock if a factory ever
// recurses into the registry.
func (r *Registry) ParserFor(lang ir.Language) (Parser, error) {
	r.mu.RLock()
	if p, ok := r.instances[lang]; ok {
		r.mu.RUnlock()
		return p, nil
	}
	factory, ok := r.factories[lang]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("parserregistry: no factory registered for language %q", lang)
	}

	p, err := factory()
	if err != nil {
		return nil, fmt.Errorf("parserregistry: construct parser for %q: %w", lang, err)
	}

	r.mu.Lock()
	// Another goroutine may have constructed one concurrently; keep the
	// first winner so all callers share one parser instance.
	if existing, ok := r.instances[lang]; ok {
		r.mu.Unlock()
		return existing, nil
	}
	r.instances[lang] = p
	r.mu.Unlock()
	return p, nil
}

// ParserForExt is the common case: resolve the extension to a language and
// hand back its parser in one call.
func (r *Registry) ParserForExt(ext string) (Parser, ir.Language, error) {
	lang, ok := r.LanguageForExt(ext)
	if !ok {
		return nil, "", fmt.Errorf("parserregistry: no language registered for extension %q", ext)
	}
	p, err := r.ParserFor(lang)
	return p, lang, err
}
