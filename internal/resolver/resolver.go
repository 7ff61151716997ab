// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package resolver performs cross-file symbol resolution over a Snapshot,
// turning the unresolved call-site Occurrences each language plugin leaves
// behind into Calls edges. It never mutates an IRDocument: resolved edges
// go into Snapshot.GlobalEdges (spec §5 "No global mutation after
// emission"), the same split kraklabs-cie's CallResolver makes between its
// read-only per-file index and its separately accumulated CallsEdge slice.
package resolver

import (
	"path"
	"runtime"
	"strings"
	"sync"

	"github.com/codeintel-oss/engine/internal/ir"
)

// importEntry mirrors the alias/module shape each language plugin records
// on its Import nodes (python.emitImport, typescript.parseImportClause).
type importEntry struct {
	alias  string
	module string
}

// Resolver holds the read-only index built once per snapshot by Build, then
// answers ResolveCalls queries against it. Safe for concurrent read after
// Build returns, matching the teacher's "index is read-only after
// BuildIndex" invariant.
type Resolver struct {
	globalSymbols map[ir.Language]map[string]string   // FQN -> node ID, Function/Method/Class only
	bySimpleName  map[ir.Language]map[string][]string // last FQN segment -> candidate node IDs
	packageByDir  map[string]string                   // Go: directory -> package clause name
	fileImports   map[string][]importEntry            // file path -> import entries
	moduleFQN     map[string]string                   // file path -> owning Module/File node FQN
}

// Build indexes every document in the snapshot. Call once before
// ResolveCalls; the snapshot's documents must already be finalized
// (Canonicalize'd) by AddDocument.
func Build(snap *ir.Snapshot) *Resolver {
	r := &Resolver{
		globalSymbols: make(map[ir.Language]map[string]string),
		bySimpleName:  make(map[ir.Language]map[string][]string),
		packageByDir:  make(map[string]string),
		fileImports:   make(map[string][]importEntry),
		moduleFQN:     make(map[string]string),
	}

	for filePath, doc := range snap.Documents {
		for i := range doc.Nodes {
			n := &doc.Nodes[i]
			switch n.Kind {
			case ir.NodeFile, ir.NodeModule:
				r.moduleFQN[filePath] = n.FQN
				if pkg, ok := n.Attr("package"); ok {
					if pkgName, ok := pkg.(string); ok && pkgName != "" {
						r.packageByDir[path.Dir(filePath)] = pkgName
					}
				}
			case ir.NodeFunction, ir.NodeMethod, ir.NodeClass:
				r.addSymbol(n.Language, n.FQN, n.ID)
			case ir.NodeImport:
				r.fileImports[filePath] = append(r.fileImports[filePath], extractEntries(n)...)
			}
		}
	}
	return r
}

func (r *Resolver) addSymbol(lang ir.Language, fqn, id string) {
	if r.globalSymbols[lang] == nil {
		r.globalSymbols[lang] = make(map[string]string)
	}
	r.globalSymbols[lang][fqn] = id

	simple := fqn
	if idx := strings.LastIndex(fqn, "."); idx >= 0 {
		simple = fqn[idx+1:]
	}
	if r.bySimpleName[lang] == nil {
		r.bySimpleName[lang] = make(map[string][]string)
	}
	r.bySimpleName[lang][simple] = append(r.bySimpleName[lang][simple], id)
}

func extractEntries(n *ir.Node) []importEntry {
	raw, ok := n.Attr("entries")
	if !ok {
		return nil
	}
	list, ok := raw.([]map[string]string)
	if !ok {
		return nil
	}
	var out []importEntry
	for _, e := range list {
		out = append(out, importEntry{alias: e["alias"], module: e["module"]})
	}
	return out
}

// unresolvedCall mirrors kraklabs-cie's UnresolvedCall: a call site plus
// enough context (caller node, file, language) to resolve it.
type unresolvedCall struct {
	callerID string // source of the eventual Calls edge (the caller function/method)
	filePath string
	language ir.Language
	name     string
}

// ResolveCalls walks every document's unresolved Expression(call) nodes and
// returns the Calls edges the resolver could derive. Parallelizes above the
// same 1000-call threshold the teacher's CallResolver uses, since the index
// built by Build is read-only from this point on.
func (r *Resolver) ResolveCalls(snap *ir.Snapshot) []ir.Edge {
	var calls []unresolvedCall
	for _, doc := range snap.Documents {
		for i := range doc.Nodes {
			n := &doc.Nodes[i]
			if n.Kind != ir.NodeExpression || n.StringAttr("expr_kind") != "call" {
				continue
			}
			calls = append(calls, unresolvedCall{
				callerID: n.ParentID,
				filePath: doc.FilePath,
				language: n.Language,
				name:     n.StringAttr("call_name"),
			})
		}
	}

	if len(calls) < 1000 {
		return r.resolveSequential(calls)
	}
	return r.resolveParallel(calls)
}

func (r *Resolver) resolveSequential(calls []unresolvedCall) []ir.Edge {
	seen := make(map[string]bool)
	var edges []ir.Edge
	for _, c := range calls {
		if target, ok := r.resolveCall(c); ok {
			key := c.callerID + "->" + target
			if !seen[key] {
				seen[key] = true
				edges = append(edges, ir.NewEdge(ir.EdgeCalls, c.callerID, target, nil))
			}
		}
	}
	return edges
}

func (r *Resolver) resolveParallel(calls []unresolvedCall) []ir.Edge {
	workers := runtime.NumCPU()
	if workers > 8 {
		workers = 8
	}
	jobs := make(chan int, len(calls))
	type result struct{ caller, target string }
	results := make(chan result, len(calls))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if target, ok := r.resolveCall(calls[i]); ok {
					results <- result{caller: calls[i].callerID, target: target}
				}
			}
		}()
	}
	for i := range calls {
		jobs <- i
	}
	close(jobs)
	go func() { wg.Wait(); close(results) }()

	seen := make(map[string]bool)
	var edges []ir.Edge
	for res := range results {
		key := res.caller + "->" + res.target
		if !seen[key] {
			seen[key] = true
			edges = append(edges, ir.NewEdge(ir.EdgeCalls, res.caller, res.target, nil))
		}
	}
	return edges
}

func (r *Resolver) resolveCall(c unresolvedCall) (string, bool) {
	if c.callerID == "" || c.name == "" {
		return "", false
	}

	if strings.Contains(c.name, ".") {
		return r.resolveQualified(c)
	}
	return r.resolveUnqualified(c)
}

func (r *Resolver) resolveQualified(c unresolvedCall) (string, bool) {
	parts := strings.SplitN(c.name, ".", 2)
	alias, rest := parts[0], parts[1]
	if idx := strings.LastIndex(rest, "."); idx >= 0 {
		rest = rest[idx+1:]
	}
	if c.language == ir.LangGo && !isExportedName(rest) {
		return "", false
	}

	for _, imp := range r.fileImports[c.filePath] {
		if imp.alias != alias {
			continue
		}
		targetFQN, ok := r.resolveImportToFQN(c.language, c.filePath, imp.module)
		if !ok {
			continue
		}
		if id, ok := r.globalSymbols[c.language][targetFQN+"."+rest]; ok {
			return id, true
		}
	}
	return "", false
}

func (r *Resolver) resolveUnqualified(c unresolvedCall) (string, bool) {
	if mod, ok := r.moduleFQN[c.filePath]; ok {
		if id, ok := r.globalSymbols[c.language][mod+"."+c.name]; ok {
			return id, true
		}
	}
	for _, imp := range r.fileImports[c.filePath] {
		if imp.alias != c.name && imp.alias != "*" {
			continue
		}
		if id, ok := r.globalSymbols[c.language][imp.module+"."+c.name]; ok {
			return id, true
		}
	}
	// Last resort: a unique same-language symbol with this simple name.
	// Deliberately conservative — ambiguous names (len > 1) stay unresolved
	// rather than guessing, matching spec §4.3's preference for silence
	// over a wrong edge.
	if ids := r.bySimpleName[c.language][c.name]; len(ids) == 1 {
		return ids[0], true
	}
	return "", false
}

// resolveImportToFQN maps an import's module/path string to the FQN prefix
// used by declarations in that module. Go is the hard case: declarations
// are keyed by package *name*, not import path, so this guesses the target
// package the same way kraklabs-cie's findPackageByImportPath does —
// suffix-matching the import path against known source directories.
func (r *Resolver) resolveImportToFQN(lang ir.Language, fromFile, module string) (string, bool) {
	switch lang {
	case ir.LangGo:
		for dir, pkgName := range r.packageByDir {
			if strings.HasSuffix(module, dir) || path.Base(module) == pkgName {
				return pkgName, true
			}
		}
		return "", false
	default:
		// Python/TypeScript: local modules already use a dotted-path FQN
		// matching their file path, so only strip a relative prefix.
		mod := strings.TrimPrefix(module, "./")
		mod = strings.ReplaceAll(mod, "/", ".")
		for _, fqn := range r.moduleFQN {
			if fqn == mod || strings.HasSuffix(fqn, "."+mod) {
				return fqn, true
			}
		}
		return "", false
	}
}

func isExportedName(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z'
}
