// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package incremental

// ReverseDepGraph maps a symbol FQN to the set of symbols that reference
// it (callers, importers). Built once per snapshot by engine.ReverseDeps
// from the snapshot's Calls edges and treated as immutable for the life of
// that snapshot, mirroring
// the teacher's call-graph adjacency shape.
type ReverseDepGraph map[string][]string

// RebuildPlan is the transitive closure of invalidation computed from a
// classified changeset: every symbol whose analyses must be rebuilt.
type RebuildPlan struct {
	// Direct holds symbols changed in this changeset, keyed by their impact.
	Direct map[string]Impact
	// Transitive holds symbols invalidated only because something they
	// depend on changed (always carries SignatureChange or
	// StructuralChange semantics — LocalIR changes never propagate,
	// since a body-only edit cannot affect a caller's contract).
	Transitive map[string]bool
}

// AllSymbols returns every symbol the plan says must be rebuilt, direct and
// transitive together, deduplicated.
func (p *RebuildPlan) AllSymbols() []string {
	seen := make(map[string]bool, len(p.Direct)+len(p.Transitive))
	var out []string
	for id := range p.Direct {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for id := range p.Transitive {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// BuildPlan walks the reverse-dependency graph from every SignatureChange
// or StructuralChange symbol, invalidating every transitive referrer.
// NoImpact symbols contribute nothing; LocalIR symbols are rebuilt
// themselves but do not propagate further (spec §4.7: "body_hash changed,
// signature_hash unchanged -> LocalIR (rebuild body-only analyses)" — no
// caller invalidation is named for that case).
func BuildPlan(diffs []SymbolDiff, revDeps ReverseDepGraph) *RebuildPlan {
	plan := &RebuildPlan{
		Direct:     make(map[string]Impact),
		Transitive: make(map[string]bool),
	}

	var seeds []string
	for _, d := range diffs {
		if d.Impact == NoImpact {
			continue
		}
		plan.Direct[d.SymbolID] = d.Impact
		if d.Impact == SignatureChange || d.Impact == StructuralChange {
			seeds = append(seeds, d.SymbolID)
		}
	}

	visited := make(map[string]bool, len(seeds))
	queue := append([]string{}, seeds...)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, referrer := range revDeps[cur] {
			if visited[referrer] {
				continue
			}
			visited[referrer] = true
			if _, alreadyDirect := plan.Direct[referrer]; !alreadyDirect {
				plan.Transitive[referrer] = true
			}
			queue = append(queue, referrer)
		}
	}

	return plan
}
