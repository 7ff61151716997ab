// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package incremental

import "time"

// nowFunc is overridable in tests; defaults to time.Now.
var nowFunc = time.Now

// Pipeline runs the five-step incremental rebuild described in spec §4.7:
// hash, diff, build the invalidation plan, consult the RebuildCache, and
// record an audit trail. Executing the plan and writing the new snapshot
// are the caller's responsibility (internal/snapshot, internal/lang/*):
// this package only decides *what* needs rebuilding.
type Pipeline struct {
	cache *RebuildCache
	audit *auditRing
}

// NewPipeline builds a pipeline with the given RebuildCache. auditCapacity
// bounds the ring buffer exposed via RecentRuns (0 uses a sane default).
func NewPipeline(cache *RebuildCache, auditCapacity int) *Pipeline {
	return &Pipeline{cache: cache, audit: newAuditRing(auditCapacity)}
}

// Plan executes steps 1-4 for one changeset: diff against the previous
// snapshot's hashes, classify impact, compute the transitive rebuild plan,
// and consult the cache. snapshotID identifies the snapshot the new hashes
// belong to; revDeps is the reverse-dependency graph step 3 walks (the
// watch command passes the one built from the new snapshot).
func (p *Pipeline) Plan(snapshotID string, prev, next map[string]SymbolHash, revDeps ReverseDepGraph) *RebuildPlan {
	start := nowFunc()
	diffs := DiffSymbols(prev, next)

	hashes := make([]SymbolHash, 0, len(diffs))
	for _, d := range diffs {
		hashes = append(hashes, d.Hash)
	}
	changesetKey := SortedChangesetKey(snapshotID, hashes)

	if cached, ok := p.cache.Get(changesetKey); ok {
		p.audit.record(AuditRecord{
			RunID:         newRunID(),
			ChangesetHash: changesetKey,
			ImpactSummary: summarizeImpact(diffs),
			CacheHit:      true,
			Duration:      nowFunc().Sub(start),
			At:            start,
		})
		return cached
	}

	plan := BuildPlan(diffs, revDeps)
	p.cache.Put(changesetKey, plan)
	p.audit.record(AuditRecord{
		RunID:         newRunID(),
		ChangesetHash: changesetKey,
		ImpactSummary: summarizeImpact(diffs),
		CacheHit:      false,
		Duration:      nowFunc().Sub(start),
		At:            start,
	})
	return plan
}

// RecentRuns returns the most recent pipeline runs, most recent first.
func (p *Pipeline) RecentRuns() []AuditRecord {
	return p.audit.recent()
}
