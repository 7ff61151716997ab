// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package incremental

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// AuditRecord captures one pipeline run for observability/replay, grounded
// on the original implementation's replay_audit domain model
// (AuditRecord{ChangesetHash, ImpactSummary, CacheHit, Duration}) — ambient
// observability carried forward as a ring buffer rather than a durable
// audit store, since persistence backends are out of scope here. RunID
// correlates a record with logs/traces from the same pipeline run; it has
// no bearing on the changeset hash, which stays content-addressed.
type AuditRecord struct {
	RunID         string
	ChangesetHash string
	ImpactSummary map[string]int // Impact.String() -> count
	CacheHit      bool
	Duration      time.Duration
	At            time.Time
}

// newRunID mints a run-correlation identifier for one AuditRecord.
func newRunID() string {
	return uuid.NewString()
}

// auditRing is a small fixed-capacity ring buffer of the most recent runs.
type auditRing struct {
	mu       sync.Mutex
	entries  []AuditRecord
	capacity int
	next     int
	filled   bool
}

func newAuditRing(capacity int) *auditRing {
	if capacity <= 0 {
		capacity = 64
	}
	return &auditRing{entries: make([]AuditRecord, capacity), capacity: capacity}
}

func (r *auditRing) record(rec AuditRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[r.next] = rec
	r.next = (r.next + 1) % r.capacity
	if r.next == 0 {
		r.filled = true
	}
}

// recent returns the stored records, most recent first.
func (r *auditRing) recent() []AuditRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := r.next
	if r.filled {
		n = r.capacity
	}
	out := make([]AuditRecord, 0, n)
	for i := 0; i < n; i++ {
		idx := r.next - 1 - i
		if idx < 0 {
			idx += r.capacity
		}
		out = append(out, r.entries[idx])
	}
	return out
}

func summarizeImpact(diffs []SymbolDiff) map[string]int {
	summary := make(map[string]int)
	for _, d := range diffs {
		summary[d.Impact.String()]++
	}
	return summary
}
