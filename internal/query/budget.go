// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package query

import "time"

// Budget bounds a path query's cost (spec §4.6).
type Budget struct {
	MaxNodes  int
	MaxEdges  int
	MaxPaths  int
	MaxDepth  int
	Timeout   time.Duration
}

// Preset budgets named in spec §4.6 ("three presets: light/default/heavy").
var (
	BudgetLight = Budget{MaxNodes: 2_000, MaxEdges: 5_000, MaxPaths: 50, MaxDepth: 12, Timeout: 500 * time.Millisecond}
	BudgetDefault = Budget{MaxNodes: 20_000, MaxEdges: 60_000, MaxPaths: 500, MaxDepth: 40, Timeout: 5 * time.Second}
	BudgetHeavy = Budget{MaxNodes: 200_000, MaxEdges: 800_000, MaxPaths: 5_000, MaxDepth: 120, Timeout: 60 * time.Second}
)

// tracker accumulates consumption against a Budget during one search.
type tracker struct {
	budget     Budget
	deadline   time.Time
	nodesSeen  int
	edgesSeen  int
	pathsFound int
	truncated  bool
}

// isZero reports whether b bounds nothing at all: every dimension left at
// its zero value. A zero Budget is not "unbounded" (spec §8: "Budget set to
// zero -> query returns empty PathSet with budget_exhausted=true").
func (b Budget) isZero() bool {
	return b.MaxNodes == 0 && b.MaxEdges == 0 && b.MaxPaths == 0 && b.MaxDepth == 0 && b.Timeout == 0
}

func newTracker(b Budget, now time.Time) *tracker {
	t := &tracker{budget: b, truncated: b.isZero()}
	if b.Timeout > 0 {
		t.deadline = now.Add(b.Timeout)
	}
	return t
}

// markTruncated flags the search as cut short by a bound that exhausted()
// alone can't see (spec §4.6's max_depth, the fifth named bound).
func (t *tracker) markTruncated() {
	t.truncated = true
}

// exhausted reports whether any budget dimension has been exceeded.
func (t *tracker) exhausted(now time.Time) bool {
	if t.truncated {
		return true
	}
	if t.budget.MaxNodes > 0 && t.nodesSeen > t.budget.MaxNodes {
		return true
	}
	if t.budget.MaxEdges > 0 && t.edgesSeen > t.budget.MaxEdges {
		return true
	}
	if t.budget.MaxPaths > 0 && t.pathsFound >= t.budget.MaxPaths {
		return true
	}
	if !t.deadline.IsZero() && now.After(t.deadline) {
		return true
	}
	return false
}
