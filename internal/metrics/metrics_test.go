// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestBuildCompletedIncrementsCounterAndObservesDuration(t *testing.T) {
	BuildStarted()
	BuildCompleted(1.5)

	if got := testutil.ToFloat64(m.buildsStarted); got != 1 {
		t.Fatalf("expected buildsStarted == 1, got %v", got)
	}
	if got := testutil.ToFloat64(m.buildsCompleted); got != 1 {
		t.Fatalf("expected buildsCompleted == 1, got %v", got)
	}
}

func TestIncrementalPlanRecordsHitAndMiss(t *testing.T) {
	before := testutil.ToFloat64(m.incrementalHits)
	IncrementalPlan(true, 3, 0.01)
	after := testutil.ToFloat64(m.incrementalHits)
	if after != before+1 {
		t.Fatalf("expected incrementalHits to increase by 1, got %v -> %v", before, after)
	}
}

func TestQueryAbortedIncrementsCounter(t *testing.T) {
	before := testutil.ToFloat64(m.queriesAborted)
	QueryAborted()
	after := testutil.ToFloat64(m.queriesAborted)
	if after != before+1 {
		t.Fatalf("expected queriesAborted to increase by 1, got %v -> %v", before, after)
	}
}
