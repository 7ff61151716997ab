// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package metrics exposes Prometheus counters and histograms for the
// build/query/incremental subsystems, grounded on kraklabs-cie's
// pkg/ingestion/metrics.go lazy-registration pattern: a single package-level
// struct, registered exactly once via sync.Once on first use, so importing
// this package never forces a metrics server on callers that don't start
// one.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type engineMetrics struct {
	once sync.Once

	// Build pipeline.
	buildsStarted   prometheus.Counter
	buildsCompleted prometheus.Counter
	buildsFailed    prometheus.Counter
	symbolsParsed   prometheus.Counter

	// Incremental pipeline.
	incrementalHits    prometheus.Counter
	incrementalMisses  prometheus.Counter
	invalidatedSymbols prometheus.Counter

	// Taint matcher.
	taintMatches prometheus.Counter
	taintPaths   prometheus.Counter

	// Query engine.
	queriesExecuted prometheus.Counter
	queriesAborted  prometheus.Counter

	// L1 cache.
	cacheEvictions prometheus.Counter

	// Durations.
	buildDuration     prometheus.Histogram
	incrementalPlanMs prometheus.Histogram
	queryDuration     prometheus.Histogram
}

var m engineMetrics

func (m *engineMetrics) init() {
	m.once.Do(func() {
		m.buildsStarted = prometheus.NewCounter(prometheus.CounterOpts{Name: "codeintel_builds_started_total", Help: "Builds started"})
		m.buildsCompleted = prometheus.NewCounter(prometheus.CounterOpts{Name: "codeintel_builds_completed_total", Help: "Builds completed successfully"})
		m.buildsFailed = prometheus.NewCounter(prometheus.CounterOpts{Name: "codeintel_builds_failed_total", Help: "Builds that failed"})
		m.symbolsParsed = prometheus.NewCounter(prometheus.CounterOpts{Name: "codeintel_symbols_parsed_total", Help: "Symbols parsed into IR"})

		m.incrementalHits = prometheus.NewCounter(prometheus.CounterOpts{Name: "codeintel_incremental_cache_hits_total", Help: "Rebuild plan cache hits"})
		m.incrementalMisses = prometheus.NewCounter(prometheus.CounterOpts{Name: "codeintel_incremental_cache_misses_total", Help: "Rebuild plan cache misses"})
		m.invalidatedSymbols = prometheus.NewCounter(prometheus.CounterOpts{Name: "codeintel_invalidated_symbols_total", Help: "Symbols invalidated by a rebuild plan"})

		m.taintMatches = prometheus.NewCounter(prometheus.CounterOpts{Name: "codeintel_taint_matches_total", Help: "Taint atom rule matches"})
		m.taintPaths = prometheus.NewCounter(prometheus.CounterOpts{Name: "codeintel_taint_paths_total", Help: "Interprocedural taint paths found"})

		m.queriesExecuted = prometheus.NewCounter(prometheus.CounterOpts{Name: "codeintel_queries_executed_total", Help: "Queries executed"})
		m.queriesAborted = prometheus.NewCounter(prometheus.CounterOpts{Name: "codeintel_queries_aborted_total", Help: "Queries aborted on budget exhaustion"})

		m.cacheEvictions = prometheus.NewCounter(prometheus.CounterOpts{Name: "codeintel_l1_cache_evictions_total", Help: "L1 IR cache entries evicted"})

		buckets := []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}
		m.buildDuration = prometheus.NewHistogram(prometheus.HistogramOpts{Name: "codeintel_build_seconds", Help: "Build duration", Buckets: buckets})
		m.incrementalPlanMs = prometheus.NewHistogram(prometheus.HistogramOpts{Name: "codeintel_incremental_plan_seconds", Help: "Rebuild plan computation duration", Buckets: buckets})
		m.queryDuration = prometheus.NewHistogram(prometheus.HistogramOpts{Name: "codeintel_query_seconds", Help: "Query execution duration", Buckets: buckets})

		prometheus.MustRegister(
			m.buildsStarted, m.buildsCompleted, m.buildsFailed, m.symbolsParsed,
			m.incrementalHits, m.incrementalMisses, m.invalidatedSymbols,
			m.taintMatches, m.taintPaths,
			m.queriesExecuted, m.queriesAborted,
			m.cacheEvictions,
			m.buildDuration, m.incrementalPlanMs, m.queryDuration,
		)
	})
}

// BuildStarted records the start of a build.
func BuildStarted() { m.init(); m.buildsStarted.Inc() }

// BuildCompleted records a build finishing successfully, with its wall-clock
// duration in seconds.
func BuildCompleted(seconds float64) {
	m.init()
	m.buildsCompleted.Inc()
	m.buildDuration.Observe(seconds)
}

// BuildFailed records a build that did not complete.
func BuildFailed() { m.init(); m.buildsFailed.Inc() }

// SymbolsParsed adds n to the count of symbols parsed into IR.
func SymbolsParsed(n int) { m.init(); m.symbolsParsed.Add(float64(n)) }

// IncrementalPlan records one Pipeline.Plan invocation: whether it was
// served from the rebuild cache, how many symbols its plan invalidated, and
// how long the computation took.
func IncrementalPlan(hit bool, invalidated int, seconds float64) {
	m.init()
	if hit {
		m.incrementalHits.Inc()
	} else {
		m.incrementalMisses.Inc()
	}
	m.invalidatedSymbols.Add(float64(invalidated))
	m.incrementalPlanMs.Observe(seconds)
}

// TaintMatch records one taint.AtomMatch found.
func TaintMatch() { m.init(); m.taintMatches.Inc() }

// TaintPath records one interproc.TaintPath found.
func TaintPath() { m.init(); m.taintPaths.Inc() }

// QueryExecuted records a query run to completion.
func QueryExecuted(seconds float64) {
	m.init()
	m.queriesExecuted.Inc()
	m.queryDuration.Observe(seconds)
}

// QueryAborted records a query aborted for exceeding its budget.
func QueryAborted() { m.init(); m.queriesAborted.Inc() }

// CacheEviction records one L1Cache entry evicted.
func CacheEviction() { m.init(); m.cacheEvictions.Inc() }
