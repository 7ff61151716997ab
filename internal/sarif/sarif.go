// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package sarif is the thin SARIF shell spec §1 names ("a SARIF serializer
// is a thin shell"): it translates internal/taint.AtomMatch and
// internal/interproc.TaintPath into SARIF 2.1.0, almost verbatim in shape
// to the teacher's output/sarif_formatter.go, adapted to this engine's
// finding types instead of dsl.EnrichedDetection.
package sarif

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	gosarif "github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/codeintel-oss/engine/internal/interproc"
	"github.com/codeintel-oss/engine/internal/ir"
	"github.com/codeintel-oss/engine/internal/taint"
)

// Report builds a SARIF document for a set of intra-procedural matches and
// interprocedural taint paths, resolving each entity's source location
// through the snapshot that produced them.
type Report struct {
	snapshot *ir.Snapshot
	rules    map[string]taint.AtomRule
}

// NewReport builds a Report. rules maps AtomRule.ID to its definition, used
// for severity/CWE/OWASP/description lookups the matches themselves don't
// carry.
func NewReport(snapshot *ir.Snapshot, rules map[string]taint.AtomRule) *Report {
	return &Report{snapshot: snapshot, rules: rules}
}

// Write serializes matches and taint paths as a SARIF 2.1.0 document.
func (r *Report) Write(w io.Writer, matches []taint.AtomMatch, paths []interproc.TaintPath) error {
	report, err := gosarif.New(gosarif.Version210)
	if err != nil {
		return err
	}
	run := gosarif.NewRunWithInformationURI("CodeIntel Engine", "https://github.com/codeintel-oss/engine")

	nodeByEntity := make(map[string]string, len(matches))
	for _, m := range matches {
		nodeByEntity[m.EntityID] = m.NodeID
	}

	r.buildRules(matches, run)
	for _, m := range matches {
		r.buildResult(m, run)
	}
	for _, p := range paths {
		r.buildPathResult(p, nodeByEntity, run)
	}

	report.AddRun(run)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(report)
}

func (r *Report) buildRules(matches []taint.AtomMatch, run *gosarif.Run) {
	seen := make(map[string]bool)
	for _, m := range matches {
		if seen[m.RuleID] {
			continue
		}
		seen[m.RuleID] = true

		rule, ok := r.rules[m.RuleID]
		if !ok {
			continue
		}

		desc := rule.Description
		if len(rule.CWE) > 0 || rule.OWASP != "" {
			var parts []string
			if len(rule.CWE) > 0 {
				parts = append(parts, strings.Join(rule.CWE, ", "))
			}
			if rule.OWASP != "" {
				parts = append(parts, rule.OWASP)
			}
			desc += " (" + strings.Join(parts, ", ") + ")"
		}

		sarifRule := run.AddRule(rule.ID).
			WithDescription(desc).
			WithName(rule.ID).
			WithHelpURI("https://github.com/codeintel-oss/engine")
		level := severityToLevel(rule.Severity)
		sarifRule.WithDefaultConfiguration(gosarif.NewReportingConfiguration().WithLevel(level))
		sarifRule.WithProperties(map[string]interface{}{
			"tags":              []string{"security"},
			"security-severity": severityToScore(rule.Severity),
			"precision":         "high",
		})
	}
}

func (r *Report) buildResult(m taint.AtomMatch, run *gosarif.Run) {
	node, doc, ok := r.snapshot.NodeByID(m.NodeID)
	if !ok {
		return
	}

	message := fmt.Sprintf("%s match (confidence %.0f%%)", m.Kind, m.Confidence*100)
	if m.Sanitized {
		message += " [sanitized]"
	}

	result := run.CreateResultForRule(m.RuleID).WithMessage(gosarif.NewTextMessage(message))
	result.AddLocation(locationFor(doc.FilePath, node.Span))
}

// buildPathResult resolves a TaintPath's entity IDs to IR nodes via
// nodeByEntity (built from the AtomMatch set that produced the path —
// TaintPath.SourceEntityID/SinkEntityID are entity IDs, not node IDs, so
// they cannot be looked up in the snapshot directly).
func (r *Report) buildPathResult(p interproc.TaintPath, nodeByEntity map[string]string, run *gosarif.Run) {
	srcNodeID, ok := nodeByEntity[p.SourceEntityID]
	if !ok {
		return
	}
	sinkNodeID, ok := nodeByEntity[p.SinkEntityID]
	if !ok {
		return
	}
	srcNode, srcDoc, srcOK := r.snapshot.NodeByID(srcNodeID)
	sinkNode, sinkDoc, sinkOK := r.snapshot.NodeByID(sinkNodeID)
	if !srcOK || !sinkOK {
		return
	}

	message := fmt.Sprintf("Tainted data flows from %s to %s via %s (confidence %.0f%%)",
		srcDoc.FilePath, sinkDoc.FilePath, strings.Join(p.CallChain, " -> "), p.Confidence*100)
	if p.Sanitized {
		message += " [sanitized]"
	}

	result := run.CreateResultForRule("interprocedural-taint").WithMessage(gosarif.NewTextMessage(message))
	result.AddLocation(locationFor(sinkDoc.FilePath, sinkNode.Span))

	sourceLoc := locationFor(srcDoc.FilePath, srcNode.Span).WithMessage(gosarif.NewTextMessage("taint source"))
	sinkLoc := locationFor(sinkDoc.FilePath, sinkNode.Span).WithMessage(gosarif.NewTextMessage("taint sink"))
	threadFlow := gosarif.NewThreadFlow().WithLocations([]*gosarif.ThreadFlowLocation{
		gosarif.NewThreadFlowLocation().WithLocation(sourceLoc),
		gosarif.NewThreadFlowLocation().WithLocation(sinkLoc),
	})
	codeFlow := gosarif.NewCodeFlow().
		WithThreadFlows([]*gosarif.ThreadFlow{threadFlow}).
		WithMessage(gosarif.NewTextMessage(message))
	result.WithCodeFlows([]*gosarif.CodeFlow{codeFlow})
}

func locationFor(filePath string, span ir.Span) *gosarif.Location {
	region := gosarif.NewRegion().WithStartLine(span.StartLine)
	if span.StartCol > 0 {
		region.WithStartColumn(span.StartCol)
	}
	return gosarif.NewLocation().WithPhysicalLocation(
		gosarif.NewPhysicalLocation().
			WithArtifactLocation(gosarif.NewArtifactLocation().WithUri(filePath)).
			WithRegion(region),
	)
}

func severityToLevel(s taint.Severity) string {
	switch s {
	case taint.SeverityCritical, taint.SeverityHigh:
		return "error"
	case taint.SeverityMedium:
		return "warning"
	default:
		return "note"
	}
}

func severityToScore(s taint.Severity) string {
	switch s {
	case taint.SeverityCritical:
		return "9.0"
	case taint.SeverityHigh:
		return "7.0"
	case taint.SeverityMedium:
		return "5.0"
	default:
		return "3.0"
	}
}
