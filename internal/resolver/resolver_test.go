// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeintel-oss/engine/internal/ir"
	"github.com/codeintel-oss/engine/internal/lang/golang"
)

const callerSrc = `package app

import "example.com/app/util"

func Handle() string {
	return util.Format("x")
}
`

const calleeSrc = `package util

func Format(s string) string {
	return s
}
`

func buildSnapshot(t *testing.T) *ir.Snapshot {
	t.Helper()
	p, err := golang.NewParser()
	require.NoError(t, err)

	snap := ir.NewSnapshot("repo", "test")

	callerTree, err := p.Parse(context.Background(), []byte(callerSrc))
	require.NoError(t, err)
	snap.AddDocument(golang.Generate(callerTree, "app/handle.go"))

	calleeTree, err := p.Parse(context.Background(), []byte(calleeSrc))
	require.NoError(t, err)
	snap.AddDocument(golang.Generate(calleeTree, "app/util/format.go"))

	snap.ComputeID()
	return snap
}

func TestResolveCallsAcrossFiles(t *testing.T) {
	snap := buildSnapshot(t)
	r := Build(snap)
	edges := r.ResolveCalls(snap)

	require.NotEmpty(t, edges, "expected the util.Format call to resolve")
	target, _, ok := snap.NodeByID(edges[0].TargetID)
	require.True(t, ok)
	assert.Equal(t, "util.Format", target.FQN)
}
