// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package golang

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeintel-oss/engine/internal/ir"
)

const sampleSource = `package greeter

import (
	"fmt"
)

type Greeter struct {
	Name string
}

func (g *Greeter) Greet() string {
	return fmt.Sprintf("hello %s", g.Name)
}

func New(name string) *Greeter {
	return &Greeter{Name: name}
}
`

func parseSample(t *testing.T) *ir.IRDocument {
	t.Helper()
	p, err := NewParser()
	require.NoError(t, err)
	tree, err := p.Parse(context.Background(), []byte(sampleSource))
	require.NoError(t, err)
	require.False(t, tree.IsPartial)
	return Generate(tree, "greeter.go")
}

func TestGenerateEmitsFileAndDeclarations(t *testing.T) {
	doc := parseSample(t)

	var kinds []ir.NodeKind
	for _, n := range doc.Nodes {
		kinds = append(kinds, n.Kind)
	}
	assert.Contains(t, kinds, ir.NodeFile)
	assert.Contains(t, kinds, ir.NodeImport)
	assert.Contains(t, kinds, ir.NodeClass)
	assert.Contains(t, kinds, ir.NodeMethod)
	assert.Contains(t, kinds, ir.NodeFunction)
	assert.Contains(t, kinds, ir.NodeField)
}

func TestGenerateMethodHasReceiverType(t *testing.T) {
	doc := parseSample(t)
	var method *ir.Node
	for i := range doc.Nodes {
		if doc.Nodes[i].Kind == ir.NodeMethod {
			method = &doc.Nodes[i]
		}
	}
	require.NotNil(t, method)
	assert.Equal(t, "Greeter", method.StringAttr("receiver_type"))
	assert.Equal(t, "greeter.Greeter.Greet", method.FQN)
}

func TestGenerateIsDeterministicAcrossRuns(t *testing.T) {
	docA := parseSample(t)
	docB := parseSample(t)
	require.Equal(t, len(docA.Nodes), len(docB.Nodes))
	for i := range docA.Nodes {
		assert.Equal(t, docA.Nodes[i].ID, docB.Nodes[i].ID)
	}
}

func TestGenerateRecordsCallOccurrence(t *testing.T) {
	doc := parseSample(t)
	found := false
	for _, occ := range doc.Occurrences {
		if occ.Name == "fmt.Sprintf" && occ.Role == ir.RoleReference {
			found = true
		}
	}
	assert.True(t, found, "expected a reference occurrence for fmt.Sprintf call")
}

func TestGenerateRecordsCallArguments(t *testing.T) {
	doc := parseSample(t)
	var call *ir.Node
	for i := range doc.Nodes {
		if doc.Nodes[i].StringAttr("call_name") == "fmt.Sprintf" {
			call = &doc.Nodes[i]
		}
	}
	require.NotNil(t, call)
	args, _ := call.Attr("args")
	list, _ := args.([]string)
	require.Len(t, list, 2)
	assert.Equal(t, `"hello %s"`, list[0])
	assert.Equal(t, "g.Name", list[1])
}
