// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package python

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeintel-oss/engine/internal/ir"
)

const sampleSource = `import os
from flask import request


class UserService(object):
    def lookup(self, user_id):
        query = "SELECT * FROM users WHERE id = %s" % user_id
        return db.execute(query)


def handler():
    service = UserService()
    return service.lookup(request.args.get("id"))
`

func parseSample(t *testing.T) *ir.IRDocument {
	t.Helper()
	p, err := NewParser()
	require.NoError(t, err)
	tree, err := p.Parse(context.Background(), []byte(sampleSource))
	require.NoError(t, err)
	require.False(t, tree.IsPartial)
	return Generate(tree, "app/handlers.py")
}

func TestGenerateModuleFQNFromPath(t *testing.T) {
	doc := parseSample(t)
	var module *ir.Node
	for i := range doc.Nodes {
		if doc.Nodes[i].Kind == ir.NodeModule {
			module = &doc.Nodes[i]
		}
	}
	require.NotNil(t, module)
	assert.Equal(t, "app.handlers", module.FQN)
}

func TestGenerateClassAndMethodNesting(t *testing.T) {
	doc := parseSample(t)
	var class, method *ir.Node
	for i := range doc.Nodes {
		switch {
		case doc.Nodes[i].Kind == ir.NodeClass:
			class = &doc.Nodes[i]
		case doc.Nodes[i].Kind == ir.NodeMethod:
			method = &doc.Nodes[i]
		}
	}
	require.NotNil(t, class)
	require.NotNil(t, method)
	assert.Equal(t, "app.handlers.UserService", class.FQN)
	assert.Equal(t, class.ID, method.ParentID)
}

func TestGenerateBaseClassInheritsEdge(t *testing.T) {
	doc := parseSample(t)
	found := false
	for _, e := range doc.Edges {
		if e.Kind == ir.EdgeInherits {
			found = true
		}
	}
	assert.True(t, found)
}

func TestGenerateRecordsCallArguments(t *testing.T) {
	doc := parseSample(t)
	var call *ir.Node
	for i := range doc.Nodes {
		if doc.Nodes[i].StringAttr("call_name") == "db.execute" {
			call = &doc.Nodes[i]
		}
	}
	require.NotNil(t, call)
	args, _ := call.Attr("args")
	list, _ := args.([]string)
	require.Len(t, list, 1)
	assert.Equal(t, "query", list[0])
}
