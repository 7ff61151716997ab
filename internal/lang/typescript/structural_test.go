// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package typescript

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeintel-oss/engine/internal/ir"
)

const sampleSource = `import React from "react";

export function Comment(props) {
  return (
    <div dangerouslySetInnerHTML={{__html: props.body}}>
      <a href={props.link}>{props.label}</a>
    </div>
  );
}
`

func parseSample(t *testing.T) *ir.IRDocument {
	t.Helper()
	p, err := NewParser()
	require.NoError(t, err)
	tree, err := p.Parse(context.Background(), []byte(sampleSource))
	require.NoError(t, err)
	return Generate(tree, "components/Comment.tsx")
}

func TestGenerateRawHTMLSlotIsSink(t *testing.T) {
	doc := parseSample(t)
	var raw *ir.TemplateSlot
	for i := range doc.TemplateSlots {
		if doc.TemplateSlots[i].ContextKind == ir.ContextRawHTML {
			raw = &doc.TemplateSlots[i]
		}
	}
	require.NotNil(t, raw, "expected a RAW_HTML template slot for dangerouslySetInnerHTML")
	assert.True(t, raw.IsSink)
	assert.Equal(t, ir.EscapeNone, raw.EscapeMode)
}

func TestGenerateURLAttrSlot(t *testing.T) {
	doc := parseSample(t)
	found := false
	for _, s := range doc.TemplateSlots {
		if s.ContextKind == ir.ContextURLAttr {
			found = true
		}
	}
	assert.True(t, found, "expected a URL_ATTR slot for href")
}

func TestGenerateModuleFQN(t *testing.T) {
	doc := parseSample(t)
	var module *ir.Node
	for i := range doc.Nodes {
		if doc.Nodes[i].Kind == ir.NodeModule {
			module = &doc.Nodes[i]
		}
	}
	require.NotNil(t, module)
	assert.Equal(t, "components.Comment", module.FQN)
}

func TestGenerateRecordsCallArguments(t *testing.T) {
	p, err := NewParser()
	require.NoError(t, err)
	tree, err := p.Parse(context.Background(), []byte(`
function handler(req) {
  return db.execute(req.query, "strict");
}
`))
	require.NoError(t, err)
	doc := Generate(tree, "handler.ts")

	var call *ir.Node
	for i := range doc.Nodes {
		if doc.Nodes[i].StringAttr("call_name") == "db.execute" {
			call = &doc.Nodes[i]
		}
	}
	require.NotNil(t, call)
	args, _ := call.Attr("args")
	list, _ := args.([]string)
	require.Len(t, list, 2)
	assert.Equal(t, "req.query", list[0])
	assert.Equal(t, `"strict"`, list[1])
}
