// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package typescript

import (
	"github.com/codeintel-oss/engine/internal/ir"
	"github.com/codeintel-oss/engine/internal/parserregistry"
)

// Register binds the TypeScript and JavaScript plugins into a parser
// registry. They share this package's structural generator.
func Register(reg *parserregistry.Registry) {
	reg.Register(ir.LangTypeScript, []string{".ts", ".tsx"}, NewParser)
	reg.Register(ir.LangJavaScript, []string{".js", ".jsx", ".mjs", ".cjs"}, NewJavaScriptParser)
}
