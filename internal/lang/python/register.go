// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package python

import (
	"github.com/codeintel-oss/engine/internal/ir"
	"github.com/codeintel-oss/engine/internal/parserregistry"
)

// Register binds the Python plugin into a parser registry.
func Register(reg *parserregistry.Registry) {
	reg.Register(ir.LangPython, []string{".py", ".pyi"}, NewParser)
}
