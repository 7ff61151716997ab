// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package parserregistry

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/codeintel-oss/engine/internal/ir"
)

// utf8BOM is the byte-order-mark sequence tolerated at the start of a
// source file (spec §6: "UTF-8 assumed; BOM tolerated").
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DiscoveredFile is a source file found under a repository root, already
// matched to a language.
type DiscoveredFile struct {
	Path     string
	Language ir.Language
	Size     int64
}

// Discover walks root, classifying every file the registry recognizes by
// extension and skipping anything over maxFileSizeBytes (default 2 MB per
// spec §6) — oversized files are reported via the onSkip callback rather
// than silently dropped, so the caller can attach a diagnostic.
func (r *Registry) Discover(root string, maxFileSizeBytes int64, excludeGlobs []string, onSkip func(path string, reason string)) ([]DiscoveredFile, error) {
	if maxFileSizeBytes <= 0 {
		maxFileSizeBytes = 2 * 1024 * 1024
	}

	var out []DiscoveredFile
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if shouldExcludeDir(path, excludeGlobs) {
				return filepath.SkipDir
			}
			return nil
		}
		if matchesAnyGlob(path, excludeGlobs) {
			return nil
		}
		ext := filepath.Ext(path)
		lang, ok := r.LanguageForExt(ext)
		if !ok {
			return nil
		}
		if info.Size() > maxFileSizeBytes {
			if onSkip != nil {
				onSkip(path, "file_too_large")
			}
			return nil
		}
		out = append(out, DiscoveredFile{Path: path, Language: lang, Size: info.Size()})
		return nil
	})
	return out, err
}

// StripBOM removes a leading UTF-8 byte-order mark if present, leaving the
// rest of the content untouched.
func StripBOM(content []byte) []byte {
	if bytes.HasPrefix(content, utf8BOM) {
		return content[len(utf8BOM):]
	}
	return content
}

func shouldExcludeDir(path string, globs []string) bool {
	base := filepath.Base(path)
	switch base {
	case ".git", "node_modules", "vendor", ".cie", ".codeintel":
		return true
	}
	return matchesAnyGlob(path, globs)
}

func matchesAnyGlob(path string, globs []string) bool {
	slashed := filepath.ToSlash(path)
	for _, g := range globs {
		g = strings.TrimSuffix(g, "/**")
		if ok, _ := filepath.Match(g, filepath.Base(path)); ok {
			return true
		}
		if strings.Contains(slashed, "/"+g+"/") || strings.HasPrefix(slashed, g+"/") {
			return true
		}
	}
	return false
}
