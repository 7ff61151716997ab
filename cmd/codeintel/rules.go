// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/codeintel-oss/engine/internal/errors"
	"github.com/codeintel-oss/engine/internal/taint"
)

// loadRules compiles every .yaml/.yml atom file under rulesPath (a single
// file or a directory) and fails fast on the first compile error, spec §6's
// "reported with file/line" rule surfaced at the CLI boundary.
func loadRules(rulesPath string) ([]taint.AtomRule, error) {
	info, err := os.Stat(rulesPath)
	if err != nil {
		return nil, apperrors.NewUsageError("cannot read rules path",
			err.Error(), "pass --rules pointing at an atom YAML file or directory")
	}

	var files []string
	if info.IsDir() {
		err = filepath.WalkDir(rulesPath, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(path))
			if ext == ".yaml" || ext == ".yml" {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, apperrors.NewIOError("failed walking rules directory", err.Error(), "", err)
		}
	} else {
		files = []string{rulesPath}
	}

	var rules []taint.AtomRule
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, apperrors.NewIOError("failed reading rule file", err.Error(), "", err)
		}
		compiled, compileErrs := taint.Load(f, data)
		if len(compileErrs) > 0 {
			var msgs []string
			for _, ce := range compileErrs {
				msgs = append(msgs, ce.Error())
			}
			return nil, apperrors.NewUsageError("atom rule compile error",
				strings.Join(msgs, "; "), "fix the atom YAML and rerun")
		}
		rules = append(rules, compiled...)
	}
	return rules, nil
}

func ruleMap(rules []taint.AtomRule) map[string]taint.AtomRule {
	m := make(map[string]taint.AtomRule, len(rules))
	for _, r := range rules {
		m[r.ID] = r
	}
	return m
}
