// Copyright 2026 CodeIntel Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package ir defines the layered intermediate representation: the
// content-addressed Node/Edge/Occurrence graph every other subsystem
// (resolver, semantic builder, taint matcher, query engine) operates on.
package ir

import "fmt"

// Span is a 1-indexed, UTF-8 column-counted source range.
type Span struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// Contains reports whether s fully contains other.
func (s Span) Contains(other Span) bool {
	if other.StartLine < s.StartLine || other.EndLine > s.EndLine {
		return false
	}
	if other.StartLine == s.StartLine && other.StartCol < s.StartCol {
		return false
	}
	if other.EndLine == s.EndLine && other.EndCol > s.EndCol {
		return false
	}
	return true
}

// Within reports whether the span's line range fits inside [1, lineCount].
func (s Span) Within(lineCount int) bool {
	return s.StartLine >= 1 && s.EndLine >= s.StartLine && s.EndLine <= lineCount
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", s.StartLine, s.StartCol, s.EndLine, s.EndCol)
}

// Less orders spans canonically (by start, then end) so that generators
// emit nodes/edges in a deterministic order regardless of CST traversal
// order. See internal/ir/ids.go for the stability invariant this serves.
func (s Span) Less(other Span) bool {
	if s.StartLine != other.StartLine {
		return s.StartLine < other.StartLine
	}
	if s.StartCol != other.StartCol {
		return s.StartCol < other.StartCol
	}
	if s.EndLine != other.EndLine {
		return s.EndLine < other.EndLine
	}
	return s.EndCol < other.EndCol
}
