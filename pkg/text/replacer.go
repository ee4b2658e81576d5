// Copyright 2025 walteh LLC
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

// Package text applies ordered literal substitutions to file content.
package text

import (
	"context"
	"io"
)

// ReplacementRule replaces every FromText with ToText
type ReplacementRule struct {
	FromText string
	ToText   string
}

// ReplacementResult is what one pass of rules did to a document
type ReplacementResult struct {
	WasModified      bool
	ReplacementCount int
	// RuleCounts holds the matches of each rule, indexed like the rules
	RuleCounts      []int
	OriginalContent []byte
	ModifiedContent []byte
}

// TextReplacer applies rules in order, each rule seeing the output of the
// rule before it
type TextReplacer interface {
	ReplaceText(ctx context.Context, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error)
	ValidateRules(rules []ReplacementRule) error
}

// RulesForKey returns the two rules that turn a bare key into markup:
// " KEY " keeps its spaces, marker+KEY loses the marker.
func RulesForKey(key, marker, markup string) []ReplacementRule {
	return []ReplacementRule{
		{FromText: " " + key + " ", ToText: " " + markup + " "},
		{FromText: marker + key, ToText: markup},
	}
}
