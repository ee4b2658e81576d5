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

package text

import (
	"context"
	"io"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// SimpleTextReplacer runs each rule as a full strings.ReplaceAll pass
type SimpleTextReplacer struct{}

var _ TextReplacer = (*SimpleTextReplacer)(nil)

func NewSimpleTextReplacer() *SimpleTextReplacer {
	return &SimpleTextReplacer{}
}

func (r *SimpleTextReplacer) ReplaceText(ctx context.Context, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error) {
	original, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	doc := string(original)
	counts := make([]int, len(rules))
	total := 0

	for i, rule := range rules {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("replacing text: %w", err)
		}
		// empty FromText matches between every rune
		if rule.FromText == "" {
			continue
		}
		if n := strings.Count(doc, rule.FromText); n > 0 {
			doc = strings.ReplaceAll(doc, rule.FromText, rule.ToText)
			counts[i] = n
			total += n
		}
	}

	return &ReplacementResult{
		WasModified:      doc != string(original),
		ReplacementCount: total,
		RuleCounts:       counts,
		OriginalContent:  original,
		ModifiedContent:  []byte(doc),
	}, nil
}

func (r *SimpleTextReplacer) ValidateRules(rules []ReplacementRule) error {
	for i, rule := range rules {
		if rule.FromText == "" {
			return errors.Errorf("rule %d: from_text is required", i)
		}
	}
	return nil
}
