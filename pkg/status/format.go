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

package status

import (
	"fmt"
)

// FileFormatter defines how processed files and run summaries are formatted
type FileFormatter interface {
	// FormatFileOperation formats a processed file message
	FormatFileOperation(path string, status FileStatus, replacements int) string

	// FormatSummary formats the end of run summary
	FormatSummary(s *Summary) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatFileOperation formats a processed file message with emojis
func (f *DefaultFileFormatter) FormatFileOperation(path string, status FileStatus, replacements int) string {
	switch status {
	case StatusModified:
		return fmt.Sprintf("📝 Modified %s (%s)", path, pluralize(replacements, "replacement"))
	case StatusDryRun:
		return fmt.Sprintf("🔎 Would modify %s (%s)", path, pluralize(replacements, "replacement"))
	case StatusFailed:
		return fmt.Sprintf("❌ Failed %s", path)
	default:
		return fmt.Sprintf("👍 Unchanged %s", path)
	}
}

// FormatSummary formats the end of run summary
func (f *DefaultFileFormatter) FormatSummary(s *Summary) string {
	if s == nil || s.Files == 0 {
		return "⚠️  No files processed"
	}
	msg := fmt.Sprintf("✅ Processed %s, %d modified, %s",
		pluralize(s.Files, "file"), s.Modified, pluralize(s.Replacements, "replacement"))
	if s.Warnings > 0 {
		msg += fmt.Sprintf(" (%s)", pluralize(s.Warnings, "warning"))
	}
	return msg
}

// FormatError formats an error message with emoji
func (f *DefaultFileFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}

func pluralize(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
