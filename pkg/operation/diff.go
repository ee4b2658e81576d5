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

package operation

import (
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is how many bytes of unchanged text surround each change
const diffContext = 24

// 🔀 renderDiff shows the changes between before and after with
// [-removed-] and {+inserted+} markers, eliding long unchanged runs.
func renderDiff(before, after string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	del := color.New(color.FgRed)
	ins := color.New(color.FgGreen)

	var sb strings.Builder
	for i, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			sb.WriteString(del.Sprint("[-" + d.Text + "-]"))
		case diffmatchpatch.DiffInsert:
			sb.WriteString(ins.Sprint("{+" + d.Text + "+}"))
		case diffmatchpatch.DiffEqual:
			sb.WriteString(elide(d.Text, i > 0, i < len(diffs)-1))
		}
	}
	return sb.String()
}

// elide trims an unchanged run, keeping context next to neighbouring changes
func elide(s string, hasBefore, hasAfter bool) string {
	r := []rune(s)
	keep := 0
	if hasBefore {
		keep += diffContext
	}
	if hasAfter {
		keep += diffContext
	}
	if len(r) <= keep+3 {
		return s
	}

	var head, tail string
	if hasBefore {
		head = string(r[:diffContext])
	}
	if hasAfter {
		tail = string(r[len(r)-diffContext:])
	}
	return head + "..." + tail
}
