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
	"io/fs"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// 🔍 FindTargets lists files under root whose names end with ext, as
// slash-separated paths relative to root in lexical order. Shallow search
// only looks at root itself. A missing root yields no files.
func FindTargets(root string, ext string, recursive bool) ([]string, error) {
	return findTargets(os.DirFS(root), ext, recursive)
}

func findTargets(fsys fs.FS, ext string, recursive bool) ([]string, error) {
	if ext == "" {
		return nil, errors.Errorf("extension is required")
	}
	if strings.ContainsAny(ext, `/*?[]{}\`) {
		return nil, errors.Errorf("invalid extension %q", ext)
	}

	pattern := "*" + ext
	if recursive {
		pattern = "**/" + pattern
	}

	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Errorf("matching %s: %w", pattern, err)
	}

	return matches, nil
}
