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

package glossary

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/walteh/glo2lyx/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// DefaultExtension is the expected definitions file extension
const DefaultExtension = ".tex"

// 📥 Loader reads a definitions file and extracts its keys
type Loader struct {
	Extractor Extractor
	Extension string
	Logger    *log.Logger
}

// NewLoader creates a loader around extractor
func NewLoader(extractor Extractor, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.Nop()
	}
	return &Loader{
		Extractor: extractor,
		Extension: DefaultExtension,
		Logger:    logger,
	}
}

// Load extracts keys from the file at path. A wrong extension is only a
// warning; an empty result is ErrNoKeys.
func (l *Loader) Load(ctx context.Context, path string) (*Extraction, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Errorf("resolving definitions path: %w", err)
	}

	if l.Extension != "" && filepath.Ext(path) != l.Extension {
		l.Logger.Warningf("Keys file is not a %s file: %s", strings.TrimPrefix(l.Extension, "."), absPath)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Errorf("opening definitions file: %w", err)
	}
	defer file.Close()

	extraction, err := l.Extractor.ExtractKeys(ctx, file)
	if err != nil {
		return nil, errors.Errorf("extracting keys from %s: %w", absPath, err)
	}

	for _, skipped := range extraction.Skipped {
		l.Logger.Warningf("Skipping malformed definition at %s:%d: %s", absPath, skipped.Line, skipped.Reason)
	}

	if len(extraction.Keys) == 0 {
		return nil, errors.Errorf("%w in %s", ErrNoKeys, absPath)
	}

	l.Logger.Infof("Parsed these keys: %s", formatKeys(extraction.Names()))

	return extraction, nil
}

func formatKeys(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
