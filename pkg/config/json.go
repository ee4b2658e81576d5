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

package config

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
)

type jsonParser struct{}

func init() {
	Register(jsonParser{})
}

func (jsonParser) CanParse(filename string) bool {
	return strings.EqualFold(filepath.Ext(strings.TrimSpace(filename)), ".json")
}

// Parse decodes a single JSON object over base. Unknown keys and trailing
// documents are rejected.
func (jsonParser) Parse(ctx context.Context, data []byte, base *Config) (*Config, error) {
	cfg := *base

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, errors.Errorf("decoding glo2lyx json: %w", err)
	}
	if dec.More() {
		return nil, errors.Errorf("decoding glo2lyx json: unexpected data after the config object")
	}

	return &cfg, nil
}
