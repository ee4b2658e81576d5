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
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gitlab.com/tozd/go/errors"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "GLO2LYX_"

// 🌱 Environment returns GLO2LYX_* variables from the dotenv file at path
// (if it exists) overlaid with the process environment. The process
// environment is not modified.
func Environment(dotenvPath string) (map[string]string, error) {
	env := map[string]string{}

	if dotenvPath != "" {
		if _, err := os.Stat(dotenvPath); err == nil {
			values, err := godotenv.Read(dotenvPath)
			if err != nil {
				return nil, errors.Errorf("reading %s: %w", dotenvPath, err)
			}
			for k, v := range values {
				if strings.HasPrefix(k, EnvPrefix) {
					env[k] = v
				}
			}
		}
	}

	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(k, EnvPrefix) {
			env[k] = v
		}
	}

	return env, nil
}

// 🔄 ApplyEnv overrides cfg fields from GLO2LYX_* variables
func (cfg *Config) ApplyEnv(env map[string]string) error {
	strs := map[string]*string{
		"GLOSSARY":              &cfg.Glossary,
		"DIR":                   &cfg.Dir,
		"EXTENSION":             &cfg.Extension,
		"DEFINITIONS_EXTENSION": &cfg.DefinitionsExtension,
		"MARKER":                &cfg.Marker,
		"REFERENCE_MARKER":      &cfg.ReferenceMarker,
		"TEMPLATE_DESCRIPTION":  &cfg.Template.Description,
		"TEMPLATE_LITERAL":      &cfg.Template.Literal,
	}
	bools := map[string]*bool{
		"RECURSIVE": &cfg.Recursive,
		"VERBOSE":   &cfg.Verbose,
		"DEBUG":     &cfg.Debug,
		"STRICT":    &cfg.Strict,
		"DRY_RUN":   &cfg.DryRun,
		"ATOMIC":    &cfg.Write.Atomic,
		"BACKUP":    &cfg.Write.Backup,
	}

	for name, dst := range strs {
		if v, ok := env[EnvPrefix+name]; ok {
			*dst = v
		}
	}

	for name, dst := range bools {
		v, ok := env[EnvPrefix+name]
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return errors.Errorf("parsing %s%s=%q: %w", EnvPrefix, name, v, err)
		}
		*dst = b
	}

	return nil
}
