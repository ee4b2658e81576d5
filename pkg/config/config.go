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
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/walteh/glo2lyx/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse decodes data on top of base, leaving unset fields alone
	Parse(ctx context.Context, data []byte, base *Config) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// DefaultFileNames are searched, in order, when no config file is given
var DefaultFileNames = []string{
	".glo2lyx.yaml",
	".glo2lyx.yml",
	".glo2lyx.hcl",
	".glo2lyx.json",
}

// 📝 TemplateArgs configures the generated nomenclature inset
type TemplateArgs struct {
	Description string `json:"description,omitempty" yaml:"description,omitempty"` // description attribute
	Literal     string `json:"literal,omitempty" yaml:"literal,omitempty"`         // literal attribute
	Body        string `json:"body,omitempty" yaml:"body,omitempty"`               // full text/template override
}

// 💾 WriteArgs configures how target files are written back
type WriteArgs struct {
	Atomic bool `json:"atomic,omitempty" yaml:"atomic,omitempty"` // temp file + rename instead of in place
	Backup bool `json:"backup,omitempty" yaml:"backup,omitempty"` // keep <file>.bak
}

// 📚 Config represents the complete configuration
type Config struct {
	Glossary             string       `json:"glossary,omitempty" yaml:"glossary,omitempty"`
	Dir                  string       `json:"dir,omitempty" yaml:"dir,omitempty"`
	Recursive            bool         `json:"recursive" yaml:"recursive"`
	Verbose              bool         `json:"verbose" yaml:"verbose"`
	Debug                bool         `json:"debug,omitempty" yaml:"debug,omitempty"`
	Strict               bool         `json:"strict,omitempty" yaml:"strict,omitempty"`
	DryRun               bool         `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`
	Extension            string       `json:"extension,omitempty" yaml:"extension,omitempty"`
	DefinitionsExtension string       `json:"definitions_extension,omitempty" yaml:"definitions_extension,omitempty"`
	Marker               string       `json:"marker,omitempty" yaml:"marker,omitempty"`
	ReferenceMarker      string       `json:"reference_marker,omitempty" yaml:"reference_marker,omitempty"`
	Template             TemplateArgs `json:"template,omitempty" yaml:"template,omitempty"`
	Write                WriteArgs    `json:"write,omitempty" yaml:"write,omitempty"`

	location string
}

// 🏭 Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Dir:                  ".",
		Recursive:            true,
		Verbose:              true,
		Extension:            ".lyx",
		DefinitionsExtension: ".tex",
		Marker:               `\newabbreviation`,
		ReferenceMarker:      "#",
	}
}

// Location returns the file the config was loaded from, if any
func (cfg *Config) Location() string {
	return cfg.location
}

// 🎯 Load loads the configuration from a file on top of the defaults
func Load(ctx context.Context, path string) (*Config, error) {
	log.FromContext(ctx).Debugf("Loading configuration from %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data, Default())
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}
	cfg.location = path

	return cfg, nil
}

// 🔍 Discover returns the first default config file present in dir, or ""
func Discover(dir string) string {
	for _, name := range DefaultFileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.Glossary == "" {
		return errors.Errorf("glossary is required")
	}
	if cfg.Extension == "" {
		return errors.Errorf("extension is required")
	}
	if cfg.Marker == "" {
		return errors.Errorf("marker is required")
	}
	if cfg.ReferenceMarker == "" {
		return errors.Errorf("reference_marker is required")
	}

	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	cfg.Dir = filepath.Clean(cfg.Dir)

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	scope := "recursive"
	if !cfg.Recursive {
		scope = "shallow"
	}
	return fmt.Sprintf("%s -> %s/*%s (%s)", cfg.Glossary, cfg.Dir, cfg.Extension, scope)
}
