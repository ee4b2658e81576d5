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
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

type hclConfig struct {
	Glossary             *string `hcl:"glossary,optional"`
	Dir                  *string `hcl:"dir,optional"`
	Recursive            *bool   `hcl:"recursive,optional"`
	Verbose              *bool   `hcl:"verbose,optional"`
	Debug                *bool   `hcl:"debug,optional"`
	Strict               *bool   `hcl:"strict,optional"`
	DryRun               *bool   `hcl:"dry_run,optional"`
	Extension            *string `hcl:"extension,optional"`
	DefinitionsExtension *string `hcl:"definitions_extension,optional"`
	Marker               *string `hcl:"marker,optional"`
	ReferenceMarker      *string `hcl:"reference_marker,optional"`
	Template             *struct {
		Description *string `hcl:"description,optional"`
		Literal     *string `hcl:"literal,optional"`
		Body        *string `hcl:"body,optional"`
	} `hcl:"template,block"`
	Write *struct {
		Atomic *bool `hcl:"atomic,optional"`
		Backup *bool `hcl:"backup,optional"`
	} `hcl:"write,block"`
}

// 📝 Parse parses the config from HCL. The variable cwd holds the working directory.
func (p *HCLParser) Parse(ctx context.Context, data []byte, base *Config) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "glo2lyx.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Errorf("getting working directory: %w", err)
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"cwd": cty.StringVal(cwd),
		},
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := *base
	setString(&cfg.Glossary, hclCfg.Glossary)
	setString(&cfg.Dir, hclCfg.Dir)
	setBool(&cfg.Recursive, hclCfg.Recursive)
	setBool(&cfg.Verbose, hclCfg.Verbose)
	setBool(&cfg.Debug, hclCfg.Debug)
	setBool(&cfg.Strict, hclCfg.Strict)
	setBool(&cfg.DryRun, hclCfg.DryRun)
	setString(&cfg.Extension, hclCfg.Extension)
	setString(&cfg.DefinitionsExtension, hclCfg.DefinitionsExtension)
	setString(&cfg.Marker, hclCfg.Marker)
	setString(&cfg.ReferenceMarker, hclCfg.ReferenceMarker)

	if hclCfg.Template != nil {
		setString(&cfg.Template.Description, hclCfg.Template.Description)
		setString(&cfg.Template.Literal, hclCfg.Template.Literal)
		setString(&cfg.Template.Body, hclCfg.Template.Body)
	}
	if hclCfg.Write != nil {
		setBool(&cfg.Write.Atomic, hclCfg.Write.Atomic)
		setBool(&cfg.Write.Backup, hclCfg.Write.Backup)
	}

	return &cfg, nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
