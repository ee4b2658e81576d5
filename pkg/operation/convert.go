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

// Package operation runs the glossary key substitution over a LyX tree.
package operation

import (
	"bytes"
	"context"
	"path/filepath"

	"github.com/walteh/glo2lyx/pkg/config"
	"github.com/walteh/glo2lyx/pkg/glossary"
	"github.com/walteh/glo2lyx/pkg/log"
	"github.com/walteh/glo2lyx/pkg/nomenclature"
	"github.com/walteh/glo2lyx/pkg/status"
	"github.com/walteh/glo2lyx/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is a unit of work the Runner executes
type Operation interface {
	Name() string
	Execute(ctx context.Context) error
}

// 🔧 Options contains the dependencies of a convert operation
type Options struct {
	Config   *config.Config
	Keys     []glossary.Key
	Files    status.FileManager
	Status   status.StatusReporter
	Replacer text.TextReplacer
	Template *nomenclature.Template
	Logger   *log.Logger
}

// 🔄 ConvertOperation rewrites every target file, replacing bare keys with
// their nomenclature markup. Keys are applied in extraction order and each
// key sees the output of the keys before it, so a markup block that happens
// to contain a later key's pattern is rewritten again.
type ConvertOperation struct {
	opts Options
}

var _ Operation = (*ConvertOperation)(nil)

// 📦 NewConvertOperation creates a new convert operation
func NewConvertOperation(opts Options) (*ConvertOperation, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Config.ReferenceMarker == "" {
		return nil, errors.Errorf("reference marker is required")
	}
	if len(opts.Keys) == 0 {
		return nil, errors.Errorf("at least one key is required: %w", glossary.ErrNoKeys)
	}
	if opts.Files == nil {
		return nil, errors.Errorf("file manager is required")
	}
	if opts.Status == nil {
		return nil, errors.Errorf("status reporter is required")
	}
	if opts.Replacer == nil {
		opts.Replacer = text.NewSimpleTextReplacer()
	}
	if opts.Template == nil {
		opts.Template = nomenclature.Default()
	}
	if opts.Logger == nil {
		opts.Logger = log.Nop()
	}
	return &ConvertOperation{opts: opts}, nil
}

func (op *ConvertOperation) Name() string {
	return "convert"
}

// 🏃 Execute runs the conversion. The first read or write failure stops the
// run; files already written stay written.
func (op *ConvertOperation) Execute(ctx context.Context) error {
	cfg := op.opts.Config

	absRoot, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return errors.Errorf("resolving directory: %w", err)
	}

	rules, err := op.Rules()
	if err != nil {
		return err
	}

	files, err := FindTargets(cfg.Dir, cfg.Extension, cfg.Recursive)
	if err != nil {
		return errors.Errorf("listing target files: %w", err)
	}

	op.opts.Logger.Zerolog().Debug().
		Str("dir", absRoot).
		Bool("recursive", cfg.Recursive).
		Int("files", len(files)).
		Int("rules", len(rules)).
		Msg("converting")

	for _, file := range files {
		if err := op.processFile(ctx, file, rules); err != nil {
			return errors.Errorf("processing file %s: %w", op.opts.Files.AbsPath(file), err)
		}
	}

	if len(files) == 0 {
		op.opts.Logger.Warningf("No LyX files found at %s", absRoot)
		op.opts.Status.RecordWarning()
	}

	return nil
}

// 📋 Rules renders every key's markup once and returns the replacement
// rules in key order, space-delimited rule first.
func (op *ConvertOperation) Rules() ([]text.ReplacementRule, error) {
	rules := make([]text.ReplacementRule, 0, 2*len(op.opts.Keys))
	for _, key := range op.opts.Keys {
		markup, err := op.opts.Template.Render(key.Name)
		if err != nil {
			return nil, errors.Errorf("rendering markup: %w", err)
		}
		rules = append(rules, text.RulesForKey(key.Name, op.opts.Config.ReferenceMarker, markup)...)
	}

	if err := op.opts.Replacer.ValidateRules(rules); err != nil {
		return nil, errors.Errorf("validating rules: %w", err)
	}
	return rules, nil
}

// 📄 processFile reads, transforms and writes back a single file
func (op *ConvertOperation) processFile(ctx context.Context, file string, rules []text.ReplacementRule) error {
	cfg := op.opts.Config
	absPath := op.opts.Files.AbsPath(file)

	content, err := op.opts.Files.ReadFile(ctx, file)
	if err != nil {
		op.opts.Status.TrackFile(ctx, file, status.FileInfo{Status: status.StatusFailed, Error: err})
		return err
	}

	result, err := op.opts.Replacer.ReplaceText(ctx, bytes.NewReader(content), rules)
	if err != nil {
		return errors.Errorf("replacing text: %w", err)
	}

	op.logKeyCounts(absPath, result.RuleCounts)

	fileStatus := status.StatusUnchanged
	if result.WasModified {
		fileStatus = status.StatusModified
	}

	if cfg.DryRun {
		if result.WasModified {
			fileStatus = status.StatusDryRun
			op.opts.Logger.LogDiff(ctx, absPath, renderDiff(string(content), string(result.ModifiedContent)))
		}
	} else {
		if err := op.write(ctx, file, result.ModifiedContent); err != nil {
			op.opts.Status.TrackFile(ctx, file, status.FileInfo{Status: status.StatusFailed, Error: err})
			return err
		}
	}

	op.opts.Status.TrackFile(ctx, file, status.FileInfo{
		Status:       fileStatus,
		Size:         int64(len(result.ModifiedContent)),
		Replacements: result.ReplacementCount,
		Checksum:     status.Checksum(result.ModifiedContent),
	})

	op.opts.Logger.LogFileOperation(ctx, log.FileOperation{
		Path:         absPath,
		Status:       fileStatus.String(),
		IsModified:   result.WasModified,
		IsDryRun:     cfg.DryRun,
		Replacements: result.ReplacementCount,
	})

	return nil
}

// logKeyCounts reports how often each key matched in a file. counts is
// indexed like the rules, two per key.
func (op *ConvertOperation) logKeyCounts(path string, counts []int) {
	if len(counts) != 2*len(op.opts.Keys) {
		return
	}
	for i, key := range op.opts.Keys {
		if n := counts[2*i] + counts[2*i+1]; n > 0 {
			op.opts.Logger.Debugf("%s: %s replaced %d times", path, key.Name, n)
		}
	}
}

// 💾 write stores content, unchanged files included
func (op *ConvertOperation) write(ctx context.Context, file string, content []byte) error {
	cfg := op.opts.Config

	if cfg.Write.Backup {
		if err := op.opts.Files.BackupFile(ctx, file); err != nil {
			return errors.Errorf("backing up: %w", err)
		}
	}

	if cfg.Write.Atomic {
		return op.opts.Files.WriteFileAtomic(ctx, file, content)
	}
	return op.opts.Files.WriteFile(ctx, file, content)
}
