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

package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/glo2lyx/cmd/glo2lyx/opts"
	"github.com/walteh/glo2lyx/pkg/glossary"
	"github.com/walteh/glo2lyx/pkg/log"
	"github.com/walteh/glo2lyx/pkg/nomenclature"
	"github.com/walteh/glo2lyx/pkg/operation"
	"github.com/walteh/glo2lyx/pkg/status"
	"github.com/walteh/glo2lyx/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// RunConvert extracts the keys and rewrites every target file. It returns
// glossary.ErrNoKeys, before any file is touched, when the glossary defines
// nothing.
func RunConvert(ctx context.Context, ro *opts.RootOpts) error {
	cfg := ro.Config
	if err := cfg.Validate(); err != nil {
		return errors.Errorf("validating config: %w", err)
	}

	logger := log.FromContext(ctx)
	logger.Header("converting " + cfg.String())

	extraction, err := loadKeys(ctx, ro)
	if err != nil {
		return err
	}

	tmpl, err := nomenclature.New(nomenclature.Options{
		Description: cfg.Template.Description,
		Literal:     cfg.Template.Literal,
		Body:        cfg.Template.Body,
	})
	if err != nil {
		return errors.Errorf("building template: %w", err)
	}

	mgr := status.New(cfg.Dir, logger)

	op, err := operation.NewConvertOperation(operation.Options{
		Config:   cfg,
		Keys:     extraction.Keys,
		Files:    mgr,
		Status:   mgr,
		Replacer: text.NewSimpleTextReplacer(),
		Template: tmpl,
		Logger:   logger,
	})
	if err != nil {
		return errors.Errorf("creating convert operation: %w", err)
	}

	summary, err := operation.NewRunner(logger, mgr).Run(ctx, op)
	if err != nil {
		return err
	}

	if summary == nil || summary.Files == 0 {
		return nil
	}

	if logger.Level() <= zerolog.InfoLevel {
		files, err := mgr.ListFiles(ctx)
		if err != nil {
			return errors.Errorf("listing processed files: %w", err)
		}
		logger.LogNewline()
		if err := writeFileTable(ro.Stdout, files); err != nil {
			return err
		}
	}

	verb := "Converted"
	if cfg.DryRun {
		verb = "Dry run over"
	}
	logger.Successf("%s %d files, %d modified, %d replacements", verb, summary.Files, summary.Modified, summary.Replacements)

	return nil
}

// writeFileTable renders one row per processed file
func writeFileTable(w io.Writer, files []status.FileInfo) error {
	data := pterm.TableData{{"File", "Status", "Replacements"}}
	for _, f := range files {
		data = append(data, []string{f.Path, f.Status.String(), strconv.Itoa(f.Replacements)})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Errorf("rendering file table: %w", err)
	}
	_, err = fmt.Fprintln(w, table)
	return err
}

func loadKeys(ctx context.Context, ro *opts.RootOpts) (*glossary.Extraction, error) {
	parser := glossary.NewParser(ro.Config.Marker)
	parser.Strict = ro.Config.Strict

	loader := glossary.NewLoader(parser, log.FromContext(ctx))
	loader.Extension = ro.Config.DefinitionsExtension

	extraction, err := loader.Load(ctx, ro.Config.Glossary)
	if err != nil {
		return nil, errors.Errorf("loading keys: %w", err)
	}
	return extraction, nil
}
