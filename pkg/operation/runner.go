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
	"context"
	"time"

	"github.com/walteh/glo2lyx/pkg/log"
	"github.com/walteh/glo2lyx/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🏃 Runner executes operations one at a time and reports the outcome
type Runner struct {
	logger    *log.Logger
	reporter  status.StatusReporter
	formatter status.FileFormatter
}

// 🏗️ NewRunner creates a new runner
func NewRunner(logger *log.Logger, reporter status.StatusReporter) *Runner {
	if logger == nil {
		logger = log.Nop()
	}
	return &Runner{
		logger:    logger,
		reporter:  reporter,
		formatter: status.NewDefaultFileFormatter(),
	}
}

// 🏃 Run executes op and returns the run summary
func (r *Runner) Run(ctx context.Context, op Operation) (*status.Summary, error) {
	start := time.Now()
	zlog := r.logger.Zerolog()
	zlog.Debug().Str("operation", op.Name()).Msg("starting operation")

	if err := op.Execute(ctx); err != nil {
		zlog.Debug().Str("operation", op.Name()).Dur("elapsed", time.Since(start)).Err(err).Msg("operation failed")
		return nil, errors.Errorf("running %s: %w", op.Name(), err)
	}

	var summary *status.Summary
	if r.reporter != nil {
		summary = r.reporter.Summary(ctx)
		zlog.Debug().
			Str("operation", op.Name()).
			Dur("elapsed", time.Since(start)).
			Int("files", summary.Files).
			Int("modified", summary.Modified).
			Int("replacements", summary.Replacements).
			Msg(r.formatter.FormatSummary(summary))
	}

	return summary, nil
}
