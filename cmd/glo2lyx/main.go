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

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/walteh/glo2lyx/cmd/glo2lyx/opts"
	"github.com/walteh/glo2lyx/pkg/glossary"
	"gitlab.com/tozd/go/errors"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitNoKeys = 2
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// run executes the command tree and maps the outcome to an exit status
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	ro := &opts.RootOpts{Stdout: stdout, Stderr: stderr}

	cmd := newRootCmd(ro)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	if ro.Logger != nil {
		ro.Logger.Error(err.Error())
	} else {
		fmt.Fprintf(stderr, "❌ %v\n", err)
	}

	return exitCode(err)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, glossary.ErrNoKeys):
		return exitNoKeys
	default:
		return exitFailed
	}
}
