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
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/glo2lyx/cmd/glo2lyx/commands"
	"github.com/walteh/glo2lyx/cmd/glo2lyx/opts"
	"github.com/walteh/glo2lyx/pkg/config"
	"github.com/walteh/glo2lyx/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// rootFlags holds flag values before they are merged into the config
type rootFlags struct {
	configFile string
	dotenv     string
	debug      bool
	verbose    bool
	recursive  bool
	strict     bool
	dryRun     bool
	atomic     bool
	backup     bool
	extension  string
	marker     string
}

// newRootCmd creates the glo2lyx command tree
func newRootCmd(ro *opts.RootOpts) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "glo2lyx GLOSSARY [DIR]",
		Short: "Convert plain-text glossary keys in your LyX files to LyX commands",
		Long: `glo2lyx reads \newabbreviation definitions from a TeX file and replaces every
" KEY " and "#KEY" in the LyX files under DIR with a nomenclature inset.
With \nomenclature renewed as \gls, these render as glossary entries.

The LyX files must be stored in plain text. DIR defaults to the working
directory and is searched recursively unless --recursive=false is given.
Files are rewritten in place; use --backup or --atomic for safer writes.`,
		Args:          cobra.RangeArgs(0, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupRootOpts(cmd, flags, ro)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				ro.Config.Glossary = args[0]
			}
			if len(args) > 1 {
				ro.Config.Dir = args[1]
			}
			return commands.RunConvert(cmd.Context(), ro)
		},
	}

	cmd.SetOut(ro.Stdout)
	cmd.SetErr(ro.Stderr)

	addRootFlags(cmd, flags)

	cmd.AddCommand(commands.NewKeysCmd(ro))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configFile, "config", "c", "", "config file path (default: .glo2lyx.{yaml,yml,hcl,json} if present)")
	pf.StringVar(&flags.dotenv, "env-file", ".env", "dotenv file with GLO2LYX_* overrides")
	pf.BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
	pf.BoolVarP(&flags.verbose, "verbose", "v", true, "print informational messages")
	pf.BoolVar(&flags.strict, "strict", false, "fail on malformed definition lines instead of skipping them")
	pf.StringVar(&flags.marker, "marker", `\newabbreviation`, "command that defines a key")

	f := cmd.Flags()
	f.BoolVarP(&flags.recursive, "recursive", "r", true, "search recursively for LyX files")
	f.BoolVar(&flags.dryRun, "dry-run", false, "show the changes without writing any file")
	f.BoolVar(&flags.atomic, "atomic", false, "write through a temp file and rename")
	f.BoolVar(&flags.backup, "backup", false, "keep a .bak copy of every rewritten file")
	f.StringVar(&flags.extension, "ext", ".lyx", "extension of the files to convert")
}

// setupRootOpts merges defaults, config file, environment and flags, then
// builds the logger
func setupRootOpts(cmd *cobra.Command, flags *rootFlags, ro *opts.RootOpts) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// the debug flag alone decides logging until the config is merged
	boot := config.Default()
	boot.Debug = flags.debug
	ctx = log.NewContext(ctx, newLogger(ro.Stderr, boot))

	cfg := config.Default()

	path := flags.configFile
	if path == "" {
		path = config.Discover(".")
	}
	if path != "" {
		loaded, err := config.Load(ctx, path)
		if err != nil {
			return errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	env, err := config.Environment(flags.dotenv)
	if err != nil {
		return errors.Errorf("reading environment: %w", err)
	}
	if err := cfg.ApplyEnv(env); err != nil {
		return errors.Errorf("applying environment: %w", err)
	}

	changed := cmd.Flags().Changed
	if changed("debug") {
		cfg.Debug = flags.debug
	}
	if changed("verbose") {
		cfg.Verbose = flags.verbose
	}
	if changed("strict") {
		cfg.Strict = flags.strict
	}
	if changed("marker") {
		cfg.Marker = flags.marker
	}
	if changed("recursive") {
		cfg.Recursive = flags.recursive
	}
	if changed("dry-run") {
		cfg.DryRun = flags.dryRun
	}
	if changed("atomic") {
		cfg.Write.Atomic = flags.atomic
	}
	if changed("backup") {
		cfg.Write.Backup = flags.backup
	}
	if changed("ext") {
		cfg.Extension = flags.extension
	}

	ro.Config = cfg
	ro.Logger = newLogger(ro.Stderr, cfg)
	ro.Logger.Zerolog().Debug().Str("config", cfg.Location()).Msg("configuration loaded")
	cmd.SetContext(log.NewContext(ctx, ro.Logger))

	return nil
}

// newLogger picks the level from the verbosity settings. Debug also sends
// the structured stream to the console.
func newLogger(console io.Writer, cfg *config.Config) *log.Logger {
	level := zerolog.WarnLevel
	if cfg.Verbose {
		level = zerolog.InfoLevel
	}
	if cfg.Debug {
		level = zerolog.DebugLevel
		return log.NewWithSink(console, zerolog.ConsoleWriter{Out: console, NoColor: os.Getenv("NO_COLOR") != ""}, level)
	}
	return log.New(console, level)
}
