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

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent   = 4  // spaces to indent file entries
	statusWidth  = 10 // Width for status text
	replaceWidth = 6  // Width for replacement count
)

// 🎯 FileOperation represents a processed target file for logging
type FileOperation struct {
	Path         string // Absolute file path
	Status       string // modified/unchanged/dry-run
	IsModified   bool   // Whether the content changed
	IsDryRun     bool   // Whether the write was skipped
	Replacements int    // Number of replacements made
}

// 🎯 Logger writes user-facing console lines and mirrors them as structured
// zerolog events. Console output below the configured level is dropped.
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	level   zerolog.Level
	mu      sync.Mutex
}

// 🏭 New creates a new logger. Structured events are discarded.
func New(console io.Writer, level zerolog.Level) *Logger {
	return NewWithSink(console, io.Discard, level)
}

// 🏭 NewWithSink creates a logger whose structured events go to sink
func NewWithSink(console io.Writer, sink io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(sink).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		level:   level,
	}
}

// 🔇 Nop returns a logger that writes nothing
func Nop() *Logger {
	return New(io.Discard, zerolog.Disabled)
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context, falling back to Nop
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		return Nop()
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// Level returns the minimum level this logger emits
func (l *Logger) Level() zerolog.Level {
	return l.level
}

// Zerolog exposes the structured logger
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.zlog
}

func (l *Logger) enabled(level zerolog.Level) bool {
	return l.level != zerolog.Disabled && level >= l.level
}

// 📝 formatFileOperation formats a file operation for display
func (l *Logger) formatFileOperation(op FileOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.IsDryRun:
		symbol = '~'
		symbolColor = color.FgMagenta
	case op.IsModified:
		symbol = '⟳'
		symbolColor = color.FgBlue
	default:
		symbol = '-'
		symbolColor = color.FgYellow
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", statusWidth, op.Status),
		color.New(color.Faint).Sprint(fmt.Sprintf("%*d", replaceWidth, op.Replacements)),
		op.Path)
}

// 📝 LogFileOperation logs a processed file
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.enabled(zerolog.InfoLevel) {
		fmt.Fprintln(l.console, l.formatFileOperation(op))
	}

	l.zlog.Info().
		Str("file", op.Path).
		Str("status", op.Status).
		Bool("is_modified", op.IsModified).
		Bool("is_dry_run", op.IsDryRun).
		Int("replacements", op.Replacements).
		Msg("file operation")
}

// 📝 LogDiff prints a pending change for path
func (l *Logger) LogDiff(ctx context.Context, path string, diff string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.enabled(zerolog.InfoLevel) {
		fmt.Fprintf(l.console, "%s %s\n%s\n",
			color.New(color.FgMagenta).Sprint("---"),
			color.New(color.Bold).Sprint(path),
			diff)
	}

	l.zlog.Debug().Str("file", path).Int("diff_bytes", len(diff)).Msg("pending change")
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.enabled(zerolog.InfoLevel) {
		fmt.Fprintln(l.console)
	}
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.enabled(zerolog.InfoLevel) {
		name := color.New(color.Bold, color.FgCyan).Sprint("glo2lyx")
		fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	}
	l.zlog.Info().Msg(msg)
}

// 📝 Debug logs a debug message
func (l *Logger) Debug(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.enabled(zerolog.DebugLevel) {
		fmt.Fprintf(l.console, "🔍 %s\n", color.New(color.Faint).Sprint(msg))
	}
	l.zlog.Debug().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.enabled(zerolog.InfoLevel) {
		fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	}
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.enabled(zerolog.WarnLevel) {
		fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	}
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.enabled(zerolog.ErrorLevel) {
		fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	}
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.enabled(zerolog.InfoLevel) {
		fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	}
	l.zlog.Info().Msg(msg)
}

// 📝 Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Debug(fmt.Sprintf(format, args...))
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
