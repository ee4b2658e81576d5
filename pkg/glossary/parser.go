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

// Package glossary extracts abbreviation keys from TeX definition files.
package glossary

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
)

const (
	// DefaultMarker is the TeX command whose first argument becomes a key
	DefaultMarker = `\newabbreviation`

	// DefaultDelimiter splits a definition line into command and arguments
	DefaultDelimiter = "{"
)

var (
	// ErrNoKeys is returned when a definitions file yields no keys
	ErrNoKeys = errors.Base("no keys found")

	// ErrMalformedDefinition is returned by a strict parser for a definition
	// line whose first argument cannot produce a key
	ErrMalformedDefinition = errors.Base("malformed definition")
)

// 🔑 Key is an abbreviation identifier in definition order
type Key struct {
	Name string // Key text used as the substitution target
	Line int    // 1-based line in the definitions source
}

func (k Key) String() string {
	return k.Name
}

// ⏭️ SkippedLine records a definition line that produced no key
type SkippedLine struct {
	Line   int
	Text   string
	Reason string
}

// 📦 Extraction is the result of scanning a definitions source
type Extraction struct {
	Keys    []Key
	Skipped []SkippedLine
}

// Names returns the key names in extraction order
func (e *Extraction) Names() []string {
	names := make([]string, len(e.Keys))
	for i, k := range e.Keys {
		names[i] = k.Name
	}
	return names
}

// 🔌 Extractor turns definitions text into an ordered key list
type Extractor interface {
	ExtractKeys(ctx context.Context, r io.Reader) (*Extraction, error)
}

// 🔧 Parser is the line-oriented Extractor. A line defines a key when its
// first delimiter-separated field contains Marker; the key is the second
// field minus its final character (the closing brace).
type Parser struct {
	Marker    string
	Delimiter string

	// Strict fails on a malformed definition line instead of skipping it
	Strict bool
}

// NewParser creates a parser for marker, falling back to DefaultMarker
func NewParser(marker string) *Parser {
	if marker == "" {
		marker = DefaultMarker
	}
	return &Parser{
		Marker:    marker,
		Delimiter: DefaultDelimiter,
	}
}

var _ Extractor = (*Parser)(nil)

// ExtractKeys implements Extractor
func (p *Parser) ExtractKeys(ctx context.Context, r io.Reader) (*Extraction, error) {
	delim := p.Delimiter
	if delim == "" {
		delim = DefaultDelimiter
	}

	result := &Extraction{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		fields := strings.Split(line, delim)
		if !strings.Contains(fields[0], p.Marker) {
			continue
		}

		name, reason := keyFromFields(fields)
		if reason != "" {
			if p.Strict {
				return nil, errors.Errorf("line %d: %s: %w", lineNo, reason, ErrMalformedDefinition)
			}
			result.Skipped = append(result.Skipped, SkippedLine{Line: lineNo, Text: line, Reason: reason})
			continue
		}

		result.Keys = append(result.Keys, Key{Name: name, Line: lineNo})
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Errorf("scanning definitions: %w", err)
	}

	return result, nil
}

// keyFromFields strips one trailing character from the first argument
func keyFromFields(fields []string) (string, string) {
	if len(fields) < 2 {
		return "", "missing first argument"
	}
	arg := fields[1]
	_, size := utf8.DecodeLastRuneInString(arg)
	if size == 0 || size == len(arg) {
		return "", fmt.Sprintf("first argument %q too short", arg)
	}
	return arg[:len(arg)-size], ""
}
