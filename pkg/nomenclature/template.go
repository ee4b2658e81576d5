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

// Package nomenclature renders the LyX inset that replaces a glossary key.
package nomenclature

import (
	"strings"
	"text/template"

	"gitlab.com/tozd/go/errors"
)

// DefaultBody is the LyX nomenclature inset. With \nomenclature renewed as
// \gls the inset renders as a glossary entry.
const DefaultBody = `
\begin_inset CommandInset nomenclature
LatexCommand nomenclature
symbol "{{ .Key }}"
description "{{ .Description }}"
literal "{{ .Literal }}"
\end_inset

`

const (
	DefaultDescription = "a"
	DefaultLiteral     = "false"
)

// 🔧 Options configures a Template
type Options struct {
	Description string // description attribute, DefaultDescription if empty
	Literal     string // literal attribute, DefaultLiteral if empty
	Body        string // text/template body, DefaultBody if empty
}

// Data is what a template body sees
type Data struct {
	Key         string
	Description string
	Literal     string
}

// 📝 Template renders markup blocks for keys
type Template struct {
	tmpl        *template.Template
	description string
	literal     string
}

// Default returns the stock LyX nomenclature template
func Default() *Template {
	t, err := New(Options{})
	if err != nil {
		panic(err)
	}
	return t
}

// New parses a template from opts
func New(opts Options) (*Template, error) {
	body := opts.Body
	if body == "" {
		body = DefaultBody
	}
	if !strings.Contains(body, ".Key") {
		return nil, errors.Errorf("template body must reference .Key")
	}

	tmpl, err := template.New("nomenclature").Option("missingkey=error").Parse(body)
	if err != nil {
		return nil, errors.Errorf("parsing template: %w", err)
	}

	description := opts.Description
	if description == "" {
		description = DefaultDescription
	}
	literal := opts.Literal
	if literal == "" {
		literal = DefaultLiteral
	}

	return &Template{
		tmpl:        tmpl,
		description: description,
		literal:     literal,
	}, nil
}

// Render returns the markup block for key
func (t *Template) Render(key string) (string, error) {
	var sb strings.Builder
	err := t.tmpl.Execute(&sb, Data{
		Key:         key,
		Description: t.description,
		Literal:     t.literal,
	})
	if err != nil {
		return "", errors.Errorf("rendering template for key %q: %w", key, err)
	}
	return sb.String(), nil
}
