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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/glo2lyx/pkg/glossary"
	"github.com/walteh/glo2lyx/pkg/nomenclature"
	"gitlab.com/tozd/go/errors"
)

const testGlossary = `\documentclass{article}
\newabbreviation{GPU}{GPU}{graphics processing unit}
\newabbreviation{CPU}{CPU}{central processing unit}
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func markup(t *testing.T, key string) string {
	t.Helper()
	m, err := nomenclature.Default().Render(key)
	require.NoError(t, err)
	return m
}

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunConvert(t *testing.T) {
	dir := t.TempDir()
	gloss := filepath.Join(dir, "glossary.tex")
	writeFile(t, gloss, testGlossary)

	docs := filepath.Join(dir, "docs")
	top := filepath.Join(docs, "main.lyx")
	nested := filepath.Join(docs, "chapters", "one.lyx")
	other := filepath.Join(docs, "notes.txt")
	writeFile(t, top, "the GPU is fast")
	writeFile(t, nested, "see #CPU here")
	writeFile(t, other, "the GPU is fast")

	code, stdout, stderr := execute(t, gloss, docs)
	require.Equal(t, exitOK, code, stderr)

	assert.Equal(t, "the "+markup(t, "GPU")+" is fast", readFile(t, top))
	assert.Equal(t, "see "+markup(t, "CPU")+" here", readFile(t, nested))
	assert.Equal(t, "the GPU is fast", readFile(t, other), "non-lyx files are left alone")
	assert.Contains(t, stderr, `Parsed these keys: ["GPU", "CPU"]`)
	assert.Contains(t, stderr, "glo2lyx")
	assert.Contains(t, stderr, "converting "+gloss)

	assert.Contains(t, stdout, "Replacements")
	assert.Contains(t, stdout, "main.lyx")
	assert.Contains(t, stdout, filepath.Join("chapters", "one.lyx"))
	assert.Contains(t, stdout, "modified")
}

func TestRunDebugReportsKeyCounts(t *testing.T) {
	dir := t.TempDir()
	gloss := filepath.Join(dir, "glossary.tex")
	writeFile(t, gloss, testGlossary)
	doc := filepath.Join(dir, "main.lyx")
	writeFile(t, doc, "a GPU b #GPU c")

	cfgPath := filepath.Join(dir, "glo2lyx.yaml")
	writeFile(t, cfgPath, "verbose: true\n")

	code, _, stderr := execute(t, "--debug", "--config", cfgPath, gloss, dir)

	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stderr, doc+": GPU replaced 2 times")
	assert.Contains(t, stderr, "Loading configuration from "+cfgPath)
}

func TestRunConvertShallow(t *testing.T) {
	dir := t.TempDir()
	gloss := filepath.Join(dir, "glossary.tex")
	writeFile(t, gloss, testGlossary)

	top := filepath.Join(dir, "main.lyx")
	nested := filepath.Join(dir, "sub", "one.lyx")
	writeFile(t, top, "a GPU b")
	writeFile(t, nested, "a GPU b")

	code, _, stderr := execute(t, "--recursive=false", gloss, dir)
	require.Equal(t, exitOK, code, stderr)

	assert.Equal(t, "a "+markup(t, "GPU")+" b", readFile(t, top))
	assert.Equal(t, "a GPU b", readFile(t, nested))
}

func TestRunNoKeys(t *testing.T) {
	dir := t.TempDir()
	gloss := filepath.Join(dir, "glossary.tex")
	writeFile(t, gloss, "\\documentclass{article}\n")
	doc := filepath.Join(dir, "main.lyx")
	writeFile(t, doc, "a GPU b")

	code, _, stderr := execute(t, gloss, dir)

	assert.Equal(t, exitNoKeys, code)
	assert.Contains(t, stderr, "no keys found")
	assert.Equal(t, "a GPU b", readFile(t, doc), "no file is touched when there are no keys")
}

func TestRunNoTargets(t *testing.T) {
	dir := t.TempDir()
	gloss := filepath.Join(dir, "glossary.tex")
	writeFile(t, gloss, testGlossary)

	code, _, stderr := execute(t, gloss, filepath.Join(dir))

	assert.Equal(t, exitOK, code)
	assert.Contains(t, stderr, "No LyX files found at")
}

func TestRunWrongGlossaryExtension(t *testing.T) {
	dir := t.TempDir()
	gloss := filepath.Join(dir, "glossary.txt")
	writeFile(t, gloss, testGlossary)

	code, _, stderr := execute(t, gloss, dir)

	assert.Equal(t, exitOK, code)
	assert.Contains(t, stderr, "Keys file is not a tex file")
}

func TestRunMissingGlossary(t *testing.T) {
	dir := t.TempDir()

	code, _, stderr := execute(t, filepath.Join(dir, "missing.tex"), dir)

	assert.Equal(t, exitFailed, code)
	assert.NotEmpty(t, stderr)
}

func TestRunRequiresGlossary(t *testing.T) {
	code, _, stderr := execute(t)

	assert.Equal(t, exitFailed, code)
	assert.Contains(t, stderr, "glossary is required")
}

func TestRunDryRun(t *testing.T) {
	dir := t.TempDir()
	gloss := filepath.Join(dir, "glossary.tex")
	writeFile(t, gloss, testGlossary)
	doc := filepath.Join(dir, "main.lyx")
	writeFile(t, doc, "a GPU b")

	code, _, stderr := execute(t, "--dry-run", gloss, dir)

	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "a GPU b", readFile(t, doc))
	assert.Contains(t, stderr, "--- "+doc)
}

func TestRunBackup(t *testing.T) {
	dir := t.TempDir()
	gloss := filepath.Join(dir, "glossary.tex")
	writeFile(t, gloss, testGlossary)
	doc := filepath.Join(dir, "main.lyx")
	writeFile(t, doc, "a GPU b")

	code, _, stderr := execute(t, "--backup", "--atomic", gloss, dir)

	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "a GPU b", readFile(t, doc+".bak"))
	assert.Equal(t, "a "+markup(t, "GPU")+" b", readFile(t, doc))
}

func TestRunConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	gloss := filepath.Join(dir, "glossary.tex")
	writeFile(t, gloss, testGlossary)

	top := filepath.Join(dir, "main.lyx")
	nested := filepath.Join(dir, "sub", "one.lyx")
	writeFile(t, top, "a GPU b")
	writeFile(t, nested, "a GPU b")

	cfgPath := filepath.Join(dir, "glo2lyx.yaml")
	writeFile(t, cfgPath, "glossary: "+gloss+"\ndir: "+dir+"\nrecursive: false\ntemplate:\n  description: from-file\n")

	t.Run("config_file", func(t *testing.T) {
		writeFile(t, top, "a GPU b")
		writeFile(t, nested, "a GPU b")

		code, _, stderr := execute(t, "--config", cfgPath)
		require.Equal(t, exitOK, code, stderr)

		assert.Contains(t, readFile(t, top), `description "from-file"`)
		assert.Equal(t, "a GPU b", readFile(t, nested))
	})

	t.Run("environment_overrides_file", func(t *testing.T) {
		writeFile(t, top, "a GPU b")
		writeFile(t, nested, "a GPU b")
		t.Setenv("GLO2LYX_RECURSIVE", "true")

		code, _, stderr := execute(t, "--config", cfgPath)
		require.Equal(t, exitOK, code, stderr)

		assert.Contains(t, readFile(t, nested), "nomenclature")
	})

	t.Run("dotenv_overrides_file", func(t *testing.T) {
		writeFile(t, top, "a GPU b")
		envFile := filepath.Join(dir, "test.env")
		writeFile(t, envFile, "GLO2LYX_TEMPLATE_DESCRIPTION=from-dotenv\n")

		code, _, stderr := execute(t, "--config", cfgPath, "--env-file", envFile)
		require.Equal(t, exitOK, code, stderr)

		assert.Contains(t, readFile(t, top), `description "from-dotenv"`)
	})

	t.Run("flag_overrides_environment", func(t *testing.T) {
		writeFile(t, top, "a GPU b")
		writeFile(t, nested, "a GPU b")
		t.Setenv("GLO2LYX_RECURSIVE", "true")

		code, _, stderr := execute(t, "--config", cfgPath, "--recursive=false")
		require.Equal(t, exitOK, code, stderr)

		assert.Equal(t, "a GPU b", readFile(t, nested))
	})
}

func TestRunQuiet(t *testing.T) {
	dir := t.TempDir()
	gloss := filepath.Join(dir, "glossary.tex")
	writeFile(t, gloss, testGlossary)
	writeFile(t, filepath.Join(dir, "main.lyx"), "a GPU b")

	code, stdout, stderr := execute(t, "--verbose=false", gloss, dir)

	require.Equal(t, exitOK, code, stderr)
	assert.NotContains(t, stderr, "Parsed these keys")
	assert.NotContains(t, stdout, "Replacements", "the file table is informational")
}

func TestRunStrict(t *testing.T) {
	dir := t.TempDir()
	gloss := filepath.Join(dir, "glossary.tex")
	writeFile(t, gloss, testGlossary+"\\newabbreviation\n")

	code, _, stderr := execute(t, "--strict", gloss, dir)
	assert.Equal(t, exitFailed, code)
	assert.Contains(t, stderr, "line 4")

	code, _, stderr = execute(t, gloss, dir)
	assert.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stderr, "Skipping malformed definition")
}

func TestKeysCommand(t *testing.T) {
	dir := t.TempDir()
	gloss := filepath.Join(dir, "glossary.tex")
	writeFile(t, gloss, testGlossary)
	doc := filepath.Join(dir, "main.lyx")
	writeFile(t, doc, "a GPU b")

	code, stdout, stderr := execute(t, "keys", gloss)

	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "GPU")
	assert.Contains(t, stdout, "CPU")
	assert.Less(t, strings.Index(stdout, "GPU"), strings.Index(stdout, "CPU"))
	assert.Equal(t, "a GPU b", readFile(t, doc))
}

func TestVersionCommand(t *testing.T) {
	code, stdout, _ := execute(t, "version")

	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "glo2lyx version info")
	assert.Contains(t, stdout, "Go:")
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: exitOK},
		{name: "no_keys", err: errors.Errorf("loading keys: %w", glossary.ErrNoKeys), want: exitNoKeys},
		{name: "other", err: errors.New("boom"), want: exitFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
