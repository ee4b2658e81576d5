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

package status

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	dir := t.TempDir()
	return New(dir, nil), dir
}

func TestManager_ReadWrite(t *testing.T) {
	ctx := context.Background()
	m, dir := newTestManager(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.lyx"), []byte("a much longer original body"), 0600))

	content, err := m.ReadFile(ctx, "a.lyx")
	require.NoError(t, err)
	assert.Equal(t, "a much longer original body", string(content))

	require.NoError(t, m.WriteFile(ctx, "a.lyx", []byte("short")))

	got, err := os.ReadFile(filepath.Join(dir, "a.lyx"))
	require.NoError(t, err)
	assert.Equal(t, "short", string(got), "in place write should truncate")

	info, err := os.Stat(filepath.Join(dir, "a.lyx"))
	require.NoError(t, err)
	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "in place write should keep the mode")
	}
}

func TestManager_ReadMissing(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.ReadFile(context.Background(), "missing.lyx")
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestManager_WriteFileAtomic(t *testing.T) {
	ctx := context.Background()
	m, dir := newTestManager(t)
	path := filepath.Join(dir, "sub", "doc.lyx")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("old"), 0640))

	require.NoError(t, m.WriteFileAtomic(ctx, "sub/doc.lyx", []byte("new")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files should remain")

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0640), info.Mode().Perm())
	}
}

func TestManager_Backup(t *testing.T) {
	ctx := context.Background()
	m, dir := newTestManager(t)
	path := filepath.Join(dir, "doc.lyx")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0644))

	require.NoError(t, m.BackupFile(ctx, "doc.lyx"))
	require.NoError(t, m.WriteFile(ctx, "doc.lyx", []byte("changed")))

	backup, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, "original", string(backup))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "changed", string(got))

	assert.NoError(t, m.BackupFile(ctx, "missing.lyx"), "backing up a missing file is a no-op")
	_, err = os.Stat(filepath.Join(dir, "missing.lyx.bak"))
	assert.True(t, os.IsNotExist(err))
}

func TestManager_Tracking(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	m.TrackFile(ctx, "b.lyx", FileInfo{Status: StatusUnchanged})
	m.TrackFile(ctx, "a.lyx", FileInfo{Status: StatusModified, Replacements: 3})
	m.TrackFile(ctx, "c.lyx", FileInfo{Status: StatusFailed, Error: errors.New("boom")})
	m.RecordWarning()

	files, err := m.ListFiles(ctx)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, []string{"a.lyx", "b.lyx", "c.lyx"}, []string{files[0].Path, files[1].Path, files[2].Path})
	assert.Equal(t, 3, files[0].Replacements)
	assert.Equal(t, StatusFailed, files[2].Status)

	assert.Equal(t, &Summary{Files: 2, Modified: 1, Replacements: 3, Warnings: 1}, m.Summary(ctx))
}

func TestAbsPath(t *testing.T) {
	m, dir := newTestManager(t)
	assert.Equal(t, filepath.Join(dir, "x", "y.lyx"), m.AbsPath("x/y.lyx"))
}

func TestChecksum(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Checksum(nil))
}
