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
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindTargets(t *testing.T) {
	fsys := fstest.MapFS{
		"a.lyx":             {Data: []byte("a")},
		"notes.txt":         {Data: []byte("n")},
		"b.lyx~":            {Data: []byte("backup")},
		"ch1/intro.lyx":     {Data: []byte("i")},
		"ch1/deep/end.lyx":  {Data: []byte("e")},
		"dir.lyx/inner.txt": {Data: []byte("x")},
	}

	tests := []struct {
		name      string
		recursive bool
		want      []string
	}{
		{
			name:      "recursive",
			recursive: true,
			want:      []string{"a.lyx", "ch1/deep/end.lyx", "ch1/intro.lyx"},
		},
		{
			name:      "shallow",
			recursive: false,
			want:      []string{"a.lyx"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := findTargets(fsys, ".lyx", tt.recursive)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestFindTargets_InvalidExtension(t *testing.T) {
	_, err := findTargets(fstest.MapFS{}, "", true)
	assert.Error(t, err)

	_, err = findTargets(fstest.MapFS{}, ".l*x", true)
	assert.Error(t, err)
}

func TestFindTargets_Disk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "x.lyx"), []byte("x"), 0644))

	got, err := FindTargets(dir, ".lyx", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"sub/x.lyx"}, got)

	got, err = FindTargets(dir, ".lyx", false)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = FindTargets(filepath.Join(dir, "missing"), ".lyx", true)
	require.NoError(t, err)
	assert.Empty(t, got, "a missing directory has no targets")
}
