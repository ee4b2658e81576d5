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
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/walteh/glo2lyx/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// 📊 FileStatus represents the outcome for a target file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusModified             // Content changed and was written
	StatusUnchanged            // Content written back unchanged
	StatusDryRun               // Content would change, nothing written
	StatusFailed               // Reading or writing failed
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusModified:
		return "modified"
	case StatusUnchanged:
		return "unchanged"
	case StatusDryRun:
		return "dry-run"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 FileInfo contains metadata about a processed file
type FileInfo struct {
	Path         string     // Path relative to the base directory
	Status       FileStatus // Outcome
	Size         int64      // Size of the written content
	Replacements int        // Number of replacements applied
	Checksum     string     // Content hash after processing
	Error        error      // Any error associated with this file
}

// 💾 FileManager handles file system access for target files. Paths are
// relative to the manager's base directory.
type FileManager interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// WriteFile truncates and rewrites the file in place
	WriteFile(ctx context.Context, path string, content []byte) error

	// WriteFileAtomic writes a sibling temp file and renames it over path
	WriteFileAtomic(ctx context.Context, path string, content []byte) error

	// BackupFile copies path to path+".bak"
	BackupFile(ctx context.Context, path string) error

	AbsPath(path string) string
}

// 📈 StatusReporter tracks processed files
type StatusReporter interface {
	TrackFile(ctx context.Context, path string, info FileInfo)
	ListFiles(ctx context.Context) ([]FileInfo, error)
	RecordWarning()
	Summary(ctx context.Context) *Summary
}

// 📋 Summary aggregates a run
type Summary struct {
	Files        int // files processed
	Modified     int // files whose content changed
	Replacements int // total replacements
	Warnings     int // warnings raised during the run
}

// 🔧 Manager implements both FileManager and StatusReporter
type Manager struct {
	baseDir   string        // Base directory for all operations
	logger    *log.Logger   // Logger for status updates
	formatter FileFormatter // Formatter for status messages

	mu       sync.RWMutex
	files    map[string]FileInfo
	warnings int
}

var (
	_ FileManager    = (*Manager)(nil)
	_ StatusReporter = (*Manager)(nil)
)

// 🏭 New creates a new status manager rooted at baseDir
func New(baseDir string, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Nop()
	}
	return &Manager{
		baseDir:   filepath.Clean(baseDir),
		logger:    logger,
		formatter: NewDefaultFileFormatter(),
		files:     make(map[string]FileInfo),
	}
}

// AbsPath returns the absolute path for a given relative path
func (m *Manager) AbsPath(path string) string {
	joined := filepath.Join(m.baseDir, filepath.FromSlash(path))
	if abs, err := filepath.Abs(joined); err == nil {
		return abs
	}
	return joined
}

// 🔍 Checksum generates a SHA-256 hash of the content
func Checksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// FileManager interface implementation

func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(m.AbsPath(path))
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

func (m *Manager) WriteFile(ctx context.Context, path string, content []byte) (err error) {
	file, err := os.OpenFile(m.AbsPath(path), os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0644)
	if err != nil {
		return errors.Errorf("opening file for write: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = errors.Errorf("closing file: %w", cerr)
		}
	}()

	if _, err := file.Write(content); err != nil {
		return errors.Errorf("writing file: %w", err)
	}
	return nil
}

func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte) error {
	absPath := m.AbsPath(path)

	mode := os.FileMode(0644)
	if info, err := os.Stat(absPath); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(absPath), "."+filepath.Base(absPath)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tempPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return errors.Errorf("setting temp file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, absPath); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}

func (m *Manager) BackupFile(ctx context.Context, path string) error {
	absPath := m.AbsPath(path)
	backupPath := absPath + ".bak"

	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return errors.Errorf("checking file existence: %w", err)
	}

	if err := copyFile(absPath, backupPath); err != nil {
		return errors.Errorf("creating backup: %w", err)
	}

	return nil
}

// StatusReporter interface implementation

func (m *Manager) TrackFile(ctx context.Context, path string, info FileInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()

	info.Path = path
	m.files[path] = info

	msg := m.formatter.FormatFileOperation(path, info.Status, info.Replacements)
	if info.Error != nil {
		msg = m.formatter.FormatError(info.Error)
	}
	m.logger.Zerolog().Debug().
		Str("path", path).
		Str("status", info.Status.String()).
		Str("checksum", info.Checksum).
		Msg(msg)
}

// RecordWarning counts a warning raised during the run
func (m *Manager) RecordWarning() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warnings++
}

// ListFiles returns tracked files sorted by path
func (m *Manager) ListFiles(ctx context.Context) ([]FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make([]FileInfo, 0, len(m.files))
	for _, info := range m.files {
		files = append(files, info)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

func (m *Manager) Summary(ctx context.Context) *Summary {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := &Summary{Warnings: m.warnings}
	for _, info := range m.files {
		if info.Status == StatusFailed {
			continue
		}
		s.Files++
		s.Replacements += info.Replacements
		if info.Status == StatusModified || info.Status == StatusDryRun {
			s.Modified++
		}
	}
	return s
}

// Helper functions

func copyFile(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	destination, err := os.Create(dst)
	if err != nil {
		return errors.Errorf("creating destination file: %w", err)
	}
	defer destination.Close()

	if _, err := io.Copy(destination, source); err != nil {
		return errors.Errorf("copying file: %w", err)
	}

	return destination.Close()
}
