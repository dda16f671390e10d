// Package highscore persists the single best score as decimal text.
package highscore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// FileStore keeps the high score in one plain-text file.
type FileStore struct {
	Path string
}

// NewFileStore returns a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the stored score. A missing, unreadable or non-numeric file
// yields 0; negative values are treated as 0 too.
func (s *FileStore) Load() int {
	n, err := s.Read()
	if err != nil {
		return 0
	}
	return n
}

// Read is Load with the failure reason kept, for diagnostics.
func (s *FileStore) Read() (int, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("read high score %s: %w", s.Path, err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		return 0, fmt.Errorf("parse high score %s: %w", s.Path, err)
	}
	if n < 0 {
		return 0, nil
	}
	return n, nil
}

// Save overwrites the file with score. It writes a sibling temp file and
// renames it into place so a crash never leaves a half-written score.
func (s *FileStore) Save(score int) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create high score dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".highscore-*")
	if err != nil {
		return fmt.Errorf("create temp high score: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(strconv.Itoa(score)); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write high score: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close high score: %w", err)
	}
	if err := os.Rename(tmpName, s.Path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace high score: %w", err)
	}
	return nil
}

// MemoryStore is an in-process store for headless runs and tests.
type MemoryStore struct {
	mu    sync.Mutex
	score int
	saves int
}

// NewMemoryStore returns a store preloaded with score.
func NewMemoryStore(score int) *MemoryStore {
	return &MemoryStore{score: score}
}

func (m *MemoryStore) Load() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.score
}

func (m *MemoryStore) Save(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.score = score
	m.saves++
	return nil
}

// Saves reports how many times Save was called.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
