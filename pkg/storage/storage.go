// Package storage stages uploaded statement files on the local filesystem
// for the duration of a request, and sweeps up after requests that never
// cleaned up behind themselves.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// stagedPrefix marks files this package owns; the sweeper never touches
// anything else in the directory.
const stagedPrefix = "statement-"

// StagedFile is one upload staged on disk.
type StagedFile struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// Staging stages uploads under a single directory.
type Staging struct {
	dir string
}

// NewStaging creates the staging area, making the directory if needed.
func NewStaging(dir string) (*Staging, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	return &Staging{dir: dir}, nil
}

// Dir returns the staging directory.
func (s *Staging) Dir() string { return s.dir }

// Stage writes the upload to disk under a fresh ID, preserving the original
// extension so downstream format dispatch keeps working.
func (s *Staging) Stage(name string, r io.Reader) (*StagedFile, error) {
	id := uuid.New()
	ext := strings.ToLower(filepath.Ext(name))
	path := filepath.Join(s.dir, stagedPrefix+id.String()+ext)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to stage upload: %w", err)
	}

	size, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("failed to stage upload: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to stage upload: %w", err)
	}

	return &StagedFile{
		ID:        id,
		Name:      name,
		Path:      path,
		Size:      size,
		CreatedAt: time.Now(),
	}, nil
}

// Remove deletes a staged file. A file already gone is not an error.
func (s *Staging) Remove(f *StagedFile) error {
	if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove staged file: %w", err)
	}
	return nil
}

// SweepOlderThan removes staged files older than age and reports how many
// went. Files outside the staged prefix are never touched.
func (s *Staging) SweepOlderThan(age time.Duration) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read staging directory: %w", err)
	}

	cutoff := time.Now().Add(-age)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), stagedPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err == nil {
			removed++
		}
	}
	return removed, nil
}
