// Package fileutil provides crash-safe file writes for the file store.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// WriteFileAtomic writes data to filename via a temp file in the same
// directory and a rename, so readers see either the old or the new content.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	var b Batch
	if err := b.Add(filename, data, perm); err != nil {
		return err
	}
	return b.Commit()
}

type staged struct {
	tmpPath string
	target  string
}

// Batch stages several files and renames them into place together. Nothing is
// visible until Commit; a failed Add or Commit removes every staged temp file.
//
// Renames are individually atomic. A crash between two renames can leave the
// first file updated and the second not.
type Batch struct {
	files []staged
}

// Add writes data to a synced temp file next to filename.
func (b *Batch) Add(filename string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".tmp.*")
	if err != nil {
		b.Abort()
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpPath)
		b.Abort()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		return fail(fmt.Errorf("failed to write temp file: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return fail(fmt.Errorf("failed to sync temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		b.Abort()
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		b.Abort()
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	b.files = append(b.files, staged{tmpPath: tmpPath, target: filename})
	return nil
}

// Commit renames every staged file over its target in the order added.
func (b *Batch) Commit() error {
	for i, f := range b.files {
		if err := os.Rename(f.tmpPath, f.target); err != nil {
			b.files = b.files[i:]
			b.Abort()
			return fmt.Errorf("failed to rename %s: %w", filepath.Base(f.target), err)
		}
	}
	b.files = nil
	return nil
}

// Abort discards staged files that have not been committed.
func (b *Batch) Abort() {
	for _, f := range b.files {
		os.Remove(f.tmpPath)
	}
	b.files = nil
}

// ReadFileIfExists returns the file contents, or ok=false when it is missing.
func ReadFileIfExists(filename string) (data []byte, ok bool, err error) {
	data, err = os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}
