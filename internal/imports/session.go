// Package imports tracks the set of photos selected for an export action.
// A Session is an explicit value owned and passed by the caller; there is no
// global file-manager state.
package imports

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/lzzz0001/photo-homework/internal/batch"

	// Register decoders for the probe in Info.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Session is an ordered, duplicate-free list of source photo paths plus the
// output settings the caller has picked so far.
type Session struct {
	ID               uuid.UUID
	OutputDir        string
	PreventOverwrite bool

	files []string
}

// NewSession creates an empty session. Overwrite prevention is on by
// default, matching the desktop behavior of refusing to export into a
// source directory.
func NewSession() *Session {
	return &Session{ID: uuid.New(), PreventOverwrite: true}
}

// Add puts a single file into the session. It reports false when the path
// does not exist, is not a supported image, or is already present.
func (s *Session) Add(path string) bool {
	if _, err := os.Stat(path); err != nil {
		return false
	}
	if !batch.SupportedInput(path) {
		return false
	}
	for _, f := range s.files {
		if f == path {
			return false
		}
	}
	s.files = append(s.files, path)
	return true
}

// AddAll adds many files and returns those actually added.
func (s *Session) AddAll(paths []string) []string {
	var added []string
	for _, p := range paths {
		if s.Add(p) {
			added = append(added, p)
		}
	}
	return added
}

// AddDir adds every supported image directly in dir, or in its whole subtree
// when recursive is set. It returns the files added.
func (s *Session) AddDir(dir string, recursive bool) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	var added []string
	if recursive {
		err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && s.Add(path) {
				added = append(added, path)
			}
			return nil
		})
		if err != nil {
			return added, fmt.Errorf("walk dir: %w", err)
		}
		return added, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if p := filepath.Join(dir, e.Name()); s.Add(p) {
			added = append(added, p)
		}
	}
	return added, nil
}

// Remove drops a file from the session.
func (s *Session) Remove(path string) bool {
	for i, f := range s.files {
		if f == path {
			s.files = append(s.files[:i], s.files[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the session.
func (s *Session) Clear() {
	s.files = nil
}

// Files returns a copy of the current file list.
func (s *Session) Files() []string {
	out := make([]string, len(s.files))
	copy(out, s.files)
	return out
}

// Len returns the number of files in the session.
func (s *Session) Len() int {
	return len(s.files)
}
