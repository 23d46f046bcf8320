// Package media is the file-storage collaborator: it turns raw upload
// bytes into an opaque reference string and serves them back by that
// reference. The core never interprets the content.
package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"instantshare/internal/util"
)

// Storage writes media files under a single directory.
type Storage struct {
	dir string
}

// NewStorage ensures dir exists and returns a Storage rooted there.
func NewStorage(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("media: failed to create directory %s: %w", dir, err)
	}
	return &Storage{dir: dir}, nil
}

// Save stores the upload and returns the reference it is retrievable by.
// The reference keeps the original extension but nothing else of the
// client-supplied name.
func (s *Storage) Save(originalName string, r io.Reader) (string, error) {
	ref := uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
	f, err := os.Create(filepath.Join(s.dir, ref))
	if err != nil {
		return "", fmt.Errorf("media: failed to create file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("media: failed to write upload: %w", err)
	}
	return ref, nil
}

// Path resolves a stored reference to an on-disk path. References
// containing path separators are rejected, as is anything not on disk.
func (s *Storage) Path(ref string) (string, error) {
	if ref == "" || strings.ContainsAny(ref, `/\`) || ref != filepath.Base(ref) {
		return "", util.ErrInvalidInput
	}
	path := filepath.Join(s.dir, ref)
	if _, err := os.Stat(path); err != nil {
		return "", util.ErrNotFound
	}
	return path, nil
}
