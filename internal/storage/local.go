package storage

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore keeps submission artifacts on the local filesystem. Uploads are
// first staged into TempDir by the HTTP layer, then promoted into the
// permanent directory under a random name so original filenames can never
// collide or traverse paths.
type LocalStore struct {
	baseDir   string
	tempDir   string
	urlPrefix string
}

// NewLocalStore creates both directories if needed.
func NewLocalStore(baseDir, tempDir string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}
	return &LocalStore{
		baseDir:   baseDir,
		tempDir:   tempDir,
		urlPrefix: "/uploads/submissions",
	}, nil
}

// TempDir returns the staging directory for in-flight uploads.
func (s *LocalStore) TempDir() string {
	return s.tempDir
}

// StagePath returns a fresh staging location for an incoming upload.
func (s *LocalStore) StagePath() string {
	return filepath.Join(s.tempDir, uuid.NewString())
}

// Promote moves a staged upload into permanent storage under a generated
// unique name, keeping only the original extension. It returns the stored
// path that is persisted with the submission.
func (s *LocalStore) Promote(tempPath, originalName string) (string, error) {
	ext := filepath.Ext(originalName)
	name := uuid.NewString() + ext
	dst := filepath.Join(s.baseDir, name)

	if err := os.Rename(tempPath, dst); err != nil {
		return "", fmt.Errorf("promote artifact: %w", err)
	}

	return path.Join(s.urlPrefix, name), nil
}

// Remove deletes a stored artifact by its stored path. A missing blob is not
// an error.
func (s *LocalStore) Remove(storedPath string) error {
	name := path.Base(storedPath)
	if name == "." || name == "/" || !strings.HasPrefix(storedPath, s.urlPrefix) {
		return fmt.Errorf("remove artifact: unexpected path %q", storedPath)
	}

	err := os.Remove(filepath.Join(s.baseDir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove artifact: %w", err)
	}
	return nil
}

// Discard removes a staged upload that will not be promoted.
func (s *LocalStore) Discard(tempPath string) {
	_ = os.Remove(tempPath)
}
