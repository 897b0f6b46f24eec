package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes image assets under a root directory and maps them to
// public URL paths served by the storefront.
type LocalStore struct {
	rootDir      string
	publicPrefix string
}

func NewLocalStore(rootDir, publicPrefix string) *LocalStore {
	return &LocalStore{
		rootDir:      rootDir,
		publicPrefix: strings.TrimRight(publicPrefix, "/"),
	}
}

func (s *LocalStore) EnsureDir(relDir string) error {
	if err := os.MkdirAll(filepath.Join(s.rootDir, relDir), 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", relDir, err)
	}
	return nil
}

func (s *LocalStore) WriteFile(relPath string, data []byte) error {
	full := filepath.Join(s.rootDir, relPath)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", relPath, err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", relPath, err)
	}
	return nil
}

func (s *LocalStore) Exists(relPath string) bool {
	_, err := os.Stat(filepath.Join(s.rootDir, relPath))
	return err == nil
}

// PublicURL converts a stored relative path into the URL recorded on the
// image row.
func (s *LocalStore) PublicURL(relPath string) string {
	return s.publicPrefix + "/" + filepath.ToSlash(relPath)
}
