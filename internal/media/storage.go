package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Storage persists uploaded bytes and returns the stored object's name.
type Storage interface {
	Save(ctx context.Context, name string, data []byte) error
	Remove(ctx context.Context, name string) error
}

// DiskStorage writes uploads under a single local directory. Object names are
// always uuid-derived, so no path traversal can come in through them.
type DiskStorage struct {
	dir string
}

func NewDiskStorage(dir string) (*DiskStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload directory required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &DiskStorage{dir: dir}, nil
}

func (s *DiskStorage) Save(_ context.Context, name string, data []byte) error {
	target := filepath.Join(s.dir, filepath.Base(name))

	// Write to a temp file first so a crashed upload never leaves a
	// half-written object behind the public path.
	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close upload: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("finalize upload: %w", err)
	}
	return nil
}

func (s *DiskStorage) Remove(_ context.Context, name string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}

// Dir exposes the storage root for static file serving.
func (s *DiskStorage) Dir() string {
	return s.dir
}

func newObjectName(ext string) string {
	return uuid.NewString() + ext
}
