package archive

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is a content-addressed snapshot store.
type Store interface {
	// Store persists data and returns its digest.
	Store(ctx context.Context, data []byte) (string, error)
	// Get returns the data for a digest, or ErrNotFound.
	Get(ctx context.Context, id string) ([]byte, error)
	Exists(ctx context.Context, id string) (bool, error)
	// Delete removes a snapshot. Deleting a missing snapshot is not an error.
	Delete(ctx context.Context, id string) error
}

// FileStore keeps snapshots as files in a directory.
type FileStore struct {
	dir string
	mu  sync.RWMutex
}

func NewFileStore(dir string) (*FileStore, error) {
	//nolint:gosec // archive directory is meant to be shared
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create archive dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory snapshots are written to.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) Store(_ context.Context, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := Digest(data)
	path := s.path(id[len(digestPrefix):])
	if _, err := os.Stat(path); err == nil {
		return id, nil
	}

	tmp := path + ".tmp"
	//nolint:gosec // snapshots are readable results
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("commit snapshot: %w", err)
	}
	return id, nil
}

func (s *FileStore) Get(_ context.Context, id string) ([]byte, error) {
	raw, err := parseDigest(id)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(raw))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return data, nil
}

func (s *FileStore) Exists(_ context.Context, id string) (bool, error) {
	raw, err := parseDigest(id)
	if err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err = os.Stat(s.path(raw))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("stat snapshot: %w", err)
	}
}

func (s *FileStore) Delete(_ context.Context, id string) error {
	raw, err := parseDigest(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(raw)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

func (s *FileStore) path(raw string) string {
	return filepath.Join(s.dir, objectName("", raw))
}

// SnapshotFile stores the contents of the file at path.
func SnapshotFile(ctx context.Context, store Store, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%s is empty", path)
	}
	return store.Store(ctx, data)
}
