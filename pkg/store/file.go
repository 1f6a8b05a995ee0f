package store

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

const fileExt = ".json"

// FileStore is a file-based store for CLI use.
// Each diagram is stored as <key>.json in a base directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based store.
// If baseDir is empty, defaults to ~/.config/isostack/diagrams/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, ioError(err, "get home dir")
		}
		baseDir = filepath.Join(home, ".config", "isostack", "diagrams")
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, ioError(err, "create store dir")
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.baseDir, key+fileExt)
}

func (s *FileStore) Save(ctx context.Context, key, text string) error {
	if err := validKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.baseDir, ".save-*")
	if err != nil {
		return ioError(err, "create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		return ioError(err, "write %s", key)
	}
	if err := tmp.Close(); err != nil {
		return ioError(err, "close %s", key)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		return ioError(err, "store %s", key)
	}
	return nil
}

func (s *FileStore) Load(ctx context.Context, key string) (string, error) {
	if err := validKey(key); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", notFound(key)
		}
		return "", ioError(err, "read %s", key)
	}
	return string(data), nil
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return ioError(err, "remove %s", key)
	}
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, ioError(err, "read store dir")
	}
	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != fileExt {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, fileExt))
	}
	slices.Sort(keys)
	return keys, nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
