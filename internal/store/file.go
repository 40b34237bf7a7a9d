package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/antopolskiy/taskboard/internal/filelock"
)

const (
	dirMode  = 0o750
	fileMode = 0o600

	lockFileName = ".store.lock"
)

// FileStore keeps each key in its own <key>.json file. Writes go to a
// temp file that is renamed into place while holding the store lock, so
// readers only ever observe complete values.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Path returns the file that backs key.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Load implements Store.
func (s *FileStore) Load(key string, v any) (bool, error) {
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("reading %s: %w", key, err)
	}
	if err := decode(key, data, v); err != nil {
		return false, err
	}
	return true, nil
}

// Save implements Store.
func (s *FileStore) Save(key string, v any) error {
	data, err := encode(key, v)
	if err != nil {
		return err
	}
	unlock, err := filelock.Lock(filepath.Join(s.dir, lockFileName))
	if err != nil {
		return err
	}
	defer func() { _ = unlock() }()

	tmp, err := os.CreateTemp(s.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", key, err)
	}
	if err := os.Chmod(tmpName, fileMode); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("setting mode on %s: %w", key, err)
	}
	if err := os.Rename(tmpName, s.Path(key)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", key, err)
	}
	return nil
}

// Clear implements Store.
func (s *FileStore) Clear(key string) error {
	unlock, err := filelock.Lock(filepath.Join(s.dir, lockFileName))
	if err != nil {
		return err
	}
	defer func() { _ = unlock() }()

	if err := os.Remove(s.Path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clearing %s: %w", key, err)
	}
	return nil
}

// Close implements Store. A file store holds no open handles.
func (s *FileStore) Close() error {
	return nil
}
