// Package store persists JSON values under string keys. It is the
// board's only durable state: one key for the session user and one for
// the full task collection.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
)

// Keys used by the board.
const (
	KeyUser  = "user"
	KeyTasks = "tasks"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Backends lists the supported backend names.
var Backends = []string{BackendFile, BackendSQLite, BackendMemory}

// SQLiteFileName is the database file used by the sqlite backend.
const SQLiteFileName = "store.db"

// Sentinel errors.
var (
	ErrCorrupt        = errors.New("stored value is not valid JSON")
	ErrUnknownBackend = errors.New("unknown store backend")
)

// Store is a synchronous key-value store of JSON blobs. Save overwrites
// the whole value; there are no partial writes.
type Store interface {
	// Load decodes the value stored under key into v. It reports false
	// when the key is absent.
	Load(key string, v any) (bool, error)
	// Save encodes v and replaces the value stored under key.
	Save(key string, v any) error
	// Clear removes key. Clearing an absent key is not an error.
	Clear(key string) error
	Close() error
}

// Open returns the named backend rooted at dir.
func Open(backend, dir string) (Store, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(dir)
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dir, SQLiteFileName))
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

func encode(key string, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", key, err)
	}
	return data, nil
}

func decode(key string, data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: key %q: %w", ErrCorrupt, key, err)
	}
	return nil
}
