package store

import (
	"maps"
	"sync"
)

// MemoryStore is an in-process Store. Values are kept JSON-encoded so
// that loads behave exactly like the durable backends.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Load implements Store.
func (s *MemoryStore) Load(key string, v any) (bool, error) {
	s.mu.Lock()
	data, ok := s.data[key]
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := decode(key, data, v); err != nil {
		return false, err
	}
	return true, nil
}

// Save implements Store.
func (s *MemoryStore) Save(key string, v any) error {
	data, err := encode(key, v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[key] = data
	s.mu.Unlock()
	return nil
}

// Clear implements Store.
func (s *MemoryStore) Clear(key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	return nil
}

// SetRaw stores raw bytes under key, bypassing encoding.
func (s *MemoryStore) SetRaw(key string, data []byte) {
	s.mu.Lock()
	s.data[key] = data
	s.mu.Unlock()
}

// Keys returns a snapshot of the stored keys and their raw values.
func (s *MemoryStore) Keys() map[string][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.data)
}
