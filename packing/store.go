package packing

import "sync"

// DraftStore is the scratch storage an in-progress draft survives in
// between requests (and page reloads). It is injected so the lifecycle
// manager can be tested without any real storage behind it.
type DraftStore interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	Remove(key string) error
}

// MemoryStore is an in-process DraftStore used in tests and previews.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string][]byte)}
}

func (s *MemoryStore) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.items[key]
	return value, ok
}

func (s *MemoryStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(value))
	copy(buf, value)
	s.items[key] = buf
	return nil
}

func (s *MemoryStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}
