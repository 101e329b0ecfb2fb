package session

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

// MemoryStore is an in-process Store, used by the console chat without Redis
// and by tests.
type MemoryStore struct {
	mu    sync.Mutex
	blobs map[Key][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[Key][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, key Key) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	blob, ok := s.blobs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(blob), nil
}

func (s *MemoryStore) Save(_ context.Context, key Key, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = slices.Clone(blob)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]Key, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]Key, 0, len(s.blobs))
	for k := range s.blobs {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b Key) int {
		if a.ChatID != b.ChatID {
			return cmp.Compare(a.ChatID, b.ChatID)
		}
		return cmp.Compare(a.UserID, b.UserID)
	})
	return keys, nil
}
