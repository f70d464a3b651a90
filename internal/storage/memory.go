package storage

import (
	"context"
	"sync"
)

type MemoryStorage struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewMemory() *MemoryStorage {
	return &MemoryStorage{slots: make(map[string][]byte)}
}

func (s *MemoryStorage) Migrate(ctx context.Context) error { return nil }

func (s *MemoryStorage) Close() error { return nil }

func (s *MemoryStorage) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.slots[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *MemoryStorage) Put(ctx context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	s.mu.Lock()
	s.slots[key] = stored
	s.mu.Unlock()
	return nil
}
