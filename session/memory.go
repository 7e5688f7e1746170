package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	data      Data
	expiresAt time.Time
}

// MemoryStore живёт в памяти процесса. Подходит для одного инстанса.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Save(ctx context.Context, id string, data Data, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[id] = memoryEntry{data: data, expiresAt: s.now().Add(ttl)}
	s.sweepLocked()
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, id string) (Data, error) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok || !s.now().Before(entry.expiresAt) {
		return Data{}, ErrNotFound
	}
	return entry.data, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// sweepLocked удаляет истёкшие записи. Вызывается под mu.
func (s *MemoryStore) sweepLocked() {
	now := s.now()
	for id, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, id)
		}
	}
}
