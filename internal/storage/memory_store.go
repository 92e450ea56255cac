package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore keeps the mapping in process memory. Nothing survives Close.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Init(ctx context.Context) error { return nil }
func (s *MemoryStore) Load(ctx context.Context) error { return nil }
func (s *MemoryStore) Close() error                   { return nil }
func (s *MemoryStore) GetConfigPath() string          { return MemoryConfig }

func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *MemoryStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return matchingKeys(s.data, prefix), nil
}

func matchingKeys(data map[string]string, prefix string) []string {
	keys := []string{}
	for k := range data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
