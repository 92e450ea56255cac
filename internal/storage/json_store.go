package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// document is the on-disk layout of a JSONStore file.
type document struct {
	Version int               `json:"version"`
	Data    map[string]string `json:"data"`
}

const jsonStoreVersion = 1

// JSONStore keeps the whole mapping in a single JSON file, rewritten on every change.
type JSONStore struct {
	path string
	mu   sync.Mutex
	doc  *document
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init(ctx context.Context) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-running init keeps existing data
	if _, err := os.Stat(s.path); err == nil {
		return s.readLocked()
	}

	s.doc = &document{Version: jsonStoreVersion, Data: make(map[string]string)}
	return s.saveLocked()
}

func (s *JSONStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc != nil {
		return nil
	}
	return s.readLocked()
}

func (s *JSONStore) readLocked() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Version > jsonStoreVersion {
		return fmt.Errorf("storage file version %d is newer than supported version %d", doc.Version, jsonStoreVersion)
	}
	if doc.Data == nil {
		doc.Data = make(map[string]string)
	}
	s.doc = doc
	return nil
}

// saveLocked writes to a temp file and renames it over the target.
func (s *JSONStore) saveLocked() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return "", false, ErrNotInitialized
	}
	v, ok := s.doc.Data[key]
	return v, ok, nil
}

func (s *JSONStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return ErrNotInitialized
	}
	prev, had := s.doc.Data[key]
	s.doc.Data[key] = value
	if err := s.saveLocked(); err != nil {
		if had {
			s.doc.Data[key] = prev
		} else {
			delete(s.doc.Data, key)
		}
		return err
	}
	return nil
}

func (s *JSONStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return ErrNotInitialized
	}
	prev, had := s.doc.Data[key]
	if !had {
		return nil
	}
	delete(s.doc.Data, key)
	if err := s.saveLocked(); err != nil {
		s.doc.Data[key] = prev
		return err
	}
	return nil
}

func (s *JSONStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return nil, ErrNotInitialized
	}
	return matchingKeys(s.doc.Data, prefix), nil
}
