// Package redis stores the mapping in a Redis database, one string key per entry.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/julianstephens/nahar/internal/constants"
)

var ErrNotInitialized = errors.New("storage not initialized, run 'nahar init' first")

// initMarker is written by Init so Load can tell an empty database from an initialized one.
const initMarker = "__initialized"

type Store struct {
	url    string
	prefix string
	client *redis.Client
}

// New creates a store for a redis:// or rediss:// URL. Keys are namespaced with prefix.
func New(url, prefix string) *Store {
	return &Store{url: url, prefix: prefix}
}

// NewWithClient wraps an existing client; used by tests.
func NewWithClient(client *redis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

func (s *Store) connect(ctx context.Context) error {
	if s.client == nil {
		opts, err := redis.ParseURL(s.url)
		if err != nil {
			return fmt.Errorf("invalid redis URL: %w", err)
		}
		s.client = redis.NewClient(opts)
	}
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	return nil
}

func (s *Store) Init(ctx context.Context) error {
	if err := s.connect(ctx); err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.prefix+initMarker, constants.Version, 0).Err(); err != nil {
		return fmt.Errorf("failed to mark store initialized: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context) error {
	if err := s.connect(ctx); err != nil {
		return err
	}
	n, err := s.client.Exists(ctx, s.prefix+initMarker).Result()
	if err != nil {
		return fmt.Errorf("failed to check store: %w", err)
	}
	if n == 0 {
		return ErrNotInitialized
	}
	return nil
}

func (s *Store) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return "redis"
}

// Ping checks if the Redis connection is healthy.
func (s *Store) Ping(ctx context.Context) error {
	if s.client == nil {
		return ErrNotInitialized
	}
	return s.client.Ping(ctx).Err()
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if s.client == nil {
		return "", false, ErrNotInitialized
	}
	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis get error: %w", err)
	}
	return v, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if s.client == nil {
		return ErrNotInitialized
	}
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set error: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if s.client == nil {
		return ErrNotInitialized
	}
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis delete error: %w", err)
	}
	return nil
}

func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	if s.client == nil {
		return nil, ErrNotInitialized
	}

	pattern := escapeGlob(s.prefix+prefix) + "*"
	keys := []string{}
	var cursor uint64
	for {
		batch, next, err := s.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, fmt.Errorf("redis scan error: %w", err)
		}
		for _, k := range batch {
			k = strings.TrimPrefix(k, s.prefix)
			if k == initMarker {
				continue
			}
			keys = append(keys, k)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// escapeGlob quotes the characters Redis MATCH treats as pattern syntax.
func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
