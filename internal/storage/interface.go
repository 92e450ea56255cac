package storage

import (
	"context"
	"errors"
)

// ErrNotInitialized is returned by Load when the backing store was never initialized.
var ErrNotInitialized = errors.New("storage not initialized, run 'nahar init' first")

// Provider is a durable string-to-string mapping. Values are opaque to the
// provider; callers encode collections as JSON.
type Provider interface {
	// Lifecycle
	Init(ctx context.Context) error
	Load(ctx context.Context) error
	Close() error

	// Mapping
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// Keys returns every key starting with prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Utils
	GetConfigPath() string
}
