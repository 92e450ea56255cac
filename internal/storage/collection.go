package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/julianstephens/nahar/internal/logger"
)

// ReadJSON decodes the value at key into dest, which must be a pointer. A
// missing key leaves dest untouched and returns false. A value that does not
// decode, even partially, is logged and treated as missing: dest is only
// assigned after a full decode.
func ReadJSON(ctx context.Context, p Provider, key string, dest any) (bool, error) {
	raw, ok, err := p.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok || raw == "" {
		return false, nil
	}
	target := reflect.ValueOf(dest)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return false, fmt.Errorf("decoding %q: destination must be a non-nil pointer", key)
	}
	fresh := reflect.New(target.Elem().Type())
	if err := json.Unmarshal([]byte(raw), fresh.Interface()); err != nil {
		logger.Warn("Discarding unreadable stored value", "key", key, "error", err)
		return false, nil
	}
	target.Elem().Set(fresh.Elem())
	return true, nil
}

// WriteJSON encodes value and stores it under key.
func WriteJSON(ctx context.Context, p Provider, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	return p.Set(ctx, key, string(data))
}
