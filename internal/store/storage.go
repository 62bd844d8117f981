package store

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/nakachan-ing/zentasks/internal/model"
)

// LoadJson decodes the JSON array stored under key into v. An absent entry yields an
// empty slice. A malformed entry is logged and also yields an empty slice, so one bad
// write never locks the user out of their data.
func LoadJson[T any](kv KV, key string, v *[]T, logger *log.Logger) error {
	raw, ok, err := kv.Get(key)
	if err != nil {
		return fmt.Errorf("❌ Failed to load %s: %w", key, err)
	}

	*v = []T{}
	if !ok || len(raw) == 0 {
		return nil
	}

	var decoded []T
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		logger.Printf("⚠️ Ignoring malformed %s: %v", key, err)
		return nil
	}
	if decoded != nil {
		*v = decoded
	}
	return nil
}

// SaveJson overwrites key with the indented JSON encoding of v.
func SaveJson(kv KV, key string, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("❌ Failed to convert to JSON: %w", err)
	}
	if err := kv.Set(key, string(jsonBytes)); err != nil {
		return fmt.Errorf("❌ Failed to write %s: %w", key, err)
	}
	return nil
}

// Open returns the backend selected in config plus a closer for it.
func Open(config model.Config) (KV, func() error, error) {
	noop := func() error { return nil }

	switch config.Storage.Backend {
	case "", "file":
		return NewFileKV(config.DataDir, config.Namespace), noop, nil
	case "sqlite":
		kv, err := OpenSQLiteKV(config.Storage.SQLitePath, config.Namespace)
		if err != nil {
			return nil, noop, err
		}
		return kv, kv.Close, nil
	case "memory":
		return NewMemoryKV(config.Namespace), noop, nil
	}
	return nil, noop, fmt.Errorf("❌ Unknown storage backend: %s", config.Storage.Backend)
}

func defaultLogger(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.Default()
	}
	return logger
}
