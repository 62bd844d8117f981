package store

import (
	"errors"
	"fmt"
)

// ErrStorageUnavailable marks a write the backing medium refused. Callers treat it
// as non-fatal: in-memory state stays authoritative for the session.
var ErrStorageUnavailable = errors.New("storage unavailable")

// KV is a string key/value store scoped to one application namespace.
// Values are opaque; callers own serialization.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
	Clear() error
}

// Keys names the entries the application persists.
type Keys struct {
	User  string
	Theme string
	Tasks string
	Goals string
}

func NewKeys(namespace string) Keys {
	return Keys{
		User:  namespace + "_user",
		Theme: namespace + "_theme",
		Tasks: namespace + "_tasks",
		Goals: namespace + "_goals",
	}
}

func unavailable(op, key string, err error) error {
	return fmt.Errorf("%s %q: %w: %v", op, key, ErrStorageUnavailable, err)
}
