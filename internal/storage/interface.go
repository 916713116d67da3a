package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when a key has never been written.
var ErrNotFound = errors.New("storage: key not found")

// GlobalScope holds records that are not namespaced under a user id
// (the users list, sessions, the shared daily-update marker).
const GlobalScope = "global"

// KV is a per-scope key/value document store. Values are raw JSON;
// Save overwrites unconditionally and there is no atomicity guarantee
// across keys.
type KV interface {
	Load(ctx context.Context, scope, key string) ([]byte, error)
	Save(ctx context.Context, scope, key string, value []byte) error
	Close() error
}
