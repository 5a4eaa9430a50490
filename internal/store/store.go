// Package store provides the key-value backends the session manager
// persists to: a durable file-backed store for the encrypted blob and
// vault metadata, and a volatile mirror for the unlocked session.
package store

import (
	"context"
	"errors"
)

// Keys used by the session manager.
const (
	KeyVaultEncrypted = "vault_encrypted"
	KeyVaultMeta      = "vault_meta"
	KeyVaultSession   = "vault_session"
)

// ErrNotFound is returned when a key has no value.
var ErrNotFound = errors.New("key not found")

// KV is a minimal key-value store. Implementations must treat values as
// opaque bytes.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
