// Package kvstore provides the device-local persistent key-value store that
// backs all MediAlert state. Every record kind is one JSON document under one
// string key; writes are atomic per key.
package kvstore

import "context"

// Store is an asynchronous string-keyed blob store.
//
// Contract:
//   - Get returns common.ErrNotFound (wrapped) when the key is absent.
//   - Set overwrites the whole value for the key atomically.
//   - Remove is idempotent; removing an absent key is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Close() error
}
