// Package kv is the durable key/value storage backing the session mirror.
package kv

import "context"

// Key names persisted by the session store.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Repository reads and writes raw values by key.
//
// Get returns (nil, nil) when the key is absent. Delete of an absent key is
// not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Storage is a Repository that can also apply several writes atomically.
type Storage interface {
	Repository
	Atomic(ctx context.Context, fn func(ctx context.Context, r Repository) error) error
}
