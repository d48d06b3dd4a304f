// Package kv is the local durable key-value storage consumed by the urge
// buffer and the avatar cache. Two backends exist: an on-disk store (the
// default) and redis for deployments that already run one.
package kv

import "context"

// Store is a minimal durable key-value contract. Implementations must treat
// a missing key as (nil, false, nil), not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
