// Package metadata is a small key/value collection for process-restart
// state, currently only the signed remembered-identity marker. Values are
// sensitive references and get the same storage discipline as everything
// else: all writes run through the store's transactional primitives.
package metadata

import "context"

// Repository is the storage contract for metadata. Get returns nil (no
// error) for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
