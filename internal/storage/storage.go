package storage

import (
	"context"
	"errors"
)

var ErrUnsupportedDriver = errors.New("unsupported storage driver")

// Storage is a string-keyed slot store. Get returns nil, nil when the key
// has never been written.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
