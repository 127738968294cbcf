package port

import "context"

type SnapshotRepository interface {
	// Get returns the value stored under key, nil if the key is absent
	Get(ctx context.Context, key string) ([]byte, error)

	// Set overwrites the value stored under key
	Set(ctx context.Context, key string, value []byte) error
}
