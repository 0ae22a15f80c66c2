package i

import "context"

// SolveCache stores encoded solve results keyed by a digest of the request.
type SolveCache interface {
	// Get returns the cached value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key with the cache's TTL.
	Set(ctx context.Context, key string, value []byte) error

	// Lock acquires an exclusive lock for key so only one caller fills it.
	// The returned function releases the lock.
	Lock(ctx context.Context, key string) (func(), error)
}
