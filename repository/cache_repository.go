package repository

import (
	"context"
	"time"
)

// CacheRepository caches collaborator responses (property estimates)
// so repeated lookups for the same address skip the remote call.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
