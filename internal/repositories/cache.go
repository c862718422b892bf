package repositories

import "context"

// Cache is the subset of the Redis cache used by the services.
// cache.CacheService and cache.Noop both satisfy it.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, keys ...string) error
	DeletePattern(ctx context.Context, pattern string) error
}
