package repository

import (
	"time"

	"clockedin.io/infrastructure/database/repository/cache"
)

// ResultCacheRepo adapts the redis cache to the admission service's
// idempotency store.
type ResultCacheRepo struct{}

func (ResultCacheRepo) Find(key string) *string {
	return cache.Cache.FindOne(key)
}

// Save claims the key with set-if-absent so the first outcome recorded for an
// idempotency key is the one every replay sees.
func (ResultCacheRepo) Save(key string, payload string, ttl time.Duration) bool {
	return cache.Cache.CreateEntryIfAbsent(key, payload, ttl)
}
