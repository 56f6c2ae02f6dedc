package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	dom "github.com/vbman2012/project1CS50/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keySearch = "books:search:"

// BookCache caches catalog search results in Redis. The catalog is
// read-only at runtime, so entries only ever expire, they are never
// invalidated.
type BookCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewBookCache returns a new BookCache.
func NewBookCache(rdb *redis.Client, ttl time.Duration) *BookCache {
	return &BookCache{rdb: rdb, ttl: ttl}
}

// GetSearch returns the cached result for query q, or nil on miss.
func (c *BookCache) GetSearch(ctx context.Context, q string) ([]dom.Book, error) {
	b, err := c.rdb.Get(ctx, keySearch+NormalizeQuery(q)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Book
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetSearch stores the search result.
func (c *BookCache) SetSearch(ctx context.Context, q string, list []dom.Book) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keySearch+NormalizeQuery(q), b, c.ttl).Err()
}

// NormalizeQuery canonicalizes a search query for use as a cache key.
func NormalizeQuery(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}
