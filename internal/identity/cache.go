package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/JackpotEngine_Go/internal/domain"
)

// CachedResolver memoizes successful resolutions for a bounded time.
// Failures are never cached so a fixed credential works on the next try.
type CachedResolver struct {
	next Resolver
	lru  *expirable.LRU[string, domain.Identity]
}

// NewCachedResolver wraps next with an LRU of size entries that expire after ttl
func NewCachedResolver(next Resolver, size int, ttl time.Duration) *CachedResolver {
	return &CachedResolver{
		next: next,
		lru:  expirable.NewLRU[string, domain.Identity](size, nil, ttl),
	}
}

// cacheKey avoids holding raw session tokens in memory
func cacheKey(credential string) string {
	sum := sha256.Sum256([]byte(credential))
	return hex.EncodeToString(sum[:])
}

func (c *CachedResolver) Resolve(ctx context.Context, credential string) (domain.Identity, error) {
	key := cacheKey(credential)
	if id, ok := c.lru.Get(key); ok {
		return id, nil
	}

	id, err := c.next.Resolve(ctx, credential)
	if err != nil {
		return domain.Identity{}, err
	}
	c.lru.Add(key, id)
	return id, nil
}

// Invalidate drops a cached credential
func (c *CachedResolver) Invalidate(credential string) {
	c.lru.Remove(cacheKey(credential))
}

// Len returns the number of cached credentials
func (c *CachedResolver) Len() int {
	return c.lru.Len()
}
