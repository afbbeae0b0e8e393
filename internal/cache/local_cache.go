package cache

import (
	"context"
	"errors"
	"time"

	"github.com/coocood/freecache"
)

var _ Cache = (*LocalCache)(nil)

// LocalCache is an in-process cache, for a single instance or when Redis is not configured.
type LocalCache struct {
	cache *freecache.Cache
}

func NewLocalCache(sizeBytes int) *LocalCache {
	return &LocalCache{
		cache: freecache.NewCache(sizeBytes),
	}
}

func (c *LocalCache) Get(_ context.Context, key string) ([]byte, error) {
	val, err := c.cache.Get([]byte(key))
	if err != nil {
		if errors.Is(err, freecache.ErrNotFound) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	return val, nil
}

func (c *LocalCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	// freecache expires in whole seconds, 0 means never
	seconds := int(ttl / time.Second)
	if ttl > 0 && seconds == 0 {
		seconds = 1
	}
	return c.cache.Set([]byte(key), value, seconds)
}

func (c *LocalCache) Delete(_ context.Context, key string) error {
	c.cache.Del([]byte(key))
	return nil
}
