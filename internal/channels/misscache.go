package channels

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const missKeyPrefix = "guildlog:channel:miss:"

// RedisMissCache keeps missing channel ids in Redis with a TTL, shared across shards.
type RedisMissCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisMissCache(rdb redis.Cmdable, ttl time.Duration) *RedisMissCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisMissCache{rdb: rdb, ttl: ttl}
}

func (c *RedisMissCache) IsMissing(ctx context.Context, id int64) (bool, error) {
	n, err := c.rdb.Exists(ctx, missKey(id)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (c *RedisMissCache) MarkMissing(ctx context.Context, id int64) error {
	return c.rdb.Set(ctx, missKey(id), 1, c.ttl).Err()
}

func (c *RedisMissCache) Forget(ctx context.Context, id int64) error {
	return c.rdb.Del(ctx, missKey(id)).Err()
}

func missKey(id int64) string { return missKeyPrefix + strconv.FormatInt(id, 10) }

// MemoryMissCache is an in-process MissCache for tests and single-process runs.
type MemoryMissCache struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	until map[int64]time.Time
}

func NewMemoryMissCache(ttl time.Duration) *MemoryMissCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &MemoryMissCache{ttl: ttl, now: time.Now, until: map[int64]time.Time{}}
}

func (c *MemoryMissCache) IsMissing(ctx context.Context, id int64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	exp, ok := c.until[id]
	if !ok {
		return false, nil
	}
	if !c.now().Before(exp) {
		delete(c.until, id)
		return false, nil
	}
	return true, nil
}

func (c *MemoryMissCache) MarkMissing(ctx context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.until[id] = c.now().Add(c.ttl)
	return nil
}

func (c *MemoryMissCache) Forget(ctx context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.until, id)
	return nil
}
