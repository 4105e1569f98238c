package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ProgressCache holds each session's solved puzzle set tagged with the
// attempt-log version it was computed at. The version is the session's
// highest attempt id, read from the store, so a new attempt changes it in
// the same transaction that logs it and an entry from before the write can
// never be served after it. Invalidate only frees memory early.
type ProgressCache interface {
	// Get reports a hit only when the stored entry matches version.
	Get(ctx context.Context, sessionID uint, version uint) (ids []uint, ok bool, err error)
	Set(ctx context.Context, sessionID uint, version uint, ids []uint) error
	Invalidate(ctx context.Context, sessionID uint) error
}

type cacheEntry struct {
	Version uint   `json:"version"`
	IDs     []uint `json:"ids"`
}

type memoryEntry struct {
	cacheEntry
	expires time.Time
}

type MemoryProgressCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[uint]memoryEntry
	now     func() time.Time
}

func NewMemoryProgressCache(ttl time.Duration) *MemoryProgressCache {
	return &MemoryProgressCache{
		ttl:     ttl,
		entries: make(map[uint]memoryEntry),
		now:     time.Now,
	}
}

func (c *MemoryProgressCache) Get(_ context.Context, sessionID uint, version uint) ([]uint, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[sessionID]
	if !ok || e.Version != version {
		return nil, false, nil
	}
	if c.ttl > 0 && c.now().After(e.expires) {
		delete(c.entries, sessionID)
		return nil, false, nil
	}
	return append([]uint(nil), e.IDs...), true, nil
}

// Set keeps the newer entry when a slow reader writes back an older version.
func (c *MemoryProgressCache) Set(_ context.Context, sessionID uint, version uint, ids []uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[sessionID]; ok && e.Version > version {
		return nil
	}
	c.entries[sessionID] = memoryEntry{
		cacheEntry: cacheEntry{Version: version, IDs: append([]uint(nil), ids...)},
		expires:    c.now().Add(c.ttl),
	}
	return nil
}

func (c *MemoryProgressCache) Invalidate(_ context.Context, sessionID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, sessionID)
	return nil
}

// RedisProgressCache stores one key per session holding the version and the
// set together, so both expire as a unit.
type RedisProgressCache struct {
	rdb    redis.Cmdable
	ttl    time.Duration
	prefix string
}

func NewRedisProgressCache(rdb redis.Cmdable, ttl time.Duration) *RedisProgressCache {
	return &RedisProgressCache{rdb: rdb, ttl: ttl, prefix: "escaperoom:progress"}
}

func (c *RedisProgressCache) key(sessionID uint) string {
	return fmt.Sprintf("%s:%d", c.prefix, sessionID)
}

func (c *RedisProgressCache) Get(ctx context.Context, sessionID uint, version uint) ([]uint, bool, error) {
	raw, err := c.rdb.Get(ctx, c.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var e cacheEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, false, err
	}
	if e.Version != version {
		return nil, false, nil
	}
	if e.IDs == nil {
		e.IDs = []uint{}
	}
	return e.IDs, true, nil
}

// Set overwrites unconditionally. A stale write-back only costs the next
// reader a miss, because Get checks the version.
func (c *RedisProgressCache) Set(ctx context.Context, sessionID uint, version uint, ids []uint) error {
	if ids == nil {
		ids = []uint{}
	}
	raw, err := json.Marshal(cacheEntry{Version: version, IDs: ids})
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.key(sessionID), raw, c.ttl).Err()
}

func (c *RedisProgressCache) Invalidate(ctx context.Context, sessionID uint) error {
	return c.rdb.Del(ctx, c.key(sessionID)).Err()
}
