package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisCache(t *testing.T) (*RedisProgressCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisProgressCache(rdb, time.Minute), mr
}

func progressCaches(t *testing.T) map[string]ProgressCache {
	redisCache, _ := newRedisCache(t)
	return map[string]ProgressCache{
		"memory": NewMemoryProgressCache(time.Minute),
		"redis":  redisCache,
	}
}

func TestProgressCaches(t *testing.T) {
	for name, cache := range progressCaches(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, ok, err := cache.Get(ctx, 1, 0)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, cache.Set(ctx, 1, 4, []uint{3, 5}))
			ids, ok, err := cache.Get(ctx, 1, 4)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, []uint{3, 5}, ids)

			_, ok, err = cache.Get(ctx, 1, 5)
			require.NoError(t, err)
			assert.False(t, ok, "a newer attempt log misses")

			require.NoError(t, cache.Set(ctx, 2, 0, nil))
			ids, ok, err = cache.Get(ctx, 2, 0)
			require.NoError(t, err)
			assert.True(t, ok, "an empty solved set is still a hit")
			assert.Empty(t, ids)

			require.NoError(t, cache.Invalidate(ctx, 1))
			_, ok, err = cache.Get(ctx, 1, 4)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestProgressCachesNeverServeOlderVersion(t *testing.T) {
	for name, cache := range progressCaches(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			// a reader computed at version 7 writes back after version 9 was cached
			require.NoError(t, cache.Set(ctx, 3, 9, []uint{1, 2}))
			require.NoError(t, cache.Set(ctx, 3, 7, []uint{1}))

			_, ok, err := cache.Get(ctx, 3, 10)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestMemoryProgressCacheKeepsNewerEntry(t *testing.T) {
	cache := NewMemoryProgressCache(time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, 3, 9, []uint{1, 2}))
	require.NoError(t, cache.Set(ctx, 3, 7, []uint{1}))

	ids, ok, err := cache.Get(ctx, 3, 9)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []uint{1, 2}, ids)
}

func TestMemoryProgressCacheExpires(t *testing.T) {
	cache := NewMemoryProgressCache(time.Minute)
	now := time.Now()
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, 1, 0, []uint{1}))
	now = now.Add(2 * time.Minute)

	_, ok, err := cache.Get(ctx, 1, 0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisProgressCacheSingleKeyWithTTL(t *testing.T) {
	cache, mr := newRedisCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, 1, 2, []uint{4}))
	assert.Equal(t, []string{"escaperoom:progress:1"}, mr.Keys())
	assert.Equal(t, time.Minute, mr.TTL("escaperoom:progress:1"))

	mr.FastForward(2 * time.Minute)
	assert.Empty(t, mr.Keys())

	_, ok, err := cache.Get(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSolvedPuzzleIDsWithRedisCache(t *testing.T) {
	env := newTestEnv(t)
	redisCache, mr := newRedisCache(t)
	env.progress.cache = redisCache
	ctx := context.Background()

	room, puzzles := env.createRoom(t, "Space Station", "oxygen", "fuel")
	session := env.createSession(t, room.ID, time.Now().Add(time.Hour))
	user := env.createUser(t, "u")
	_, err := env.enrollment.Register(ctx, user, session.ID)
	require.NoError(t, err)

	solved, err := env.progress.SolvedPuzzleIDs(ctx, session.ID)
	require.NoError(t, err)
	assert.Empty(t, solved)

	// eviction fails while redis is down; the attempt still commits
	mr.SetError("LOADING")
	_, err = env.progress.SubmitAnswer(ctx, session.ID, puzzles[0].ID, user, "OXYGEN")
	require.NoError(t, err)
	mr.SetError("")

	solved, err = env.progress.SolvedPuzzleIDs(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{puzzles[0].ID}, solved)
}
