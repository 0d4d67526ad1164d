package cache_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deltanote/internal/notes/adapters/cache"
	portcache "deltanote/internal/notes/ports/cache"
	redisdb "deltanote/pkg/db/redis"
)

func newTestCache(t *testing.T) (portcache.ViewCache, *miniredis.Miniredis) {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	host, portStr, ok := strings.Cut(s.Addr(), ":")
	require.True(t, ok)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	client, err := redisdb.NewClient(&redisdb.Config{
		Host:     host,
		Port:     port,
		PoolSize: redisdb.DefaultPoolSize,
		Timeout:  redisdb.DefaultTimeout,
	})
	require.NoError(t, err)

	viewCache := cache.NewRedisViewCache(client, time.Minute)
	t.Cleanup(func() { _ = viewCache.Close() })

	return viewCache, s
}

func TestRedisViewCache_SetGet(t *testing.T) {
	viewCache, _ := newTestCache(t)
	ctx := context.Background()

	key := portcache.KeyAllTags("user-1")
	require.NoError(t, viewCache.Set(ctx, key, `[{"id":"tag-1"}]`, 0))

	value, found, err := viewCache.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"tag-1"}]`, value)
}

func TestRedisViewCache_MissIsNotError(t *testing.T) {
	viewCache, _ := newTestCache(t)
	ctx := context.Background()

	value, found, err := viewCache.Get(ctx, portcache.KeyTagsForNote("missing"))
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, value)
}

func TestRedisViewCache_Invalidate(t *testing.T) {
	viewCache, _ := newTestCache(t)
	ctx := context.Background()

	allTags := portcache.KeyAllTags("user-1")
	noteTags := portcache.KeyTagsForNote("note-1")
	tagNotes := portcache.KeyNotesForTag("tag-1")

	for _, key := range []string{allTags, noteTags, tagNotes} {
		require.NoError(t, viewCache.Set(ctx, key, "view", 0))
	}

	require.NoError(t, viewCache.Invalidate(ctx, allTags, noteTags))

	_, found, err := viewCache.Get(ctx, allTags)
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = viewCache.Get(ctx, noteTags)
	require.NoError(t, err)
	assert.False(t, found)

	// Незатронутое представление сохраняется.
	value, found, err := viewCache.Get(ctx, tagNotes)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "view", value)
}

func TestRedisViewCache_InvalidateNoKeys(t *testing.T) {
	viewCache, _ := newTestCache(t)
	assert.NoError(t, viewCache.Invalidate(context.Background()))
}

func TestRedisViewCache_TTLExpiry(t *testing.T) {
	viewCache, s := newTestCache(t)
	ctx := context.Background()

	key := portcache.KeyAllTags("user-1")
	require.NoError(t, viewCache.Set(ctx, key, "view", time.Second))

	s.FastForward(2 * time.Second)

	_, found, err := viewCache.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)
}
