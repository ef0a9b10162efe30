//go:build integration

package integration

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GOKULKRISHNA7868/tas-insight/internal/domain"
	redisstore "github.com/GOKULKRISHNA7868/tas-insight/internal/redis"
	"github.com/GOKULKRISHNA7868/tas-insight/internal/store"
)

// newRedisClient returns a client connected to the test container and flushes
// the database on test cleanup so tests don't interfere with each other.
func newRedisClient(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: testRedisAddr})
	t.Cleanup(func() {
		client.FlushDB(context.Background()) //nolint:errcheck
		client.Close()                       //nolint:errcheck
	})
	return client
}

func newCachedStore(t *testing.T) (*redisstore.CollectionCache, *store.Postgres) {
	t.Helper()
	pg := newStore(t)
	cache := redisstore.NewCollectionCache(pg, newRedisClient(t), time.Minute, slog.Default())
	return cache, pg
}

func TestCollectionCache_ReadThrough(t *testing.T) {
	cache, pg := newCachedStore(t)
	ctx := context.Background()

	emp := domain.Employee{ID: uuid.NewString(), Name: "Priya Nair"}
	putEmployee(t, pg, emp)

	// First read fills the cache.
	got, err := cache.Employees(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)

	// A write that bypasses invalidation is not visible until the TTL runs
	// out; the cached snapshot still wins.
	putEmployee(t, pg, domain.Employee{ID: uuid.NewString(), Name: "Arun Rao"})

	got, err = cache.Employees(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1, "stale snapshot expected before invalidation")
}

func TestCollectionCache_Invalidate(t *testing.T) {
	cache, pg := newCachedStore(t)
	ctx := context.Background()

	putEmployee(t, pg, domain.Employee{ID: uuid.NewString(), Name: "Priya Nair"})
	_, err := cache.Employees(ctx)
	require.NoError(t, err)

	putEmployee(t, pg, domain.Employee{ID: uuid.NewString(), Name: "Arun Rao"})
	require.NoError(t, cache.Invalidate(ctx, store.CollectionEmployees))

	got, err := cache.Employees(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2, "invalidation should expose the new record")
}

func TestCollectionCache_FilteredFetchBypassesCache(t *testing.T) {
	cache, pg := newCachedStore(t)
	ctx := context.Background()

	putTask(t, pg, domain.Task{ID: uuid.NewString(), TaskID: "TASK-1", AssignedTo: "emp-1", CreatedAt: time.Now().UTC()})

	// Warm the unfiltered snapshot.
	_, err := cache.Tasks(ctx)
	require.NoError(t, err)

	// Filtered reads go straight to the store and see new writes immediately.
	putTask(t, pg, domain.Task{ID: uuid.NewString(), TaskID: "TASK-2", AssignedTo: "emp-1", CreatedAt: time.Now().UTC()})

	got, err := cache.Tasks(ctx, store.FieldEq("assigned_to", "emp-1"))
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

// ── Rate limiter ─────────────────────────────────────────────────────────────

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	limiter := redisstore.NewRateLimiter(newRedisClient(t), 5, time.Second)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		ok, err := limiter.Allow(ctx, "within-limit")
		require.NoError(t, err)
		assert.True(t, ok, "request %d should be allowed", i+1)
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	limiter := redisstore.NewRateLimiter(newRedisClient(t), 3, time.Second)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := limiter.Allow(ctx, "over-limit")
		require.NoError(t, err)
		require.True(t, ok)
	}

	ok, err := limiter.Allow(ctx, "over-limit")
	require.NoError(t, err)
	assert.False(t, ok, "4th request should be rate-limited")
}

func TestRateLimiter_WindowExpiry(t *testing.T) {
	// Use a short window so the test doesn't take too long.
	window := 200 * time.Millisecond
	limiter := redisstore.NewRateLimiter(newRedisClient(t), 2, window)
	ctx := context.Background()

	// Fill the window.
	for i := 0; i < 2; i++ {
		ok, err := limiter.Allow(ctx, "expiry-key")
		require.NoError(t, err)
		require.True(t, ok)
	}

	// Third request in the same window should be blocked.
	ok, err := limiter.Allow(ctx, "expiry-key")
	require.NoError(t, err)
	assert.False(t, ok, "should be blocked within window")

	// After the window expires, the limit resets.
	time.Sleep(window + 50*time.Millisecond)

	ok, err = limiter.Allow(ctx, "expiry-key")
	require.NoError(t, err)
	assert.True(t, ok, "should be allowed after window expires")
}

func TestRateLimiter_IndependentKeys(t *testing.T) {
	limiter := redisstore.NewRateLimiter(newRedisClient(t), 1, time.Second)
	ctx := context.Background()

	// Exhaust limit for key A.
	ok, err := limiter.Allow(ctx, "key-a")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = limiter.Allow(ctx, "key-a")
	require.NoError(t, err)
	assert.False(t, ok, "key-a should be limited")

	// key-b has its own independent window.
	ok, err = limiter.Allow(ctx, "key-b")
	require.NoError(t, err)
	assert.True(t, ok, "key-b should be independent of key-a")
}
