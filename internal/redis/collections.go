// Package redis provides the Redis-backed pieces that sit outside the pure
// core: a read-through cache for whole collection fetches and a
// sliding-window rate limiter for the HTTP surface.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/GOKULKRISHNA7868/tas-insight/internal/domain"
	"github.com/GOKULKRISHNA7868/tas-insight/internal/store"
	"github.com/GOKULKRISHNA7868/tas-insight/pkg/telemetry"
)

func collectionKey(collection string) string { return "collection:" + collection }

// NewClient creates and returns a new Redis client.
func NewClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
		PoolSize:     10,
	})
}

// CollectionCache is a store.Loader that caches whole-collection fetches in
// Redis with a TTL. Filtered fetches always pass through: only the full
// snapshot of a collection is worth keeping, and the mutation layer's change
// events invalidate it. Cache failures degrade to the underlying loader, not
// to request failures.
type CollectionCache struct {
	next   store.Loader
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCollectionCache wraps next with a Redis read-through cache.
func NewCollectionCache(next store.Loader, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CollectionCache {
	return &CollectionCache{next: next, client: client, ttl: ttl, logger: logger}
}

func (c *CollectionCache) Employees(ctx context.Context, filters ...store.Filter) ([]domain.Employee, error) {
	return cached(ctx, c, store.CollectionEmployees, filters, c.next.Employees)
}

func (c *CollectionCache) Projects(ctx context.Context, filters ...store.Filter) ([]domain.Project, error) {
	return cached(ctx, c, store.CollectionProjects, filters, c.next.Projects)
}

func (c *CollectionCache) Teams(ctx context.Context, filters ...store.Filter) ([]domain.Team, error) {
	return cached(ctx, c, store.CollectionTeams, filters, c.next.Teams)
}

func (c *CollectionCache) Tasks(ctx context.Context, filters ...store.Filter) ([]domain.Task, error) {
	return cached(ctx, c, store.CollectionTasks, filters, c.next.Tasks)
}

// Invalidate drops the cached snapshot of one collection.
func (c *CollectionCache) Invalidate(ctx context.Context, collection string) error {
	if err := c.client.Del(ctx, collectionKey(collection)).Err(); err != nil {
		return fmt.Errorf("invalidate %s: %w", collection, err)
	}
	telemetry.CacheInvalidations.WithLabelValues(collection).Inc()
	return nil
}

// Ping reports cache connectivity, used by readiness checks.
func (c *CollectionCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func cached[T any](
	ctx context.Context,
	c *CollectionCache,
	collection string,
	filters []store.Filter,
	fetch func(context.Context, ...store.Filter) ([]T, error),
) ([]T, error) {
	if len(filters) > 0 {
		return fetch(ctx, filters...)
	}

	key := collectionKey(collection)
	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var docs []T
		if err := json.Unmarshal(data, &docs); err == nil {
			telemetry.CacheHits.WithLabelValues(collection).Inc()
			return docs, nil
		}
		// Poisoned entry; fall through and refresh it.
		c.logger.Warn("dropping undecodable cache entry", slog.String("collection", collection))
		_ = c.client.Del(ctx, key).Err()
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("cache read failed, falling back to store",
			slog.String("collection", collection),
			slog.String("error", err.Error()),
		)
	}
	telemetry.CacheMisses.WithLabelValues(collection).Inc()

	docs, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(docs); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warn("cache write failed",
				slog.String("collection", collection),
				slog.String("error", err.Error()),
			)
		}
	}
	return docs, nil
}
