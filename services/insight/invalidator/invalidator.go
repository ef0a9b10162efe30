// Package invalidator consumes record-change events published by the
// mutation layer and drops the affected collection snapshot from the cache.
package invalidator

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/GOKULKRISHNA7868/tas-insight/internal/kafka"
	"github.com/GOKULKRISHNA7868/tas-insight/internal/store"
)

// CacheInvalidator drops one collection's cached snapshot.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, collection string) error
}

// ChangeEvent is the records.changed message body. Only Collection matters
// here; the snapshot cache has no per-document granularity.
type ChangeEvent struct {
	Collection string `json:"collection"`
	ID         string `json:"id,omitempty"`
	Op         string `json:"op,omitempty"`
}

var knownCollections = map[string]struct{}{
	store.CollectionEmployees: {},
	store.CollectionProjects:  {},
	store.CollectionTeams:     {},
	store.CollectionTasks:     {},
}

// Handler returns the consumer callback for the records.changed topic.
// Malformed or unknown events are committed, not retried: redelivering a
// message that can never be handled just wedges the partition.
func Handler(cache CacheInvalidator, logger *slog.Logger) kafka.HandlerFunc {
	return func(ctx context.Context, msg kafka.Message) error {
		var event ChangeEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Error("malformed change event, skipping",
				slog.Int64("offset", msg.Offset),
				slog.String("error", err.Error()),
			)
			return nil
		}

		if _, ok := knownCollections[event.Collection]; !ok {
			logger.Warn("change event for unknown collection, skipping",
				slog.String("collection", event.Collection),
			)
			return nil
		}

		if err := cache.Invalidate(ctx, event.Collection); err != nil {
			// Invalidation failed; return the error so the offset is not
			// committed and the event is redelivered.
			return err
		}

		logger.Debug("cache invalidated",
			slog.String("collection", event.Collection),
			slog.String("record_id", event.ID),
		)
		return nil
	}
}
