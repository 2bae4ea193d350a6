// Package services orchestrates storage writes with entity-change event
// publishing. Handlers call services, never the store directly for writes.
package services

import (
	"context"

	"github.com/sbvanyo/expense-tracker-server/internal/events"
	"github.com/sbvanyo/expense-tracker-server/internal/log"
)

// publish sends an entity-change event, logging failures instead of
// propagating them: the write already committed.
func publish(ctx context.Context, pub events.Publisher, entity, action string, id int64) {
	if pub == nil {
		return
	}
	if err := pub.PublishEntityChange(ctx, entity, action, id); err != nil {
		log.WithComponent("services").ErrorContext(ctx, "Failed to publish entity change",
			"entity", entity,
			"action", action,
			"id", id,
			"error", err)
	}
}
