// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package events publishes domain events about identities and role assignments.

Events are emitted only after the surrounding request transaction commits, so
a rolled back signup never announces a user that does not exist.

Transports:

  - RabbitMQ: a topic exchange keyed by event type, guarded by a circuit breaker.
  - Log: writes the event to the structured logger when no broker is configured.
*/
package events

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/kanoon/kanoon/internal/platform/postgres"
)

// Event types.
const (
	TypeUserRegistered = "user.registered"
	TypeUserAccepted   = "user.accepted"
	TypeUserDeleted    = "user.deleted"
	TypeRoleGranted    = "role.granted"
	TypeRoleRevoked    = "role.revoked"
)

// Event is the envelope sent to subscribers.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
)

// New stamps a payload with a ULID and the current time.
func New(eventType string, payload any) Event {
	now := time.Now().UTC()

	entropyMu.Lock()
	id := ulid.MustNew(ulid.Timestamp(now), entropy).String()
	entropyMu.Unlock()

	return Event{ID: id, Type: eventType, OccurredAt: now, Payload: payload}
}

// Publisher delivers events to subscribers.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// PublishAfterCommit queues event until the transaction in ctx commits.
// Delivery failures are logged; the committed mutation stands.
func PublishAfterCommit(ctx context.Context, publisher Publisher, logger *slog.Logger, event Event) {
	postgres.AfterCommit(ctx, func(ctx context.Context) {
		if err := publisher.Publish(ctx, event); err != nil {
			logger.WarnContext(ctx, "event_publish_failed",
				slog.String("event_id", event.ID),
				slog.String("type", event.Type),
				slog.Any("error", err),
			)
		}
	})
}

// LogPublisher writes events to the logger. It is used when AMQP_URL is empty.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a [LogPublisher].
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish implements [Publisher].
func (publisher *LogPublisher) Publish(ctx context.Context, event Event) error {
	publisher.logger.InfoContext(ctx, "domain_event",
		slog.String("event_id", event.ID),
		slog.String("type", event.Type),
		slog.Any("payload", event.Payload),
	)
	return nil
}
