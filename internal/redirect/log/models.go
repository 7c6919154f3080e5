// Package log records one append-only event per resolved redirect. Recording
// is decoupled from the redirect response: the recorder never blocks, and
// persistence failures are reported to metrics and logs, never to the caller.
package log

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is one resolved short-code hit. Events are append-only and are never
// updated or deleted.
type Event struct {
	ID    uuid.UUID
	OrgID uuid.UUID
	At    time.Time
}

// EventStore persists redirect events.
type EventStore interface {
	Append(ctx context.Context, e Event) error
	ListByOrg(ctx context.Context, orgID uuid.UUID) ([]Event, error)
}

// Sink fans events out to an external stream in addition to the store.
type Sink interface {
	Publish(ctx context.Context, e Event)
}
