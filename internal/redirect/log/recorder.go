package log

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"givelink/internal/platform/metrics"
)

// Recorder accepts redirect events from request handlers. Record is a
// non-blocking send into the worker's inbox: when the inbox is full the event
// is dropped and counted rather than stalling the redirect response.
type Recorder struct {
	inbox   chan Event
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewRecorder sizes the inbox for bursts; 256 absorbs spikes comfortably for
// a single instance.
func NewRecorder(buffer int, logger *slog.Logger, m *metrics.Metrics) *Recorder {
	if buffer <= 0 {
		buffer = 256
	}
	return &Recorder{
		inbox:   make(chan Event, buffer),
		logger:  logger,
		metrics: m,
	}
}

// Record enqueues one event for the given organization.
func (r *Recorder) Record(orgID uuid.UUID, at time.Time) {
	event := Event{ID: uuid.New(), OrgID: orgID, At: at}
	select {
	case r.inbox <- event:
	default:
		r.metrics.RedirectEventsDropped.Inc()
		r.logger.Warn("redirect event dropped, inbox full", "org_id", orgID)
	}
}

// Inbox exposes the receive side for the worker.
func (r *Recorder) Inbox() <-chan Event {
	return r.inbox
}
