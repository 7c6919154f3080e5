package log

import (
	"context"
	"log/slog"

	"givelink/internal/platform/metrics"
)

// Worker drains the recorder inbox into the event store. Store failures are
// counted and logged but never stop the worker; a redirect must never wait on
// its own logging.
type Worker struct {
	store   EventStore
	sink    Sink
	inbox   <-chan Event
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewWorker wires a worker to an inbox. sink may be nil.
func NewWorker(store EventStore, sink Sink, inbox <-chan Event, logger *slog.Logger, m *metrics.Metrics) *Worker {
	return &Worker{
		store:   store,
		sink:    sink,
		inbox:   inbox,
		logger:  logger,
		metrics: m,
	}
}

// Run consumes events until ctx is canceled.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				w.metrics.RedirectEventFailures.Inc()
				w.logger.Error("persist redirect event", "org_id", event.OrgID, "error", err)
			}
			if w.sink != nil {
				w.sink.Publish(ctx, event)
			}
		}
	}
}
