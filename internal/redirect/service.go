// Package redirect resolves public short codes to donation URLs.
package redirect

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"givelink/internal/org"
	"givelink/internal/platform/metrics"
	"givelink/pkg/domainerrors"
	"givelink/pkg/platform/sentinel"
)

// Directory is the read side of the organization directory a resolver needs.
type Directory interface {
	FindByShortCode(ctx context.Context, code string) (org.Organization, error)
}

// EventRecorder accepts one event per resolved redirect and must never block.
type EventRecorder interface {
	Record(orgID uuid.UUID, at time.Time)
}

// Service looks up short codes and records each hit. An unknown code yields
// not_found and no event; a known code always records exactly one event, with
// no deduplication across repeated hits.
type Service struct {
	directory Directory
	recorder  EventRecorder
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

func NewService(directory Directory, recorder EventRecorder, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		directory: directory,
		recorder:  recorder,
		logger:    logger,
		metrics:   m,
	}
}

// Resolve returns the target URL for code. The handler answers with a
// temporary (303 See Other) redirect so clients never cache the mapping.
func (s *Service) Resolve(ctx context.Context, code string) (string, error) {
	o, err := s.directory.FindByShortCode(ctx, code)
	if errors.Is(err, sentinel.ErrNotFound) {
		return "", domainerrors.New(domainerrors.CodeNotFound, "Short URL not found")
	}
	if err != nil {
		s.logger.Error("resolve short code", "error", err)
		return "", domainerrors.New(domainerrors.CodeInternal, "redirect failed")
	}

	s.recorder.Record(o.ID, time.Now().UTC())
	s.metrics.RedirectsTotal.Inc()
	return o.TargetURL, nil
}
