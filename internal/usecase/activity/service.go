// Package activity records usage events without blocking request handling.
package activity

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/aandreyev/kb-search-api/internal/domain/activity"
)

// Appender persists one activity entry.
type Appender interface {
	Append(ctx context.Context, e activity.Entry) error
}

// Service records activity entries fire-and-forget. Logging is best effort:
// a failed append is logged and dropped, never surfaced to the caller.
type Service struct {
	repo    Appender
	log     *zap.Logger
	timeout time.Duration
}

// New creates an activity service. timeout bounds each background append.
func New(repo Appender, log *zap.Logger, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Service{repo: repo, log: log, timeout: timeout}
}

// Notify records the entry in the background and returns immediately.
func (s *Service) Notify(e activity.Entry) {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if err := s.repo.Append(ctx, e); err != nil {
			s.log.Warn("activity append failed",
				zap.String("event_type", e.EventType),
				zap.Error(err),
			)
		}
	}()
}

// Record persists the entry synchronously. Used by the activity endpoint,
// where the caller wants to know the write happened.
func (s *Service) Record(ctx context.Context, e activity.Entry) error {
	return s.repo.Append(ctx, e)
}
