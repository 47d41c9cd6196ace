// Package activity appends usage events to a backend stream.
package activity

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aandreyev/kb-search-api/internal/domain/activity"
)

// store is the consumer interface for activity appends.
type store interface {
	XAdd(ctx context.Context, stream string, fields map[string]string) error
}

// Repo appends activity entries to a stream.
type Repo struct {
	store  store
	stream string
}

// New creates an activity repository.
func New(s store, stream string) *Repo {
	return &Repo{store: s, stream: stream}
}

// Append writes one entry. Empty fields are omitted from the record.
func (r *Repo) Append(ctx context.Context, e activity.Entry) error {
	if e.EventType == "" {
		return fmt.Errorf("event_type is required")
	}

	occurred := e.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now().UTC()
	}

	fields := map[string]string{
		"event_type":  e.EventType,
		"occurred_at": occurred.Format(time.RFC3339),
	}
	putNonEmpty(fields, "user_id", e.UserID)
	putNonEmpty(fields, "username", e.Username)
	putNonEmpty(fields, "search_term", e.SearchTerm)
	putNonEmpty(fields, "search_mode", e.SearchMode)
	putNonEmpty(fields, "document_id", e.DocumentID)
	putNonEmpty(fields, "document_filename", e.DocumentFilename)
	putNonEmpty(fields, "preview_type", e.PreviewType)
	if e.ResultCount > 0 {
		fields["result_count"] = strconv.Itoa(e.ResultCount)
	}

	if err := r.store.XAdd(ctx, r.stream, fields); err != nil {
		return fmt.Errorf("append activity: %w", err)
	}
	return nil
}

func putNonEmpty(fields map[string]string, key, value string) {
	if value != "" {
		fields[key] = value
	}
}
