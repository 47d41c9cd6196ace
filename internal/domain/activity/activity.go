// Package activity models best-effort usage event logging.
package activity

import "time"

// Event types recorded by the service.
const (
	EventSearch          = "search"
	EventDocumentPreview = "document_preview"
)

// Entry is a single activity log record. All fields except EventType are
// optional.
type Entry struct {
	EventType        string
	UserID           string
	Username         string
	SearchTerm       string
	SearchMode       string
	DocumentID       string
	DocumentFilename string
	PreviewType      string
	ResultCount      int
	OccurredAt       time.Time
}
