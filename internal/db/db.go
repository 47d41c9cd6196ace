// Package db defines the storage contract consumed by the repositories.
// The concrete rueidis implementation lives in db/redis.
package db

import (
	"context"
	"time"
)

// Store is the backend facade. Consumers depend on the narrow sub-interfaces.
type Store interface {
	Pinger
	Searcher
	HashReader
	StreamAppender
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks backend connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Searcher executes chunk-level candidate queries.
type Searcher interface {
	SearchKNN(ctx context.Context, q *KNNQuery) (*SearchResult, error)
	SearchText(ctx context.Context, q *TextQuery) (*SearchResult, error)
}

// HashReader reads hash records, in bulk where possible.
type HashReader interface {
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
}

// StreamAppender appends entries to a backend stream.
type StreamAppender interface {
	XAdd(ctx context.Context, stream string, fields map[string]string) error
}

// KNNQuery describes a vector similarity search over the chunk index.
type KNNQuery struct {
	IndexName    string
	Vector       []float32
	K            int
	ReturnFields []string
}

// TextQuery describes a lexical search over the chunk index.
// Fuzzy wraps query terms in Levenshtein fuzzing operators; FuzzyDistance
// selects the allowed edit distance (1 or 2).
type TextQuery struct {
	IndexName     string
	Query         string
	Fuzzy         bool
	FuzzyDistance int
	TopK          int
	ReturnFields  []string
}

// SearchEntry is a single raw hit: key, raw score, and returned fields.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}

// SearchResult is the raw outcome of one FT.SEARCH call.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}
