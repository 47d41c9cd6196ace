package search

import (
	"context"

	"github.com/aandreyev/kb-search-api/internal/domain"
	"github.com/aandreyev/kb-search-api/internal/domain/activity"
	"github.com/aandreyev/kb-search-api/internal/domain/search/candidate"
	"github.com/aandreyev/kb-search-api/internal/domain/search/result"
)

// Retriever is the candidate retrieval contract. Each call returns unordered
// chunk-level candidates; hybrid fails as a whole if either sub-call fails.
type Retriever interface {
	RetrieveVector(ctx context.Context, vector []float32, limit int) ([]candidate.Candidate, error)

	RetrieveKeyword(
		ctx context.Context, text string, limit int,
		fuzzy bool, threshold float64,
	) ([]candidate.Candidate, error)

	RetrieveHybrid(
		ctx context.Context, text string, vector []float32,
		vectorWeight, keywordWeight float64, limit, rrfK int,
	) ([]candidate.Candidate, error)
}

// MetadataReader performs the bulk document metadata lookup.
type MetadataReader interface {
	FetchMetadata(ctx context.Context, ids []string) (map[string]result.Metadata, error)
}

// Embedder vectorizes the query text.
type Embedder = domain.Embedder

// Notifier records activity events without blocking the request path.
// Implementations must be fire-and-forget; failures never surface here.
type Notifier interface {
	Notify(e activity.Entry)
}
