package search

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/aandreyev/kb-search-api/internal/domain"
	"github.com/aandreyev/kb-search-api/internal/domain/activity"
	"github.com/aandreyev/kb-search-api/internal/domain/search/candidate"
	"github.com/aandreyev/kb-search-api/internal/domain/search/request"
	"github.com/aandreyev/kb-search-api/internal/domain/search/result"
	"github.com/aandreyev/kb-search-api/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterSearchMetrics()
	os.Exit(m.Run())
}

// mockRetriever implements Retriever with per-call hooks and call counters.
type mockRetriever struct {
	vectorFn  func(ctx context.Context, vector []float32, limit int) ([]candidate.Candidate, error)
	keywordFn func(ctx context.Context, text string, limit int, fuzzy bool, threshold float64) ([]candidate.Candidate, error)
	hybridFn  func(ctx context.Context, text string, vector []float32, vw, kw float64, limit, rrfK int) ([]candidate.Candidate, error)

	vectorCalls  int
	keywordCalls int
	hybridCalls  int
}

func (m *mockRetriever) RetrieveVector(ctx context.Context, vector []float32, limit int) ([]candidate.Candidate, error) {
	m.vectorCalls++
	if m.vectorFn != nil {
		return m.vectorFn(ctx, vector, limit)
	}
	return nil, nil
}

func (m *mockRetriever) RetrieveKeyword(
	ctx context.Context, text string, limit int, fuzzy bool, threshold float64,
) ([]candidate.Candidate, error) {
	m.keywordCalls++
	if m.keywordFn != nil {
		return m.keywordFn(ctx, text, limit, fuzzy, threshold)
	}
	return nil, nil
}

func (m *mockRetriever) RetrieveHybrid(
	ctx context.Context, text string, vector []float32, vw, kw float64, limit, rrfK int,
) ([]candidate.Candidate, error) {
	m.hybridCalls++
	if m.hybridFn != nil {
		return m.hybridFn(ctx, text, vector, vw, kw, limit, rrfK)
	}
	return nil, nil
}

// mockMetadataReader implements MetadataReader.
type mockMetadataReader struct {
	fetchFn func(ctx context.Context, ids []string) (map[string]result.Metadata, error)
	calls   int
}

func (m *mockMetadataReader) FetchMetadata(ctx context.Context, ids []string) (map[string]result.Metadata, error) {
	m.calls++
	if m.fetchFn != nil {
		return m.fetchFn(ctx, ids)
	}
	return map[string]result.Metadata{}, nil
}

// mockEmbedder implements Embedder.
type mockEmbedder struct {
	embedFn func(ctx context.Context, text string) (domain.EmbeddingResult, error)
	calls   int
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	m.calls++
	if m.embedFn != nil {
		return m.embedFn(ctx, text)
	}
	return domain.EmbeddingResult{Embedding: []float32{0.1, 0.2, 0.3, 0.4}}, nil
}

// mockNotifier records activity entries synchronously for assertions.
type mockNotifier struct {
	mu      sync.Mutex
	entries []activity.Entry
}

func (m *mockNotifier) Notify(e activity.Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
}

func (m *mockNotifier) recorded() []activity.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]activity.Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

type testDeps struct {
	repo     *mockRetriever
	docs     *mockMetadataReader
	embedder *mockEmbedder
	notifier *mockNotifier
}

func newTestService(t *testing.T) (*Service, *testDeps) {
	t.Helper()
	deps := &testDeps{
		repo:     &mockRetriever{},
		docs:     &mockMetadataReader{},
		embedder: &mockEmbedder{},
		notifier: &mockNotifier{},
	}
	svc := NewService(deps.repo, deps.docs, deps.embedder, deps.notifier, Options{
		KeywordScoreScale: 0.1,
		HybridEpsilon:     0.001,
		RRFDisplayScale:   1000,
		RetrieveTimeout:   5 * time.Second,
		MetadataTimeout:   2 * time.Second,
	})
	return svc, deps
}

func mustRequest(t *testing.T, p request.Params) *request.Request {
	t.Helper()
	req, err := request.New(p)
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return &req
}

func float64Ptr(v float64) *float64 { return &v }
