// Package search implements the search pipeline: embed, retrieve, normalize,
// aggregate, enrich.
package search

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/aandreyev/kb-search-api/internal/domain/activity"
	"github.com/aandreyev/kb-search-api/internal/domain/search/candidate"
	"github.com/aandreyev/kb-search-api/internal/domain/search/mode"
	"github.com/aandreyev/kb-search-api/internal/domain/search/request"
	"github.com/aandreyev/kb-search-api/internal/domain/search/result"
	"github.com/aandreyev/kb-search-api/internal/logger"
	"github.com/aandreyev/kb-search-api/internal/metrics"
)

// Options carries the scoring constants and stage timeouts for the pipeline.
type Options struct {
	// KeywordScoreScale is the raw lexical score that maps to 1.0.
	KeywordScoreScale float64
	// HybridEpsilon is the floor below which a hybrid score falls back to
	// the rescaled RRF score for display.
	HybridEpsilon float64
	// RRFDisplayScale rescales the RRF score for that fallback.
	RRFDisplayScale float64
	// RetrieveTimeout bounds embedding plus retrieval.
	RetrieveTimeout time.Duration
	// MetadataTimeout bounds the enrichment lookup.
	MetadataTimeout time.Duration
}

func (o *Options) applyDefaults() {
	if o.KeywordScoreScale <= 0 {
		o.KeywordScoreScale = 0.1
	}
	if o.HybridEpsilon <= 0 {
		o.HybridEpsilon = 0.001
	}
	if o.RRFDisplayScale <= 0 {
		o.RRFDisplayScale = 1000
	}
	if o.RetrieveTimeout <= 0 {
		o.RetrieveTimeout = 30 * time.Second
	}
	if o.MetadataTimeout <= 0 {
		o.MetadataTimeout = 10 * time.Second
	}
}

// Service runs search requests end to end.
type Service struct {
	repo     Retriever
	docs     MetadataReader
	embedder Embedder
	notifier Notifier
	opts     Options
}

// NewService wires the search pipeline.
func NewService(repo Retriever, docs MetadataReader, embedder Embedder, notifier Notifier, opts Options) *Service {
	opts.applyDefaults()
	return &Service{
		repo:     repo,
		docs:     docs,
		embedder: embedder,
		notifier: notifier,
		opts:     opts,
	}
}

// Search executes the pipeline for a validated request and always returns a
// response envelope. Failures are reported through the envelope's Error
// field; a non-empty Error with empty Results means the request degraded,
// not that nothing matched.
func (s *Service) Search(ctx context.Context, req *request.Request) *result.Response {
	start := time.Now()
	log := logger.FromContext(ctx).With(
		zap.String("mode", string(req.Mode())),
		zap.Int("query_len", len(req.Query())),
		zap.Int("limit", req.Limit()),
	)

	resp := &result.Response{
		Query:      req.Query(),
		SearchMode: req.Mode(),
		Parameters: result.Parameters{
			Limit:               req.Limit(),
			MinScore:            req.MinScore(),
			VectorWeight:        req.VectorWeight(),
			KeywordWeight:       req.KeywordWeight(),
			Fuzzy:               req.Fuzzy(),
			SimilarityThreshold: req.Threshold(),
			RRFK:                req.RRFK(),
		},
		Results: []result.Document{},
	}

	status := "success"
	defer func() {
		metrics.SearchRequestsTotal.WithLabelValues(string(req.Mode()), status).Inc()
		metrics.SearchDuration.WithLabelValues(string(req.Mode())).Observe(time.Since(start).Seconds())
		metrics.SearchResultsReturned.WithLabelValues(string(req.Mode())).Observe(float64(len(resp.Results)))
	}()

	retrieveCtx, cancel := context.WithTimeout(ctx, s.opts.RetrieveTimeout)
	defer cancel()

	var vector []float32
	if req.Mode().NeedsEmbedding() {
		emb, err := s.embedder.Embed(retrieveCtx, req.Query())
		if err != nil {
			// No retrieval is attempted without a vector; the caller gets
			// the envelope with the failure spelled out.
			log.Warn("query embedding failed", zap.Error(err))
			resp.Error = "embedding failed: " + err.Error()
			status = "degraded"
			return resp
		}
		vector = emb.Embedding
	}

	cands, err := s.retrieve(retrieveCtx, req, vector)
	if err != nil {
		if req.Mode() == mode.Hybrid {
			// A hybrid result missing one side would be silently skewed,
			// so the whole request fails instead.
			log.Error("hybrid retrieval failed", zap.Error(err))
			resp.Error = "hybrid search failed: " + err.Error()
			status = "error"
			return resp
		}
		log.Warn("retrieval failed, returning empty result set", zap.Error(err))
		status = "degraded"
		return resp
	}

	normalized := normalizeCandidates(cands, normalizeOptions{
		keywordScale:    s.opts.KeywordScoreScale,
		hybridEpsilon:   s.opts.HybridEpsilon,
		rrfDisplayScale: s.opts.RRFDisplayScale,
	})

	docs := aggregate(normalized, req.MinScore(), req.Limit())
	s.enrich(ctx, log, docs)
	resp.Results = docs

	if s.notifier != nil {
		s.notifier.Notify(activity.Entry{
			EventType:   activity.EventSearch,
			SearchTerm:  req.Query(),
			SearchMode:  string(req.Mode()),
			ResultCount: len(docs),
		})
	}

	log.Info("search completed",
		zap.Int("candidates", len(cands)),
		zap.Int("documents", len(docs)),
		zap.Duration("took", time.Since(start)),
	)
	return resp
}

func (s *Service) retrieve(ctx context.Context, req *request.Request, vector []float32) ([]candidate.Candidate, error) {
	switch req.Mode() {
	case mode.Keyword:
		return s.repo.RetrieveKeyword(ctx, req.Query(), req.Limit(), req.Fuzzy(), req.Threshold())
	case mode.Hybrid:
		return s.repo.RetrieveHybrid(ctx, req.Query(), vector,
			req.VectorWeight(), req.KeywordWeight(), req.Limit(), req.RRFK())
	default:
		return s.repo.RetrieveVector(ctx, vector, req.Limit())
	}
}

// enrich attaches document metadata in a single bulk lookup. Enrichment is
// cosmetic: lookup failures and missing records produce placeholder metadata
// and never change ranking or abort the request.
func (s *Service) enrich(ctx context.Context, log *zap.Logger, docs []result.Document) {
	if len(docs) == 0 {
		return
	}

	ids := make([]string, 0, len(docs))
	for i := range docs {
		ids = append(ids, docs[i].DocumentID)
	}

	metaCtx, cancel := context.WithTimeout(ctx, s.opts.MetadataTimeout)
	defer cancel()

	meta, err := s.docs.FetchMetadata(metaCtx, ids)
	if err != nil {
		log.Warn("metadata enrichment failed, using placeholders", zap.Error(err))
		meta = nil
	}

	for i := range docs {
		m, ok := meta[docs[i].DocumentID]
		if !ok {
			m = result.Metadata{OriginalFilename: "Unknown ID " + docs[i].DocumentID}
		}
		docs[i].Metadata = m
	}
}
