// Package search implements the candidate retrievers: vector, keyword, and
// hybrid. Each retriever returns unordered chunk-level candidates; hybrid
// fuses the two sub-retrievals with a weighted linear combination plus
// Reciprocal Rank Fusion.
package search

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/aandreyev/kb-search-api/internal/db"
	"github.com/aandreyev/kb-search-api/internal/domain"
	"github.com/aandreyev/kb-search-api/internal/domain/search/candidate"
)

// store is the consumer interface for retrieval operations.
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
}

// Config holds index naming and scoring constants for the retrievers.
type Config struct {
	ChunkIndex string
	KeyPrefix  string
	// KeywordScoreScale is the raw lexical score that maps to 1.0.
	// Empirical for the scoring function in use.
	KeywordScoreScale float64
}

// Repo issues candidate retrieval calls against the chunk index.
type Repo struct {
	store store
	cfg   Config
}

// New creates a retrieval repository.
func New(s store, cfg Config) *Repo {
	return &Repo{store: s, cfg: cfg}
}

var returnFields = []string{"document_id", "chunk_index", "content"}

// RetrieveVector returns candidates scored by embedding similarity in [0,1].
// The db layer converts the backend's cosine distance; raw distance never
// reaches this layer's callers.
func (r *Repo) RetrieveVector(ctx context.Context, vector []float32, limit int) ([]candidate.Candidate, error) {
	sr, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		IndexName:    r.cfg.ChunkIndex,
		Vector:       vector,
		K:            limit,
		ReturnFields: returnFields,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: knn: %w", domain.ErrRetrieval, err)
	}

	return parseCandidates(sr, candidate.Vector, nil), nil
}

// RetrieveKeyword returns candidates scored by lexical relevance. With
// fuzzy=false the raw score is the backend's rank score (unbounded-ish,
// normalized later). With fuzzy=true candidates are rescored by trigram
// similarity against the query in [0,1]; matches below threshold are dropped.
func (r *Repo) RetrieveKeyword(
	ctx context.Context, text string, limit int, fuzzy bool, threshold float64,
) ([]candidate.Candidate, error) {
	sr, err := r.store.SearchText(ctx, &db.TextQuery{
		IndexName:     r.cfg.ChunkIndex,
		Query:         text,
		Fuzzy:         fuzzy,
		FuzzyDistance: fuzzyDistance(threshold),
		TopK:          limit,
		ReturnFields:  returnFields,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: text: %w", domain.ErrRetrieval, err)
	}

	if !fuzzy {
		return parseCandidates(sr, candidate.Fulltext, nil), nil
	}

	rescore := func(content string, _ float64) (float64, bool) {
		sim := bestTermSimilarity(text, content)
		return sim, sim >= threshold
	}
	return parseCandidates(sr, candidate.Fuzzy, rescore), nil
}

// RetrieveHybrid runs the vector and keyword sub-retrievals concurrently and
// fuses them. Failure of either sub-call aborts the whole retrieval: fusing
// against a zero-filled substitute would corrupt the ranking.
func (r *Repo) RetrieveHybrid(
	ctx context.Context, text string, vector []float32,
	vectorWeight, keywordWeight float64, limit, rrfK int,
) ([]candidate.Candidate, error) {
	var knn, lexical []candidate.Candidate

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		knn, err = r.RetrieveVector(gctx, vector, limit)
		return err
	})
	g.Go(func() error {
		var err error
		lexical, err = r.RetrieveKeyword(gctx, text, limit, false, 0)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("hybrid sub-retrieval: %w", err)
	}

	fused := fuse(knn, lexical, fusionParams{
		vectorWeight:  vectorWeight,
		keywordWeight: keywordWeight,
		rrfK:          rrfK,
		keywordScale:  r.cfg.KeywordScoreScale,
	})

	if len(fused) > limit {
		fused = fused[:limit]
	}
	return fused, nil
}

// fuzzyDistance maps a trigram similarity threshold to the backend's
// Levenshtein fuzzing level: strict thresholds tolerate a single edit.
func fuzzyDistance(threshold float64) int {
	if threshold >= 0.5 {
		return 1
	}
	return 2
}

// parseCandidates converts raw search entries into candidates. rescore, when
// non-nil, replaces the raw score and may reject the entry.
func parseCandidates(
	sr *db.SearchResult, p candidate.Provenance,
	rescore func(content string, raw float64) (float64, bool),
) []candidate.Candidate {
	if sr == nil || len(sr.Entries) == 0 {
		return nil
	}

	out := make([]candidate.Candidate, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		docID := entry.Fields["document_id"]
		chunkIdx := parseChunkIndex(entry.Fields["chunk_index"])
		content := entry.Fields["content"]

		score := entry.Score
		if rescore != nil {
			s, keep := rescore(content, entry.Score)
			if !keep {
				continue
			}
			score = s
		}

		out = append(out, candidate.New(docID, chunkIdx, content, score, p))
	}
	return out
}

func parseChunkIndex(s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}
