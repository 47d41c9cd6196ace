package request

import (
	"fmt"
	"math"

	"github.com/aandreyev/kb-search-api/internal/domain"
	"github.com/aandreyev/kb-search-api/internal/domain/search/mode"
)

// Search parameter limits and defaults.
const (
	MaxQueryLength = 4096
	DefaultLimit   = 10
	MaxLimit       = 100

	DefaultMinScore      = 0.1
	DefaultVectorWeight  = 0.7
	DefaultKeywordWeight = 0.3
	DefaultThreshold     = 0.3
	DefaultRRFK          = 60

	// WeightTolerance is the allowed deviation of vector_weight+keyword_weight from 1.0.
	WeightTolerance = 1e-3
)

// Request is a validated, immutable search query.
type Request struct {
	query         string
	searchMode    mode.Mode
	limit         int
	minScore      float64
	vectorWeight  float64
	keywordWeight float64
	fuzzy         bool
	threshold     float64
	rrfK          int
}

// Params holds raw, pre-validation search parameters as received at the boundary.
// Zero values mean "use the default".
type Params struct {
	Query         string
	Mode          mode.Mode
	Limit         int
	MinScore      *float64
	VectorWeight  *float64
	KeywordWeight *float64
	Fuzzy         bool
	Threshold     *float64
	RRFK          int
}

// New validates and normalizes search parameters.
// Hybrid weights must sum to 1.0 within WeightTolerance; this is checked
// before any external call is made.
func New(p Params) (Request, error) {
	if p.Query == "" {
		return Request{}, fmt.Errorf("%w: query is required", domain.ErrValidation)
	}
	if len(p.Query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrValidation, MaxQueryLength)
	}

	m := p.Mode
	if m == "" {
		m = mode.Vector
	}
	if !m.IsValid() {
		return Request{}, fmt.Errorf("%w: invalid search mode %q", domain.ErrValidation, p.Mode)
	}

	limit := p.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	minScore := deref(p.MinScore, DefaultMinScore)
	if minScore < 0 || minScore > 1 {
		return Request{}, fmt.Errorf("%w: min_score must be between 0 and 1", domain.ErrValidation)
	}

	vw := deref(p.VectorWeight, DefaultVectorWeight)
	kw := deref(p.KeywordWeight, DefaultKeywordWeight)
	if vw < 0 || kw < 0 {
		return Request{}, fmt.Errorf("%w: weights must be non-negative", domain.ErrValidation)
	}
	if math.Abs(vw+kw-1.0) > WeightTolerance {
		return Request{}, fmt.Errorf(
			"%w: vector_weight + keyword_weight must sum to 1.0, got %.3f", domain.ErrValidation, vw+kw)
	}

	threshold := deref(p.Threshold, DefaultThreshold)
	if threshold < 0 || threshold > 1 {
		return Request{}, fmt.Errorf("%w: similarity_threshold must be between 0 and 1", domain.ErrValidation)
	}

	rrfK := p.RRFK
	if rrfK <= 0 {
		rrfK = DefaultRRFK
	}

	return Request{
		query:         p.Query,
		searchMode:    m,
		limit:         limit,
		minScore:      minScore,
		vectorWeight:  vw,
		keywordWeight: kw,
		fuzzy:         p.Fuzzy,
		threshold:     threshold,
		rrfK:          rrfK,
	}, nil
}

// Query returns the search query text.
func (r *Request) Query() string { return r.query }

// Mode returns the retrieval strategy.
func (r *Request) Mode() mode.Mode { return r.searchMode }

// Limit returns the maximum number of document results.
func (r *Request) Limit() int { return r.limit }

// MinScore returns the minimum normalized candidate score.
func (r *Request) MinScore() float64 { return r.minScore }

// VectorWeight returns the hybrid vector weight.
func (r *Request) VectorWeight() float64 { return r.vectorWeight }

// KeywordWeight returns the hybrid keyword weight.
func (r *Request) KeywordWeight() float64 { return r.keywordWeight }

// Fuzzy reports whether keyword matching uses fuzzy (typo-tolerant) scoring.
func (r *Request) Fuzzy() bool { return r.fuzzy }

// Threshold returns the fuzzy similarity threshold.
func (r *Request) Threshold() float64 { return r.threshold }

// RRFK returns the Reciprocal Rank Fusion constant.
func (r *Request) RRFK() int { return r.rrfK }

func deref(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
