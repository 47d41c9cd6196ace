package search

import (
	"math"

	"github.com/aandreyev/kb-search-api/internal/domain/search/candidate"
)

// normalizeOptions holds the scoring constants used to bring every raw
// retriever score onto the common [0,1] relevance scale.
type normalizeOptions struct {
	// keywordScale is the raw lexical score that maps to 1.0.
	keywordScale float64
	// hybridEpsilon: hybrid scores below this are practically meaningless;
	// the rescaled RRF score is displayed instead. Presentation rule
	// preserved from the source system, not a fusion-correctness guarantee.
	hybridEpsilon float64
	// rrfDisplayScale rescales the RRF score for the fallback above.
	// At the default scale a rank-1 RRF term (~0.016 at k=60) already
	// rescales past 1, so fallback candidates usually clamp to exactly 1.0
	// and order among themselves by the deterministic document-id
	// tie-break rather than by raw RRF.
	rrfDisplayScale float64
}

// normalizeCandidates maps each candidate's raw score into [0,1] according
// to its provenance. Clamping happens only here, at the raw→normalized
// conversion; any out-of-range score downstream is a defect.
func normalizeCandidates(cands []candidate.Candidate, opts normalizeOptions) []candidate.Candidate {
	if len(cands) == 0 {
		return nil
	}

	out := make([]candidate.Candidate, 0, len(cands))
	for _, c := range cands {
		out = append(out, normalizeOne(c, opts))
	}
	return out
}

func normalizeOne(c candidate.Candidate, opts normalizeOptions) candidate.Candidate {
	switch c.Provenance() {
	case candidate.Vector, candidate.Fuzzy:
		// Already bounded [0,1]; passthrough keeps provenance distinct so
		// fuzzy and vector scores are never conflated with rank scores.
		return c.WithScore(clamp01(c.Score()), c.Provenance())

	case candidate.Fulltext:
		scale := opts.keywordScale
		if scale <= 0 {
			return c.WithScore(clamp01(c.Score()), candidate.Fulltext)
		}
		return c.WithScore(clamp01(c.Score()/scale), candidate.Fulltext)

	case candidate.Hybrid:
		comps := c.Components()
		score := comps.Hybrid
		if score < opts.hybridEpsilon {
			score = comps.RRF * opts.rrfDisplayScale
		}
		return c.WithScore(clamp01(score), candidate.Hybrid)

	default:
		return c.WithScore(clamp01(c.Score()), c.Provenance())
	}
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
