package search

import (
	"math"
	"sort"
	"strconv"

	"github.com/aandreyev/kb-search-api/internal/domain/search/candidate"
)

type fusionParams struct {
	vectorWeight  float64
	keywordWeight float64
	rrfK          int
	keywordScale  float64
}

// fuse merges vector and keyword candidate lists at chunk granularity.
//
// hybrid(c) = vw*vector_score(c) + kw*keyword_norm(c)
// rrf(c)    = sum of 1/(k + rank_i) over the lists where c appears
//
// The keyword component is brought onto the [0,1] scale before the linear
// combination; mixing a bounded similarity with an unbounded rank score
// would let one mode silently dominate. Each fused candidate carries all
// component scores and the modes that surfaced it.
func fuse(knn, lexical []candidate.Candidate, p fusionParams) []candidate.Candidate {
	type entry struct {
		cand    candidate.Candidate
		comps   candidate.Components
		sources []candidate.Source
	}

	merged := make(map[string]*entry, len(knn)+len(lexical))
	order := make([]string, 0, len(knn)+len(lexical))

	get := func(c candidate.Candidate) *entry {
		key := c.DocumentID() + "#" + strconv.Itoa(c.ChunkIndex())
		if e, ok := merged[key]; ok {
			return e
		}
		e := &entry{cand: c}
		merged[key] = e
		order = append(order, key)
		return e
	}

	for rank, c := range knn {
		e := get(c)
		e.comps.Vector = c.Score()
		e.comps.RRF += rrfContribution(p.rrfK, rank+1)
		e.sources = append(e.sources, candidate.SourceVector)
	}

	for rank, c := range lexical {
		e := get(c)
		e.comps.Keyword = normalizeKeyword(c.Score(), p.keywordScale)
		e.comps.RRF += rrfContribution(p.rrfK, rank+1)
		e.sources = append(e.sources, candidate.SourceKeyword)
	}

	out := make([]candidate.Candidate, 0, len(merged))
	for _, key := range order {
		e := merged[key]
		e.comps.Hybrid = p.vectorWeight*e.comps.Vector + p.keywordWeight*e.comps.Keyword
		out = append(out, candidate.NewHybrid(
			e.cand.DocumentID(), e.cand.ChunkIndex(), e.cand.Content(),
			e.comps, e.sources,
		))
	}

	sort.SliceStable(out, func(i, j int) bool {
		si, sj := out[i].Score(), out[j].Score()
		if si != sj {
			return si > sj
		}
		if out[i].DocumentID() != out[j].DocumentID() {
			return out[i].DocumentID() < out[j].DocumentID()
		}
		return out[i].ChunkIndex() < out[j].ChunkIndex()
	})

	return out
}

// rrfContribution is the standard RRF term for a 1-indexed rank.
func rrfContribution(k, rank int) float64 {
	return 1.0 / float64(k+rank)
}

// normalizeKeyword maps a raw lexical rank score onto [0,1] by the empirical
// scaling constant, clamped at the conversion step.
func normalizeKeyword(raw, scale float64) float64 {
	if scale <= 0 {
		return math.Min(1, math.Max(0, raw))
	}
	return math.Min(1, math.Max(0, raw/scale))
}
