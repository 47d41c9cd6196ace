package search

import (
	"math"
	"testing"

	"github.com/aandreyev/kb-search-api/internal/domain/search/candidate"
)

var testNormOpts = normalizeOptions{
	keywordScale:    0.1,
	hybridEpsilon:   0.001,
	rrfDisplayScale: 1000,
}

func TestNormalizeFulltextScaling(t *testing.T) {
	tests := []struct {
		name string
		raw  float64
		want float64
	}{
		{"typical rank score", 0.05, 0.5},
		{"at scale", 0.1, 1.0},
		{"above scale clamps", 0.25, 1.0},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := candidate.New("doc-1", 0, "text", tt.raw, candidate.Fulltext)
			got := normalizeOne(c, testNormOpts)
			if math.Abs(got.Score()-tt.want) > 1e-9 {
				t.Errorf("score = %v, want %v", got.Score(), tt.want)
			}
			if got.Provenance() != candidate.Fulltext {
				t.Errorf("provenance = %v, want fulltext", got.Provenance())
			}
		})
	}
}

func TestNormalizePassthroughProvenances(t *testing.T) {
	// Vector and fuzzy scores are already similarities; the lexical scale
	// must not touch them.
	for _, p := range []candidate.Provenance{candidate.Vector, candidate.Fuzzy} {
		c := candidate.New("doc-1", 0, "text", 0.08, p)
		got := normalizeOne(c, testNormOpts)
		if got.Score() != 0.08 {
			t.Errorf("%s: score = %v, want 0.08 passthrough", p, got.Score())
		}
	}
}

func TestNormalizePassthroughClamps(t *testing.T) {
	c := candidate.New("doc-1", 0, "text", 1.2, candidate.Vector)
	if got := normalizeOne(c, testNormOpts); got.Score() != 1.0 {
		t.Errorf("score = %v, want clamp to 1.0", got.Score())
	}
	c = candidate.New("doc-2", 0, "text", -0.1, candidate.Vector)
	if got := normalizeOne(c, testNormOpts); got.Score() != 0 {
		t.Errorf("score = %v, want clamp to 0", got.Score())
	}
}

func TestNormalizeHybridUsesHybridScore(t *testing.T) {
	c := candidate.NewHybrid("doc-1", 0, "text", candidate.Components{
		Vector: 0.9, Keyword: 0.6, RRF: 0.016, Hybrid: 0.81,
	}, []candidate.Source{candidate.SourceVector, candidate.SourceKeyword})

	got := normalizeOne(c, testNormOpts)
	if got.Score() != 0.81 {
		t.Errorf("score = %v, want hybrid component 0.81", got.Score())
	}
}

func TestNormalizeHybridEpsilonFallback(t *testing.T) {
	// Hybrid score below epsilon falls back to the rescaled RRF score,
	// then clamps to the unit interval.
	tests := []struct {
		name string
		rrf  float64
		want float64
	}{
		{"small rrf", 0.0005, 0.5},
		{"large rrf clamps", 1.0 / 61.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := candidate.NewHybrid("doc-1", 0, "text", candidate.Components{
				RRF: tt.rrf, Hybrid: 0.0001,
			}, []candidate.Source{candidate.SourceKeyword})

			got := normalizeOne(c, testNormOpts)
			if math.Abs(got.Score()-tt.want) > 1e-9 {
				t.Errorf("score = %v, want %v", got.Score(), tt.want)
			}
		})
	}
}

func TestNormalizeHybridFallbackClampCollapses(t *testing.T) {
	// Distinct RRF scores that both rescale past 1.0 clamp to the same
	// value; ordering among them is then the aggregate tie-break, not RRF.
	a := candidate.NewHybrid("doc-a", 0, "x", candidate.Components{
		RRF: 1.0 / 61.0, Hybrid: 0,
	}, []candidate.Source{candidate.SourceVector})
	b := candidate.NewHybrid("doc-b", 0, "y", candidate.Components{
		RRF: 1.0 / 75.0, Hybrid: 0,
	}, []candidate.Source{candidate.SourceKeyword})

	na := normalizeOne(a, testNormOpts)
	nb := normalizeOne(b, testNormOpts)
	if na.Score() != 1.0 || nb.Score() != 1.0 {
		t.Fatalf("scores = %v, %v, want both clamped to 1.0", na.Score(), nb.Score())
	}

	docs := aggregate([]candidate.Candidate{nb, na}, 0, 10)
	if docs[0].DocumentID != "doc-a" || docs[1].DocumentID != "doc-b" {
		t.Errorf("tie-break order = %s, %s, want doc-a, doc-b",
			docs[0].DocumentID, docs[1].DocumentID)
	}
}

func TestNormalizeCandidatesBounds(t *testing.T) {
	cands := []candidate.Candidate{
		candidate.New("a", 0, "x", 0.5, candidate.Vector),
		candidate.New("b", 1, "y", 0.3, candidate.Fulltext),
		candidate.New("c", 2, "z", 99, candidate.Fuzzy),
		candidate.NewHybrid("d", 3, "w", candidate.Components{RRF: 0.5, Hybrid: 0}, nil),
	}

	for _, c := range normalizeCandidates(cands, testNormOpts) {
		if c.Score() < 0 || c.Score() > 1 {
			t.Errorf("candidate %s score %v out of [0,1]", c.DocumentID(), c.Score())
		}
	}
}

func TestNormalizeCandidatesEmpty(t *testing.T) {
	if got := normalizeCandidates(nil, testNormOpts); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}
