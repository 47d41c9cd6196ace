package search

import (
	"math"
	"testing"

	"github.com/aandreyev/kb-search-api/internal/domain/search/candidate"
)

func vecCand(docID string, chunkIdx int, score float64) candidate.Candidate {
	return candidate.New(docID, chunkIdx, "content "+docID, score, candidate.Vector)
}

func kwCand(docID string, chunkIdx int, score float64) candidate.Candidate {
	return candidate.New(docID, chunkIdx, "content "+docID, score, candidate.Fulltext)
}

func defaultParams() fusionParams {
	return fusionParams{vectorWeight: 0.7, keywordWeight: 0.3, rrfK: 60, keywordScale: 0.1}
}

func TestFuse_Empty(t *testing.T) {
	out := fuse(nil, nil, defaultParams())
	if len(out) != 0 {
		t.Errorf("len = %d, want 0", len(out))
	}
}

func TestFuse_SingleListOnly(t *testing.T) {
	knn := []candidate.Candidate{vecCand("a", 0, 0.9), vecCand("b", 0, 0.5)}

	out := fuse(knn, nil, defaultParams())
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}

	comps := out[0].Components()
	if comps.Keyword != 0 {
		t.Errorf("Keyword = %f, want 0", comps.Keyword)
	}
	if want := 0.7 * 0.9; math.Abs(comps.Hybrid-want) > 1e-9 {
		t.Errorf("Hybrid = %f, want %f", comps.Hybrid, want)
	}
	if want := 1.0 / 61; math.Abs(comps.RRF-want) > 1e-9 {
		t.Errorf("RRF = %f, want %f", comps.RRF, want)
	}
	if len(out[0].Sources()) != 1 || out[0].Sources()[0] != candidate.SourceVector {
		t.Errorf("Sources = %v", out[0].Sources())
	}
}

func TestFuse_RRFSumsAcrossLists(t *testing.T) {
	knn := []candidate.Candidate{vecCand("a", 0, 0.8), vecCand("b", 0, 0.7)}
	lexical := []candidate.Candidate{kwCand("b", 0, 0.09), kwCand("a", 0, 0.02)}

	out := fuse(knn, lexical, defaultParams())
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}

	for _, c := range out {
		var want float64
		switch c.DocumentID() {
		case "a": // rank 1 in knn, rank 2 in lexical
			want = 1.0/61 + 1.0/62
		case "b": // rank 2 in knn, rank 1 in lexical
			want = 1.0/62 + 1.0/61
		}
		if got := c.Components().RRF; math.Abs(got-want) > 1e-9 {
			t.Errorf("doc %s RRF = %f, want %f", c.DocumentID(), got, want)
		}
	}
}

func TestFuse_WeightsShiftRanking(t *testing.T) {
	// "vec" is vector-strong, "kw" is keyword-strong
	knn := []candidate.Candidate{vecCand("vec", 0, 0.9), vecCand("kw", 0, 0.2)}
	lexical := []candidate.Candidate{kwCand("kw", 0, 0.095), kwCand("vec", 0, 0.01)}

	vectorHeavy := defaultParams()
	vectorHeavy.vectorWeight, vectorHeavy.keywordWeight = 0.7, 0.3
	out := fuse(knn, lexical, vectorHeavy)
	if out[0].DocumentID() != "vec" {
		t.Errorf("vector-heavy top = %q, want vec", out[0].DocumentID())
	}

	keywordHeavy := defaultParams()
	keywordHeavy.vectorWeight, keywordHeavy.keywordWeight = 0.2, 0.8
	out = fuse(knn, lexical, keywordHeavy)
	if out[0].DocumentID() != "kw" {
		t.Errorf("keyword-heavy top = %q, want kw", out[0].DocumentID())
	}
}

func TestFuse_DeterministicTieBreak(t *testing.T) {
	// Identical scores: ordering falls back to document_id ascending
	knn := []candidate.Candidate{vecCand("b", 0, 0.5), vecCand("a", 0, 0.5)}

	out := fuse(knn, nil, defaultParams())
	// Equal hybrid scores: a before b
	if out[0].DocumentID() != "a" || out[1].DocumentID() != "b" {
		t.Errorf("order = %q,%q, want a,b", out[0].DocumentID(), out[1].DocumentID())
	}
}

func TestFuse_ChunkGranularity(t *testing.T) {
	// Two chunks of the same document stay distinct candidates
	knn := []candidate.Candidate{vecCand("a", 0, 0.9), vecCand("a", 1, 0.4)}
	lexical := []candidate.Candidate{kwCand("a", 1, 0.08)}

	out := fuse(knn, lexical, defaultParams())
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	// The chunk 1 entry merged across lists
	for _, c := range out {
		if c.ChunkIndex() == 1 && len(c.Sources()) != 2 {
			t.Errorf("chunk 1 Sources = %v, want both", c.Sources())
		}
	}
}

func TestNormalizeKeyword(t *testing.T) {
	tests := []struct {
		raw, scale, want float64
	}{
		{0.05, 0.1, 0.5},
		{0.1, 0.1, 1},
		{0.3, 0.1, 1}, // clamped at the conversion step
		{0, 0.1, 0},
		{0.5, 0, 0.5}, // degenerate scale falls back to clamp only
	}

	for _, tt := range tests {
		if got := normalizeKeyword(tt.raw, tt.scale); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("normalizeKeyword(%f, %f) = %f, want %f", tt.raw, tt.scale, got, tt.want)
		}
	}
}
