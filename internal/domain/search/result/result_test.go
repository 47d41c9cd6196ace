package result

import "testing"

func TestAddSnippet_MaxSimilarityMonotone(t *testing.T) {
	d := Document{DocumentID: "doc-1"}

	d.AddSnippet(Snippet{Content: "a", Similarity: 0.4, ChunkIndex: 0})
	if d.MaxSimilarity != 0.4 {
		t.Errorf("MaxSimilarity = %f, want 0.4", d.MaxSimilarity)
	}

	d.AddSnippet(Snippet{Content: "b", Similarity: 0.9, ChunkIndex: 1})
	if d.MaxSimilarity != 0.9 {
		t.Errorf("MaxSimilarity = %f, want 0.9", d.MaxSimilarity)
	}

	// A lower snippet never decreases the fold
	d.AddSnippet(Snippet{Content: "c", Similarity: 0.2, ChunkIndex: 2})
	if d.MaxSimilarity != 0.9 {
		t.Errorf("MaxSimilarity = %f, want 0.9", d.MaxSimilarity)
	}

	if len(d.Snippets) != 3 {
		t.Errorf("len(Snippets) = %d, want 3", len(d.Snippets))
	}
}
