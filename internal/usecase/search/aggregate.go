package search

import (
	"sort"

	"github.com/aandreyev/kb-search-api/internal/domain/search/candidate"
	"github.com/aandreyev/kb-search-api/internal/domain/search/result"
)

// aggregate folds normalized candidates into ranked document results.
//
// minScore filters individual candidates before grouping: a document whose
// snippets all fall below the cutoff is excluded, never shown empty.
// Candidates with no resolvable document_id are dropped. Grouping is O(n)
// over an id-keyed map with no input-ordering assumption.
func aggregate(cands []candidate.Candidate, minScore float64, limit int) []result.Document {
	byDoc := make(map[string]*result.Document)
	order := make([]string, 0)

	for i := range cands {
		c := &cands[i]
		if c.Score() < minScore {
			continue
		}
		id := c.DocumentID()
		if id == "" {
			continue
		}

		doc, ok := byDoc[id]
		if !ok {
			doc = &result.Document{DocumentID: id}
			byDoc[id] = doc
			order = append(order, id)
		}
		doc.AddSnippet(result.Snippet{
			Content:    c.Content(),
			Similarity: c.Score(),
			ChunkIndex: c.ChunkIndex(),
		})
	}

	docs := make([]result.Document, 0, len(order))
	for _, id := range order {
		doc := *byDoc[id]
		sortSnippets(doc.Snippets)
		docs = append(docs, doc)
	}

	// Documents by max similarity descending, ties by id ascending
	sort.SliceStable(docs, func(i, j int) bool {
		if docs[i].MaxSimilarity != docs[j].MaxSimilarity {
			return docs[i].MaxSimilarity > docs[j].MaxSimilarity
		}
		return docs[i].DocumentID < docs[j].DocumentID
	})

	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	return docs
}

// sortSnippets orders snippets by similarity descending, ties by chunk index
// ascending for determinism.
func sortSnippets(snippets []result.Snippet) {
	sort.SliceStable(snippets, func(i, j int) bool {
		if snippets[i].Similarity != snippets[j].Similarity {
			return snippets[i].Similarity > snippets[j].Similarity
		}
		return snippets[i].ChunkIndex < snippets[j].ChunkIndex
	})
}
