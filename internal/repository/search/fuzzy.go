package search

import "strings"

// Trigram similarity after pg_trgm: strings are lowercased, split into
// terms, each term padded with two leading and one trailing space, and
// compared by Jaccard similarity of their trigram sets.

// bestTermSimilarity returns the best trigram similarity between any query
// term and any content term. Used to score fuzzy keyword matches in [0,1].
func bestTermSimilarity(query, content string) float64 {
	queryTerms := strings.Fields(strings.ToLower(query))
	contentTerms := strings.Fields(strings.ToLower(content))
	if len(queryTerms) == 0 || len(contentTerms) == 0 {
		return 0
	}

	best := 0.0
	for _, qt := range queryTerms {
		qgrams := trigrams(qt)
		for _, ct := range contentTerms {
			if s := similarity(qgrams, trigrams(ct)); s > best {
				best = s
			}
		}
	}
	return best
}

func trigrams(term string) map[string]struct{} {
	term = strings.Trim(term, ".,;:!?\"'()[]")
	if term == "" {
		return nil
	}

	padded := "  " + term + " "
	set := make(map[string]struct{}, len(padded))
	for i := 0; i+3 <= len(padded); i++ {
		set[padded[i:i+3]] = struct{}{}
	}
	return set
}

func similarity(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	shared := 0
	for g := range a {
		if _, ok := b[g]; ok {
			shared++
		}
	}
	if shared == 0 {
		return 0
	}
	return float64(shared) / float64(len(a)+len(b)-shared)
}
