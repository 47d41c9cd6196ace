package mode

// Mode is the retrieval strategy.
type Mode string

// Search mode constants.
const (
	// Vector scores candidates by embedding cosine similarity.
	Vector Mode = "vector"
	// Keyword scores candidates by lexical full-text relevance.
	Keyword Mode = "keyword"
	// Hybrid fuses vector and keyword scoring.
	Hybrid Mode = "hybrid"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Vector || m == Keyword || m == Hybrid
}

// NeedsEmbedding reports whether the mode requires a query embedding.
func (m Mode) NeedsEmbedding() bool {
	return m == Vector || m == Hybrid
}
