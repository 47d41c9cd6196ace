package result

import (
	"time"

	"github.com/aandreyev/kb-search-api/internal/domain/search/mode"
)

// Snippet is a chunk-level hit reduced for the response.
// Similarity is always the normalized [0,1] score.
type Snippet struct {
	Content    string
	Similarity float64
	ChunkIndex int
}

// Metadata holds descriptive document fields from the metadata store.
// Enrichment never affects ranking.
type Metadata struct {
	OriginalFilename string
	PublicURL        string
	Title            string
	Author           []string
	LastModified     *time.Time
	CreatedDate      *time.Time
	FileType         string
	DocumentSummary  string
	LawArea          []string
	DocumentCategory string
	CleanedFilename  string
	AnalysisNotes    string
}

// Document is a per-document result owning its ranked snippets.
type Document struct {
	DocumentID    string
	Metadata      Metadata
	MaxSimilarity float64
	Snippets      []Snippet
}

// AddSnippet folds a snippet into the document, keeping MaxSimilarity monotone.
func (d *Document) AddSnippet(s Snippet) {
	d.Snippets = append(d.Snippets, s)
	if s.Similarity > d.MaxSimilarity {
		d.MaxSimilarity = s.Similarity
	}
}

// Parameters echoes the effective search parameters back to the caller.
type Parameters struct {
	Limit               int
	MinScore            float64
	VectorWeight        float64
	KeywordWeight       float64
	Fuzzy               bool
	SimilarityThreshold float64
	RRFK                int
}

// Response is the search response envelope. Query and SearchMode are always
// set, including on failure, so callers can correlate.
// Ordering invariant: Results[i].MaxSimilarity >= Results[i+1].MaxSimilarity.
type Response struct {
	Query      string
	SearchMode mode.Mode
	Parameters Parameters
	Results    []Document
	Error      string
}
