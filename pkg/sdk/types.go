package kbsearch

// SearchRequest is the POST /search body. Zero values fall back to server
// defaults; pointer fields distinguish "unset" from an explicit zero.
type SearchRequest struct {
	Query               string   `json:"query"`
	SearchMode          string   `json:"mode,omitempty"` // vector, keyword, hybrid
	Limit               int      `json:"limit,omitempty"`
	MinScore            *float64 `json:"min_score,omitempty"`
	VectorWeight        *float64 `json:"vector_weight,omitempty"`
	KeywordWeight       *float64 `json:"keyword_weight,omitempty"`
	Fuzzy               bool     `json:"fuzzy,omitempty"`
	SimilarityThreshold *float64 `json:"similarity_threshold,omitempty"`
	RRFK                int      `json:"rrf_k,omitempty"`
}

// SearchParameters echoes the effective parameters after defaulting.
type SearchParameters struct {
	Limit               int     `json:"limit"`
	MinScore            float64 `json:"min_score"`
	VectorWeight        float64 `json:"vector_weight"`
	KeywordWeight       float64 `json:"keyword_weight"`
	Fuzzy               bool    `json:"fuzzy"`
	SimilarityThreshold float64 `json:"similarity_threshold"`
	RRFK                int     `json:"rrf_k"`
}

// Snippet is a matching chunk within a document.
type Snippet struct {
	Content    string  `json:"content"`
	Similarity float64 `json:"similarity"`
	ChunkIndex int     `json:"chunk_index"`
}

// DocumentMetadata holds descriptive document fields.
type DocumentMetadata struct {
	OriginalFilename string   `json:"original_filename,omitempty"`
	PublicURL        string   `json:"public_url,omitempty"`
	Title            string   `json:"title,omitempty"`
	Author           []string `json:"author,omitempty"`
	LastModified     string   `json:"last_modified,omitempty"`
	CreatedDate      string   `json:"created_date,omitempty"`
	FileType         string   `json:"file_type,omitempty"`
	DocumentSummary  string   `json:"document_summary,omitempty"`
	LawArea          []string `json:"law_area,omitempty"`
	DocumentCategory string   `json:"document_category,omitempty"`
	CleanedFilename  string   `json:"cleaned_filename,omitempty"`
	AnalysisNotes    string   `json:"analysis_notes,omitempty"`
}

// DocumentResult is a ranked document with its matching snippets.
type DocumentResult struct {
	DocumentID    string           `json:"document_id"`
	Metadata      DocumentMetadata `json:"metadata"`
	MaxSimilarity float64          `json:"max_similarity"`
	Snippets      []Snippet        `json:"snippets"`
}

// SearchResponse is the search envelope. A non-empty Error with empty
// Results indicates a degraded request, not an empty match.
type SearchResponse struct {
	Query      string           `json:"query"`
	SearchMode string           `json:"search_mode"`
	Parameters SearchParameters `json:"parameters"`
	Results    []DocumentResult `json:"results"`
	Error      string           `json:"error,omitempty"`
}

// ActivityEntry is a usage event for POST /activity.
type ActivityEntry struct {
	EventType        string `json:"event_type"`
	UserID           string `json:"user_id,omitempty"`
	Username         string `json:"username,omitempty"`
	SearchTerm       string `json:"search_term,omitempty"`
	SearchMode       string `json:"search_mode,omitempty"`
	DocumentID       string `json:"document_id,omitempty"`
	DocumentFilename string `json:"document_filename,omitempty"`
	PreviewType      string `json:"preview_type,omitempty"`
	ResultCount      int    `json:"result_count,omitempty"`
}

// HealthReport is the GET /health body.
type HealthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
