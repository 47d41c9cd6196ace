package chi

import (
	"time"

	"github.com/aandreyev/kb-search-api/internal/domain/activity"
	"github.com/aandreyev/kb-search-api/internal/domain/search/mode"
	"github.com/aandreyev/kb-search-api/internal/domain/search/request"
	"github.com/aandreyev/kb-search-api/internal/domain/search/result"
)

// searchRequest is the POST /search body. The mode is accepted as "mode"
// on input; the response envelope echoes it back as "search_mode".
type searchRequest struct {
	Query               string   `json:"query"`
	SearchMode          string   `json:"mode,omitempty"`
	Limit               int      `json:"limit,omitempty"`
	MinScore            *float64 `json:"min_score,omitempty"`
	VectorWeight        *float64 `json:"vector_weight,omitempty"`
	KeywordWeight       *float64 `json:"keyword_weight,omitempty"`
	Fuzzy               bool     `json:"fuzzy,omitempty"`
	SimilarityThreshold *float64 `json:"similarity_threshold,omitempty"`
	RRFK                int      `json:"rrf_k,omitempty"`
}

func (r *searchRequest) toParams() request.Params {
	return request.Params{
		Query:         r.Query,
		Mode:          mode.Mode(r.SearchMode),
		Limit:         r.Limit,
		MinScore:      r.MinScore,
		VectorWeight:  r.VectorWeight,
		KeywordWeight: r.KeywordWeight,
		Fuzzy:         r.Fuzzy,
		Threshold:     r.SimilarityThreshold,
		RRFK:          r.RRFK,
	}
}

// searchParameters echoes the effective parameters.
type searchParameters struct {
	Limit               int     `json:"limit"`
	MinScore            float64 `json:"min_score"`
	VectorWeight        float64 `json:"vector_weight"`
	KeywordWeight       float64 `json:"keyword_weight"`
	Fuzzy               bool    `json:"fuzzy"`
	SimilarityThreshold float64 `json:"similarity_threshold"`
	RRFK                int     `json:"rrf_k"`
}

type snippetPayload struct {
	Content    string  `json:"content"`
	Similarity float64 `json:"similarity"`
	ChunkIndex int     `json:"chunk_index"`
}

type metadataPayload struct {
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

type documentPayload struct {
	DocumentID    string           `json:"document_id"`
	Metadata      metadataPayload  `json:"metadata"`
	MaxSimilarity float64          `json:"max_similarity"`
	Snippets      []snippetPayload `json:"snippets"`
}

// searchResponse is the POST /search envelope. Query and search_mode are
// always present, including on failure.
type searchResponse struct {
	Query      string            `json:"query"`
	SearchMode string            `json:"search_mode"`
	Parameters searchParameters  `json:"parameters"`
	Results    []documentPayload `json:"results"`
	Error      string            `json:"error,omitempty"`
}

func searchResponseFromResult(r *result.Response) searchResponse {
	out := searchResponse{
		Query:      r.Query,
		SearchMode: string(r.SearchMode),
		Parameters: searchParameters{
			Limit:               r.Parameters.Limit,
			MinScore:            r.Parameters.MinScore,
			VectorWeight:        r.Parameters.VectorWeight,
			KeywordWeight:       r.Parameters.KeywordWeight,
			Fuzzy:               r.Parameters.Fuzzy,
			SimilarityThreshold: r.Parameters.SimilarityThreshold,
			RRFK:                r.Parameters.RRFK,
		},
		Results: make([]documentPayload, 0, len(r.Results)),
		Error:   r.Error,
	}

	for i := range r.Results {
		out.Results = append(out.Results, documentFromResult(&r.Results[i]))
	}
	return out
}

func documentFromResult(d *result.Document) documentPayload {
	snippets := make([]snippetPayload, 0, len(d.Snippets))
	for _, s := range d.Snippets {
		snippets = append(snippets, snippetPayload{
			Content:    s.Content,
			Similarity: s.Similarity,
			ChunkIndex: s.ChunkIndex,
		})
	}

	return documentPayload{
		DocumentID:    d.DocumentID,
		Metadata:      metadataFromResult(d.Metadata),
		MaxSimilarity: d.MaxSimilarity,
		Snippets:      snippets,
	}
}

func metadataFromResult(m result.Metadata) metadataPayload {
	return metadataPayload{
		OriginalFilename: m.OriginalFilename,
		PublicURL:        m.PublicURL,
		Title:            m.Title,
		Author:           m.Author,
		LastModified:     formatTime(m.LastModified),
		CreatedDate:      formatTime(m.CreatedDate),
		FileType:         m.FileType,
		DocumentSummary:  m.DocumentSummary,
		LawArea:          m.LawArea,
		DocumentCategory: m.DocumentCategory,
		CleanedFilename:  m.CleanedFilename,
		AnalysisNotes:    m.AnalysisNotes,
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// activityRequest is the POST /activity body.
type activityRequest struct {
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

func (r *activityRequest) toEntry() activity.Entry {
	return activity.Entry{
		EventType:        r.EventType,
		UserID:           r.UserID,
		Username:         r.Username,
		SearchTerm:       r.SearchTerm,
		SearchMode:       r.SearchMode,
		DocumentID:       r.DocumentID,
		DocumentFilename: r.DocumentFilename,
		PreviewType:      r.PreviewType,
		ResultCount:      r.ResultCount,
	}
}

// errorResponse is the generic error body for non-search endpoints and
// request validation failures.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// healthResponse is the GET /health body.
type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
