package document

import (
	"encoding/json"
	"time"

	"github.com/aandreyev/kb-search-api/internal/domain/search/result"
)

// Metadata hash field names.
const (
	fieldOriginalFilename = "original_filename"
	fieldPublicURL        = "public_url"
	fieldTitle            = "title"
	fieldAuthor           = "author"
	fieldLastModified     = "last_modified"
	fieldCreatedDate      = "created_date"
	fieldFileType         = "file_type"
	fieldDocumentSummary  = "document_summary"
	fieldLawArea          = "law_area"
	fieldDocumentCategory = "document_category"
	fieldCleanedFilename  = "cleaned_filename"
	fieldAnalysisNotes    = "analysis_notes"
)

// metadataFromFields maps a flat hash record into domain metadata.
// Array fields are stored as JSON strings; timestamps as RFC 3339.
// Malformed values degrade to absent fields, never to an error.
func metadataFromFields(fields map[string]string) result.Metadata {
	return result.Metadata{
		OriginalFilename: fields[fieldOriginalFilename],
		PublicURL:        fields[fieldPublicURL],
		Title:            fields[fieldTitle],
		Author:           parseStringArray(fields[fieldAuthor]),
		LastModified:     parseTime(fields[fieldLastModified]),
		CreatedDate:      parseTime(fields[fieldCreatedDate]),
		FileType:         fields[fieldFileType],
		DocumentSummary:  fields[fieldDocumentSummary],
		LawArea:          parseStringArray(fields[fieldLawArea]),
		DocumentCategory: fields[fieldDocumentCategory],
		CleanedFilename:  fields[fieldCleanedFilename],
		AnalysisNotes:    fields[fieldAnalysisNotes],
	}
}

func parseStringArray(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		// A bare string is tolerated as a single-element array
		return []string{raw}
	}
	return out
}

func parseTime(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	return &t
}
