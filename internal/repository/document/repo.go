// Package document reads descriptive document metadata from the backend.
// One bulk lookup per request; enrichment never affects ranking.
package document

import (
	"context"
	"fmt"

	"github.com/aandreyev/kb-search-api/internal/domain"
	"github.com/aandreyev/kb-search-api/internal/domain/search/result"
)

// store is the consumer interface for metadata lookups.
type store interface {
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
}

// Repo reads document metadata records.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a document metadata repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

// FetchMetadata performs a single pipelined lookup for all ids and returns
// the records found. Ids with no stored record are simply absent from the
// result; the caller decides on placeholders.
func (r *Repo) FetchMetadata(ctx context.Context, ids []string) (map[string]result.Metadata, error) {
	if len(ids) == 0 {
		return map[string]result.Metadata{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.keyPrefix + id
	}

	records, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMetadataLookup, err)
	}

	out := make(map[string]result.Metadata, len(ids))
	for i, fields := range records {
		if len(fields) == 0 {
			continue
		}
		out[ids[i]] = metadataFromFields(fields)
	}
	return out, nil
}
