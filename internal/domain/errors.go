package domain

import "errors"

var (
	// ErrValidation signals a malformed search request.
	ErrValidation = errors.New("validation failed")
	// ErrEmbeddingUnavailable signals that the embedding provider could not be reached.
	// Transient; safe to retry.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
	// ErrEmbeddingDimMismatch signals an embedding of unexpected length.
	// Indicates a model/configuration mismatch, not a transient fault.
	ErrEmbeddingDimMismatch = errors.New("embedding dimension mismatch")
	// ErrRetrieval signals a failed candidate retrieval call.
	ErrRetrieval = errors.New("retrieval failed")
	// ErrMetadataLookup signals a failed document metadata lookup.
	ErrMetadataLookup = errors.New("metadata lookup failed")
)
