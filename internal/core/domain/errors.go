package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrEmptyDocument indicates a document yielded no usable text chunks.
	// Ingestion is rejected rather than storing an empty document.
	ErrEmptyDocument = errors.New("no usable text in document")

	// ErrEmptyQuery indicates a chat query was blank after trimming.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmbeddingUnavailable indicates the embedding service is
	// unreachable, misconfigured, or returned a malformed vector.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrNoRelevantContext indicates retrieval found no chunk whose
	// similarity to the query could be computed, including the empty store.
	ErrNoRelevantContext = errors.New("no relevant context found")

	// ErrIngestionFailed indicates every chunk of a document failed
	// embedding, so nothing was stored.
	ErrIngestionFailed = errors.New("no chunks were stored due to embedding errors")

	// ErrGenerationFailed indicates the generation service returned an
	// empty or blank answer.
	ErrGenerationFailed = errors.New("answer generation failed")
)
