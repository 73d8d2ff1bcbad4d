package driven

import "context"

// TaskType is the embedding task hint. Services that differentiate
// document and query embeddings produce vectors with different semantics
// (but identical structure) for each.
type TaskType string

const (
	// TaskDocument marks text embedded for storage and later retrieval.
	TaskDocument TaskType = "RETRIEVAL_DOCUMENT"

	// TaskQuery marks text embedded to search against stored documents.
	TaskQuery TaskType = "RETRIEVAL_QUERY"
)

// EmbeddingService generates vector embeddings from text.
//
// Each call is one independent network request: no caching, no batching.
// Implementations must report unreachable services, auth failures and
// malformed responses by wrapping domain.ErrEmbeddingUnavailable, so
// callers can distinguish service failure from a valid result.
type EmbeddingService interface {
	// Embed generates a fixed-dimension vector for the given text.
	Embed(ctx context.Context, text string, task TaskType) ([]float32, error)

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	// Used at startup to fail fast on misconfiguration.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
