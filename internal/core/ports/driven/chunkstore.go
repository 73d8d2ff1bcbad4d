package driven

import (
	"context"

	"github.com/docuchat-labs/docuchat/internal/core/domain"
)

// ChunkVector is the projection of a stored chunk used for similarity
// scoring: the text to return and the vector to score.
type ChunkVector struct {
	Text      string
	Embedding []float32
}

// ChunkStore persists chunks with their embeddings, grouped by the owning
// document's filename. The store assigns chunk identifiers; no uniqueness
// is enforced beyond them, so repeated inserts of the same (filename,
// index) create duplicates and the caller must guarantee sequencing.
//
// A successful Insert must be visible to subsequent ScanAll and
// GetDocument calls within the same process.
type ChunkStore interface {
	// Insert persists one chunk and returns the store-assigned identifier.
	Insert(ctx context.Context, chunk domain.Chunk) (string, error)

	// ListDocuments returns one entry per distinct filename, using the
	// earliest-inserted chunk's identifier and timestamp as representative.
	// Ordering follows the insertion order of the representatives.
	ListDocuments(ctx context.Context) ([]domain.DocumentRef, error)

	// GetDocument resolves a chunk identifier and returns ALL chunks
	// sharing the resolved chunk's filename, ordered by index. The
	// identifier is a handle to the whole document, not just one chunk.
	// Returns domain.ErrNotFound when no chunk has that identifier.
	GetDocument(ctx context.Context, chunkID string) (*domain.DocumentText, error)

	// DeleteDocument resolves a chunk identifier and deletes every chunk
	// sharing the resolved filename, returning the number of chunks
	// removed. Returns domain.ErrNotFound when the identifier resolves to
	// nothing.
	DeleteDocument(ctx context.Context, chunkID string) (int64, error)

	// ScanAll streams every stored chunk's text and embedding to fn in
	// insertion order. Scanning stops at the first error returned by fn.
	// Used only by the retriever; no filtering, full scan.
	ScanAll(ctx context.Context, fn func(ChunkVector) error) error

	// Close releases the store connection.
	Close(ctx context.Context) error
}
