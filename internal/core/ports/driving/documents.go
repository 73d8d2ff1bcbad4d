package driving

import (
	"context"

	"github.com/docuchat-labs/docuchat/internal/core/domain"
)

// DocumentService manages the lifecycle of ingested documents.
// Documents are addressed by the identifier of their representative chunk.
type DocumentService interface {
	// List returns one entry per ingested document.
	List(ctx context.Context) ([]domain.DocumentRef, error)

	// Get returns the full chunked text of the document owning the chunk.
	Get(ctx context.Context, chunkID string) (*domain.DocumentText, error)

	// Delete removes the whole document owning the chunk and reports how
	// many chunks were removed.
	Delete(ctx context.Context, chunkID string) (int64, error)
}
