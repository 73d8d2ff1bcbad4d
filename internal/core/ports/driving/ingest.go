package driving

import (
	"context"

	"github.com/docuchat-labs/docuchat/internal/core/domain"
)

// IngestService turns raw document text into stored, embedded chunks.
type IngestService interface {
	// Ingest chunks rawText, embeds each chunk and persists the survivors
	// under filename with one shared upload timestamp.
	//
	// Individual chunks whose embedding fails are skipped; the document is
	// only rejected (domain.ErrIngestionFailed) when nothing was stored.
	// An input with no usable text yields domain.ErrEmptyDocument.
	Ingest(ctx context.Context, filename, rawText string) (*domain.IngestResult, error)
}
