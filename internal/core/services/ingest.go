package services

import (
	"context"
	"fmt"
	"time"

	"github.com/docuchat-labs/docuchat/internal/chunker"
	"github.com/docuchat-labs/docuchat/internal/core/domain"
	"github.com/docuchat-labs/docuchat/internal/core/ports/driven"
	"github.com/docuchat-labs/docuchat/internal/core/ports/driving"
	"github.com/docuchat-labs/docuchat/internal/logger"
)

// Ensure IngestionService implements the interface.
var _ driving.IngestService = (*IngestionService)(nil)

// IngestionService composes chunking, embedding and storage for one
// document. A single bad chunk must not discard an entire document, so
// embedding failures are handled per chunk; there is no rollback.
type IngestionService struct {
	chunker   *chunker.Chunker
	embedding driven.EmbeddingService
	store     driven.ChunkStore
}

// NewIngestionService creates an ingestion service.
func NewIngestionService(
	chunker *chunker.Chunker,
	embedding driven.EmbeddingService,
	store driven.ChunkStore,
) *IngestionService {
	return &IngestionService{
		chunker:   chunker,
		embedding: embedding,
		store:     store,
	}
}

// Ingest splits rawText into chunks, embeds each one and persists the
// survivors under filename. Every stored chunk carries its original
// position index and the one timestamp assigned to the whole batch.
//
// Chunks whose embedding call fails are logged and skipped, which can
// leave gaps in the stored index sequence. Only when no chunk at all was
// stored does ingestion fail with domain.ErrIngestionFailed.
func (s *IngestionService) Ingest(ctx context.Context, filename, rawText string) (*domain.IngestResult, error) {
	chunks, err := s.chunker.Split(rawText)
	if err != nil {
		return nil, err
	}

	uploadedAt := time.Now().UTC()
	result := &domain.IngestResult{}

	for idx, text := range chunks {
		embedding, err := s.embedding.Embed(ctx, text, driven.TaskDocument)
		if err != nil {
			logger.Warn("skipping chunk %d of %q due to embedding error: %v", idx, filename, err)
			continue
		}

		id, err := s.store.Insert(ctx, domain.Chunk{
			Filename:   filename,
			Index:      idx,
			Text:       text,
			Embedding:  embedding,
			UploadedAt: uploadedAt,
		})
		if err != nil {
			return nil, fmt.Errorf("storing chunk %d of %q: %w", idx, filename, err)
		}

		result.Stored++
		result.ChunkIDs = append(result.ChunkIDs, id)
	}

	if result.Stored == 0 {
		return nil, domain.ErrIngestionFailed
	}

	logger.Info("document %q processed: %d of %d chunks stored with embeddings",
		filename, result.Stored, len(chunks))
	return result, nil
}
