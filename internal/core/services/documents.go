package services

import (
	"context"
	"fmt"

	"github.com/docuchat-labs/docuchat/internal/core/domain"
	"github.com/docuchat-labs/docuchat/internal/core/ports/driven"
	"github.com/docuchat-labs/docuchat/internal/core/ports/driving"
	"github.com/docuchat-labs/docuchat/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService exposes the document lifecycle over the chunk store.
type DocumentService struct {
	store driven.ChunkStore
}

// NewDocumentService creates a document service.
func NewDocumentService(store driven.ChunkStore) *DocumentService {
	return &DocumentService{store: store}
}

// List returns one entry per ingested document.
func (s *DocumentService) List(ctx context.Context) ([]domain.DocumentRef, error) {
	refs, err := s.store.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	return refs, nil
}

// Get returns the full chunked text of the document owning chunkID.
func (s *DocumentService) Get(ctx context.Context, chunkID string) (*domain.DocumentText, error) {
	doc, err := s.store.GetDocument(ctx, chunkID)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Delete removes the document owning chunkID with all its chunks.
func (s *DocumentService) Delete(ctx context.Context, chunkID string) (int64, error) {
	deleted, err := s.store.DeleteDocument(ctx, chunkID)
	if err != nil {
		return 0, err
	}
	logger.Info("deleted document via chunk %s: %d chunks removed", chunkID, deleted)
	return deleted, nil
}
