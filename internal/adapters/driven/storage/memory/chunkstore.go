// Package memory provides an in-memory chunk store for tests and
// dependency-free runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/docuchat-labs/docuchat/internal/core/domain"
	"github.com/docuchat-labs/docuchat/internal/core/ports/driven"
)

// Ensure ChunkStore implements the interface.
var _ driven.ChunkStore = (*ChunkStore)(nil)

// ChunkStore is an in-memory implementation of driven.ChunkStore.
// Chunks are kept in insertion order, matching the representative and
// scan ordering guarantees of the persistent stores.
type ChunkStore struct {
	mu     sync.RWMutex
	chunks []domain.Chunk
}

// NewChunkStore creates an empty in-memory chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{}
}

// Insert appends the chunk and returns a generated identifier.
func (s *ChunkStore) Insert(_ context.Context, chunk domain.Chunk) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chunk.ID = uuid.New().String()
	s.chunks = append(s.chunks, chunk)
	return chunk.ID, nil
}

// ListDocuments returns one entry per filename in first-insertion order,
// represented by the earliest-inserted chunk.
func (s *ChunkStore) ListDocuments(_ context.Context) ([]domain.DocumentRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var refs []domain.DocumentRef
	for _, chunk := range s.chunks {
		if seen[chunk.Filename] {
			continue
		}
		seen[chunk.Filename] = true
		refs = append(refs, domain.DocumentRef{
			ID:         chunk.ID,
			Filename:   chunk.Filename,
			UploadedAt: chunk.UploadedAt,
		})
	}
	return refs, nil
}

// GetDocument returns all chunks sharing the resolved chunk's filename,
// ordered by index.
func (s *ChunkStore) GetDocument(_ context.Context, chunkID string) (*domain.DocumentText, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filename, ok := s.resolveFilename(chunkID)
	if !ok {
		return nil, domain.ErrNotFound
	}

	doc := &domain.DocumentText{Filename: filename}
	for _, chunk := range s.chunks {
		if chunk.Filename == filename {
			doc.Chunks = append(doc.Chunks, domain.ChunkText{Index: chunk.Index, Text: chunk.Text})
		}
	}
	sortChunkTexts(doc.Chunks)
	return doc, nil
}

// DeleteDocument removes every chunk sharing the resolved filename.
func (s *ChunkStore) DeleteDocument(_ context.Context, chunkID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filename, ok := s.resolveFilename(chunkID)
	if !ok {
		return 0, domain.ErrNotFound
	}

	kept := s.chunks[:0]
	var deleted int64
	for _, chunk := range s.chunks {
		if chunk.Filename == filename {
			deleted++
			continue
		}
		kept = append(kept, chunk)
	}
	s.chunks = kept
	return deleted, nil
}

// ScanAll streams every chunk's text and embedding in insertion order.
func (s *ChunkStore) ScanAll(_ context.Context, fn func(driven.ChunkVector) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, chunk := range s.chunks {
		if err := fn(driven.ChunkVector{Text: chunk.Text, Embedding: chunk.Embedding}); err != nil {
			return err
		}
	}
	return nil
}

// Close is a no-op for the in-memory store.
func (s *ChunkStore) Close(_ context.Context) error {
	return nil
}

// resolveFilename finds the filename owning chunkID. Callers must hold
// the lock.
func (s *ChunkStore) resolveFilename(chunkID string) (string, bool) {
	for _, chunk := range s.chunks {
		if chunk.ID == chunkID {
			return chunk.Filename, true
		}
	}
	return "", false
}

// sortChunkTexts orders chunk texts by index.
func sortChunkTexts(chunks []domain.ChunkText) {
	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].Index < chunks[j].Index
	})
}
