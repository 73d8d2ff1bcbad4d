package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/docuchat-labs/docuchat/internal/core/domain"
	"github.com/docuchat-labs/docuchat/internal/core/ports/driven"
)

// stubStore is an in-memory driven.ChunkStore for service tests.
type stubStore struct {
	mu        sync.Mutex
	chunks    []domain.Chunk
	nextID    int
	insertErr error
	scanErr   error
}

var _ driven.ChunkStore = (*stubStore)(nil)

func (s *stubStore) Insert(_ context.Context, chunk domain.Chunk) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return "", s.insertErr
	}
	s.nextID++
	chunk.ID = fmt.Sprintf("chunk-%d", s.nextID)
	s.chunks = append(s.chunks, chunk)
	return chunk.ID, nil
}

func (s *stubStore) ListDocuments(_ context.Context) ([]domain.DocumentRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]bool)
	var refs []domain.DocumentRef
	for _, c := range s.chunks {
		if seen[c.Filename] {
			continue
		}
		seen[c.Filename] = true
		refs = append(refs, domain.DocumentRef{ID: c.ID, Filename: c.Filename, UploadedAt: c.UploadedAt})
	}
	return refs, nil
}

func (s *stubStore) GetDocument(_ context.Context, chunkID string) (*domain.DocumentText, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.chunks {
		if c.ID == chunkID {
			doc := &domain.DocumentText{Filename: c.Filename}
			for _, cc := range s.chunks {
				if cc.Filename == c.Filename {
					doc.Chunks = append(doc.Chunks, domain.ChunkText{Index: cc.Index, Text: cc.Text})
				}
			}
			return doc, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubStore) DeleteDocument(_ context.Context, chunkID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var filename string
	found := false
	for _, c := range s.chunks {
		if c.ID == chunkID {
			filename = c.Filename
			found = true
			break
		}
	}
	if !found {
		return 0, domain.ErrNotFound
	}
	kept := s.chunks[:0]
	var deleted int64
	for _, c := range s.chunks {
		if c.Filename == filename {
			deleted++
			continue
		}
		kept = append(kept, c)
	}
	s.chunks = kept
	return deleted, nil
}

func (s *stubStore) ScanAll(_ context.Context, fn func(driven.ChunkVector) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scanErr != nil {
		return s.scanErr
	}
	for _, c := range s.chunks {
		if err := fn(driven.ChunkVector{Text: c.Text, Embedding: c.Embedding}); err != nil {
			return err
		}
	}
	return nil
}

func (s *stubStore) Close(_ context.Context) error { return nil }

// stubEmbedder returns canned vectors keyed by input text. Texts without
// an entry fail with errEmbedUnavailable.
type stubEmbedder struct {
	vectors map[string][]float32
	calls   int
	tasks   []driven.TaskType
}

var _ driven.EmbeddingService = (*stubEmbedder)(nil)

var errEmbedUnavailable = errors.New("embedding backend unavailable")

func (e *stubEmbedder) Embed(_ context.Context, text string, task driven.TaskType) ([]float32, error) {
	e.calls++
	e.tasks = append(e.tasks, task)
	vec, ok := e.vectors[text]
	if !ok {
		return nil, errEmbedUnavailable
	}
	return vec, nil
}

func (e *stubEmbedder) ModelName() string          { return "stub-embedding" }
func (e *stubEmbedder) Ping(_ context.Context) error { return nil }
func (e *stubEmbedder) Close() error               { return nil }

// stubGenerator records the prompt inputs and returns a fixed answer.
type stubGenerator struct {
	answer      string
	err         error
	lastContext string
	lastQuery   string
}

var _ driven.AnswerGenerator = (*stubGenerator)(nil)

func (g *stubGenerator) Generate(_ context.Context, contextText, query string) (string, error) {
	g.lastContext = contextText
	g.lastQuery = query
	if g.err != nil {
		return "", g.err
	}
	return g.answer, nil
}

func (g *stubGenerator) ModelName() string          { return "stub-llm" }
func (g *stubGenerator) Ping(_ context.Context) error { return nil }
func (g *stubGenerator) Close() error               { return nil }
