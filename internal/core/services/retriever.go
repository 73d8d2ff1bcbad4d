package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/docuchat-labs/docuchat/internal/core/domain"
	"github.com/docuchat-labs/docuchat/internal/core/ports/driven"
	"github.com/docuchat-labs/docuchat/internal/logger"
)

// DefaultTopK is the number of chunks retrieved to ground an answer.
const DefaultTopK = 3

// Retriever ranks stored chunks against a query vector by cosine
// similarity. It scans the whole store on every call: O(N) vector
// comparisons, acceptable at small N, a known scaling limit.
type Retriever struct {
	store driven.ChunkStore
}

// NewRetriever creates a retriever over the given chunk store.
func NewRetriever(store driven.ChunkStore) *Retriever {
	return &Retriever{store: store}
}

// scoredText pairs a chunk's text with its similarity and scan position.
type scoredText struct {
	text  string
	score float64
	ord   int
}

// Retrieve returns up to k chunk texts, most similar first. Chunks whose
// similarity cannot be computed (missing vector, dimension mismatch, zero
// norm) are skipped with a log line rather than failing the query. Ties
// keep scan order, so results are deterministic for a fixed store.
// Returns domain.ErrNoRelevantContext when no chunk survives scoring.
func (r *Retriever) Retrieve(ctx context.Context, queryVec []float32, k int) ([]string, error) {
	if k <= 0 {
		k = DefaultTopK
	}

	var scored []scoredText
	ord := 0
	err := r.store.ScanAll(ctx, func(cv driven.ChunkVector) error {
		ord++
		sim, err := cosineSimilarity(queryVec, cv.Embedding)
		if err != nil {
			logger.Warn("skipping chunk during retrieval: %v", err)
			return nil
		}
		scored = append(scored, scoredText{text: cv.Text, score: sim, ord: ord})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning chunks: %w", err)
	}

	logger.Debug("retrieval: scored %d of %d scanned chunks", len(scored), ord)

	if len(scored) == 0 {
		return nil, domain.ErrNoRelevantContext
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if k > len(scored) {
		k = len(scored)
	}
	texts := make([]string, k)
	for i := 0; i < k; i++ {
		texts[i] = scored[i].text
	}
	return texts, nil
}

// cosineSimilarity computes dot(a,b) / (||a|| * ||b||), a real number in
// [-1, 1] for non-zero vectors of equal dimension.
func cosineSimilarity(a, b []float32) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, errors.New("empty embedding vector")
	}
	if len(a) != len(b) {
		return 0, fmt.Errorf("embedding dimension mismatch: %d vs %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0, errors.New("zero-norm embedding vector")
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
