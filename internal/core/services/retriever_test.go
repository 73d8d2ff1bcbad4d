package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuchat-labs/docuchat/internal/core/domain"
)

// storeWith builds a stub store pre-filled with text/embedding pairs.
func storeWith(t *testing.T, chunks ...domain.Chunk) *stubStore {
	t.Helper()
	store := &stubStore{}
	for _, c := range chunks {
		_, err := store.Insert(context.Background(), c)
		require.NoError(t, err)
	}
	return store
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name    string
		a, b    []float32
		want    float64
		wantErr bool
	}{
		{name: "identical vectors", a: []float32{1, 2, 3}, b: []float32{1, 2, 3}, want: 1},
		{name: "orthogonal vectors", a: []float32{1, 0}, b: []float32{0, 1}, want: 0},
		{name: "opposite vectors", a: []float32{1, 0}, b: []float32{-1, 0}, want: -1},
		{name: "empty vector", a: nil, b: []float32{1}, wantErr: true},
		{name: "dimension mismatch", a: []float32{1, 2}, b: []float32{1, 2, 3}, wantErr: true},
		{name: "zero norm", a: []float32{0, 0}, b: []float32{1, 1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cosineSimilarity(tt.a, tt.b)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCosineSimilarity_Symmetric(t *testing.T) {
	a := []float32{0.2, 0.8, 0.1}
	b := []float32{0.5, 0.1, 0.9}

	ab, err := cosineSimilarity(a, b)
	require.NoError(t, err)
	ba, err := cosineSimilarity(b, a)
	require.NoError(t, err)

	assert.InDelta(t, ab, ba, 1e-12)
}

func TestRetrieve_RanksBySimilarity(t *testing.T) {
	store := storeWith(t,
		domain.Chunk{Filename: "a.pdf", Text: "about cats", Embedding: []float32{0, 1}},
		domain.Chunk{Filename: "a.pdf", Text: "about paris", Embedding: []float32{1, 0}},
		domain.Chunk{Filename: "a.pdf", Text: "mixed", Embedding: []float32{1, 1}},
	)
	retriever := NewRetriever(store)

	texts, err := retriever.Retrieve(context.Background(), []float32{1, 0}, 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"about paris", "mixed"}, texts)
}

func TestRetrieve_ReturnsAtMostK(t *testing.T) {
	store := storeWith(t,
		domain.Chunk{Text: "one", Embedding: []float32{1, 0}},
		domain.Chunk{Text: "two", Embedding: []float32{1, 0}},
	)
	retriever := NewRetriever(store)

	texts, err := retriever.Retrieve(context.Background(), []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Len(t, texts, 2)
}

func TestRetrieve_TiesKeepScanOrder(t *testing.T) {
	store := storeWith(t,
		domain.Chunk{Text: "first", Embedding: []float32{1, 0}},
		domain.Chunk{Text: "second", Embedding: []float32{2, 0}},
		domain.Chunk{Text: "third", Embedding: []float32{3, 0}},
	)
	retriever := NewRetriever(store)

	// All three share cosine similarity 1 with the query.
	texts, err := retriever.Retrieve(context.Background(), []float32{1, 0}, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, texts)
}

func TestRetrieve_SkipsUncomputableChunks(t *testing.T) {
	store := storeWith(t,
		domain.Chunk{Text: "bad dims", Embedding: []float32{1, 0, 0}},
		domain.Chunk{Text: "zero norm", Embedding: []float32{0, 0}},
		domain.Chunk{Text: "good", Embedding: []float32{1, 0}},
	)
	retriever := NewRetriever(store)

	texts, err := retriever.Retrieve(context.Background(), []float32{1, 0}, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"good"}, texts)
}

func TestRetrieve_EmptyStore(t *testing.T) {
	retriever := NewRetriever(&stubStore{})

	_, err := retriever.Retrieve(context.Background(), []float32{1, 0}, 3)
	assert.ErrorIs(t, err, domain.ErrNoRelevantContext)
}

func TestRetrieve_AllChunksUncomputable(t *testing.T) {
	store := storeWith(t,
		domain.Chunk{Text: "no vector"},
		domain.Chunk{Text: "zero norm", Embedding: []float32{0, 0}},
	)
	retriever := NewRetriever(store)

	_, err := retriever.Retrieve(context.Background(), []float32{1, 0}, 3)
	assert.ErrorIs(t, err, domain.ErrNoRelevantContext)
}
