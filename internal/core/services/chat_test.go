package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuchat-labs/docuchat/internal/core/domain"
	"github.com/docuchat-labs/docuchat/internal/core/ports/driven"
)

func newChatFixture(store *stubStore, embedder *stubEmbedder, generator *stubGenerator) *ChatService {
	return NewChatService(embedder, NewRetriever(store), generator)
}

func TestAnswer_FullPipeline(t *testing.T) {
	store := storeWith(t,
		domain.Chunk{Text: "Paris is the capital of France.", Embedding: []float32{1, 0}},
		domain.Chunk{Text: "Cats sleep a lot.", Embedding: []float32{0, 1}},
	)
	embedder := &stubEmbedder{vectors: map[string][]float32{
		"What is the capital of France?": {1, 0},
	}}
	generator := &stubGenerator{answer: "Paris."}
	svc := newChatFixture(store, embedder, generator)

	answer, err := svc.Answer(context.Background(), "What is the capital of France?")
	require.NoError(t, err)

	assert.Equal(t, "Paris.", answer)
	assert.Equal(t, []driven.TaskType{driven.TaskQuery}, embedder.tasks)
	assert.Equal(t, "What is the capital of France?", generator.lastQuery)
	// Most similar chunk first, newline-joined.
	assert.Equal(t, "Paris is the capital of France.\nCats sleep a lot.", generator.lastContext)
}

func TestAnswer_EmptyQuery(t *testing.T) {
	embedder := &stubEmbedder{}
	svc := newChatFixture(&stubStore{}, embedder, &stubGenerator{answer: "x"})

	_, err := svc.Answer(context.Background(), "   \t\n ")
	assert.ErrorIs(t, err, domain.ErrEmptyQuery)
	assert.Zero(t, embedder.calls, "empty query must never reach the embedder")
}

func TestAnswer_NoStoredContext(t *testing.T) {
	embedder := &stubEmbedder{vectors: map[string][]float32{"question": {1, 0}}}
	svc := newChatFixture(&stubStore{}, embedder, &stubGenerator{answer: "x"})

	_, err := svc.Answer(context.Background(), "question")
	assert.ErrorIs(t, err, domain.ErrNoRelevantContext)
}

func TestAnswer_EmbeddingFailure(t *testing.T) {
	svc := newChatFixture(&stubStore{}, &stubEmbedder{}, &stubGenerator{answer: "x"})

	_, err := svc.Answer(context.Background(), "question")
	assert.ErrorIs(t, err, errEmbedUnavailable)
}

func TestAnswer_BlankGeneration(t *testing.T) {
	store := storeWith(t,
		domain.Chunk{Text: "some context", Embedding: []float32{1, 0}},
	)
	embedder := &stubEmbedder{vectors: map[string][]float32{"question": {1, 0}}}
	svc := newChatFixture(store, embedder, &stubGenerator{answer: "  \n "})

	_, err := svc.Answer(context.Background(), "question")
	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
}

func TestAnswer_TrimsGeneratedAnswer(t *testing.T) {
	store := storeWith(t,
		domain.Chunk{Text: "some context", Embedding: []float32{1, 0}},
	)
	embedder := &stubEmbedder{vectors: map[string][]float32{"question": {1, 0}}}
	svc := newChatFixture(store, embedder, &stubGenerator{answer: "  The answer.\n"})

	answer, err := svc.Answer(context.Background(), "question")
	require.NoError(t, err)
	assert.Equal(t, "The answer.", answer)
}
