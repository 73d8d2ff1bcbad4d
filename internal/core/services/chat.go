package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/docuchat-labs/docuchat/internal/core/domain"
	"github.com/docuchat-labs/docuchat/internal/core/ports/driven"
	"github.com/docuchat-labs/docuchat/internal/core/ports/driving"
	"github.com/docuchat-labs/docuchat/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// ChatService answers questions by embedding the query, retrieving the
// most similar stored chunks and handing them to the answer generator.
type ChatService struct {
	embedding driven.EmbeddingService
	retriever *Retriever
	generator driven.AnswerGenerator
	topK      int
}

// NewChatService creates a chat service retrieving DefaultTopK chunks
// per question.
func NewChatService(
	embedding driven.EmbeddingService,
	retriever *Retriever,
	generator driven.AnswerGenerator,
) *ChatService {
	return &ChatService{
		embedding: embedding,
		retriever: retriever,
		generator: generator,
		topK:      DefaultTopK,
	}
}

// Answer runs the query pipeline: validate, embed, retrieve, generate.
// Queries fail loudly: no stored context yields
// domain.ErrNoRelevantContext, a blank generation result yields
// domain.ErrGenerationFailed.
func (s *ChatService) Answer(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", domain.ErrEmptyQuery
	}

	logger.Info("received chat query: %q", query)

	queryVec, err := s.embedding.Embed(ctx, query, driven.TaskQuery)
	if err != nil {
		return "", fmt.Errorf("embedding query: %w", err)
	}

	texts, err := s.retriever.Retrieve(ctx, queryVec, s.topK)
	if err != nil {
		return "", err
	}

	contextBlock := strings.Join(texts, "\n")
	logger.Debug("retrieved %d chunks for context", len(texts))

	answer, err := s.generator.Generate(ctx, contextBlock, query)
	if err != nil {
		return "", fmt.Errorf("generating answer: %w", err)
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", domain.ErrGenerationFailed
	}
	return answer, nil
}
