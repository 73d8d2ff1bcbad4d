package driving

import "context"

// ChatService answers questions grounded in the stored document chunks.
type ChatService interface {
	// Answer embeds the query, retrieves the most similar chunks and
	// generates an answer from them.
	//
	// A blank query yields domain.ErrEmptyQuery before any network call.
	// When no stored chunk can be scored, domain.ErrNoRelevantContext is
	// returned rather than a guessed answer.
	Answer(ctx context.Context, query string) (string, error)
}
