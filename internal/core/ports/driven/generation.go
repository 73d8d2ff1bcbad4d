package driven

import "context"

// AnswerGenerator produces a natural-language answer to a question,
// grounded in the retrieved context text.
//
// Implementations may include:
//   - Gemini (generateContent)
//   - OpenAI-compatible chat completion APIs
//   - Local models via inference servers
type AnswerGenerator interface {
	// Generate answers the query using only the supplied context text.
	Generate(ctx context.Context, contextText, query string) (string, error)

	// ModelName returns the name of the generation model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
