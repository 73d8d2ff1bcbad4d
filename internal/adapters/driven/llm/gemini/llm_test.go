package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestGenerator points a generator at a fake Gemini API.
func newTestGenerator(t *testing.T, handler http.HandlerFunc) *AnswerGenerator {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	gen, err := NewAnswerGenerator(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})
	require.NoError(t, err)
	return gen
}

func TestNewAnswerGenerator_RequiresAPIKey(t *testing.T) {
	_, err := NewAnswerGenerator(Config{})
	assert.Error(t, err)
}

func TestGenerate_BuildsGroundedPrompt(t *testing.T) {
	var gotReq generateRequest
	gen := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, ":generateContent")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		resp := generateResponse{}
		resp.Candidates = []struct {
			Content content `json:"content"`
		}{{Content: content{Parts: []part{{Text: "Paris."}}}}}
		_ = json.NewEncoder(w).Encode(resp)
	})

	answer, err := gen.Generate(context.Background(),
		"Paris is the capital of France.", "What is the capital of France?")
	require.NoError(t, err)

	assert.Equal(t, "Paris.", answer)
	require.Len(t, gotReq.Contents, 1)
	require.Len(t, gotReq.Contents[0].Parts, 1)
	prompt := gotReq.Contents[0].Parts[0].Text
	assert.Equal(t,
		"Context:\nParis is the capital of France.\n\nQuestion: What is the capital of France?\nAnswer:",
		prompt)
}

func TestGenerate_JoinsMultipleParts(t *testing.T) {
	gen := newTestGenerator(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Hello "},{"text":"world"}]}}]}`))
	})

	answer, err := gen.Generate(context.Background(), "ctx", "q")
	require.NoError(t, err)
	assert.Equal(t, "Hello world", answer)
}

func TestGenerate_NoCandidatesYieldsEmptyAnswer(t *testing.T) {
	gen := newTestGenerator(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	})

	answer, err := gen.Generate(context.Background(), "ctx", "q")
	require.NoError(t, err)
	assert.Empty(t, answer)
}

func TestGenerate_APIError(t *testing.T) {
	gen := newTestGenerator(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"invalid model","status":"INVALID_ARGUMENT"}}`))
	})

	_, err := gen.Generate(context.Background(), "ctx", "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid model")
}
