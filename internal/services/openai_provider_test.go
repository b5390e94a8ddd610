package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sift/internal/models"
	"sift/internal/services"
)

type embeddingData struct {
	Object    string    `json:"object"`
	Index     int       `json:"index"`
	Embedding []float32 `json:"embedding"`
}

type embeddingResponse struct {
	Object string          `json:"object"`
	Data   []embeddingData `json:"data"`
	Model  string          `json:"model"`
	Usage  struct {
		PromptTokens int `json:"prompt_tokens"`
		TotalTokens  int `json:"total_tokens"`
	} `json:"usage"`
}

// newEmbeddingServer returns a provider pointed at a fake embeddings
// endpoint plus a counter of requests it actually received.
func newEmbeddingServer(t *testing.T, handler http.HandlerFunc) (*services.OpenAIProvider, *int) {
	t.Helper()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	provider, err := services.NewOpenAIProvider("test-key", srv.URL+"/v1", "text-embedding-3-small")
	require.NoError(t, err)
	return provider, &calls
}

func respondWith(t *testing.T, w http.ResponseWriter, data []embeddingData) {
	t.Helper()
	resp := embeddingResponse{Object: "list", Data: data, Model: "text-embedding-3-small"}
	resp.Usage.PromptTokens = 1
	resp.Usage.TotalTokens = 1
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(resp))
}

func TestNewOpenAIProvider_MissingKey(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	_, err := services.NewOpenAIProvider("", "", "")
	assert.ErrorIs(t, err, models.ErrMissingAPIKey)
}

func TestNewOpenAIProvider_KeyFromEnv(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "env-key")

	provider, err := services.NewOpenAIProvider("", "", "")
	require.NoError(t, err)
	assert.Equal(t, "openai", provider.Name())
	assert.Equal(t, "text-embedding-3-small", provider.ModelName())
	assert.Equal(t, 1536, provider.Dimension())
}

func TestGenerateEmbedding_EmptyText(t *testing.T) {
	provider, calls := newEmbeddingServer(t, func(w http.ResponseWriter, r *http.Request) {
		respondWith(t, w, []embeddingData{{Index: 0, Embedding: []float32{1, 0}}})
	})

	_, err := provider.GenerateEmbedding(context.Background(), "   ")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	assert.Equal(t, 0, *calls, "no network call for invalid input")
}

func TestGenerateEmbeddings_EmptyBatch(t *testing.T) {
	provider, calls := newEmbeddingServer(t, func(w http.ResponseWriter, r *http.Request) {
		respondWith(t, w, nil)
	})

	results, err := provider.GenerateEmbeddings(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, 0, *calls, "empty batch must not hit the provider")
}

func TestGenerateEmbeddings_FailFastOnBlankEntry(t *testing.T) {
	provider, calls := newEmbeddingServer(t, func(w http.ResponseWriter, r *http.Request) {
		respondWith(t, w, nil)
	})

	_, err := provider.GenerateEmbeddings(context.Background(), []string{"ok", " ", "also ok"})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	assert.Equal(t, 0, *calls)
}

func TestGenerateEmbeddings_RealignsPermutedResponse(t *testing.T) {
	provider, calls := newEmbeddingServer(t, func(w http.ResponseWriter, r *http.Request) {
		// Deliberately out of order: the API may permute batch results.
		respondWith(t, w, []embeddingData{
			{Index: 2, Embedding: []float32{0, 2}},
			{Index: 0, Embedding: []float32{0, 0}},
			{Index: 1, Embedding: []float32{0, 1}},
		})
	})

	results, err := provider.GenerateEmbeddings(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, []float32{0, 0}, results[0])
	assert.Equal(t, []float32{0, 1}, results[1])
	assert.Equal(t, []float32{0, 2}, results[2])
	assert.Equal(t, 1, *calls, "one batch call for all texts")
}

func TestGenerateEmbeddings_CountMismatch(t *testing.T) {
	provider, _ := newEmbeddingServer(t, func(w http.ResponseWriter, r *http.Request) {
		respondWith(t, w, []embeddingData{{Index: 0, Embedding: []float32{1, 0}}})
	})

	_, err := provider.GenerateEmbeddings(context.Background(), []string{"a", "b"})
	assert.ErrorIs(t, err, models.ErrEmbeddingFailed)
}

func TestGenerateEmbeddings_ProviderFailure(t *testing.T) {
	provider, _ := newEmbeddingServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	})

	_, err := provider.GenerateEmbeddings(context.Background(), []string{"a"})
	assert.ErrorIs(t, err, models.ErrEmbeddingFailed)
}

func TestGenerateEmbedding_Success(t *testing.T) {
	provider, calls := newEmbeddingServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		respondWith(t, w, []embeddingData{{Index: 0, Embedding: []float32{0.5, 0.5}}})
	})

	vec, err := provider.GenerateEmbedding(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.5}, vec)
	assert.Equal(t, 1, *calls)
}
