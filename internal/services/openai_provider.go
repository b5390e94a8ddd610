package services

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"

	"sift/internal/models"
)

// OpenAIProvider implements EmbeddingProvider against any OpenAI-compatible
// embeddings endpoint. The default base URL points at OpenRouter so an
// OPENROUTER_API_KEY works out of the box; a plain OpenAI deployment only
// needs the base URL changed.
type OpenAIProvider struct {
	client *openai.Client
	model  openai.EmbeddingModel
	dim    int
}

// NewOpenAIProvider resolves the credential from the apiKey argument, then
// OPENROUTER_API_KEY, then OPENAI_API_KEY. A missing credential is fatal.
func NewOpenAIProvider(apiKey, baseURL, modelID string) (*OpenAIProvider, error) {
	if apiKey == "" {
		apiKey = os.Getenv("OPENROUTER_API_KEY")
	}
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: set OPENROUTER_API_KEY or OPENAI_API_KEY, or pass a key explicitly", models.ErrMissingAPIKey)
	}
	if modelID == "" {
		modelID = "text-embedding-3-small"
	}

	var dim int
	switch modelID {
	case string(openai.AdaEmbeddingV2), "text-embedding-3-small":
		dim = 1536
	case "text-embedding-3-large":
		dim = 3072
	default:
		log.Warnf("unknown embedding model %q, assuming dimension 1536", modelID)
		dim = 1536
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	client := openai.NewClientWithConfig(cfg)
	log.Infof("openai provider initialized with model %s (dimension %d)", modelID, dim)

	return &OpenAIProvider{
		client: client,
		model:  openai.EmbeddingModel(modelID),
		dim:    dim,
	}, nil
}

func (p *OpenAIProvider) Name() string      { return "openai" }
func (p *OpenAIProvider) ModelName() string { return string(p.model) }
func (p *OpenAIProvider) Dimension() int    { return p.dim }

func (p *OpenAIProvider) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text must not be empty", models.ErrInvalidInput)
	}

	req := openai.EmbeddingRequestStrings{
		Input: []string{text},
		Model: p.model,
	}
	resp, err := p.client.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrEmbeddingFailed, err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("%w: provider returned no embedding data", models.ErrEmbeddingFailed)
	}
	return resp.Data[0].Embedding, nil
}

func (p *OpenAIProvider) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	for i, t := range texts {
		if strings.TrimSpace(t) == "" {
			return nil, fmt.Errorf("%w: text at index %d must not be empty", models.ErrInvalidInput, i)
		}
	}

	req := openai.EmbeddingRequestStrings{
		Input: texts,
		Model: p.model,
	}
	resp, err := p.client.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrEmbeddingFailed, err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("%w: provider returned %d embeddings, expected %d", models.ErrEmbeddingFailed, len(resp.Data), len(texts))
	}

	// The API associates each embedding with an index into the submitted
	// batch and may return them out of order.
	sort.Slice(resp.Data, func(i, j int) bool { return resp.Data[i].Index < resp.Data[j].Index })

	results := make([][]float32, len(texts))
	for i, data := range resp.Data {
		if len(data.Embedding) == 0 {
			return nil, fmt.Errorf("%w: provider returned empty embedding at index %d", models.ErrEmbeddingFailed, i)
		}
		results[i] = data.Embedding
	}
	return results, nil
}

var _ EmbeddingProvider = (*OpenAIProvider)(nil)
