package services

import (
	"context"
)

// EmbeddingProvider translates texts into fixed-length vectors via an
// external embedding API. Implementations are read-only after construction
// and safe for concurrent use.
type EmbeddingProvider interface {
	Name() string
	ModelName() string
	Dimension() int

	// GenerateEmbedding embeds a single text. Empty or whitespace-only
	// text is rejected before any network call.
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)

	// GenerateEmbeddings embeds all texts in one provider request. The
	// returned slice matches the input in length and order, regardless
	// of any reordering in the provider response. An empty input returns
	// an empty result without a network call.
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}
