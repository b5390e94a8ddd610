package services

import (
	"context"
	"fmt"
	"math"

	"sift/internal/models"

	log "github.com/sirupsen/logrus"
)

// ClassifierService assigns texts to the nearest registered category by
// cosine similarity. Instances are cheap and request-scoped: register
// categories, classify, throw away. Not safe for concurrent mutation.
type ClassifierService struct {
	provider   EmbeddingProvider
	categories []models.Category
}

func NewClassifierService(provider EmbeddingProvider) *ClassifierService {
	return &ClassifierService{provider: provider}
}

// AddCategories embeds all names in one batch call and appends them in
// input order. Duplicate names produce duplicate entries.
func (s *ClassifierService) AddCategories(ctx context.Context, names []string) error {
	embeddings, err := s.provider.GenerateEmbeddings(ctx, names)
	if err != nil {
		return err
	}
	for i, name := range names {
		s.categories = append(s.categories, models.Category{Name: name, Embedding: embeddings[i]})
	}
	return nil
}

// AddCategory registers a single category via the single-text provider call.
func (s *ClassifierService) AddCategory(ctx context.Context, name string) error {
	embedding, err := s.provider.GenerateEmbedding(ctx, name)
	if err != nil {
		return err
	}
	s.categories = append(s.categories, models.Category{Name: name, Embedding: embedding})
	return nil
}

// Classify returns the registered category with the highest cosine
// similarity to text. Ties go to the first-registered category: only a
// strictly greater score replaces the current best.
func (s *ClassifierService) Classify(ctx context.Context, text string) (*models.ClassificationResult, error) {
	if len(s.categories) == 0 {
		return nil, models.ErrNoCategories
	}
	embedding, err := s.provider.GenerateEmbedding(ctx, text)
	if err != nil {
		return nil, err
	}
	return s.bestMatch(text, embedding)
}

// ClassifyBatch classifies every text against the registered categories,
// fetching all text embeddings in a single provider call. Result order
// matches the input order.
func (s *ClassifierService) ClassifyBatch(ctx context.Context, texts []string) ([]models.ClassificationResult, error) {
	if len(s.categories) == 0 {
		return nil, models.ErrNoCategories
	}
	embeddings, err := s.provider.GenerateEmbeddings(ctx, texts)
	if err != nil {
		return nil, err
	}

	log.Debugf("classifying %d texts against %d categories", len(texts), len(s.categories))

	results := make([]models.ClassificationResult, 0, len(texts))
	for i, text := range texts {
		result, err := s.bestMatch(text, embeddings[i])
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}
	return results, nil
}

// bestMatch scans every category exhaustively. Category sets are small
// (tens), so no index is needed.
func (s *ClassifierService) bestMatch(text string, embedding []float32) (*models.ClassificationResult, error) {
	bestScore := math.Inf(-1)
	bestName := ""
	for _, category := range s.categories {
		score, err := CosineSimilarity(embedding, category.Embedding)
		if err != nil {
			return nil, fmt.Errorf("comparing against category %q: %w", category.Name, err)
		}
		if score > bestScore {
			bestScore = score
			bestName = category.Name
		}
	}
	return &models.ClassificationResult{
		Text:            text,
		Category:        bestName,
		SimilarityScore: bestScore,
	}, nil
}
