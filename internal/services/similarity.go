package services

import (
	"fmt"
	"math"

	"sift/internal/models"
)

// CosineSimilarity computes the cosine of the angle between two vectors of
// equal dimension. The result is in [-1, 1]. If either vector has zero
// magnitude the formula is undefined; 0.0 is returned in that case so a
// degenerate provider response never poisons a comparison.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: vector dimensions do not match (%d != %d)", models.ErrInvalidInput, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
