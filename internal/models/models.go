package models

// Category pairs a label with its embedding. Categories are owned by the
// classifier instance that created them and are never persisted.
type Category struct {
	Name      string
	Embedding []float32
}

// ClassificationResult is the best-matching category for a single text.
type ClassificationResult struct {
	Text            string  `json:"text"`
	Category        string  `json:"category"`
	SimilarityScore float64 `json:"similarity_score"`
}

// FilterMatch is the per-filter verdict for one text.
type FilterMatch struct {
	FilterName string  `json:"filter_name"`
	Score      float64 `json:"score"`
	Matched    bool    `json:"matched"`
}

// FilterResultItem aggregates all filter verdicts for one text. Matches
// preserve the filter input order. IsFlagged is true iff any match is true.
type FilterResultItem struct {
	Text      string        `json:"text"`
	Matches   []FilterMatch `json:"matches"`
	IsFlagged bool          `json:"is_flagged"`
}
