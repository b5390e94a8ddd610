package services

import (
	"context"
	"fmt"

	"sift/internal/models"

	log "github.com/sirupsen/logrus"
)

// MatchThreshold is the minimum margin by which a text's similarity to a
// filter phrase must exceed its similarity to the corresponding clean
// phrase before the filter counts as matched. A raw greater-than test is
// too sensitive to phrasing noise.
const MatchThreshold = 0.02

// FilterService flags texts that semantically match filter labels. Each
// filter label is expanded into a "contains" phrase and a "clean" counter
// phrase; a text matches when the filter phrase dominates the clean phrase
// by more than MatchThreshold.
type FilterService struct {
	provider EmbeddingProvider
}

func NewFilterService(provider EmbeddingProvider) *FilterService {
	return &FilterService{provider: provider}
}

// FilterTexts evaluates every filter against every text. All texts,
// filter phrases and clean phrases are embedded in exactly one provider
// call; per-filter scores are always reported, even after a text is
// already flagged.
func (s *FilterService) FilterTexts(ctx context.Context, texts, filters []string) ([]models.FilterResultItem, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("%w: texts must not be empty", models.ErrInvalidInput)
	}
	if len(filters) == 0 {
		return nil, fmt.Errorf("%w: filters must not be empty", models.ErrInvalidInput)
	}

	// Descriptive phrases embed better than bare labels.
	filterPhrases := make([]string, 0, len(filters))
	cleanPhrases := make([]string, 0, len(filters))
	for _, f := range filters {
		filterPhrases = append(filterPhrases, fmt.Sprintf("This text contains %s", f))
		cleanPhrases = append(cleanPhrases, fmt.Sprintf("This text does not contain %s, it is clean and harmless content", f))
	}

	batch := make([]string, 0, len(texts)+2*len(filters))
	batch = append(batch, texts...)
	batch = append(batch, filterPhrases...)
	batch = append(batch, cleanPhrases...)

	embeddings, err := s.provider.GenerateEmbeddings(ctx, batch)
	if err != nil {
		return nil, err
	}

	// Slice the batch back apart; offsets mirror the append order above.
	nTexts := len(texts)
	nFilters := len(filters)
	textEmbeddings := embeddings[:nTexts]
	filterEmbeddings := embeddings[nTexts : nTexts+nFilters]
	cleanEmbeddings := embeddings[nTexts+nFilters:]

	log.Debugf("filtering %d texts against %d filters", nTexts, nFilters)

	results := make([]models.FilterResultItem, 0, nTexts)
	for i, text := range texts {
		matches := make([]models.FilterMatch, 0, nFilters)
		flagged := false
		for j, filterName := range filters {
			filterScore, err := CosineSimilarity(textEmbeddings[i], filterEmbeddings[j])
			if err != nil {
				return nil, err
			}
			cleanScore, err := CosineSimilarity(textEmbeddings[i], cleanEmbeddings[j])
			if err != nil {
				return nil, err
			}
			matched := filterScore-cleanScore > MatchThreshold
			if matched {
				flagged = true
			}
			matches = append(matches, models.FilterMatch{
				FilterName: filterName,
				Score:      filterScore,
				Matched:    matched,
			})
		}
		results = append(results, models.FilterResultItem{
			Text:      text,
			Matches:   matches,
			IsFlagged: flagged,
		})
	}
	return results, nil
}
