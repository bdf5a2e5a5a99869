package port

import "paydocs/internal/domain"

// Ranker scores corpus chunks against a keyword set.
type Ranker interface {
	Calculate(keywords []string, mode domain.SearchMode) []domain.Score
}

// SynonymDictionary expands a keyword set with domain synonyms. The
// expansion table itself is an external concern.
type SynonymDictionary interface {
	ConvertToSynonyms(keywords []string) []string
}

// CategoryWeighter re-weights ranking scores by document category. The
// weighting policy is an external concern; the core only applies the result.
type CategoryWeighter interface {
	Apply(scores []domain.Score, summaries []domain.DocumentSummary) []domain.Score
}
