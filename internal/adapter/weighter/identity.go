package weighter

import (
	"paydocs/internal/domain"
	"paydocs/internal/port"
)

var _ port.CategoryWeighter = (*Identity)(nil)

// Identity is the default CategoryWeighter: scores pass through unchanged.
// Category-based re-weighting policy lives outside the retrieval core.
type Identity struct{}

func NewIdentity() *Identity { return &Identity{} }

func (Identity) Apply(scores []domain.Score, _ []domain.DocumentSummary) []domain.Score {
	return scores
}
