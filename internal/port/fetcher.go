package port

import (
	"context"

	"paydocs/internal/domain"
)

// Fetcher produces raw documents from an external location. Network
// fetching lives behind this interface and outside the retrieval core.
type Fetcher interface {
	Fetch(ctx context.Context, link string) (domain.RawDocument, error)

	// Links enumerates every document location the fetcher can serve.
	Links(ctx context.Context) ([]string, error)
}
