package port

import "paydocs/internal/domain"

// ChunkResult is everything the chunker derives from one markdown document.
type ChunkResult struct {
	Chunks      []domain.EnhancedChunk
	Metadata    domain.DocumentMetadata
	RawMarkdown string
	FirstText   string // first non-heading text block, usable as a description fallback
}

type Chunker interface {
	Chunk(markdown string) (*ChunkResult, error)
}
