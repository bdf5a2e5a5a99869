package assembler

import (
	"strings"

	"paydocs/internal/adapter/analyzer"
	"paydocs/internal/domain"
)

// Convert turns a chunker-emitted chunk into an addressed DocumentChunk
// whose text carries a metadata context prefix:
//
//	## Metadata
//	Keywords: k1, k2, …
//	Header Path: h1 > h2 > …
//	<blank line>
//	<content>
//
// The keywords line is omitted when the list is empty; blank header
// segments are filtered and the path line is omitted when nothing remains.
func Convert(chunk domain.EnhancedChunk, meta domain.DocumentMetadata, documentID, chunkIndex int) domain.DocumentChunk {
	text := buildPrefix(meta, chunk.HeaderStack) + chunk.Content

	stack := make([]string, len(chunk.HeaderStack))
	copy(stack, chunk.HeaderStack)

	return domain.DocumentChunk{
		Key:             domain.ChunkKey{DocumentID: documentID, LocalIndex: chunkIndex},
		OriginTitle:     meta.Title,
		Text:            text,
		RawText:         chunk.Content,
		WordCount:       len(strings.Fields(text)),
		EstimatedTokens: analyzer.EstimateTokens(text),
		HeaderStack:     stack,
	}
}

// ConvertAll maps chunks to DocumentChunks using their array positions as
// local indices.
func ConvertAll(chunks []domain.EnhancedChunk, meta domain.DocumentMetadata, documentID int) []domain.DocumentChunk {
	out := make([]domain.DocumentChunk, 0, len(chunks))
	for i, c := range chunks {
		out = append(out, Convert(c, meta, documentID, i))
	}
	return out
}

// ConvertRaw skips the context prefix entirely and reuses the chunk's
// precomputed token estimate.
func ConvertRaw(chunk domain.EnhancedChunk, meta domain.DocumentMetadata, documentID, chunkIndex int) domain.DocumentChunk {
	stack := make([]string, len(chunk.HeaderStack))
	copy(stack, chunk.HeaderStack)

	return domain.DocumentChunk{
		Key:             domain.ChunkKey{DocumentID: documentID, LocalIndex: chunkIndex},
		OriginTitle:     meta.Title,
		Text:            chunk.Content,
		RawText:         chunk.Content,
		WordCount:       len(strings.Fields(chunk.Content)),
		EstimatedTokens: chunk.EstimatedTokens,
		HeaderStack:     stack,
	}
}

func buildPrefix(meta domain.DocumentMetadata, headerStack []string) string {
	var sb strings.Builder
	sb.WriteString("## Metadata \n")
	if len(meta.Keywords) > 0 {
		sb.WriteString("Keywords: ")
		sb.WriteString(strings.Join(meta.Keywords, ", "))
		sb.WriteByte('\n')
	}
	if path := headerPath(headerStack); len(path) > 0 {
		sb.WriteString("Header Path: ")
		sb.WriteString(strings.Join(path, " > "))
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')
	return sb.String()
}

// headerPath drops blank and whitespace-only segments left by skipped
// heading depths.
func headerPath(stack []string) []string {
	var path []string
	for _, h := range stack {
		if strings.TrimSpace(h) != "" {
			path = append(path, h)
		}
	}
	return path
}
