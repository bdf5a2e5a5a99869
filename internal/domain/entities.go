package domain

import "strings"

// Version identifies which API generation a document describes.
type Version string

const (
	VersionV1 Version = "v1"
	VersionV2 Version = "v2"
)

// RawDocument is the immutable input produced by a fetcher.
type RawDocument struct {
	Markdown string
	Link     string
	Version  Version
	Category string
}

// DocumentMetadata is parsed from a document's front-matter block.
type DocumentMetadata struct {
	Title       string
	Description string
	Keywords    []string
}

const (
	DefaultTitle       = "No Title"
	DefaultDescription = "No Description"
)

// DefaultMetadata is used when the front-matter block is missing or malformed.
func DefaultMetadata() DocumentMetadata {
	return DocumentMetadata{
		Title:       DefaultTitle,
		Description: DefaultDescription,
	}
}

// EnhancedChunk is one heading-scoped slice of a document, as emitted by the
// chunker. Skipped heading depths are "" entries in HeaderStack and are never
// backfilled. Immutable once flushed.
type EnhancedChunk struct {
	Content         string
	HeaderStack     []string
	EstimatedTokens int
}

// ChunkKey addresses a chunk globally by document id and position within the
// document. Replaces arithmetic id packing, so a document is not capped at
// 999 chunks.
type ChunkKey struct {
	DocumentID int
	LocalIndex int
}

// Less orders keys by document, then position.
func (k ChunkKey) Less(other ChunkKey) bool {
	if k.DocumentID != other.DocumentID {
		return k.DocumentID < other.DocumentID
	}
	return k.LocalIndex < other.LocalIndex
}

// DocumentChunk is an addressed, context-prefixed retrieval unit.
type DocumentChunk struct {
	Key             ChunkKey
	OriginTitle     string
	Text            string // metadata prefix + content
	RawText         string // content only
	WordCount       int
	EstimatedTokens int
	HeaderStack     []string
}

// Score is the ephemeral result of ranking one chunk against a query.
type Score struct {
	Key     ChunkKey
	Score   float64
	TotalTF int
}

// DocumentSummary is the public view of an indexed document. It never
// exposes chunk text.
type DocumentSummary struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Link        string   `json:"link"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords,omitempty"`
}

// SearchMode names a BM25 tuning profile.
type SearchMode string

const (
	ModeBroad    SearchMode = "broad"
	ModeBalanced SearchMode = "balanced"
	ModePrecise  SearchMode = "precise"
)

// ParseSearchMode maps a user-supplied string to a mode, defaulting to
// balanced for empty or unknown input.
func ParseSearchMode(s string) SearchMode {
	switch SearchMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeBroad:
		return ModeBroad
	case ModePrecise:
		return ModePrecise
	default:
		return ModeBalanced
	}
}

// Profile returns the BM25 smoothing parameters for the mode.
func (m SearchMode) Profile() (k1, b float64) {
	switch m {
	case ModeBroad:
		return 1.0, 0.5
	case ModePrecise:
		return 1.5, 0.9
	default:
		return 1.2, 0.75
	}
}

// MinScoreRatio returns the relative score cutoff ratio for the mode.
func (m SearchMode) MinScoreRatio() float64 {
	switch m {
	case ModeBroad:
		return 0.1
	case ModePrecise:
		return 1.0
	default:
		return 0.5
	}
}
