package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasVersionSegment(t *testing.T) {
	assert.True(t, HasVersionSegment("/payments/v1/card.md"))
	assert.True(t, HasVersionSegment("/payments/v2/card.md"))
	assert.False(t, HasVersionSegment("/payments/card.md"))
	assert.False(t, HasVersionSegment("/payments/v3/card.md"))
	// The segment must stand alone.
	assert.False(t, HasVersionSegment("/payments/v10/card.md"))
	assert.False(t, HasVersionSegment("/av1b/card.md"))
}

func TestExtractVersion(t *testing.T) {
	v, err := ExtractVersion("/payments/v1/card.md")
	require.NoError(t, err)
	assert.Equal(t, VersionV1, v)

	v, err = ExtractVersion("/billing/v2/key.md")
	require.NoError(t, err)
	assert.Equal(t, VersionV2, v)

	_, err = ExtractVersion("/payments/card.md")
	assert.Error(t, err)
}

func TestParseSearchMode(t *testing.T) {
	assert.Equal(t, ModeBroad, ParseSearchMode("broad"))
	assert.Equal(t, ModePrecise, ParseSearchMode(" PRECISE "))
	assert.Equal(t, ModeBalanced, ParseSearchMode("balanced"))
	assert.Equal(t, ModeBalanced, ParseSearchMode(""))
	assert.Equal(t, ModeBalanced, ParseSearchMode("fuzzy"))
}

func TestChunkKeyLess(t *testing.T) {
	assert.True(t, ChunkKey{1, 5}.Less(ChunkKey{2, 0}))
	assert.True(t, ChunkKey{1, 2}.Less(ChunkKey{1, 3}))
	assert.False(t, ChunkKey{2, 0}.Less(ChunkKey{1, 9}))
	assert.False(t, ChunkKey{1, 3}.Less(ChunkKey{1, 3}))
}
