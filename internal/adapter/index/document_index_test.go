package index

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paydocs/internal/domain"
	"paydocs/internal/port"
)

func buildIndex(t *testing.T, id, chunkCount int) *DocumentIndex {
	t.Helper()

	result := &port.ChunkResult{
		Metadata: domain.DocumentMetadata{
			Title:       "결제 가이드",
			Description: "결제 연동 가이드",
			Keywords:    []string{"결제", "카드"},
		},
		RawMarkdown: "# 결제 가이드",
	}
	for i := 0; i < chunkCount; i++ {
		result.Chunks = append(result.Chunks, domain.EnhancedChunk{
			Content:     "chunk " + strconv.Itoa(i),
			HeaderStack: []string{"결제 가이드"},
		})
	}

	raw := domain.RawDocument{
		Link:     "/payments/v1/guide.md",
		Version:  domain.VersionV1,
		Category: "payments",
	}
	return New(id, raw, result)
}

func keys(docID int, indices ...int) []domain.ChunkKey {
	out := make([]domain.ChunkKey, 0, len(indices))
	for _, i := range indices {
		out = append(out, domain.ChunkKey{DocumentID: docID, LocalIndex: i})
	}
	return out
}

func localIndices(chunks []domain.DocumentChunk) []int {
	out := make([]int, 0, len(chunks))
	for _, c := range chunks {
		out = append(out, c.Key.LocalIndex)
	}
	return out
}

func TestChunkKeysStamped(t *testing.T) {
	d := buildIndex(t, 3, 5)
	for i, c := range d.Chunks() {
		assert.Equal(t, domain.ChunkKey{DocumentID: 3, LocalIndex: i}, c.Key)
	}
}

func TestFindByKeysSingleWindow(t *testing.T) {
	d := buildIndex(t, 3, 8)

	got := d.FindByKeys(keys(3, 5), 1)
	assert.Equal(t, []int{4, 5, 6}, localIndices(got))
}

func TestFindByKeysClampsToBounds(t *testing.T) {
	d := buildIndex(t, 3, 8)

	assert.Equal(t, []int{0, 1}, localIndices(d.FindByKeys(keys(3, 0), 1)))
	assert.Equal(t, []int{6, 7}, localIndices(d.FindByKeys(keys(3, 7), 1)))
}

func TestFindByKeysMergesCloseMatches(t *testing.T) {
	d := buildIndex(t, 3, 10)

	// Gap of 2 is within windowSize*2+1, so the group spans both matches.
	got := d.FindByKeys(keys(3, 2, 4), 1)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, localIndices(got))
}

func TestFindByKeysSplitsDistantMatches(t *testing.T) {
	d := buildIndex(t, 3, 10)

	got := d.FindByKeys(keys(3, 0, 8), 1)
	assert.Equal(t, []int{0, 1, 7, 8, 9}, localIndices(got))
}

func TestFindByKeysDropsInvalid(t *testing.T) {
	d := buildIndex(t, 3, 5)

	assert.Nil(t, d.FindByKeys(keys(3, 99), 1))
	assert.Nil(t, d.FindByKeys(keys(3, -1), 1))
	// Keys of another document never resolve here.
	assert.Nil(t, d.FindByKeys(keys(4, 2), 1))
	assert.Nil(t, d.FindByKeys(nil, 1))
}

func TestFindByKeysDeduplicates(t *testing.T) {
	d := buildIndex(t, 3, 8)

	got := d.FindByKeys(keys(3, 5, 5, 5), 1)
	assert.Equal(t, []int{4, 5, 6}, localIndices(got))
}

func TestSummaryExposesNoChunkText(t *testing.T) {
	d := buildIndex(t, 3, 2)
	s := d.Summary()

	assert.Equal(t, 3, s.ID)
	assert.Equal(t, "결제 가이드", s.Title)
	assert.Equal(t, "/payments/v1/guide.md", s.Link)
	assert.Equal(t, "결제 연동 가이드", s.Description)
	assert.Equal(t, []string{"결제", "카드"}, s.Keywords)
}

func TestAccessors(t *testing.T) {
	d := buildIndex(t, 3, 2)

	assert.Equal(t, domain.VersionV1, d.Version())
	assert.Equal(t, "payments", d.Category())
	assert.Equal(t, 2, d.ChunkCount())
	assert.Equal(t, "# 결제 가이드", d.Content())

	// Keywords returns a copy.
	kw := d.Keywords()
	require.NotEmpty(t, kw)
	kw[0] = "mutated"
	assert.Equal(t, "결제", d.Keywords()[0])
}

func TestDescriptionFallsBackToFirstText(t *testing.T) {
	result := &port.ChunkResult{
		Metadata:  domain.DefaultMetadata(),
		FirstText: "첫 문단입니다.",
	}
	d := New(1, domain.RawDocument{Version: domain.VersionV1}, result)
	assert.Equal(t, "첫 문단입니다.", d.Description())
}
