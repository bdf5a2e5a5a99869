package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paydocs/internal/domain"
)

func newTestStore(t *testing.T) *BoltStore {
	t.Helper()
	s, err := NewBoltStore(filepath.Join(t.TempDir(), "corpus.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleDoc() domain.RawDocument {
	return domain.RawDocument{
		Markdown: "# 카드 결제\n\n승인 요청 방법.",
		Link:     "/payments/v1/card.md",
		Version:  domain.VersionV1,
		Category: "payments",
	}
}

func TestPutGetDocument(t *testing.T) {
	s := newTestStore(t)
	doc := sampleDoc()

	require.NoError(t, s.PutDocument(1, doc))

	got, err := s.GetDocument(1)
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestGetDocumentMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetDocument(42)
	assert.Error(t, err)
}

func TestPutDocumentOverwrites(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.PutDocument(1, sampleDoc()))

	updated := sampleDoc()
	updated.Markdown = "# 변경된 문서"
	require.NoError(t, s.PutDocument(1, updated))

	got, err := s.GetDocument(1)
	require.NoError(t, err)
	assert.Equal(t, "# 변경된 문서", got.Markdown)
}

func TestListDocuments(t *testing.T) {
	s := newTestStore(t)

	first := sampleDoc()
	second := domain.RawDocument{
		Markdown: "# 빌링",
		Link:     "/billing/v2/key.md",
		Version:  domain.VersionV2,
		Category: "billing",
	}
	require.NoError(t, s.PutDocument(1, first))
	require.NoError(t, s.PutDocument(2, second))

	docs, err := s.ListDocuments()
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, first, docs[1])
	assert.Equal(t, second, docs[2])
}

func TestClear(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.PutDocument(1, sampleDoc()))

	require.NoError(t, s.Clear())

	docs, err := s.ListDocuments()
	require.NoError(t, err)
	assert.Empty(t, docs)

	// The bucket survives a clear and accepts new writes.
	require.NoError(t, s.PutDocument(1, sampleDoc()))
}
