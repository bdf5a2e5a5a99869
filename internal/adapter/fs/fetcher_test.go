package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paydocs/internal/domain"
)

func writeDoc(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func testDocsDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeDoc(t, root, "payments/v1/card.md", "# 카드 결제")
	writeDoc(t, root, "payments/v2/card.md", "# 카드 결제 v2")
	writeDoc(t, root, "billing/v2/key.md", "# 빌링키")
	writeDoc(t, root, "README.md", "readme")
	writeDoc(t, root, "assets/logo.png", "binary")
	return root
}

func TestLinksDefaultIncludes(t *testing.T) {
	f := NewDocsFetcher(testDocsDir(t), nil, nil)

	links, err := f.Links(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"/payments/v1/card.md",
		"/payments/v2/card.md",
		"/billing/v2/key.md",
		"/README.md",
	}, links)
}

func TestLinksExcludes(t *testing.T) {
	f := NewDocsFetcher(testDocsDir(t), nil, []string{"**/README.md"})

	links, err := f.Links(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, links, "/README.md")
	assert.Contains(t, links, "/payments/v1/card.md")
}

func TestLinksCustomIncludes(t *testing.T) {
	f := NewDocsFetcher(testDocsDir(t), []string{"billing/**/*.md"}, nil)

	links, err := f.Links(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"/billing/v2/key.md"}, links)
}

func TestFetchResolvesVersionAndCategory(t *testing.T) {
	f := NewDocsFetcher(testDocsDir(t), nil, nil)
	ctx := context.Background()

	v1, err := f.Fetch(ctx, "/payments/v1/card.md")
	require.NoError(t, err)
	assert.Equal(t, domain.RawDocument{
		Markdown: "# 카드 결제",
		Link:     "/payments/v1/card.md",
		Version:  domain.VersionV1,
		Category: "payments",
	}, v1)

	v2, err := f.Fetch(ctx, "/billing/v2/key.md")
	require.NoError(t, err)
	assert.Equal(t, domain.VersionV2, v2.Version)
	assert.Equal(t, "billing", v2.Category)
}

func TestFetchVersionlessDefaultsToV1(t *testing.T) {
	f := NewDocsFetcher(testDocsDir(t), nil, nil)

	doc, err := f.Fetch(context.Background(), "/README.md")
	require.NoError(t, err)
	assert.Equal(t, domain.VersionV1, doc.Version)
	assert.Equal(t, "general", doc.Category)
}

func TestFetchMissingFile(t *testing.T) {
	f := NewDocsFetcher(testDocsDir(t), nil, nil)

	_, err := f.Fetch(context.Background(), "/payments/v1/missing.md")
	assert.Error(t, err)
}

func TestFetchCanceledContext(t *testing.T) {
	f := NewDocsFetcher(testDocsDir(t), nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Fetch(ctx, "/payments/v1/card.md")
	assert.ErrorIs(t, err, context.Canceled)

	_, err = f.Links(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
