package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"paydocs/internal/domain"
	"paydocs/internal/port"
)

var _ port.Fetcher = (*DocsFetcher)(nil)

// DocsFetcher serves raw documents from a local documentation directory.
// Links are root-relative slash paths; the /v1/ or /v2/ path segment decides
// the document's version and the first segment its category.
type DocsFetcher struct {
	root     string
	includes []string
	excludes []string
}

func NewDocsFetcher(root string, includes, excludes []string) *DocsFetcher {
	if len(includes) == 0 {
		includes = []string{"**/*.md"}
	}
	return &DocsFetcher{
		root:     root,
		includes: includes,
		excludes: excludes,
	}
}

// Links walks the docs directory and returns every matching document link.
func (f *DocsFetcher) Links(ctx context.Context) ([]string, error) {
	root, err := filepath.Abs(f.root)
	if err != nil {
		return nil, err
	}

	var links []string
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if f.excluded(rel + "/") {
				return filepath.SkipDir
			}
			return nil
		}
		if f.included(rel) && !f.excluded(rel) {
			links = append(links, "/"+rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return links, nil
}

// Fetch reads the document behind a link produced by Links.
func (f *DocsFetcher) Fetch(ctx context.Context, link string) (domain.RawDocument, error) {
	if ctx.Err() != nil {
		return domain.RawDocument{}, ctx.Err()
	}

	rel := strings.TrimPrefix(link, "/")
	data, err := os.ReadFile(filepath.Join(f.root, filepath.FromSlash(rel)))
	if err != nil {
		return domain.RawDocument{}, fmt.Errorf("failed to read document %s: %w", link, err)
	}

	version := domain.VersionV1
	if domain.HasVersionSegment(link) {
		version, err = domain.ExtractVersion(link)
		if err != nil {
			return domain.RawDocument{}, err
		}
	}

	return domain.RawDocument{
		Markdown: string(data),
		Link:     link,
		Version:  version,
		Category: categoryOf(rel),
	}, nil
}

// categoryOf takes the first path segment, or "general" for top-level files.
func categoryOf(rel string) string {
	if i := strings.IndexByte(rel, '/'); i > 0 {
		return rel[:i]
	}
	return "general"
}

func (f *DocsFetcher) included(path string) bool {
	for _, pattern := range f.includes {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}

func (f *DocsFetcher) excluded(path string) bool {
	for _, pattern := range f.excludes {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}
