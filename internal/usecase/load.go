package usecase

import (
	"context"
	"fmt"
	"sort"

	"paydocs/internal/adapter/index"
	"paydocs/internal/domain"
	"paydocs/internal/logger"
	"paydocs/internal/port"
)

// Loader builds the in-memory corpus: fetch raw documents, chunk them, and
// wrap each in a DocumentIndex. The optional store keeps raw documents for
// later reloads; the index itself is never persisted.
type Loader struct {
	fetcher port.Fetcher
	chunker port.Chunker
	store   port.DocumentStore
}

func NewLoader(fetcher port.Fetcher, chunker port.Chunker, store port.DocumentStore) *Loader {
	return &Loader{fetcher: fetcher, chunker: chunker, store: store}
}

// LoadResult reports one corpus load.
type LoadResult struct {
	Documents map[int]*index.DocumentIndex
	Loaded    int
	Skipped   int
	Errors    []string
}

// Load fetches every link, assigns sequential document ids, and indexes the
// documents. Links without a version segment are skipped, which keeps
// version extraction guarded. The optional progress callback reports
// (done, total).
func (l *Loader) Load(ctx context.Context, progress func(done, total int)) (*LoadResult, error) {
	links, err := l.fetcher.Links(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	sort.Strings(links)

	result := &LoadResult{Documents: make(map[int]*index.DocumentIndex)}
	id := 0
	for i, link := range links {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if progress != nil {
			progress(i, len(links))
		}

		raw, err := l.fetcher.Fetch(ctx, link)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("fetch %s: %v", link, err))
			continue
		}
		if raw.Version == "" {
			logger.Warn("skipping document without version", "link", link)
			result.Skipped++
			continue
		}

		id++
		if l.store != nil {
			if err := l.store.PutDocument(id, raw); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("store %s: %v", link, err))
			}
		}
		doc, err := l.indexDocument(id, raw)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("chunk %s: %v", link, err))
			id--
			continue
		}
		result.Documents[id] = doc
		result.Loaded++
	}
	if progress != nil {
		progress(len(links), len(links))
	}

	logger.Info("corpus loaded", "documents", result.Loaded, "skipped", result.Skipped, "errors", len(result.Errors))
	return result, nil
}

// LoadFromStore rebuilds the in-memory corpus from previously stored raw
// documents.
func (l *Loader) LoadFromStore(ctx context.Context) (*LoadResult, error) {
	if l.store == nil {
		return nil, fmt.Errorf("no document store configured")
	}
	raws, err := l.store.ListDocuments()
	if err != nil {
		return nil, fmt.Errorf("failed to list stored documents: %w", err)
	}

	ids := make([]int, 0, len(raws))
	for id := range raws {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	result := &LoadResult{Documents: make(map[int]*index.DocumentIndex)}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw := raws[id]
		if raw.Version == "" {
			result.Skipped++
			continue
		}
		doc, err := l.indexDocument(id, raw)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("chunk document %d: %v", id, err))
			continue
		}
		result.Documents[id] = doc
		result.Loaded++
	}
	return result, nil
}

func (l *Loader) indexDocument(id int, raw domain.RawDocument) (*index.DocumentIndex, error) {
	chunked, err := l.chunker.Chunk(raw.Markdown)
	if err != nil {
		return nil, err
	}
	return index.New(id, raw, chunked), nil
}
