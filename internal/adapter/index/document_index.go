package index

import (
	"sort"

	"paydocs/internal/adapter/assembler"
	"paydocs/internal/domain"
	"paydocs/internal/port"
)

// DocumentIndex exclusively owns one document's chunk list. It is built once
// at load time and read-only afterwards, so it is safe to share across
// concurrent queries.
type DocumentIndex struct {
	id          int
	title       string
	link        string
	description string
	keywords    []string
	category    string
	version     domain.Version
	raw         string
	chunks      []domain.DocumentChunk
}

// New converts the chunker output into addressed chunks and stamps every
// chunk key with this document's id and local position.
func New(id int, raw domain.RawDocument, result *port.ChunkResult) *DocumentIndex {
	meta := result.Metadata

	description := meta.Description
	if description == domain.DefaultDescription && result.FirstText != "" {
		description = result.FirstText
	}

	chunks := assembler.ConvertAll(result.Chunks, meta, id)
	for i := range chunks {
		chunks[i].Key = domain.ChunkKey{DocumentID: id, LocalIndex: i}
	}

	return &DocumentIndex{
		id:          id,
		title:       meta.Title,
		link:        raw.Link,
		description: description,
		keywords:    append([]string(nil), meta.Keywords...),
		category:    raw.Category,
		version:     raw.Version,
		raw:         result.RawMarkdown,
		chunks:      chunks,
	}
}

// FindByKeys resolves chunk keys to chunks, widened by windowSize neighbors
// on each side. Keys for other documents or out-of-range positions are
// dropped. Close matches (gap at most windowSize*2+1) share one window; the
// result is de-duplicated and in ascending chunk order. Returns nil when
// nothing resolves.
func (d *DocumentIndex) FindByKeys(keys []domain.ChunkKey, windowSize int) []domain.DocumentChunk {
	if windowSize < 0 {
		windowSize = 0
	}

	seen := make(map[int]struct{}, len(keys))
	var indices []int
	for _, k := range keys {
		if k.DocumentID != d.id || k.LocalIndex < 0 || k.LocalIndex >= len(d.chunks) {
			continue
		}
		if _, dup := seen[k.LocalIndex]; dup {
			continue
		}
		seen[k.LocalIndex] = struct{}{}
		indices = append(indices, k.LocalIndex)
	}
	if len(indices) == 0 {
		return nil
	}
	sort.Ints(indices)

	selected := make(map[int]struct{})
	if len(indices) == 1 {
		d.addWindow(selected, indices[0], indices[0], windowSize)
	} else {
		// Group indices whose gaps their windows would bridge anyway.
		start := indices[0]
		prev := indices[0]
		for _, idx := range indices[1:] {
			if idx-prev > windowSize*2+1 {
				d.addWindow(selected, start, prev, windowSize)
				start = idx
			}
			prev = idx
		}
		d.addWindow(selected, start, prev, windowSize)
	}

	picked := make([]int, 0, len(selected))
	for idx := range selected {
		picked = append(picked, idx)
	}
	sort.Ints(picked)

	out := make([]domain.DocumentChunk, 0, len(picked))
	for _, idx := range picked {
		out = append(out, d.chunks[idx])
	}
	return out
}

// addWindow unions [lo-windowSize, hi+windowSize] clamped to chunk bounds.
func (d *DocumentIndex) addWindow(selected map[int]struct{}, lo, hi, windowSize int) {
	from := lo - windowSize
	if from < 0 {
		from = 0
	}
	to := hi + windowSize
	if to > len(d.chunks)-1 {
		to = len(d.chunks) - 1
	}
	for i := from; i <= to; i++ {
		selected[i] = struct{}{}
	}
}

func (d *DocumentIndex) ID() int                 { return d.id }
func (d *DocumentIndex) Title() string           { return d.title }
func (d *DocumentIndex) Link() string            { return d.link }
func (d *DocumentIndex) Description() string     { return d.description }
func (d *DocumentIndex) Category() string        { return d.category }
func (d *DocumentIndex) Version() domain.Version { return d.version }
func (d *DocumentIndex) Content() string         { return d.raw }
func (d *DocumentIndex) ChunkCount() int         { return len(d.chunks) }

func (d *DocumentIndex) Keywords() []string {
	return append([]string(nil), d.keywords...)
}

// Chunks returns the document's chunk list. Callers must treat it as
// read-only.
func (d *DocumentIndex) Chunks() []domain.DocumentChunk {
	return d.chunks
}

// Summary is the public view of the document; it never exposes chunk text.
func (d *DocumentIndex) Summary() domain.DocumentSummary {
	return domain.DocumentSummary{
		ID:          d.id,
		Title:       d.title,
		Link:        d.link,
		Description: d.description,
		Keywords:    d.Keywords(),
	}
}
