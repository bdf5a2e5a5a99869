package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"paydocs/internal/adapter/analyzer"
	"paydocs/internal/adapter/index"
	"paydocs/internal/adapter/retriever"
	"paydocs/internal/domain"
	"paydocs/internal/logger"
	"paydocs/internal/port"
)

const (
	// DefaultMaxTokens is the context budget used when the caller passes 0.
	DefaultMaxTokens = 25000
	// MinTokenBudget and MaxTokenBudget clamp caller-supplied budgets.
	MinTokenBudget = 500
	MaxTokenBudget = 50000

	// contextWindowSize neighbors are fetched around each matched chunk.
	contextWindowSize = 1

	moreContentSuffix = "\n\n... (내용이 더 있습니다...)"

	documentHeaderFormat = "# 원본문서 제목 : %s\n* 원본문서 ID : %d"
)

// Orchestrator runs the full retrieval pipeline: synonym expansion, BM25
// ranking, category re-weighting, per-document grouping, windowed fetch,
// budget truncation, and final context assembly. It is built once per
// corpus and read-only afterwards.
type Orchestrator struct {
	documents  map[int]*index.DocumentIndex
	engines    map[domain.Version]*retriever.BM25Engine
	summaries  map[domain.Version][]domain.DocumentSummary
	vocabulary map[domain.Version][]string
	synonyms   port.SynonymDictionary
	weighter   port.CategoryWeighter
}

// NewOrchestrator partitions the corpus by document version and builds one
// BM25 engine and one keyword vocabulary per partition. The vocabulary for
// each version is collected from that same version's documents.
func NewOrchestrator(
	documents map[int]*index.DocumentIndex,
	synonyms port.SynonymDictionary,
	weighter port.CategoryWeighter,
) *Orchestrator {
	o := &Orchestrator{
		documents:  documents,
		engines:    make(map[domain.Version]*retriever.BM25Engine),
		summaries:  make(map[domain.Version][]domain.DocumentSummary),
		vocabulary: make(map[domain.Version][]string),
		synonyms:   synonyms,
		weighter:   weighter,
	}

	ids := make([]int, 0, len(documents))
	for id := range documents {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	chunksByVersion := make(map[domain.Version][]domain.DocumentChunk)
	vocabSeen := make(map[domain.Version]map[string]struct{})
	for _, id := range ids {
		doc := documents[id]
		v := doc.Version()
		chunksByVersion[v] = append(chunksByVersion[v], doc.Chunks()...)
		o.summaries[v] = append(o.summaries[v], doc.Summary())

		if vocabSeen[v] == nil {
			vocabSeen[v] = make(map[string]struct{})
		}
		for _, k := range doc.Keywords() {
			lower := strings.ToLower(k)
			if _, dup := vocabSeen[v][lower]; dup {
				continue
			}
			vocabSeen[v][lower] = struct{}{}
			o.vocabulary[v] = append(o.vocabulary[v], k)
		}
	}

	for _, v := range []domain.Version{domain.VersionV1, domain.VersionV2} {
		o.engines[v] = retriever.NewBM25Engine(chunksByVersion[v])
	}
	return o
}

// FindV1DocumentsByKeyword assembles a token-budgeted context string from
// v1 documents matching the keywords.
func (o *Orchestrator) FindV1DocumentsByKeyword(ctx context.Context, keywords []string, mode domain.SearchMode, maxTokens int) (string, error) {
	return o.findDocuments(ctx, domain.VersionV1, keywords, mode, maxTokens)
}

// FindV2DocumentsByKeyword is the v2 counterpart of FindV1DocumentsByKeyword.
func (o *Orchestrator) FindV2DocumentsByKeyword(ctx context.Context, keywords []string, mode domain.SearchMode, maxTokens int) (string, error) {
	return o.findDocuments(ctx, domain.VersionV2, keywords, mode, maxTokens)
}

// FindOneByID returns the document index for an id.
func (o *Orchestrator) FindOneByID(id int) (*index.DocumentIndex, error) {
	doc, ok := o.documents[id]
	if !ok {
		return nil, fmt.Errorf("document not found: %d", id)
	}
	return doc, nil
}

// KeywordVocabulary returns the keyword vocabulary of one version partition.
func (o *Orchestrator) KeywordVocabulary(version domain.Version) []string {
	return append([]string(nil), o.vocabulary[version]...)
}

// Summaries returns the public document summaries of one version partition.
func (o *Orchestrator) Summaries(version domain.Version) []domain.DocumentSummary {
	return append([]domain.DocumentSummary(nil), o.summaries[version]...)
}

func (o *Orchestrator) findDocuments(ctx context.Context, version domain.Version, keywords []string, mode domain.SearchMode, maxTokens int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if mode == "" {
		mode = domain.ModeBalanced
	}
	maxTokens = clampBudget(maxTokens)

	engine := o.engines[version]
	if engine == nil || engine.Size() == 0 {
		logger.Debug("empty corpus partition", "version", version)
		return "", nil
	}

	expanded := o.synonyms.ConvertToSynonyms(keywords)
	scores := engine.Calculate(expanded, mode)
	if len(scores) == 0 {
		return "", nil
	}
	scores = o.weighter.Apply(scores, o.summaries[version])

	logger.Debug("ranked chunks", "version", version, "mode", mode, "hits", len(scores))

	var blocks []string
	used := 0
	for _, group := range groupByDocument(scores) {
		if used >= maxTokens {
			break
		}
		doc, ok := o.documents[group.documentID]
		if !ok {
			continue
		}
		chunks := doc.FindByKeys(group.keys, contextWindowSize)
		if len(chunks) == 0 {
			continue
		}

		header := fmt.Sprintf(documentHeaderFormat, doc.Title(), doc.ID())
		headerTokens := analyzer.EstimateTokens(header)
		remaining := maxTokens - used - headerTokens
		if remaining <= 0 {
			break
		}

		tr := truncateChunks(chunks, remaining)
		if len(tr.pieces) == 0 {
			continue
		}

		body := strings.Join(tr.pieces, "\n\n")
		if tr.dropped {
			body += moreContentSuffix
		}
		blocks = append(blocks, header+"\n"+body)
		used += headerTokens + tr.usedTokens
	}

	return strings.Join(blocks, "\n\n"), nil
}

// docGroup is one document's matched chunk keys, in the order the document
// first appeared in the ranking.
type docGroup struct {
	documentID int
	keys       []domain.ChunkKey
}

// groupByDocument groups scores by document in first-appearance order and
// de-duplicates and ascending-sorts each group's keys.
func groupByDocument(scores []domain.Score) []docGroup {
	var order []int
	byDoc := make(map[int][]domain.ChunkKey)
	seen := make(map[domain.ChunkKey]struct{})

	for _, s := range scores {
		if _, ok := byDoc[s.Key.DocumentID]; !ok {
			order = append(order, s.Key.DocumentID)
		}
		if _, dup := seen[s.Key]; dup {
			continue
		}
		seen[s.Key] = struct{}{}
		byDoc[s.Key.DocumentID] = append(byDoc[s.Key.DocumentID], s.Key)
	}

	groups := make([]docGroup, 0, len(order))
	for _, id := range order {
		keys := byDoc[id]
		sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
		groups = append(groups, docGroup{documentID: id, keys: keys})
	}
	return groups
}

func clampBudget(maxTokens int) int {
	if maxTokens == 0 {
		return DefaultMaxTokens
	}
	if maxTokens < MinTokenBudget {
		return MinTokenBudget
	}
	if maxTokens > MaxTokenBudget {
		return MaxTokenBudget
	}
	return maxTokens
}
