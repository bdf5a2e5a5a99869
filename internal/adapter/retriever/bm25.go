package retriever

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"paydocs/internal/domain"
	"paydocs/internal/port"
)

var _ port.Ranker = (*BM25Engine)(nil)

// BM25Engine ranks a corpus of chunks against keyword queries. One engine is
// built per (corpus, version) partition; it is read-only after construction
// and safe to share across concurrent queries. Every Calculate call builds
// its own match state, so nothing stateful is reused between invocations.
type BM25Engine struct {
	chunks    []domain.DocumentChunk
	n         int
	avgDocLen float64
}

func NewBM25Engine(chunks []domain.DocumentChunk) *BM25Engine {
	e := &BM25Engine{chunks: chunks, n: len(chunks)}
	if e.n > 0 {
		total := 0
		for _, c := range chunks {
			total += c.WordCount
		}
		e.avgDocLen = float64(total) / float64(e.n)
	}
	return e
}

// Size returns the number of chunks in the corpus partition.
func (e *BM25Engine) Size() int { return e.n }

// Calculate scores every chunk that matches at least one keyword, sorted
// descending by (score, totalTF), then applies the mode's relative cutoff.
// An empty corpus or an empty keyword set yields nil.
func (e *BM25Engine) Calculate(keywords []string, mode domain.SearchMode) []domain.Score {
	if e.n == 0 {
		return nil
	}
	re := buildPattern(keywords)
	if re == nil {
		return nil
	}
	k1, b := mode.Profile()

	type chunkMatch struct {
		key     domain.ChunkKey
		tf      map[string]int
		totalTF int
		length  float64
	}

	// Chunks without a single match are excluded from scoring and from
	// document-frequency counting.
	var matches []chunkMatch
	df := make(map[string]int)
	for _, c := range e.chunks {
		found := re.FindAllString(c.Text, -1)
		if len(found) == 0 {
			continue
		}
		tf := make(map[string]int, len(found))
		for _, m := range found {
			tf[strings.ToLower(m)]++
		}
		matches = append(matches, chunkMatch{
			key:     c.Key,
			tf:      tf,
			totalTF: len(found),
			length:  float64(c.WordCount),
		})
		for term := range tf {
			df[term]++
		}
	}
	if len(matches) == 0 {
		return nil
	}

	scores := make([]domain.Score, 0, len(matches))
	for _, m := range matches {
		var score float64
		for term, tf := range m.tf {
			n := float64(df[term])
			// idf may go to or below zero when a term is in most chunks;
			// that is acceptable, it must just never be NaN.
			idf := math.Log((float64(e.n) - n + 0.5) / (n + 0.5))
			tfF := float64(tf)
			score += idf * tfF * (k1 + 1) / (tfF + k1*(1-b+b*m.length/e.avgDocLen))
		}
		scores = append(scores, domain.Score{Key: m.key, Score: score, TotalTF: m.totalTF})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].TotalTF > scores[j].TotalTF
	})

	return applyCutoff(scores, mode)
}

// applyCutoff keeps scores above a threshold relative to the best score.
// When nothing qualifies the top score is force-kept so a query never comes
// back empty once something matched.
func applyCutoff(scores []domain.Score, mode domain.SearchMode) []domain.Score {
	ratio := mode.MinScoreRatio() * 0.7
	if ratio < 0.05 {
		ratio = 0.05
	}
	if ratio > 0.7 {
		ratio = 0.7
	}
	threshold := scores[0].Score * ratio

	kept := make([]domain.Score, 0, len(scores))
	for _, s := range scores {
		if s.Score >= threshold {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		kept = append(kept, scores[0])
	}
	return kept
}

// buildPattern compiles one case-insensitive alternation over the
// de-duplicated, escaped keywords. An empty keyword set matches nothing.
func buildPattern(keywords []string) *regexp.Regexp {
	seen := make(map[string]struct{}, len(keywords))
	quoted := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		lower := strings.ToLower(k)
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		quoted = append(quoted, regexp.QuoteMeta(k))
	}
	if len(quoted) == 0 {
		return nil
	}
	re, err := regexp.Compile("(?i)(" + strings.Join(quoted, "|") + ")")
	if err != nil {
		return nil
	}
	return re
}
