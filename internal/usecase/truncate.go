package usecase

import (
	"regexp"
	"sort"
	"strings"

	"paydocs/internal/adapter/analyzer"
	"paydocs/internal/domain"
)

// minPartialTokens is the smallest remaining budget for which a partial cut
// is attempted at all; below that the chunk is simply dropped.
const minPartialTokens = 100

var (
	paragraphBreakRe = regexp.MustCompile(`\n\n`)
	sentenceEndRe    = regexp.MustCompile(`[.!?]\s`)
	listItemRe       = regexp.MustCompile(`\n-\s`)
	codeFenceRe      = regexp.MustCompile("```")
)

// truncation is the outcome of fitting one document's chunks into a budget.
type truncation struct {
	pieces     []string
	usedTokens int
	dropped    bool
}

// truncateChunks accumulates whole chunks while they fit the budget. The
// first chunk that does not fit may contribute a partial piece cut at the
// latest semantic boundary that still fits; everything after it is dropped.
func truncateChunks(chunks []domain.DocumentChunk, budget int) truncation {
	var out truncation
	for _, c := range chunks {
		remaining := budget - out.usedTokens
		if c.EstimatedTokens <= remaining {
			out.pieces = append(out.pieces, c.RawText)
			out.usedTokens += c.EstimatedTokens
			continue
		}
		if remaining >= minPartialTokens {
			if cut, cost := cutAtBoundary(c.Text, remaining); cut != "" {
				out.pieces = append(out.pieces, cut)
				out.usedTokens += cost
			}
		}
		out.dropped = true
		break
	}
	return out
}

// cutAtBoundary scans boundaries from the latest backward and returns the
// first cut whose cost fits the budget, with that cost. Returns "" when no
// boundary fits.
func cutAtBoundary(text string, budget int) (string, int) {
	boundaries := semanticBoundaries(text)
	for i := len(boundaries) - 1; i >= 0; i-- {
		candidate := strings.TrimSpace(text[:boundaries[i]])
		if candidate == "" {
			continue
		}
		if cost := analyzer.EstimateTokens(candidate); cost <= budget {
			return candidate, cost
		}
	}
	return "", 0
}

// semanticBoundaries collects candidate cut offsets: paragraph breaks,
// sentence ends, list-item starts, and fenced-code-block ends. Offsets are
// ascending and de-duplicated. All markers are ASCII, so the offsets are
// safe cut points in UTF-8 text.
func semanticBoundaries(text string) []int {
	set := make(map[int]struct{})

	for _, loc := range paragraphBreakRe.FindAllStringIndex(text, -1) {
		set[loc[0]] = struct{}{}
	}
	for _, loc := range sentenceEndRe.FindAllStringIndex(text, -1) {
		set[loc[0]+1] = struct{}{} // keep the closing punctuation
	}
	for _, loc := range listItemRe.FindAllStringIndex(text, -1) {
		set[loc[0]] = struct{}{} // cut before the item
	}
	// Every second fence closes a block; cut after it.
	fences := codeFenceRe.FindAllStringIndex(text, -1)
	for i := 1; i < len(fences); i += 2 {
		set[fences[i][1]] = struct{}{}
	}

	offsets := make([]int, 0, len(set))
	for o := range set {
		offsets = append(offsets, o)
	}
	sort.Ints(offsets)
	return offsets
}
