package analyzer

import (
	"math"
	"regexp"
	"unicode/utf8"
)

// Token estimation is a heuristic for LLM budget accounting, tuned for the
// mixed Korean/English/code text found in payments documentation. It does
// not try to match any specific tokenizer.
//
// Costs per character (characters are runes):
//   - plain text:       0.75, plus 0.8 for each Korean syllable or jamo
//   - fenced code:      0.30 (replaces the plain-text cost)
//   - inline code:      0.40 (replaces the plain-text cost)
//   - URL tokens cost at least 8 tokens each
//   - heading lines add a flat 2 tokens each

var (
	fencedCodeRe = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe = regexp.MustCompile("`[^`\n]+`")
	urlRe        = regexp.MustCompile(`https?://[^\s)\]>"']+`)
	headingRe    = regexp.MustCompile(`(?m)^#{1,6}[ \t]`)
)

// EstimateTokens estimates the LLM token cost of text. Empty text costs 0;
// anything else costs at least 1.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}

	total := 0.75 * float64(utf8.RuneCountInString(text))

	// Fenced code blocks: swap the base cost for the code rate.
	for _, block := range fencedCodeRe.FindAllString(text, -1) {
		n := float64(utf8.RuneCountInString(block))
		total += 0.3*n - 0.75*n
	}
	rest := fencedCodeRe.ReplaceAllString(text, "")

	// Inline code spans outside fenced blocks.
	for _, span := range inlineCodeRe.FindAllString(rest, -1) {
		n := float64(utf8.RuneCountInString(span))
		total += 0.4*n - 0.75*n
	}
	rest = inlineCodeRe.ReplaceAllString(rest, "")

	// Korean costs more per character than Latin text. Code spans are
	// already priced, so the bonus applies to prose only.
	for _, r := range rest {
		if isKorean(r) {
			total += 0.8
		}
	}

	// URLs tokenize poorly; enforce a floor per URL token.
	for _, u := range urlRe.FindAllString(rest, -1) {
		base := 0.75 * float64(utf8.RuneCountInString(u))
		if base < 8 {
			total += 8 - base
		}
	}

	total += 2 * float64(len(headingRe.FindAllString(rest, -1)))

	if total < 1 {
		total = 1
	}
	return int(math.Ceil(total))
}

// EstimateTotal sums EstimateTokens over texts.
func EstimateTotal(texts []string) int {
	total := 0
	for _, t := range texts {
		total += EstimateTokens(t)
	}
	return total
}

// ExceedsLimit reports whether text costs more than max tokens.
func ExceedsLimit(text string, max int) bool {
	return EstimateTokens(text) > max
}

func isKorean(r rune) bool {
	switch {
	case r >= 0xAC00 && r <= 0xD7A3: // Hangul syllables
		return true
	case r >= 0x1100 && r <= 0x11FF: // Hangul jamo
		return true
	case r >= 0x3130 && r <= 0x318F: // Hangul compatibility jamo
		return true
	}
	return false
}
