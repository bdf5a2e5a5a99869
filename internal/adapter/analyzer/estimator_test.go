package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateEmpty(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
}

func TestEstimateNonEmptyAtLeastOne(t *testing.T) {
	for _, text := range []string{"a", ".", " ", "\n", "결"} {
		assert.GreaterOrEqual(t, EstimateTokens(text), 1, "text %q", text)
	}
}

func TestEstimateTotalSums(t *testing.T) {
	texts := []string{"hello world", "결제 수단", "", "```\ncode\n```"}
	want := 0
	for _, text := range texts {
		want += EstimateTokens(text)
	}
	assert.Equal(t, want, EstimateTotal(texts))
	assert.Equal(t, 0, EstimateTotal(nil))
}

func TestFencedCodeCheaperThanPlainText(t *testing.T) {
	body := strings.Repeat("let total = fee * rate;\n", 10)
	code := "```\n" + body + "```"
	// Same length, same characters except the fence markers.
	plain := "aaa\n" + body + "aaa"

	assert.Less(t, EstimateTokens(code), EstimateTokens(plain))
}

func TestInlineCodeCheaperThanPlainText(t *testing.T) {
	span := "`merchant_id`"
	plain := "xmerchant_idx"
	assert.Less(t, EstimateTokens(span), EstimateTokens(plain))
}

func TestURLFloor(t *testing.T) {
	// Short URLs are raised to the 8-token floor.
	assert.Equal(t, 8, EstimateTokens("http://a.b"))

	// Long URLs keep their length-based cost.
	long := "https://docs.example.com/v1/payments/card/authorize?merchant=123"
	assert.Greater(t, EstimateTokens(long), 8)
}

func TestHeadingBonus(t *testing.T) {
	assert.Equal(t, EstimateTokens("x Title")+2, EstimateTokens("# Title"))
	assert.Equal(t, 8, EstimateTokens("# Hello")) // ceil(7*0.75 + 2)
}

func TestKoreanCostsMore(t *testing.T) {
	// Same rune count; Hangul syllables carry a per-character bonus.
	assert.Greater(t, EstimateTokens("결제 수단"), EstimateTokens("ab cd"))
	assert.Equal(t, 4, EstimateTokens("결제")) // ceil(2*0.75 + 2*0.8)
}

func TestExceedsLimit(t *testing.T) {
	text := strings.Repeat("word ", 100)
	cost := EstimateTokens(text)
	assert.False(t, ExceedsLimit(text, cost))
	assert.True(t, ExceedsLimit(text, cost-1))
	assert.False(t, ExceedsLimit("", 0))
}
