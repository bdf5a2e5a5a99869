package chunker

import (
	"strings"

	"paydocs/internal/domain"
)

// Front matter sits between a "***" marker line and a later "-----" line:
//
//	***
//	title: 카드 결제
//	description: 카드 결제 연동 가이드
//	keyword: 결제, 카드, API
//	-----
//
// Missing or malformed blocks fall back to defaults and never fail.

// extractFrontMatter parses document metadata and returns the body that
// remains after the delimiter. When the delimiter is absent the whole
// input is kept.
func extractFrontMatter(markdown string) (domain.DocumentMetadata, string) {
	meta := domain.DefaultMetadata()

	lines := strings.Split(markdown, "\n")
	markerAt := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "***" {
			markerAt = i
			break
		}
	}
	if markerAt < 0 {
		return meta, markdown
	}

	delimiterAt := -1
	for i := markerAt + 1; i < len(lines); i++ {
		if isDelimiterLine(lines[i]) {
			delimiterAt = i
			break
		}
	}
	if delimiterAt < 0 {
		return meta, markdown
	}

	for _, line := range lines[markerAt+1 : delimiterAt] {
		line = strings.TrimSpace(line)
		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "title:"):
			if v := strings.TrimSpace(line[len("title:"):]); v != "" {
				meta.Title = v
			}
		case strings.HasPrefix(lower, "description:"):
			if v := strings.TrimSpace(line[len("description:"):]); v != "" {
				meta.Description = v
			}
		case strings.HasPrefix(lower, "keyword:"):
			meta.Keywords = splitKeywords(line[len("keyword:"):])
		}
	}

	body := strings.Join(lines[delimiterAt+1:], "\n")
	return meta, body
}

// isDelimiterLine matches the "-----" front-matter terminator.
func isDelimiterLine(line string) bool {
	line = strings.TrimSpace(line)
	if len(line) < 5 {
		return false
	}
	for _, r := range line {
		if r != '-' {
			return false
		}
	}
	return true
}

// splitKeywords splits a comma-separated keyword list, preserving order and
// dropping empty entries.
func splitKeywords(raw string) []string {
	var keywords []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}
