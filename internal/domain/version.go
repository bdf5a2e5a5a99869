package domain

import (
	"fmt"
	"strings"
)

// HasVersionSegment reports whether the link carries a /v1/ or /v2/ path
// segment. Callers should check this before ExtractVersion.
func HasVersionSegment(link string) bool {
	return strings.Contains(link, "/v1/") || strings.Contains(link, "/v2/")
}

// ExtractVersion returns the version encoded in a document link. It errors
// only on links without a /vN/ segment; loading guards against that case
// upstream.
func ExtractVersion(link string) (Version, error) {
	switch {
	case strings.Contains(link, "/v1/"):
		return VersionV1, nil
	case strings.Contains(link, "/v2/"):
		return VersionV2, nil
	default:
		return "", fmt.Errorf("no version segment in link: %s", link)
	}
}
