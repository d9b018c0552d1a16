package httpmetrics

import (
	"strings"

	"github.com/google/uuid"
)

// NormalizePath replaces identifier path segments with a placeholder so the
// metric label cardinality stays bounded.
func NormalizePath(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if seg == "" {
			continue
		}
		if _, err := uuid.Parse(seg); err == nil {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}
