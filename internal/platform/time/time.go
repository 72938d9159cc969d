// Package time contains time related helpers
package time

import (
	"strings"
	"time"
)

// isoLayouts are tried in order by ParseISO
var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
}

// ParseISO parses an ISO-8601 timestamp as produced by common REST APIs
// ok is false for empty or unparseable input; callers decide whether that matters
func ParseISO(s string) (t time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range isoLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}
