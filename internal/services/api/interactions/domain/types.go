package domain

// Article is a page summary as the commands see it
// DescriptionHTML and ExtractHTML are upstream HTML fragments
type Article struct {
	Title           string
	URL             string
	DescriptionHTML string
	ExtractHTML     string
	ThumbnailURL    string
	// Timestamp is the raw ISO-8601 revision time, may be empty or malformed
	Timestamp string
}

// SearchHit is one title search result
type SearchHit struct {
	ID          int64
	Key         string
	Title       string
	Description *string
	Thumbnail   string
}

// Outcome labels used for interaction metrics and logs
const (
	OutcomeOK          = "ok"
	OutcomeFallback    = "fallback"
	OutcomeError       = "error"
	OutcomePanic       = "panic"
	OutcomeTimeout     = "timeout"
	OutcomeUnsupported = "unsupported"
	OutcomeSuggestFail = "suggest_error"
)
