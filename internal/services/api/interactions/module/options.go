package module

import (
	"time"

	"wikicord/internal/adapters/wikipedia"
	"wikicord/internal/core/version"
	"wikicord/internal/platform/config"
	"wikicord/internal/platform/net/middleware"
	"wikicord/internal/services/api/interactions/commands/article"
)

// DefaultTimeout is the per-request deadline on the webhook route
const DefaultTimeout = 10 * time.Second

// Options controls the interaction webhook and its collaborators
type Options struct {
	// PublicKeyHex verifies request signatures, required unless a Verifier is injected
	PublicKeyHex string
	Timeout      time.Duration
	MaxBodyBytes int64

	// Wikipedia client
	SummaryURL  string
	SearchURL   string
	SearchLimit int
	UserAgent   string

	DefaultQuery string
}

// FromConfig reads the webhook settings from process config/env
func FromConfig(cfg config.Conf) Options {
	wc := cfg.Prefix("WIKIPEDIA_")
	return Options{
		PublicKeyHex: cfg.Prefix("DISCORD_").MayString("PUBLIC_KEY", ""),
		Timeout:      cfg.MayDuration("REQUEST_TIMEOUT", DefaultTimeout),
		MaxBodyBytes: cfg.MayInt64("MAX_BODY_BYTES", middleware.DefaultMaxBody),
		SummaryURL:   wc.MayURL("SUMMARY_URL", wikipedia.DefaultSummaryURL),
		SearchURL:    wc.MayURL("SEARCH_URL", wikipedia.DefaultSearchURL),
		SearchLimit:  wc.MayInt("SEARCH_LIMIT", wikipedia.DefaultSearchLimit),
		UserAgent:    wc.MayString("USER_AGENT", version.UserAgent()),
		DefaultQuery: cfg.Prefix("ARTICLE_").MayString("DEFAULT_QUERY", article.DefaultQuery),
	}
}
