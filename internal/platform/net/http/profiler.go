package http

import (
	stdhttp "net/http"

	"wikicord/internal/platform/logger"
	str "wikicord/internal/platform/strings"

	mw "github.com/go-chi/chi/v5/middleware"
)

// MountProfiler serves pprof under {prefix}/pprof/ when enabled
// the profiler exposes process internals, keep it off on public listeners
func MountProfiler(r Router, prefix string, enabled bool) {
	if !enabled {
		return
	}
	prefix = str.MustPrefix(prefix)
	// the chi profiler routes from its own root, so strip ours first
	h := stdhttp.StripPrefix(prefix, mw.Profiler())
	r.Handle(prefix, h)
	r.Handle(prefix+"/*", h)
	logger.Named("http").Warn().Str("prefix", prefix).Msg("pprof profiler mounted")
}
