package httpkit

import (
	"net/http"
	"time"

	"wikicord/internal/platform/metrics"
	"wikicord/internal/platform/net/middleware"
)

// StackOptions tunes the baseline stack
type StackOptions struct {
	// CORSOrigins enables CORS for the listed origins, empty disables it
	CORSOrigins []string
	// Slow marks access log lines at warn level, 0 disables
	Slow time.Duration
	// Metrics records per-route prometheus metrics
	Metrics bool
}

// CommonStack returns the baseline middleware slice mounted at the root router
// route specific middleware (deadline, signature) is added by the owning module
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	stack := []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// safety
		middleware.RecoverJSON,

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.Slow}),
	}
	if o.Metrics {
		stack = append(stack, metrics.Middleware)
	}

	// cache / freshness
	stack = append(stack, middleware.NoCache())

	if len(o.CORSOrigins) > 0 {
		stack = append(stack, middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}))
	}
	return stack
}
