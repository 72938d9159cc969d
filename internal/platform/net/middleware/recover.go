package middleware

import (
	"errors"
	stdhttp "net/http"
	"runtime/debug"

	perr "wikicord/internal/platform/errors"
	"wikicord/internal/platform/logger"
	"wikicord/internal/platform/metrics"
	phttp "wikicord/internal/platform/net/http"
)

// ErrorWriter renders err as the response for r
type ErrorWriter func(w stdhttp.ResponseWriter, r *stdhttp.Request, err error)

// Recover converts panics into a 500 rendered by write and logs the stack with the request id
// http.ErrAbortHandler is re-panicked so net/http can abort the connection
func Recover(write ErrorWriter) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if err, ok := v.(error); ok && errors.Is(err, stdhttp.ErrAbortHandler) {
					panic(v)
				}

				metrics.PanicsTotal.WithLabelValues("http").Inc()
				logger.C(r.Context()).Error().
					Interface("panic", v).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")

				write(w, r, perr.PanicErrf("panic recovered"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RecoverJSON renders recovered panics as the JSON error envelope
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return Recover(phttp.RespondError)(next)
}

// RecoverText renders recovered panics as a plain-text 500
func RecoverText(next stdhttp.Handler) stdhttp.Handler {
	return Recover(func(w stdhttp.ResponseWriter, _ *stdhttp.Request, err error) {
		phttp.TextError(w, err)
	})(next)
}
