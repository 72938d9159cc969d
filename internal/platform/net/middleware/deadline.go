package middleware

import (
	"bytes"
	"context"
	"errors"
	stdhttp "net/http"
	"runtime/debug"
	"sync"
	"time"

	"wikicord/internal/platform/logger"
	"wikicord/internal/platform/metrics"
	phttp "wikicord/internal/platform/net/http"
)

// TimeoutMessage is the plain-text body written when a request misses its deadline
const TimeoutMessage = "request timed out"

// ErrHandlerTimeout is returned to handlers writing after their deadline
var ErrHandlerTimeout = errors.New("handler wrote after request deadline")

// Deadline bounds each request to d of wall-clock time
// the handler writes into a buffer that is flushed only if it finishes in time,
// otherwise the buffer is discarded and the client gets 503 request timed out
func Deadline(d time.Duration) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			dw := &deadlineWriter{h: make(stdhttp.Header)}
			done := make(chan struct{})
			panicc := make(chan any, 1)
			go func() {
				defer func() {
					p := recover()
					if p == nil {
						return
					}
					dw.mu.Lock()
					defer dw.mu.Unlock()
					if dw.timedOut {
						// the 503 has already been written
						latePanic(r, p, debug.Stack())
						return
					}
					panicc <- p
				}()
				next.ServeHTTP(dw, r.WithContext(ctx))
				close(done)
			}()

			select {
			case p := <-panicc:
				panic(p)
			case <-done:
				dw.mu.Lock()
				defer dw.mu.Unlock()
				dst := w.Header()
				for k, vv := range dw.h {
					dst[k] = vv
				}
				if !dw.wroteHeader {
					dw.code = stdhttp.StatusOK
				}
				w.WriteHeader(dw.code)
				_, _ = w.Write(dw.buf.Bytes())
			case <-ctx.Done():
				dw.mu.Lock()
				defer dw.mu.Unlock()
				dw.timedOut = true
				select {
				case p := <-panicc:
					latePanic(r, p, nil)
				default:
				}
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					metrics.RequestTimeoutsTotal.Inc()
					logger.C(r.Context()).Warn().
						Dur("limit", d).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Msg("request deadline exceeded")
				}
				phttp.Text(w, stdhttp.StatusServiceUnavailable, TimeoutMessage)
			}
		})
	}
}

// latePanic records a handler panic that surfaced after the deadline answered
func latePanic(r *stdhttp.Request, p any, stack []byte) {
	metrics.PanicsTotal.WithLabelValues("deadline").Inc()
	ev := logger.C(r.Context()).Error().
		Interface("panic", p).
		Str("method", r.Method).
		Str("path", r.URL.Path)
	if stack != nil {
		ev = ev.Bytes("stack", stack)
	}
	ev.Msg("panic after request deadline")
}

// deadlineWriter buffers a response until the handler returns
type deadlineWriter struct {
	mu          sync.Mutex
	h           stdhttp.Header
	buf         bytes.Buffer
	code        int
	wroteHeader bool
	timedOut    bool
}

func (dw *deadlineWriter) Header() stdhttp.Header { return dw.h }

func (dw *deadlineWriter) Write(p []byte) (int, error) {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	if dw.timedOut {
		return 0, ErrHandlerTimeout
	}
	if !dw.wroteHeader {
		dw.writeHeaderLocked(stdhttp.StatusOK)
	}
	return dw.buf.Write(p)
}

func (dw *deadlineWriter) WriteHeader(code int) {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	if dw.timedOut || dw.wroteHeader {
		return
	}
	dw.writeHeaderLocked(code)
}

func (dw *deadlineWriter) writeHeaderLocked(code int) {
	dw.wroteHeader = true
	dw.code = code
}
