package middleware

import (
	"bytes"
	"errors"
	"io"
	stdhttp "net/http"

	"wikicord/internal/platform/logger"
	"wikicord/internal/platform/metrics"
	pnet "wikicord/internal/platform/net"
	phttp "wikicord/internal/platform/net/http"
)

// Signature header names sent by the interactions platform
const (
	HeaderSignatureTimestamp = "X-Signature-Timestamp"
	HeaderSignature          = "X-Signature-Ed25519"
)

// DefaultMaxBody caps signed bodies when no limit is configured
const DefaultMaxBody int64 = 1 << 20

// Verifier checks a hex signature over timestamp||body
type Verifier interface {
	Check(timestamp string, body []byte, sigHex string) error
}

// SignedOptions tunes the Signed middleware, zero values pick the defaults
type SignedOptions struct {
	MaxBytes        int64
	TimestampHeader string
	SignatureHeader string
}

func (o SignedOptions) withDefaults() SignedOptions {
	if o.MaxBytes <= 0 {
		o.MaxBytes = DefaultMaxBody
	}
	if o.TimestampHeader == "" {
		o.TimestampHeader = HeaderSignatureTimestamp
	}
	if o.SignatureHeader == "" {
		o.SignatureHeader = HeaderSignature
	}
	return o
}

// Signed authenticates requests before anything parses the body
// the verified raw bytes are stored on the context (see pnet.RawBody) and
// the request body is replaced with a reader over the same bytes
func Signed(v Verifier, opt SignedOptions) func(stdhttp.Handler) stdhttp.Handler {
	opt = opt.withDefaults()
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			log := logger.C(r.Context())

			ts := r.Header.Get(opt.TimestampHeader)
			sig := r.Header.Get(opt.SignatureHeader)
			if ts == "" || sig == "" {
				metrics.SignatureChecksTotal.WithLabelValues("missing").Inc()
				log.Warn().Bool("has_timestamp", ts != "").Bool("has_signature", sig != "").
					Msg("missing signature headers")
				phttp.Text(w, stdhttp.StatusBadRequest, "missing signature headers")
				return
			}

			body, err := io.ReadAll(stdhttp.MaxBytesReader(w, r.Body, opt.MaxBytes))
			if err != nil {
				var tooBig *stdhttp.MaxBytesError
				if errors.As(err, &tooBig) {
					metrics.SignatureChecksTotal.WithLabelValues("too_large").Inc()
					log.Warn().Int64("limit", opt.MaxBytes).Msg("signed body too large")
					phttp.Text(w, stdhttp.StatusRequestEntityTooLarge, "request body too large")
					return
				}
				log.Warn().Err(err).Msg("read signed body")
				phttp.Text(w, stdhttp.StatusBadRequest, "unable to read request body")
				return
			}

			if err := v.Check(ts, body, sig); err != nil {
				metrics.SignatureChecksTotal.WithLabelValues("invalid").Inc()
				log.Warn().Err(err).Int("bytes", len(body)).Msg("invalid request signature")
				phttp.Text(w, stdhttp.StatusUnauthorized, "invalid request signature")
				return
			}
			metrics.SignatureChecksTotal.WithLabelValues("ok").Inc()

			r = r.WithContext(pnet.WithSigned(r.Context(), ts, body))
			r.Body = io.NopCloser(bytes.NewReader(body))
			next.ServeHTTP(w, r)
		})
	}
}
