// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const (
	keyRawBody   ctxKey = "raw_body"
	keyTimestamp ctxKey = "signature_timestamp"
)

// WithRequest annotates context with the request id
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	return ctx
}

// WithSigned stores the verified raw body and its signing timestamp
// the body must be the exact bytes the signature was checked against
func WithSigned(ctx context.Context, timestamp string, body []byte) context.Context {
	ctx = context.WithValue(ctx, keyTimestamp, timestamp)
	return context.WithValue(ctx, keyRawBody, body)
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// RawBody returns the verified request body and whether one was stored
func RawBody(ctx context.Context) ([]byte, bool) {
	b, ok := ctx.Value(keyRawBody).([]byte)
	return b, ok
}

// SignatureTimestamp returns the signing timestamp of a verified request
func SignatureTimestamp(ctx context.Context) string {
	if v, ok := ctx.Value(keyTimestamp).(string); ok {
		return v
	}
	return ""
}
