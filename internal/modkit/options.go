package modkit

import (
	"net/http"

	phttp "wikicord/internal/platform/net/http"
)

// Option adjusts how a module is named, mounted, and wired
type Option func(*Built)

// WithName sets the module name used in logs and the registry
func WithName(name string) Option {
	return func(b *Built) { b.Name = name }
}

// WithPrefix mounts the module under a path prefix
func WithPrefix(prefix string) Option {
	return func(b *Built) { b.Prefix = prefix }
}

// WithMiddlewares appends per-module middleware, applied after the module's own stack
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts injects collaborators, the concrete type is owned by the receiving module
func WithPorts[T any](p T) Option {
	return func(b *Built) { b.Ports = p }
}

// WithSubrouter wraps the module router before routes are attached
func WithSubrouter(fn func(phttp.Router) phttp.Router) Option {
	return func(b *Built) {
		if fn != nil {
			b.Subrouter = fn
		}
	}
}

// WithRegister attaches extra endpoints next to the module's own
func WithRegister(fn func(phttp.Router)) Option {
	return func(b *Built) {
		if fn != nil {
			b.Register = fn
		}
	}
}
