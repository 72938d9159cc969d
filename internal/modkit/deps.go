// Package modkit provides module wiring and core deps
package modkit

import (
	"net/http"

	"wikicord/internal/platform/config"
	"wikicord/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log *logger.Logger
	Cfg config.Conf
	// HTTP is the shared outbound client for collaborator adapters, nil means http.DefaultClient
	HTTP *http.Client
}

// ZeroOK returns true when deps are safe to use with zero values in tests
// consumers should still nil check Log and HTTP
func (d Deps) ZeroOK() bool { return true }

// Client returns the outbound HTTP client, falling back to http.DefaultClient
func (d Deps) Client() *http.Client {
	if d.HTTP != nil {
		return d.HTTP
	}
	return http.DefaultClient
}

// Logger returns the deps logger or the process root logger
func (d Deps) Logger() *logger.Logger {
	if d.Log != nil {
		return d.Log
	}
	return logger.Get()
}
