// Package module wires the interaction webhook into the API using modkit
package module

import (
	"net/http"

	"wikicord/internal/adapters/wikipedia"
	"wikicord/internal/core/signature"
	modkit "wikicord/internal/modkit"
	"wikicord/internal/modkit/httpkit"
	"wikicord/internal/platform/net/middleware"
	str "wikicord/internal/platform/strings"

	"wikicord/internal/services/api/interactions/commands/article"
	"wikicord/internal/services/api/interactions/domain"
	ihttp "wikicord/internal/services/api/interactions/http"
	isvc "wikicord/internal/services/api/interactions/service"
)

// Module implements the interactions API module
type Module struct {
	b     modkit.Built
	mws   []func(http.Handler) http.Handler
	ports Exposed
	svc   *isvc.Svc
}

// Ports are optional injected collaborators, zero fields fall back to the real adapters
type Ports struct {
	Verifier middleware.Verifier
	Source   domain.ContentSource
}

// Exposed is the port set other modules and tools can look up
type Exposed struct {
	Catalog    domain.CommandCatalog
	Dispatcher domain.ServicePort
}

// Commands builds the static command table over src
func Commands(src domain.ContentSource, opt Options) *isvc.Registry {
	return isvc.MustRegistry(
		article.New(src, article.Options{DefaultQuery: opt.DefaultQuery}),
	)
}

// NewSource builds the Wikipedia backed content source
func NewSource(deps modkit.Deps, opt Options) domain.ContentSource {
	return wikiSource{c: wikipedia.NewClient(wikipedia.Options{
		SummaryURL:  opt.SummaryURL,
		SearchURL:   opt.SearchURL,
		SearchLimit: opt.SearchLimit,
		UserAgent:   opt.UserAgent,
	}, deps.HTTP)}
}

// New constructs the interactions module
// the route is POST {prefix}/interaction behind the deadline and signature checks, prefix defaults to none
func New(deps modkit.Deps, opt Options, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("interactions"),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Verifier == nil {
		pub, err := signature.ParsePublicKey(opt.PublicKeyHex)
		if err != nil {
			panic("interactions module requires a valid DISCORD_PUBLIC_KEY: " + err.Error())
		}
		injected.Verifier = signature.NewVerifier(pub)
	}
	if injected.Source == nil {
		injected.Source = NewSource(deps, opt)
	}
	if opt.Timeout <= 0 {
		opt.Timeout = DefaultTimeout
	}

	reg := Commands(injected.Source, opt)
	svc := isvc.New(reg, isvc.Options{})

	m := &Module{
		b:     b,
		svc:   svc,
		ports: Exposed{Catalog: reg, Dispatcher: svc},
	}
	// per-route stack: plain-text panics, then the deadline, then the signature check
	m.mws = append([]func(http.Handler) http.Handler{
		middleware.RecoverText,
		middleware.Deadline(opt.Timeout),
		middleware.Signed(injected.Verifier, middleware.SignedOptions{MaxBytes: opt.MaxBodyBytes}),
	}, b.Mw...)
	return m
}

// MountRoutes mounts POST {prefix}/interaction behind the module stack
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, m.mws, func(rr httpkit.Router) { ihttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "interactions") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.b.Prefix }

// Ports returns the exposed port set
func (m *Module) Ports() any { return m.ports }
