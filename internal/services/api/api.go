// Package api provides the HTTP API for the application
package api

import (
	"net/http"
	"time"

	"wikicord/internal/platform/config"
	"wikicord/internal/platform/logger"
	"wikicord/internal/platform/metrics"
	phttp "wikicord/internal/platform/net/http"
	"wikicord/internal/platform/net/middleware"

	"wikicord/internal/modkit"
	"wikicord/internal/modkit/httpkit"
	"wikicord/internal/modkit/module"
	"wikicord/internal/modkit/swaggerkit"

	idom "wikicord/internal/services/api/interactions/domain"
	intmod "wikicord/internal/services/api/interactions/module"
	metamod "wikicord/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Logger *logger.Logger
	// HTTP is the outbound client for collaborators, nil builds per-adapter clients
	HTTP *http.Client

	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool
	CORSOrigins    []string
	SlowRequest    time.Duration

	Interactions intmod.Options
	// InteractionPorts replaces the verifier or content source, nil uses the real ones
	InteractionPorts *intmod.Ports
}

// FromConfig reads the API toggles and module options from process config/env
func FromConfig(cfg config.Conf) Options {
	return Options{
		Config:         cfg,
		EnableSwagger:  cfg.MayBool("SWAGGER", true),
		EnableProfiler: cfg.MayBool("PROFILER", false),
		EnableMetrics:  cfg.MayBool("METRICS", true),
		CORSOrigins:    cfg.MayCSV("CORS_ORIGINS", nil),
		SlowRequest:    cfg.MayDuration("SLOW_REQUEST", 2*time.Second),
		Interactions:   intmod.FromConfig(cfg),
	}
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Log:  opt.Logger,
		Cfg:  opt.Config,
		HTTP: opt.HTTP,
	}

	// baseline stack for every route, the webhook adds its own deadline and signature check
	r.Use(httpkit.CommonStack(httpkit.StackOptions{
		Slow:    opt.SlowRequest,
		Metrics: opt.EnableMetrics,
	})...)

	var intOpts []modkit.Option
	if opt.InteractionPorts != nil {
		intOpts = append(intOpts, modkit.WithPorts(*opt.InteractionPorts))
	}
	interactions := intmod.New(deps, opt.Interactions, intOpts...)
	catalog := module.MustPortsOf[idom.CommandCatalog](interactions)

	reg := module.NewRegistry()

	var metaMw []func(http.Handler) http.Handler
	if len(opt.CORSOrigins) > 0 {
		metaMw = append(metaMw, middleware.CORS(middleware.CORSOptions{AllowedOrigins: opt.CORSOrigins}))
	}
	meta := metamod.New(deps,
		modkit.WithPorts(metamod.Ports{Catalog: catalog, Modules: reg.Names}),
		modkit.WithMiddlewares(metaMw...),
	)

	// the webhook lives under /api, meta stays at the root
	httpkit.MountAPI(r, "", nil, func(api httpkit.Router) {
		modkit.Mount(api, reg, interactions)
	})
	modkit.Mount(r, reg, meta)

	// Swagger + profiler + metrics
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	if opt.EnableMetrics {
		r.Handle("/metrics", metrics.Handler())
	}

	deps.Logger().Info().
		Strs("modules", reg.Names()).
		Int("commands", len(catalog.Schemas())).
		Bool("swagger", opt.EnableSwagger).
		Bool("metrics", opt.EnableMetrics).
		Bool("profiler", opt.EnableProfiler).
		Msg("api mounted")
}
