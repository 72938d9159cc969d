package modkit

import (
	"wikicord/internal/modkit/module"
	phttp "wikicord/internal/platform/net/http"
)

// Module is the common surface for API modules that can mount routes and expose ports
type Module = module.Module

// Builder constructs a Module from shared deps and options
type Builder func(Deps, ...Option) Module

// Mount registers each module's ports in reg and mounts its routes on r, in order
func Mount(r phttp.Router, reg *module.Registry, mods ...Module) {
	for _, m := range mods {
		reg.Register(m.Name(), m.Ports())
		m.MountRoutes(r)
	}
}
