// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	modkit "wikicord/internal/modkit"
	"wikicord/internal/modkit/httpkit"
	str "wikicord/internal/platform/strings"

	idom "wikicord/internal/services/api/interactions/domain"
	metahttp "wikicord/internal/services/api/meta/http"
)

// ServiceName is reported by the meta endpoints
const ServiceName = "wikicord"

// Module implements the modkit.Module interface
type Module struct {
	b    modkit.Built
	deps metahttp.Deps
}

// Ports are optional collaborators, both may be nil
type Ports struct {
	Catalog idom.CommandCatalog
	// Modules lists mounted module names, typically module.Registry.Names
	Modules func() []string
}

// New constructs a meta module mounted under /meta unless overridden
func New(_ modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	p, _ := b.Ports.(Ports)
	d := metahttp.Deps{
		ServiceName: ServiceName,
		StartedAt:   time.Now(),
		Modules:     p.Modules,
	}
	if p.Catalog != nil {
		d.Commands = func() []string {
			schemas := p.Catalog.Schemas()
			names := make([]string, 0, len(schemas))
			for _, s := range schemas {
				names = append(names, s.Name)
			}
			return names
		}
	}
	return &Module{b: b, deps: d}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, m.b.Mw, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.b.Name, "meta") }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
