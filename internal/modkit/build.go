package modkit

import (
	"net/http"

	"wikicord/internal/modkit/httpkit"
	str "wikicord/internal/platform/strings"
)

// Built is the resolved option set a module keeps after construction
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any

	Subrouter func(httpkit.Router) httpkit.Router
	Register  func(httpkit.Router)
}

// Build applies opts over the defaults, hooks default to identity and no-op
func Build(opts ...Option) Built {
	b := Built{
		Subrouter: func(r httpkit.Router) httpkit.Router { return r },
		Register:  func(httpkit.Router) {},
	}
	for _, o := range opts {
		o(&b)
	}
	b.Mw = append([]func(http.Handler) http.Handler(nil), b.Mw...)
	return b
}

// Mount attaches routes in a group carrying stack, under Prefix when one is set
// own runs first, then the external Register hook
func (b Built) Mount(r httpkit.Router, stack []func(http.Handler) http.Handler, own func(httpkit.Router)) {
	r.Group(func(g httpkit.Router) {
		if len(stack) > 0 {
			g = g.With(stack...)
		}
		g = b.Subrouter(g)
		attach := func(rr httpkit.Router) {
			own(rr)
			b.Register(rr)
		}
		if b.Prefix == "" {
			attach(g)
			return
		}
		g.Route(str.MustPrefix(b.Prefix), attach)
	})
}
