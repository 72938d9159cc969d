package httpkit

import (
	"net/http"
	"strings"
)

// MountAPI mounts a subrouter under /api (or /api/{version} when version is set),
// applies any per-scope middleware, then invokes mount to register routes on that scoped router
//
// example:
//
//	httpkit.MountAPI(r, "", nil, func(api httpkit.Router) {
//	  interactions.MountRoutes(api)
//	})
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	prefix := "/api"
	if ver := strings.Trim(version, "/"); ver != "" {
		prefix += "/" + ver
	}
	r.Route(prefix, func(api Router) {
		if len(mw) > 0 {
			api.Use(mw...)
		}
		mount(api)
	})
}
