package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "wikicord/internal/platform/net/http"
	kit "wikicord/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func get(r phttp.Router, path string) int {
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec.Code
}

func TestMountProfiler(t *testing.T) {
	cases := []struct {
		name    string
		prefix  string
		enabled bool
		path    string
		want    int
	}{
		{"index", "/debug", true, "/debug/pprof/", http.StatusOK},
		{"cmdline", "/debug", true, "/debug/pprof/cmdline", http.StatusOK},
		{"unslashed prefix", "ops/", true, "/ops/pprof/cmdline", http.StatusOK},
		{"disabled", "/debug", false, "/debug/pprof/", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := phttp.AdaptChi(chi.NewRouter())
			phttp.MountProfiler(r, tc.prefix, tc.enabled)
			if got := get(r, tc.path); got != tc.want {
				t.Fatalf("GET %s = %d, want %d", tc.path, got, tc.want)
			}
		})
	}
}

func TestMountProfilerPrefixRootRedirects(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	phttp.MountProfiler(r, "/debug", true)
	switch got := get(r, "/debug"); got {
	case http.StatusMovedPermanently, http.StatusPermanentRedirect, http.StatusNotFound:
	default:
		t.Fatalf("GET /debug = %d", got)
	}
}

func TestMountProfilerRejectsRoot(t *testing.T) {
	kit.MustPanic(t, func() { phttp.MountProfiler(phttp.AdaptChi(chi.NewRouter()), "/", true) })
}
