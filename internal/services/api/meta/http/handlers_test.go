package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	phttp "wikicord/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

// data unwraps the reply envelope into v
func data(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	var env struct {
		StatusCode int             `json:"status_code"`
		Data       json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.StatusCode != stdhttp.StatusOK {
		t.Fatalf("envelope status = %d", env.StatusCode)
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data: %v (%s)", err, env.Data)
	}
}

func serve(t *testing.T, d Deps, path string) *httptest.ResponseRecorder {
	t.Helper()
	r := phttp.AdaptChi(chi.NewRouter())
	Register(r, d)
	rr := httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, path, nil))
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("%s status = %d", path, rr.Code)
	}
	return rr
}

func TestHealth(t *testing.T) {
	started := time.Date(2025, 9, 3, 13, 0, 0, 0, time.UTC)
	d := Deps{ServiceName: "wikicord", StartedAt: started, now: func() time.Time { return started.Add(5 * time.Minute) }}

	var got HealthResponse
	data(t, serve(t, d, "/health"), &got)
	if !got.OK || got.Service != "wikicord" || got.Now != "2025-09-03T13:05:00Z" {
		t.Fatalf("health = %+v", got)
	}
}

func TestServiceUptimeAndCommands(t *testing.T) {
	started := time.Date(2025, 9, 3, 13, 0, 0, 0, time.UTC)
	d := Deps{
		ServiceName: "wikicord",
		StartedAt:   started,
		Commands:    func() []string { return []string{"article"} },
		Modules:     func() []string { return []string{"interactions", "meta"} },
		now:         func() time.Time { return started.Add(300 * time.Second) },
	}

	var got ServiceResponse
	data(t, serve(t, d, "/service"), &got)
	if got.Uptime != 300 || len(got.Commands) != 1 || got.Commands[0] != "article" || len(got.Modules) != 2 {
		t.Fatalf("service = %+v", got)
	}
}

func TestServiceWithoutCatalog(t *testing.T) {
	rr := serve(t, Deps{ServiceName: "wikicord", StartedAt: time.Now()}, "/service")
	var raw map[string]any
	data(t, rr, &raw)
	for _, k := range []string{"commands", "modules"} {
		if v, ok := raw[k].([]any); !ok || len(v) != 0 {
			t.Fatalf("%s = %#v", k, raw[k])
		}
	}
}

func TestVersion(t *testing.T) {
	rr := serve(t, Deps{StartedAt: time.Now()}, "/version")
	var raw map[string]any
	data(t, rr, &raw)
	if len(raw) == 0 {
		t.Fatalf("empty version body")
	}
}
