package httpkit

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "wikicord/internal/platform/errors"
	phttp "wikicord/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

// run executes a Handler and returns status code and body
func run(h Handler, r *http.Request) (int, string) {
	rec := httptest.NewRecorder()
	h(rec, r)
	res := rec.Result()
	defer func() { _ = res.Body.Close() }() // explicitly ignore close error

	b, _ := io.ReadAll(res.Body)
	return rec.Code, string(b)
}

func newRouter() Router { return phttp.AdaptChi(chi.NewRouter()) }

func TestCall_PlainValue_OKWrap(t *testing.T) {
	h := Call(func(_ *http.Request) (any, error) {
		return map[string]string{"a": "1"}, nil
	})
	code, body := run(h, httptest.NewRequest(http.MethodGet, "/", nil))
	if code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", code)
	}
	if !strings.Contains(body, `"a":"1"`) {
		t.Fatalf("expected body to contain a=1, got %q", body)
	}
}

func TestCall_ResponsePassthrough(t *testing.T) {
	h := Call(func(_ *http.Request) (any, error) {
		return Response{Status: http.StatusAccepted, Body: "z"}, nil
	})
	code, body := run(h, httptest.NewRequest(http.MethodGet, "/", nil))
	if code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", code)
	}
	if !strings.Contains(body, "z") {
		t.Fatalf("expected body to contain %q, got %q", "z", body)
	}
}

func TestCall_ErrorPath(t *testing.T) {
	h := Call(func(_ *http.Request) (any, error) {
		return nil, perr.NotFoundf("nah")
	})
	code, body := run(h, httptest.NewRequest(http.MethodGet, "/", nil))
	if code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
	if !strings.Contains(body, "nah") {
		t.Fatalf("expected error message in body, got %q", body)
	}
}

func TestHandle_ErrorResponse(t *testing.T) {
	h := Handle(func(_ *http.Request) Response { return Error(errors.New("boom")) })
	code, _ := run(h, httptest.NewRequest(http.MethodGet, "/", nil))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if code, _ := run(Handle(func(*http.Request) Response { return OK(1) }), httptest.NewRequest(http.MethodGet, "/", nil)); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
}

func TestText_Helpers(t *testing.T) {
	rr := httptest.NewRecorder()
	TextError(rr, perr.Unauthorizedf("invalid request signature"))
	if rr.Code != http.StatusUnauthorized || rr.Body.String() != "invalid request signature" {
		t.Fatalf("TextError = %d %q", rr.Code, rr.Body.String())
	}
	rr = httptest.NewRecorder()
	JSON(rr, http.StatusOK, map[string]int{"type": 1})
	if strings.TrimSpace(rr.Body.String()) != `{"type":1}` {
		t.Fatalf("JSON = %q", rr.Body.String())
	}
}

func TestSugar_GetAndPost(t *testing.T) {
	r := newRouter()
	Get(r, "/g", func(*http.Request) (any, error) { return "got", nil })
	Post(r, "/p", func(*http.Request) (any, error) { return "posted", nil })

	for _, tc := range []struct{ method, path, want string }{
		{http.MethodGet, "/g", "got"},
		{http.MethodPost, "/p", "posted"},
	} {
		rr := httptest.NewRecorder()
		r.Mux().ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))
		if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), tc.want) {
			t.Fatalf("%s %s = %d %q", tc.method, tc.path, rr.Code, rr.Body.String())
		}
	}
}

func TestMountAPI_PrefixAndMiddleware(t *testing.T) {
	r := newRouter()
	mark := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Scoped", "1")
			next.ServeHTTP(w, r)
		})
	}
	MountAPI(r, "", []func(http.Handler) http.Handler{mark}, func(api Router) {
		Get(api, "/thing", func(*http.Request) (any, error) { return "ok", nil })
	})
	MountAPI(r, "/v2/", nil, func(api Router) {
		Get(api, "/thing", func(*http.Request) (any, error) { return "v2", nil })
	})

	rr := httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/thing", nil))
	if rr.Code != http.StatusOK || rr.Header().Get("X-Scoped") != "1" {
		t.Fatalf("/api/thing = %d scoped=%q", rr.Code, rr.Header().Get("X-Scoped"))
	}

	rr = httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v2/thing", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "v2") {
		t.Fatalf("/api/v2/thing = %d %q", rr.Code, rr.Body.String())
	}
}

func applyStack(h http.Handler, stack []func(http.Handler) http.Handler) http.Handler {
	for i := len(stack) - 1; i >= 0; i-- { // outermost first
		h = stack[i](h)
	}
	return h
}

func TestCommonStack_RequestReachesHandler(t *testing.T) {
	hit := 0
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit++
		w.WriteHeader(http.StatusNoContent)
	})
	root := applyStack(final, CommonStack(StackOptions{Metrics: true}))

	rr := httptest.NewRecorder()
	root.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/meta/health", nil))

	if hit != 1 {
		t.Fatalf("expected final handler to be called once, got %d", hit)
	}
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204 from final handler, got %d", rr.Code)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected request id header")
	}
	if rr.Header().Get("Cache-Control") == "" {
		t.Fatal("expected no-cache headers")
	}
}

func TestCommonStack_RecoversPanics(t *testing.T) {
	root := applyStack(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("x") }), CommonStack(StackOptions{}))
	rr := httptest.NewRecorder()
	root.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}

func TestCommonStack_CORSOnlyWhenConfigured(t *testing.T) {
	if got, want := len(CommonStack(StackOptions{CORSOrigins: []string{"https://a.test"}})), len(CommonStack(StackOptions{}))+1; got != want {
		t.Fatalf("expected CORS to add one middleware, got %d want %d", got, want)
	}
}
