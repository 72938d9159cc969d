package api

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"wikicord/internal/adapters/wikipedia"
	"wikicord/internal/core/signature"
	"wikicord/internal/platform/config"
	phttp "wikicord/internal/platform/net/http"
	kit "wikicord/internal/platform/testkit"
	"wikicord/internal/services/api/interactions/domain"
	intmod "wikicord/internal/services/api/interactions/module"

	"github.com/go-chi/chi/v5"
)

// countingSource is a ContentSource fake that records outbound calls
type countingSource struct {
	calls   atomic.Int32
	err     error
	delay   time.Duration
	article domain.Article
}

func (c *countingSource) Summary(ctx context.Context, _ string) (domain.Article, error) {
	c.calls.Add(1)
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return domain.Article{}, ctx.Err()
		}
	}
	return c.article, c.err
}

func (c *countingSource) Search(_ context.Context, _ string) ([]domain.SearchHit, error) {
	c.calls.Add(1)
	return nil, c.err
}

type harness struct {
	h    http.Handler
	priv ed25519.PrivateKey
	src  *countingSource
}

func newHarness(t *testing.T, src *countingSource, timeout time.Duration) harness {
	t.Helper()
	pub, priv := kit.Keypair(t)
	r := phttp.AdaptChi(chi.NewRouter())
	Mount(r, Options{
		Config:        config.New(),
		EnableSwagger: true,
		EnableMetrics: true,
		Interactions:  intmod.Options{Timeout: timeout},
		InteractionPorts: &intmod.Ports{
			Verifier: signature.NewVerifier(pub),
			Source:   src,
		},
	})
	return harness{h: r.Mux(), priv: priv, src: src}
}

func (h harness) post(body string, signed bool) *httptest.ResponseRecorder {
	priv := h.priv
	if !signed {
		priv = nil
	}
	rr := httptest.NewRecorder()
	h.h.ServeHTTP(rr, kit.SignedRequest(priv, "/api/interaction", body))
	return rr
}

type wireReply struct {
	Type int `json:"type"`
	Data struct {
		Content string `json:"content"`
		Flags   int    `json:"flags"`
		Embeds  []struct {
			Title string `json:"title"`
		} `json:"embeds"`
		Choices []struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		} `json:"choices"`
	} `json:"data"`
}

func decodeReply(t *testing.T, rr *httptest.ResponseRecorder) wireReply {
	t.Helper()
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d body=%q", rr.Code, rr.Body.String())
	}
	var out wireReply
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode reply: %v (%q)", err, rr.Body.String())
	}
	return out
}

func TestPingIsPong(t *testing.T) {
	h := newHarness(t, &countingSource{}, 0)
	rr := h.post(`{"type":1}`, true)
	if got := decodeReply(t, rr); got.Type != 1 {
		t.Fatalf("type = %d", got.Type)
	}
	if strings.TrimSpace(rr.Body.String()) != `{"type":1}` {
		t.Fatalf("body = %q", rr.Body.String())
	}
	if h.src.calls.Load() != 0 {
		t.Fatalf("ping made %d outbound calls", h.src.calls.Load())
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing request id header")
	}
}

func TestBadSignatureIs401(t *testing.T) {
	h := newHarness(t, &countingSource{}, 0)
	for _, body := range []string{`{"type":1}`, `not json`, `{"type":99}`} {
		rr := h.post(body, false)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%q: status = %d", body, rr.Code)
		}
		if rr.Body.String() != "invalid request signature" {
			t.Fatalf("%q: body = %q", body, rr.Body.String())
		}
	}
}

func TestMissingHeadersIs400(t *testing.T) {
	h := newHarness(t, &countingSource{}, 0)
	req := httptest.NewRequest(http.MethodPost, "/api/interaction", strings.NewReader(`{"type":1}`))
	rr := httptest.NewRecorder()
	h.h.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest || rr.Body.String() != "missing signature headers" {
		t.Fatalf("status=%d body=%q", rr.Code, rr.Body.String())
	}
}

func TestMalformedIs400(t *testing.T) {
	h := newHarness(t, &countingSource{}, 0)
	for _, body := range []string{`{"type":`, `{}`, `{"type":2,"data":{"options":[]}}`} {
		rr := h.post(body, true)
		if rr.Code != http.StatusBadRequest || rr.Body.String() != "invalid interaction" {
			t.Fatalf("%q: status=%d body=%q", body, rr.Code, rr.Body.String())
		}
		if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
			t.Fatalf("%q: content type = %q", body, ct)
		}
	}
}

func TestUnknownKindIs400(t *testing.T) {
	h := newHarness(t, &countingSource{}, 0)
	for _, body := range []string{`{"type":3}`, `{"type":300}`} {
		rr := h.post(body, true)
		if rr.Code != http.StatusBadRequest || rr.Body.String() != "invalid interaction type" {
			t.Fatalf("%s: status=%d body=%q", body, rr.Code, rr.Body.String())
		}
	}
}

func TestUnregisteredCommandEchoes(t *testing.T) {
	h := newHarness(t, &countingSource{}, 0)
	rr := h.post(`{"type":2,"data":{"name":"mystery","options":[{"name":"q","type":3,"value":"hi"}]}}`, true)
	got := decodeReply(t, rr)
	if got.Type != 4 || got.Data.Flags != 0 {
		t.Fatalf("reply = %+v", got)
	}
	if !strings.HasPrefix(got.Data.Content, "```json\n") || !strings.Contains(got.Data.Content, "mystery") {
		t.Fatalf("content = %q", got.Data.Content)
	}
}

func TestArticleWithoutTitle(t *testing.T) {
	h := newHarness(t, &countingSource{}, 0)
	got := decodeReply(t, h.post(`{"type":2,"data":{"name":"article"}}`, true))
	if got.Data.Content != "You need to provide a title!" || got.Data.Flags != 64 {
		t.Fatalf("reply = %+v", got)
	}
	if h.src.calls.Load() != 0 {
		t.Fatalf("outbound calls = %d", h.src.calls.Load())
	}
}

func TestArticleCollaboratorFailureIs200(t *testing.T) {
	src := &countingSource{err: &wikipedia.FetchError{Op: "page summary", Status: 404, Reason: "Not found."}}
	h := newHarness(t, src, 0)
	got := decodeReply(t, h.post(`{"type":2,"data":{"name":"article","options":[{"name":"title","type":3,"value":"Nope"}]}}`, true))
	if got.Data.Content != "Failed to fetch page summary: Not found." || got.Data.Flags != 64 {
		t.Fatalf("reply = %+v", got)
	}
}

func TestArticleEmbed(t *testing.T) {
	src := &countingSource{article: domain.Article{Title: "Go", URL: "https://en.wikipedia.org/wiki/Go"}}
	h := newHarness(t, src, 0)
	got := decodeReply(t, h.post(`{"type":2,"data":{"name":"article","options":[{"name":"title","type":3,"value":"Go"}]}}`, true))
	if got.Type != 4 || len(got.Data.Embeds) != 1 || got.Data.Embeds[0].Title != "Go" {
		t.Fatalf("reply = %+v", got)
	}
}

func TestAutocompleteFailureIsEmptyChoices(t *testing.T) {
	h := newHarness(t, &countingSource{err: &wikipedia.FetchError{Op: "search results", Status: 503, Reason: "busy"}}, 0)
	rr := h.post(`{"type":4,"data":{"name":"article","options":[{"name":"title","type":3,"value":"Go","focused":true}]}}`, true)
	got := decodeReply(t, rr)
	if got.Type != 8 || len(got.Data.Choices) != 0 || !strings.Contains(rr.Body.String(), `"choices":[]`) {
		t.Fatalf("body = %q", rr.Body.String())
	}
}

func TestSlowCollaboratorTimesOut(t *testing.T) {
	src := &countingSource{delay: time.Second}
	h := newHarness(t, src, 30*time.Millisecond)
	rr := h.post(`{"type":2,"data":{"name":"article","options":[{"name":"title","type":3,"value":"Go"}]}}`, true)
	if rr.Code != http.StatusServiceUnavailable || rr.Body.String() != "request timed out" {
		t.Fatalf("status=%d body=%q", rr.Code, rr.Body.String())
	}
}

func TestMetaAndDocs(t *testing.T) {
	h := newHarness(t, &countingSource{}, 0)

	rr := httptest.NewRecorder()
	h.h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/meta/service", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"commands":["article"]`) ||
		!strings.Contains(rr.Body.String(), `"modules":["interactions","meta"]`) {
		t.Fatalf("meta/service = %d %q", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	h.h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "/api/interaction") {
		t.Fatalf("doc.json = %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "wikicord_http_requests_total") {
		t.Fatalf("metrics = %d", rr.Code)
	}
}

func TestFromConfigDefaults(t *testing.T) {
	t.Setenv("METRICS", "false")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	o := FromConfig(config.New())
	if !o.EnableSwagger || o.EnableProfiler || o.EnableMetrics {
		t.Fatalf("toggles = %+v", o)
	}
	if len(o.CORSOrigins) != 2 || o.Interactions.Timeout != 10*time.Second {
		t.Fatalf("options = %+v", o)
	}
}
