package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/archetype/internal/settings"
)

type controllableClock struct {
	mu  sync.RWMutex
	now time.Time
}

func newControllableClock(initial time.Time) *controllableClock {
	return &controllableClock{now: initial}
}

func (c *controllableClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

func (c *controllableClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// lookupFunc adapts a function to settings.Source.
type lookupFunc func(key string) (string, bool)

func (f lookupFunc) Lookup(key string) (string, bool) { return f(key) }

func setupTestRouter(t *testing.T, source settings.Source) (http.Handler, *controllableClock) {
	t.Helper()

	clock := newControllableClock(time.Date(2024, 11, 1, 12, 0, 0, 0, time.UTC))

	handler := NewHandler(source, WithClock(clock.Now))
	logger := zaptest.NewLogger(t)
	router := NewRouter(handler, logger, WithLogging(false))

	return router, clock
}

func TestRequestIDHelpers(t *testing.T) {
	ctx := contextWithRequestID(context.Background(), "abc")
	if got := requestIDFromContext(ctx); got != "abc" {
		t.Fatalf("expected abc, got %s", got)
	}
	if got := requestIDFromContext(context.Background()); got != "" {
		t.Fatalf("expected empty request id, got %s", got)
	}
}

func TestDefaultTextValueReadsConfiguredKey(t *testing.T) {
	var requested []string
	source := lookupFunc(func(key string) (string, bool) {
		requested = append(requested, key)
		if key == "defaultTextValue" {
			return "value", true
		}
		return "", false
	})

	got, ok := NewHandler(source).DefaultTextValue()
	if !ok || got != "value" {
		t.Fatalf("expected (value, true), got (%q, %v)", got, ok)
	}
	if len(requested) != 1 || requested[0] != DefaultTextValueKey {
		t.Fatalf("expected a single lookup of %s, got %v", DefaultTextValueKey, requested)
	}
}

func TestDefaultTextValueWithoutSource(t *testing.T) {
	if _, ok := NewHandler(nil).DefaultTextValue(); ok {
		t.Fatalf("expected value to be absent without a settings source")
	}
}

func TestHealthEndpoint(t *testing.T) {
	router, clock := setupTestRouter(t, settings.NewMemorySource(nil))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body struct {
		Status    string    `json:"status"`
		Timestamp time.Time `json:"timestamp"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if body.Status != "ok" {
		t.Fatalf("expected status ok, got %s", body.Status)
	}
	if !body.Timestamp.Equal(clock.Now()) {
		t.Fatalf("expected timestamp %s, got %s", clock.Now(), body.Timestamp)
	}
}

func TestGetValueReturnsConfiguredValue(t *testing.T) {
	source := settings.NewMemorySource(map[string]string{"defaultTextValue": "value"})
	router, _ := setupTestRouter(t, source)

	for _, id := range []string{"0", "42", "-7"} {
		req := httptest.NewRequest(http.MethodGet, "/api/values/"+id, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("id %s: expected status 200, got %d", id, rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Fatalf("id %s: expected JSON content type, got %s", id, ct)
		}

		var body *string
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if body == nil || *body != "value" {
			t.Fatalf("id %s: expected \"value\", got %v", id, body)
		}
	}
}

func TestGetValueReturnsNullWhenAbsent(t *testing.T) {
	router, _ := setupTestRouter(t, settings.NewMemorySource(nil))

	req := httptest.NewRequest(http.MethodGet, "/api/values/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "null" {
		t.Fatalf("expected null body, got %s", got)
	}
}

func TestGetValueReturnsEmptyStringWhenSetEmpty(t *testing.T) {
	source := settings.NewMemorySource(map[string]string{"defaultTextValue": ""})
	router, _ := setupTestRouter(t, source)

	req := httptest.NewRequest(http.MethodGet, "/api/values/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := strings.TrimSpace(rec.Body.String()); got != `""` {
		t.Fatalf("expected empty JSON string, got %s", got)
	}
}

func TestGetValueRejectsNonIntegerID(t *testing.T) {
	source := settings.NewMemorySource(map[string]string{"defaultTextValue": "value"})
	router, _ := setupTestRouter(t, source)

	req := httptest.NewRequest(http.MethodGet, "/api/values/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body struct {
		Error      string `json:"error"`
		Suggestion string `json:"suggestion"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Error == "" || body.Suggestion == "" {
		t.Fatalf("expected error and suggestion to be populated, got %+v", body)
	}
}

func TestGetValueRejectsOtherMethods(t *testing.T) {
	router, _ := setupTestRouter(t, settings.NewMemorySource(nil))

	req := httptest.NewRequest(http.MethodPost, "/api/values/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
}

func TestErrorPageHTML(t *testing.T) {
	router, _ := setupTestRouter(t, settings.NewMemorySource(nil))

	req := httptest.NewRequest(http.MethodGet, "/error", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected HTML content type, got %s", ct)
	}
	if !strings.Contains(rec.Body.String(), "req-42") {
		t.Fatalf("expected request id in error page, got %s", rec.Body.String())
	}
}

func TestErrorPageJSON(t *testing.T) {
	router, _ := setupTestRouter(t, settings.NewMemorySource(nil))

	req := httptest.NewRequest(http.MethodGet, "/error", nil)
	req.Header.Set("X-Request-ID", "req-42")
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body struct {
		RequestID     string `json:"requestId"`
		ShowRequestID bool   `json:"showRequestId"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.RequestID != "req-42" || !body.ShowRequestID {
		t.Fatalf("unexpected error view: %+v", body)
	}
}

func TestWriteErrorViewWithoutRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/error", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()

	writeErrorView(rec, req, http.StatusInternalServerError)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	var body struct {
		ShowRequestID bool `json:"showRequestId"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.ShowRequestID {
		t.Fatalf("expected showRequestId to be false without a request id")
	}
}

func TestCorsPreflight(t *testing.T) {
	router, _ := setupTestRouter(t, settings.NewMemorySource(nil))

	req := httptest.NewRequest(http.MethodOptions, "/api/values/1", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Fatalf("expected Access-Control-Allow-Origin header to be set")
	}
}

func TestRequestIDPropagation(t *testing.T) {
	router, _ := setupTestRouter(t, settings.NewMemorySource(nil))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "test-request-id")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "test-request-id" {
		t.Fatalf("expected X-Request-ID header to be echoed, got %s", got)
	}
}

func TestRequestIDGenerated(t *testing.T) {
	router, _ := setupTestRouter(t, settings.NewMemorySource(nil))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); len(got) != 36 {
		t.Fatalf("expected generated UUID request id, got %q", got)
	}
}
