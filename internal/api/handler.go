package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/eugenenazirov/archetype/internal/settings"
	"github.com/eugenenazirov/archetype/internal/views"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// DefaultTextValueKey is the settings key served by the values endpoint.
const DefaultTextValueKey = "defaultTextValue"

// Handler wires the settings source into HTTP handlers.
type Handler struct {
	settings settings.Source

	clock func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(source settings.Source, opts ...HandlerOption) *Handler {
	h := &Handler{
		settings: source,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// DefaultTextValue returns the configured default text value and whether it is set.
func (h *Handler) DefaultTextValue() (string, bool) {
	if h.settings == nil {
		return "", false
	}
	return h.settings.Lookup(DefaultTextValueKey)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetValue(w http.ResponseWriter, r *http.Request) {
	if _, err := strconv.Atoi(r.PathValue("id")); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "id must be an integer", "Request /api/values/0 or any other integer id")
		return
	}

	value, ok := h.DefaultTextValue()
	if !ok {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, value)
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request) {
	writeErrorView(w, r, http.StatusOK)
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

// writeErrorView renders the error page for the current request, as JSON when
// the client asks for it and as HTML otherwise.
func writeErrorView(w http.ResponseWriter, r *http.Request, status int) {
	view := views.NewErrorView(requestIDFromContext(r.Context()))

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		writeJSON(w, status, view)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = view.Render(w)
}
