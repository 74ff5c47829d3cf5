package timepage

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type recordingHandler struct {
	called bool
	id     string
	seen   bool
}

func (h *recordingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.called = true
	h.id, h.seen = TimezoneFromContext(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func TestValidator_MissingParameterPassesEmptyMarker(t *testing.T) {
	next := &recordingHandler{}
	rec := httptest.NewRecorder()
	Validator(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/time", nil))

	if !next.called {
		t.Fatalf("expected next handler to run")
	}
	if !next.seen || next.id != "" {
		t.Fatalf("expected empty marker, got id=%q seen=%v", next.id, next.seen)
	}
}

func TestValidator_AttachesNormalizedTimezone(t *testing.T) {
	next := &recordingHandler{}
	rec := httptest.NewRecorder()
	Validator(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/time?timezone=GMT+05:30", nil))

	if !next.called {
		t.Fatalf("expected next handler to run")
	}
	if next.id != "GMT+05:30" {
		t.Fatalf("expected normalized id, got %q", next.id)
	}
}

func TestValidator_RejectsAndStopsPipeline(t *testing.T) {
	var logs bytes.Buffer
	next := &recordingHandler{}
	rec := httptest.NewRecorder()
	h := Validator(next, WithLogger(slog.New(slog.NewJSONHandler(&logs, nil))))
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/time?timezone=Not%2FAZone", nil))

	if next.called {
		t.Fatalf("next handler must not run for an invalid timezone")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<h1>Invalid timezone</h1>") {
		t.Fatalf("unexpected body:\n%s", body)
	}
	if !strings.Contains(body, "Not/AZone") {
		t.Fatalf("expected rejected value in body:\n%s", body)
	}
	if !strings.Contains(logs.String(), "timezone rejected") {
		t.Fatalf("expected rejection to be logged, got %q", logs.String())
	}
}

func TestValidator_LogsResolutionAtDebug(t *testing.T) {
	var logs bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	rec := httptest.NewRecorder()
	Validator(&recordingHandler{}, WithLogger(log)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/time?timezone=Asia/Tokyo", nil))

	if !strings.Contains(logs.String(), `"location":"Asia/Tokyo"`) {
		t.Fatalf("expected debug resolution log, got %q", logs.String())
	}
}

func TestTimezoneFromContext_WithoutValidator(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/time", nil)
	if _, ok := TimezoneFromContext(req.Context()); ok {
		t.Fatalf("expected no marker on a fresh request")
	}
}
