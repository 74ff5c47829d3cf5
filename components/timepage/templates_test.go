package timepage

import (
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-timepage/pkg/render/template/gotemplate"
	"github.com/goliatone/go-timepage/pkg/testsupport"
)

func TestNewEngine_DirectoryOverridesTimeTemplate(t *testing.T) {
	dir := t.TempDir()
	custom := "<p class=\"clock\">{{ currentTime }}</p>\n"
	if err := os.WriteFile(filepath.Join(dir, "time.html"), []byte(custom), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	engine, err := NewEngine(dir)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	rec := httptest.NewRecorder()
	Handler(WithRenderer(engine), WithClock(testsupport.Clock(noon))).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/time?timezone=UTC%2B3", nil))

	if got := rec.Body.String(); got != "<p class=\"clock\">2024-06-01 15:00:00 +03</p>\n" {
		t.Fatalf("unexpected body %q", got)
	}
}

func TestNewEngine_RejectsMissingOrFileDir(t *testing.T) {
	if _, err := NewEngine(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected error for missing dir")
	}

	file := filepath.Join(t.TempDir(), "time.html")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewEngine(file); err == nil {
		t.Fatalf("expected error when dir is a file")
	}
}

func TestNewEngine_BrokenOverrideFailsAtStartup(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "time.html"), []byte("{% if %}"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	if _, err := NewEngine(dir); err == nil {
		t.Fatalf("expected broken template to fail preload")
	}
}

func TestTemplatesFS_ContainsTimeTemplate(t *testing.T) {
	data, err := fs.ReadFile(TemplatesFS(), "time.html")
	if err != nil {
		t.Fatalf("read embedded template: %v", err)
	}
	if !strings.Contains(string(data), "{{ currentTime }}") {
		t.Fatalf("embedded template does not reference currentTime")
	}
}

func TestNewEngine_GlobalTitle(t *testing.T) {
	engine, err := NewEngine("", gotemplate.WithGlobalData(map[string]any{"title": "World clock"}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	rec := httptest.NewRecorder()
	Handler(WithRenderer(engine), WithClock(testsupport.Clock(noon))).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/time", nil))

	if body := rec.Body.String(); !strings.Contains(body, "<title>World clock</title>") {
		t.Fatalf("expected global title in page, got:\n%s", body)
	}

	plain, err := NewEngine("")
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	rec = httptest.NewRecorder()
	Handler(WithRenderer(plain), WithClock(testsupport.Clock(noon))).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/time", nil))
	if body := rec.Body.String(); !strings.Contains(body, "<title>Current time</title>") {
		t.Fatalf("expected default title, got:\n%s", body)
	}
}
