package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ats-checker/internal/shared/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Port:             "0",
		CORSAllowOrigin:  []string{"http://localhost:5173"},
		ObjectStoreType:  "local",
		LocalStoreDir:    t.TempDir(),
		GroqAPIKey:       "test-key",
		ProviderPriority: []string{"groq"},
	}
}

func TestHealthRoute(t *testing.T) {
	r := NewRouter(testConfig(t))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestHealthDegradedWithoutProviders(t *testing.T) {
	cfg := testConfig(t)
	cfg.GroqAPIKey = ""
	r := NewRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 with no configured providers, got %d", rec.Code)
	}
}

func TestMetricsRoute(t *testing.T) {
	r := NewRouter(testConfig(t))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "resume_processed_total") {
		t.Fatalf("expected metric series, got %s", rec.Body.String())
	}
}

func TestAdminRoutesRequireCredentials(t *testing.T) {
	r := NewRouter(testConfig(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/current_config", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAddr(t *testing.T) {
	cases := map[string]string{
		"":      ":8080",
		"9090":  ":9090",
		":7070": ":7070",
	}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
