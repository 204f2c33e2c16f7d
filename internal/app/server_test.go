package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gorilla/handlers"
	"go.uber.org/zap"

	"imagehub/internal/config"
	"imagehub/internal/handler"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "dashboard.html"), []byte("<html>{{.Count}}</html>"), 0644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	cfg := &config.Config{TemplatesDir: dir, MaxUploadSize: 5 * 1024 * 1024}

	apiHandler := handler.NewAPIHandler(nil, zap.NewNop())
	dashboardHandler, err := handler.NewDashboardHandler(nil, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("new dashboard handler: %v", err)
	}
	authHandler := handler.NewAuthHandler(nil, zap.NewNop())

	return NewServer(apiHandler, dashboardHandler, authHandler, dir)
}

func corsMiddleware() func(http.Handler) http.Handler {
	// Same policy Run applies.
	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Requested-With"}),
	)
}

func TestCORSPreflightRequest(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest("OPTIONS", "/api/images", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")

	rr := httptest.NewRecorder()
	corsMiddleware()(server.router).ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %v, want *", got)
	}
	if rr.Header().Get("Access-Control-Allow-Headers") == "" {
		t.Error("Access-Control-Allow-Headers should not be empty for OPTIONS request")
	}
}

func TestHealthRoute(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "http://example.com")

	rr := httptest.NewRecorder()
	corsMiddleware()(server.router).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %v, want *", got)
	}

	var body handler.HealthResponse
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Status != "OK" {
		t.Errorf("status = %q, want OK", body.Status)
	}
}
