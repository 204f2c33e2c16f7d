package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"imagehub/internal/config"
	"imagehub/internal/model"
)

const testTemplate = `<html><body>Images: {{.Count}}{{range .Images}}<p>{{.OriginalName}} {{kilobytes .Size}} {{shortDate .UploadedAt}}</p>{{end}}</body></html>`

func newDashboardRouter(t *testing.T, svc *fakeImageService, maxUploadSize int64) *mux.Router {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "dashboard.html"), []byte(testTemplate), 0644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	cfg := &config.Config{TemplatesDir: dir, MaxUploadSize: maxUploadSize}
	h, err := NewDashboardHandler(svc, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("new dashboard handler: %v", err)
	}

	router := mux.NewRouter()
	h.RegisterRoutes(router)
	return router
}

func multipartBody(t *testing.T, field, filename string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestUploadRedirectsToDashboard(t *testing.T) {
	svc := &fakeImageService{}
	router := newDashboardRouter(t, svc, 5*1024*1024)

	payload := bytes.Repeat([]byte{0x01}, 1024)
	body, contentType := multipartBody(t, "image", "photo.jpg", payload)

	req := httptest.NewRequest("POST", "/dashboard/upload", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d: %s", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("Location"); got != "/dashboard" {
		t.Errorf("Location = %q, want /dashboard", got)
	}
	if len(svc.uploads) != 1 {
		t.Fatalf("expected 1 upload, got %d", len(svc.uploads))
	}
	if svc.uploads[0].originalName != "photo.jpg" {
		t.Errorf("originalName = %q", svc.uploads[0].originalName)
	}
	if len(svc.uploads[0].data) != 1024 {
		t.Errorf("payload size = %d, want 1024", len(svc.uploads[0].data))
	}
}

func TestUploadMissingFileRejected(t *testing.T) {
	svc := &fakeImageService{}
	router := newDashboardRouter(t, svc, 5*1024*1024)

	body, contentType := multipartBody(t, "document", "notes.txt", []byte("hello"))

	req := httptest.NewRequest("POST", "/dashboard/upload", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if len(svc.uploads) != 0 {
		t.Errorf("expected no uploads, got %d", len(svc.uploads))
	}
}

func TestUploadAtSizeLimitAccepted(t *testing.T) {
	const limit = 5 * 1024 * 1024
	svc := &fakeImageService{}
	router := newDashboardRouter(t, svc, limit)

	// Exactly at the cap: the multipart framing around the file must not
	// count against the file size limit.
	body, contentType := multipartBody(t, "image", "full.jpg", bytes.Repeat([]byte{0x03}, limit))

	req := httptest.NewRequest("POST", "/dashboard/upload", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d: %s", rr.Code, rr.Body.String())
	}
	if len(svc.uploads) != 1 {
		t.Fatalf("expected 1 upload, got %d", len(svc.uploads))
	}
	if got := len(svc.uploads[0].data); got != limit {
		t.Errorf("payload size = %d, want %d", got, limit)
	}
}

func TestUploadOneByteOverLimitRejected(t *testing.T) {
	const limit = 5 * 1024 * 1024
	svc := &fakeImageService{}
	router := newDashboardRouter(t, svc, limit)

	body, contentType := multipartBody(t, "image", "over.jpg", bytes.Repeat([]byte{0x04}, limit+1))

	req := httptest.NewRequest("POST", "/dashboard/upload", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "File too large") {
		t.Errorf("body = %q, want file too large error", rr.Body.String())
	}
	if len(svc.uploads) != 0 {
		t.Errorf("expected no uploads, got %d", len(svc.uploads))
	}
}

func TestUploadTooLargeRejectedBeforeStore(t *testing.T) {
	svc := &fakeImageService{}
	router := newDashboardRouter(t, svc, 64)

	body, contentType := multipartBody(t, "image", "big.jpg", bytes.Repeat([]byte{0x02}, 10*1024))

	req := httptest.NewRequest("POST", "/dashboard/upload", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if len(svc.uploads) != 0 {
		t.Errorf("expected no uploads, got %d", len(svc.uploads))
	}
}

func TestDashboardRenders(t *testing.T) {
	svc := &fakeImageService{
		views: []model.ImageView{
			{ID: "a1", OriginalName: "photo.jpg", Size: 2048, UploadedAt: time.Now()},
		},
	}
	router := newDashboardRouter(t, svc, 5*1024*1024)

	req := httptest.NewRequest("GET", "/dashboard", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/html") {
		t.Errorf("Content-Type = %q", got)
	}
	if !strings.Contains(rr.Body.String(), "photo.jpg") {
		t.Errorf("body does not mention uploaded image: %s", rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "Images: 1") {
		t.Errorf("body does not show image count: %s", rr.Body.String())
	}
}

func TestDashboardStorageError(t *testing.T) {
	svc := &fakeImageService{listErr: os.ErrDeadlineExceeded}
	router := newDashboardRouter(t, svc, 5*1024*1024)

	req := httptest.NewRequest("GET", "/dashboard", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}
