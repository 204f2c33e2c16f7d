package handler

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"imagehub/internal/config"
	"imagehub/internal/model"
	"imagehub/internal/service"
)

type DashboardHandler struct {
	imageService  service.ImageService
	tmpl          *template.Template
	maxUploadSize int64
	log           *zap.Logger
}

func NewDashboardHandler(imageService service.ImageService, cfg *config.Config, log *zap.Logger) (*DashboardHandler, error) {
	funcs := template.FuncMap{
		"kilobytes": func(size int64) string {
			return fmt.Sprintf("%.2f KB", float64(size)/1024)
		},
		"shortDate": func(t time.Time) string {
			return t.Format("02.01.2006")
		},
	}

	tmpl, err := template.New("dashboard.html").Funcs(funcs).
		ParseFiles(filepath.Join(cfg.TemplatesDir, "dashboard.html"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse dashboard template: %w", err)
	}

	return &DashboardHandler{
		imageService:  imageService,
		tmpl:          tmpl,
		maxUploadSize: cfg.MaxUploadSize,
		log:           log,
	}, nil
}

func (h *DashboardHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/dashboard", h.dashboard).Methods("GET")
	router.HandleFunc("/dashboard/upload", h.upload).Methods("POST")
}

type dashboardData struct {
	Images []model.ImageView
	Count  int
}

func (h *DashboardHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	images, err := h.imageService.List(r.Context())
	if err != nil {
		h.log.Error("failed to load dashboard", zap.Error(err))
		http.Error(w, "Error loading dashboard", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.Execute(w, dashboardData{Images: images, Count: len(images)}); err != nil {
		h.log.Error("failed to render dashboard", zap.Error(err))
	}
}

// @Summary Upload image
// @Description Upload one image via the multipart field "image"
// @ID upload-image
// @Accept mpfd
// @Param image formData file true "Image file"
// @Success 302
// @Failure 400
// @Failure 500
// @Router /dashboard/upload [post]
// multipartSlack covers boundary lines and part headers so that a file of
// exactly maxUploadSize bytes still fits in the request body. The limit on
// the file itself is enforced after FormFile.
const multipartSlack = 10 << 10

func (h *DashboardHandler) upload(w http.ResponseWriter, r *http.Request) {
	// Cap the body before parsing so a grossly oversized payload is rejected
	// here, before anything reaches blob storage.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+multipartSlack)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			http.Error(w, "File too large", http.StatusBadRequest)
			return
		}
		http.Error(w, "Invalid upload request", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "No file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadSize+1))
	if err != nil {
		h.log.Error("failed to read upload", zap.Error(err))
		http.Error(w, "Upload failed", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > h.maxUploadSize {
		http.Error(w, "File too large", http.StatusBadRequest)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if _, err := h.imageService.Upload(r.Context(), header.Filename, contentType, data); err != nil {
		h.log.Error("failed to upload image", zap.String("filename", header.Filename), zap.Error(err))
		http.Error(w, "Upload failed", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusFound)
}
