package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"imagehub/internal/model"
	"imagehub/internal/pkg/httputils"
	"imagehub/internal/repository"
	"imagehub/internal/service"
)

type APIHandler struct {
	imageService service.ImageService
	log          *zap.Logger
}

func NewAPIHandler(imageService service.ImageService, log *zap.Logger) *APIHandler {
	return &APIHandler{imageService: imageService, log: log}
}

func (h *APIHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/images", h.listImages).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/images/{id}", h.getImage).Methods("GET", "OPTIONS")
}

type ImageListResponse struct {
	Success bool              `json:"success"`
	Count   int               `json:"count"`
	Images  []model.ImageView `json:"images"`
}

type ListErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// @Summary List images
// @Description Get metadata for every uploaded image, newest first
// @ID list-images
// @Produce json
// @Success 200 {object} ImageListResponse
// @Failure 500 {object} ListErrorResponse
// @Router /api/images [get]
func (h *APIHandler) listImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.imageService.List(r.Context())
	if err != nil {
		h.log.Error("failed to list images", zap.Error(err))
		httputils.ResponseJSON(w, http.StatusInternalServerError, ListErrorResponse{
			Success: false,
			Error:   "Failed to fetch images",
		})
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, ImageListResponse{
		Success: true,
		Count:   len(images),
		Images:  images,
	})
}

// @Summary Get image
// @Description Stream one image payload by record id
// @ID get-image
// @Produce octet-stream
// @Param id path string true "Image ID"
// @Success 200
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/images/{id} [get]
func (h *APIHandler) getImage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	image, stream, err := h.imageService.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			httputils.ResponseError(w, http.StatusNotFound, "Image not found")
		case errors.Is(err, repository.ErrBlobNotFound):
			httputils.ResponseError(w, http.StatusNotFound, "File not found")
		default:
			h.log.Error("failed to fetch image", zap.String("id", id), zap.Error(err))
			httputils.ResponseError(w, http.StatusInternalServerError, "Failed to fetch image")
		}
		return
	}
	defer stream.Close()

	// Headers go out only after the download stream opened successfully.
	// From here on an error is no longer reportable as a status code; the
	// connection just terminates short.
	w.Header().Set("Content-Type", image.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", image.OriginalName))
	w.Header().Set("Content-Length", strconv.FormatInt(image.Size, 10))

	if _, err := io.Copy(w, stream); err != nil {
		h.log.Error("image stream aborted", zap.String("id", id), zap.Error(err))
	}
}
