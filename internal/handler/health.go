package handler

import (
	"net/http"

	"imagehub/internal/pkg/httputils"
)

type HealthResponse struct {
	Status string `json:"status"`
}

// Health
// @Summary Health check
// @Description Report whether the server is up
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func Health(w http.ResponseWriter, r *http.Request) {
	httputils.ResponseJSON(w, http.StatusOK, HealthResponse{Status: "OK"})
}
