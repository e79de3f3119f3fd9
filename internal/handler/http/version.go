package http

import (
	"net/http"

	"github.com/MKhiriev/eigen-library/internal/logger"
	"github.com/MKhiriev/eigen-library/models"
)

// getServerVersion godoc
//
//	@Summary	API version
//	@Tags		Service
//	@Produce	json
//	@Success	200	{object}	models.VersionResponse
//	@Router		/version [get]
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	version := h.services.AppInfoService.GetAppVersion(r.Context())

	writeResponse(w, r, models.VersionResponse{Version: version}, http.StatusOK)
}

// checkHealth godoc
//
//	@Summary	Health check
//	@Tags		Service
//	@Produce	json
//	@Success	200	{object}	models.HealthResponse
//	@Failure	503	{object}	models.ErrorResponse
//	@Router		/health [get]
func (h *Handler) checkHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.services.AppInfoService.CheckHealth(r.Context()); err != nil {
		logger.FromRequest(r).Err(err).Msg("health check failed")
		writeErrorMessage(w, r, http.StatusServiceUnavailable, "database is unavailable")
		return
	}

	writeResponse(w, r, models.HealthResponse{Status: "ok"}, http.StatusOK)
}
