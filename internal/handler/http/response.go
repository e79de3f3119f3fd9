package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MKhiriev/eigen-library/internal/logger"
	"github.com/MKhiriev/eigen-library/internal/utils"
	"github.com/MKhiriev/eigen-library/models"
)

const internalErrorMessage = "Internal server error"

func writeResponse(w http.ResponseWriter, r *http.Request, data any, statusCode int) {
	if _, err := utils.WriteJSON(w, data, statusCode); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}

// writeError maps err to a status code and writes the error envelope.
// Messages of server-side failures are not exposed to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
		writeErrorMessage(w, r, status, internalErrorMessage)
		return
	}

	log.Debug().Err(err).Int("status", status).Msg("request rejected")
	writeErrorMessage(w, r, status, err.Error())
}

func writeErrorMessage(w http.ResponseWriter, r *http.Request, status int, message string) {
	response := models.ErrorResponse{
		StatusCode: status,
		Message:    message,
		Error:      http.StatusText(status),
		Path:       r.URL.Path,
		Timestamp:  time.Now().UTC(),
	}
	if traceID, ok := utils.GetTraceIDFromContext(r.Context()); ok {
		response.TraceID = traceID
	} else {
		// withRecovery runs outside withTraceID and only sees the echoed header
		response.TraceID = w.Header().Get(traceIDHeader)
	}

	writeResponse(w, r, response, status)
}

func (h *Handler) routeNotFound(w http.ResponseWriter, r *http.Request) {
	writeErrorMessage(w, r, http.StatusNotFound, fmt.Sprintf("Cannot %s %s", r.Method, r.URL.Path))
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeErrorMessage(w, r, http.StatusMethodNotAllowed, fmt.Sprintf("Method %s is not allowed on %s", r.Method, r.URL.Path))
}

// decodeRequest reads the JSON body into dst and answers 400 on failure.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := utils.ReadJSON(w, r, dst); err != nil {
		var target error = err
		if !errors.Is(err, utils.ErrBodyTooLarge) {
			target = fmt.Errorf("%w: %w", errInvalidRequestBody, err)
		}
		writeError(w, r, target)
		return false
	}
	return true
}
