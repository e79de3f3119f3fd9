package http

import (
	"net/http"

	"github.com/rs/cors"
)

var corsAllowedMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPut,
	http.MethodPatch,
	http.MethodPost,
	http.MethodDelete,
}

// withCORS answers preflight requests with 204 and allows the configured
// origins; "*" allows any origin.
func (h *Handler) withCORS() func(http.Handler) http.Handler {
	origins := h.cfg.CORS.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	c := cors.New(cors.Options{
		AllowedOrigins:       origins,
		AllowedMethods:       corsAllowedMethods,
		AllowedHeaders:       []string{"*"},
		ExposedHeaders:       []string{traceIDHeader},
		OptionsSuccessStatus: http.StatusNoContent,
	})

	return c.Handler
}
