package http

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// withRecovery turns a panic in any later handler into a 500 error envelope.
// http.ErrAbortHandler is re-raised so the server can abort the connection.
//
// It wraps withTraceID, so the request context carries no logger yet; the
// handler logger is tagged with the trace id already echoed in the response
// header instead.
func (h *Handler) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			log := h.logger.GetChildLogger()
			if traceID := w.Header().Get(traceIDHeader); traceID != "" {
				log.UpdateContext(func(c zerolog.Context) zerolog.Context {
					return c.Str("trace_id", traceID)
				})
			}
			r = r.WithContext(log.WithContext(r.Context()))

			log.Error().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", http.StatusInternalServerError).
				Str("panic", fmt.Sprint(rec)).
				Bytes("stack", debug.Stack()).
				Msg("recovered from panic")

			writeError(w, r, fmt.Errorf("%w: %v", errPanicRecovered, rec))
		}()

		next.ServeHTTP(w, r)
	})
}
