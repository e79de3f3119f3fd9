package http

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/eigen-library/internal/config"
	"github.com/MKhiriev/eigen-library/internal/logger"
	"github.com/MKhiriev/eigen-library/internal/utils"
	"github.com/MKhiriev/eigen-library/models"
)

func newMiddlewareTestHandler(cfg config.Server) *Handler {
	return NewHandler(newTestServices(), cfg, logger.Nop())
}

func TestWithRecovery(t *testing.T) {
	h := newMiddlewareTestHandler(config.Server{})

	handler := h.withRecovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/books", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeErrorResponse(t, rec)
	assert.Equal(t, internalErrorMessage, body.Message)
	assert.Equal(t, "Internal Server Error", body.Error)
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestWithRecovery_AbortHandlerIsRethrown(t *testing.T) {
	h := newMiddlewareTestHandler(config.Server{})

	handler := h.withRecovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestWithRecovery_PanicInsideRouter(t *testing.T) {
	services := newTestServices()
	services.BookService = &mockBookService{
		listBooksFn: func(context.Context) ([]models.Book, error) {
			panic("nil map")
		},
	}
	router := newTestRouter(t, services)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/books", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeErrorResponse(t, rec)
	assert.Equal(t, "/api/books", body.Path)
	assert.NotEmpty(t, body.TraceID)
}

func TestWithRecovery_LogsPanicWithTraceID(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(newTestServices(), config.Server{}, &logger.Logger{Logger: zerolog.New(&buf)})

	handler := h.withRecovery(h.withTraceID(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	req := httptest.NewRequest(http.MethodPost, "/api/borrowings", nil)
	req.Header.Set(traceIDHeader, "trace-panic")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "trace-panic", decodeErrorResponse(t, rec).TraceID)

	var panicEntry map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		if entry["message"] == "recovered from panic" {
			panicEntry = entry
		}
	}
	require.NotNil(t, panicEntry, "panic must be logged: %s", buf.String())
	assert.Equal(t, "error", panicEntry["level"])
	assert.Equal(t, "trace-panic", panicEntry["trace_id"])
	assert.Equal(t, "boom", panicEntry["panic"])
	assert.Equal(t, "/api/borrowings", panicEntry["path"])
	assert.EqualValues(t, http.StatusInternalServerError, panicEntry["status"])
	assert.NotEmpty(t, panicEntry["stack"])
	assert.Contains(t, buf.String(), `"message":"request failed"`)
}

func TestWithTraceID(t *testing.T) {
	h := newMiddlewareTestHandler(config.Server{})

	var seen string
	handler := h.withTraceID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen, _ = utils.GetTraceIDFromContext(r.Context())
	}))

	t.Run("reuses incoming header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(traceIDHeader, "trace-123")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, "trace-123", seen)
		assert.Equal(t, "trace-123", rec.Header().Get(traceIDHeader))
	})

	t.Run("generates when missing", func(t *testing.T) {
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get(traceIDHeader))
	})
}

func TestWithSecurityHeaders(t *testing.T) {
	router := newTestRouter(t, newTestServices())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/books", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "SAMEORIGIN", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "no-referrer", rec.Header().Get("Referrer-Policy"))
	assert.Equal(t, "0", rec.Header().Get("X-Xss-Protection"))
	assert.Equal(t, apiContentSecurityPolicy, rec.Header().Get("Content-Security-Policy"))
	assert.Equal(t, "same-origin", rec.Header().Get("Cross-Origin-Resource-Policy"))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestWithSecurityHeaders_HTTPSModeForcesSTS(t *testing.T) {
	h := newMiddlewareTestHandler(config.Server{HTTPSMode: true})
	handler := h.withSecurityHeaders()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/books", nil))

	assert.Contains(t, rec.Header().Get("Strict-Transport-Security"), "max-age=15552000")
}

func TestWithSecurityHeaders_DocsPolicy(t *testing.T) {
	h := newMiddlewareTestHandler(config.Server{})
	handler := h.withSecurityHeaders()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/index.html", nil))

	assert.Equal(t, docsContentSecurityPolicy, rec.Header().Get("Content-Security-Policy"))
}

func TestWithCORS_Preflight(t *testing.T) {
	router := newTestRouter(t, newTestServices())

	req := httptest.NewRequest(http.MethodOptions, "/api/borrowings", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestWithCORS_RestrictedOrigins(t *testing.T) {
	h := newMiddlewareTestHandler(config.Server{CORS: config.CORS{AllowedOrigins: []string{"https://library.example"}}})
	handler := h.withCORS()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	allowed := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	allowed.Header.Set("Origin", "https://library.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, allowed)
	assert.Equal(t, "https://library.example", rec.Header().Get("Access-Control-Allow-Origin"))

	denied := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	denied.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, denied)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestWithGzipRequest(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(`{"member_code":"M001","book_code":"JK-45"}`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	var received string
	handler := withGzipRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		received = string(b)
		assert.Empty(t, r.Header.Get("Content-Encoding"))
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/borrowings", &buf)
	req.Header.Set("Content-Encoding", "gzip")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"member_code":"M001","book_code":"JK-45"}`, received)
}

func TestWithGzipRequest_InvalidData(t *testing.T) {
	called := false
	handler := withGzipRequest(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/borrowings", strings.NewReader("not gzip"))
	req.Header.Set("Content-Encoding", "gzip")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompressResponse(t *testing.T) {
	router := newTestRouter(t, newTestServices())

	req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(body))
}

func TestResponseWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	assert.Equal(t, http.StatusOK, w.statusCode())

	w.WriteHeader(http.StatusTeapot)
	w.WriteHeader(http.StatusOK)
	n, err := w.Write([]byte("hello"))

	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, http.StatusTeapot, w.statusCode())
	assert.Equal(t, 5, w.size)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Same(t, rec, w.Unwrap())
}

func TestWithLogging_PassesThrough(t *testing.T) {
	h := newMiddlewareTestHandler(config.Server{})
	handler := h.withLogging(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("ok"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/version", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
