package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/MKhiriev/eigen-library/docs" // swagger document
)

const (
	apiPrefix   = "/api"
	docsPath    = apiPrefix + "/docs"
	docsJSONURL = docsPath + "/doc.json"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()

	router.Use(
		h.withRecovery,
		h.withTraceID,
		h.withSecurityHeaders(),
		h.withCORS(),
		h.withLogging,
		withGzipRequest,
		middleware.Compress(5, "application/json"),
	)

	router.NotFound(h.routeNotFound)
	router.MethodNotAllowed(h.methodNotAllowed)

	router.Route(apiPrefix, func(r chi.Router) {
		r.Route("/books", func(r chi.Router) {
			r.Get("/", h.listBooks)
			r.Post("/", h.createBook)
			r.Get("/{code}", h.getBook)
		})

		r.Route("/members", func(r chi.Router) {
			r.Get("/", h.listMembers)
			r.Post("/", h.createMember)
			r.Get("/{code}", h.getMember)
			r.Get("/{code}/borrowings", h.listMemberBorrowings)
		})

		r.Route("/borrowings", func(r chi.Router) {
			r.Post("/", h.borrowBook)
			r.Post("/return", h.returnBook)
		})

		r.Get("/version", h.getServerVersion)
		r.Get("/health", h.checkHealth)

		r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, docsPath+"/index.html", http.StatusMovedPermanently)
		})
		r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL(docsJSONURL)))
	})

	return router
}
