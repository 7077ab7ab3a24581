package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-rest-api/internal/utils"
	"github.com/MKhiriev/go-rest-api/models"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, withLogging, h.withMetrics, withCORS(), withOptions)

	// the exposition handler compresses on its own
	if h.metrics != nil {
		router.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}

	router.Group(func(r chi.Router) {
		// the size cap sits behind inflation so it bounds the decoded body
		r.Use(withGzipBody, middleware.RequestSize(h.maxBodyBytes), withCompression(), h.withLanguage)
		if h.requestTimeout > 0 {
			r.Use(middleware.Timeout(h.requestTimeout))
		}

		r.Get("/version", h.getServerVersion)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/token", h.exchangeAPIKey)
			r.Post("/register", h.register)
			r.Post("/login", h.login)
			r.Post("/refresh", h.refresh)
			r.Post("/social/{provider}", h.socialLogin)
			r.With(h.auth).Post("/logout", h.logout)
		})

		r.Route("/{resource}", func(r chi.Router) {
			r.With(h.optionalAuth).Get("/", h.list)
			r.With(h.optionalAuth).Get("/{id}", h.get)
			r.With(h.auth).Post("/", h.create)
			r.With(h.auth).Put("/{id}", h.update)
			r.With(h.auth).Delete("/{id}", h.delete)
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, models.ErrorResponse{Error: http.StatusText(http.StatusNotFound)}, http.StatusNotFound)
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
