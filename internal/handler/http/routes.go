package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)

	router.Get("/api/version/", h.getVersion)

	router.Group(func(r chi.Router) {
		if h.requestTimeout > 0 {
			r.Use(middleware.Timeout(h.requestTimeout))
		}
		r.Post("/api/dispatch/{db}/{rpc}", h.dispatch)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
