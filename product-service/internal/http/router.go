package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nehueninos/nhnproparts/pkg/httpx"
	"github.com/nehueninos/nhnproparts/pkg/metrics"
	"github.com/rs/zerolog"
)

func NewRouter(h *Handler, log zerolog.Logger, m *metrics.HTTPMetrics, requestTimeout time.Duration) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if m != nil {
		r.Use(m.Middleware)
	}
	r.Use(httpx.RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := h.repo.Ping(r.Context()); err != nil {
			httpx.RespondJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		httpx.RespondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Get("/{id}", h.GetProduct)
	})

	return r
}
