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

type RouterConfig struct {
	RequestTimeout time.Duration
	SessionTTL     time.Duration
	SecureCookies  bool
	// Metrics is optional.
	Metrics *metrics.HTTPMetrics
}

func NewRouter(h *Handler, log zerolog.Logger, cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}
	r.Use(httpx.RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.RespondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", h.ListProducts)
		r.Get("/categories", h.ListCategories)
		r.Get("/contact", h.Contact)

		r.Group(func(r chi.Router) {
			r.Use(SessionMiddleware(cfg.SessionTTL, cfg.SecureCookies))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", h.GetCart)
				r.Post("/items", h.AddItem)
				r.Put("/items/{product_id}", h.UpdateQuantity)
				r.Delete("/items/{product_id}", h.RemoveItem)
			})
			r.Post("/shipping/quote", h.Quote)
			r.Put("/shipping/selection", h.SelectShipping)
			r.Post("/checkout", h.RequestCheckout)
			r.Delete("/checkout", h.CancelCheckout)
			r.Post("/orders", h.SubmitOrder)
			r.Delete("/session", h.EndSession)
		})
	})

	return r
}
