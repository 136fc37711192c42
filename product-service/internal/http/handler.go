package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nehueninos/nhnproparts/pkg/httpx"
	"github.com/nehueninos/nhnproparts/pkg/logger"
	"github.com/nehueninos/nhnproparts/product-service/internal/repository"
)

type Handler struct {
	repo    repository.ProductRepository
	timeout time.Duration
}

func NewHandler(repo repository.ProductRepository, timeout time.Duration) *Handler {
	return &Handler{repo: repo, timeout: timeout}
}

// GET /products
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.repo.GetAllProducts(ctx)
	if err != nil {
		logger.FromContext(ctx).Error().Err(err).Msg("failed to list products")
		httpx.RespondError(w, r, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	httpx.RespondJSON(w, r, http.StatusOK, products)
}

// GET /products/{id}
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")
	product, err := h.repo.GetProduct(ctx, id)
	switch {
	case errors.Is(err, repository.ErrInvalidProductID):
		httpx.RespondError(w, r, http.StatusBadRequest, "invalid_product_id", "invalid product id")
	case errors.Is(err, repository.ErrProductNotFound):
		httpx.RespondError(w, r, http.StatusNotFound, "product_not_found", "product not found")
	case err != nil:
		logger.FromContext(ctx).Error().Err(err).Str("product_id", id).Msg("failed to get product")
		httpx.RespondError(w, r, http.StatusInternalServerError, "internal_error", "internal server error")
	default:
		httpx.RespondJSON(w, r, http.StatusOK, product)
	}
}
