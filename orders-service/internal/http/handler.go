package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nehueninos/nhnproparts/orders-service/internal/repository"
	"github.com/nehueninos/nhnproparts/pkg/httpx"
	"github.com/nehueninos/nhnproparts/pkg/logger"
)

type Handler struct {
	repo        repository.OrderRepository
	timeout     time.Duration
	maxBodySize int64
	now         func() time.Time
}

func NewHandler(repo repository.OrderRepository, timeout time.Duration, maxBodySize int64) *Handler {
	return &Handler{
		repo:        repo,
		timeout:     timeout,
		maxBodySize: maxBodySize,
		now:         time.Now,
	}
}

// POST /pedido
func (h *Handler) CreatePedido(w http.ResponseWriter, r *http.Request) {
	var req PedidoRequest
	if err := httpx.DecodeJSON(w, r, h.maxBodySize, &req); err != nil {
		reject(w, r, http.StatusBadRequest, "cuerpo de pedido inválido")
		return
	}

	order, err := req.toOrder(h.now())
	if err != nil {
		reject(w, r, http.StatusBadRequest, "identificador de pedido inválido")
		return
	}
	if err := order.Validate(); err != nil {
		reject(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	log := logger.FromContext(ctx)
	if err := h.repo.CreateOrder(ctx, order); err != nil {
		if errors.Is(err, repository.ErrDuplicateOrder) {
			reject(w, r, http.StatusConflict, "el pedido ya fue registrado")
			return
		}
		log.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to store order")
		reject(w, r, http.StatusInternalServerError, "no se pudo registrar el pedido")
		return
	}

	log.Info().
		Str("order_id", order.ID.String()).
		Str("total", order.Total.String()).
		Int("items", len(order.Items)).
		Msg("order received")
	httpx.RespondJSON(w, r, http.StatusCreated, PedidoResponse{
		OK:      true,
		Message: "Pedido recibido",
		OrderID: order.ID.String(),
	})
}

// GET /orders/{order_id}
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		httpx.RespondError(w, r, http.StatusBadRequest, "invalid_order_id", "invalid order id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	order, err := h.repo.GetOrderByID(ctx, id)
	if errors.Is(err, repository.ErrOrderNotFound) {
		httpx.RespondError(w, r, http.StatusNotFound, "order_not_found", "order not found")
		return
	}
	if err != nil {
		logger.FromContext(ctx).Error().Err(err).Str("order_id", id.String()).Msg("failed to load order")
		httpx.RespondError(w, r, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	httpx.RespondJSON(w, r, http.StatusOK, toOrderResponse(order))
}

func reject(w http.ResponseWriter, r *http.Request, status int, message string) {
	httpx.RespondJSON(w, r, status, PedidoResponse{OK: false, Message: message})
}

