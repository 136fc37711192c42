package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nehueninos/nhnproparts/pkg/httpx"
	"github.com/nehueninos/nhnproparts/storefront-service/internal/checkout"
	"github.com/nehueninos/nhnproparts/storefront-service/internal/domain"
)

type Storefront interface {
	Products(ctx context.Context, category, query string) ([]domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
	ContactLink() string
	Session(ctx context.Context, sessionID string) (*domain.Session, error)
	AddItem(ctx context.Context, sessionID, productID string) (*domain.Session, error)
	UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*domain.Session, error)
	RemoveItem(ctx context.Context, sessionID, productID string) (*domain.Session, error)
	Quote(ctx context.Context, sessionID, postalCode string) (*domain.Session, error)
	SelectShipping(ctx context.Context, sessionID string, optionID domain.ShippingMethod) (*domain.Session, error)
	RequestCheckout(ctx context.Context, sessionID string) (*domain.Session, error)
	CancelCheckout(ctx context.Context, sessionID string) (*domain.Session, error)
	SubmitOrder(ctx context.Context, sessionID string, form domain.ContactForm) (checkout.Receipt, error)
	EndSession(ctx context.Context, sessionID string) error
}

type Handler struct {
	svc         Storefront
	timeout     time.Duration
	maxBodySize int64
}

func NewHandler(svc Storefront, timeout time.Duration, maxBodySize int64) *Handler {
	return &Handler{
		svc:         svc,
		timeout:     timeout,
		maxBodySize: maxBodySize,
	}
}

// GET /api/v1/products?category=&q=
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	q := r.URL.Query()
	products, err := h.svc.Products(ctx, q.Get("category"), q.Get("q"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	httpx.RespondJSON(w, r, http.StatusOK, products)
}

// GET /api/v1/categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	categories, err := h.svc.Categories(ctx)
	if err != nil {
		handleError(w, r, err)
		return
	}
	httpx.RespondJSON(w, r, http.StatusOK, categories)
}

// GET /api/v1/contact
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	httpx.RespondJSON(w, r, http.StatusOK, ContactResponseDTO{Link: h.svc.ContactLink()})
}

// GET /api/v1/cart
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.respondSession(w, r, http.StatusOK, func(ctx context.Context, id string) (*domain.Session, error) {
		return h.svc.Session(ctx, id)
	})
}

// POST /api/v1/cart/items
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if !h.decode(w, r, &req) {
		return
	}
	productID := strings.TrimSpace(req.ProductID)
	if productID == "" {
		httpx.RespondError(w, r, http.StatusBadRequest, "invalid_product_id", "product_id es obligatorio")
		return
	}

	h.respondSession(w, r, http.StatusCreated, func(ctx context.Context, id string) (*domain.Session, error) {
		return h.svc.AddItem(ctx, id, productID)
	})
}

// PUT /api/v1/cart/items/{product_id}
func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")
	var req UpdateQuantityRequestDTO
	if !h.decode(w, r, &req) {
		return
	}

	h.respondSession(w, r, http.StatusOK, func(ctx context.Context, id string) (*domain.Session, error) {
		return h.svc.UpdateQuantity(ctx, id, productID, req.Quantity)
	})
}

// DELETE /api/v1/cart/items/{product_id}
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")

	h.respondSession(w, r, http.StatusOK, func(ctx context.Context, id string) (*domain.Session, error) {
		return h.svc.RemoveItem(ctx, id, productID)
	})
}

// POST /api/v1/shipping/quote
// An unknown postal code is not an error: the response carries no options and
// asks the shopper for another code.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req QuoteRequestDTO
	if !h.decode(w, r, &req) {
		return
	}

	sess, err := h.svc.Quote(ctx, getSessionID(r.Context()), req.PostalCode)
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := QuoteResponseDTO{PostalCode: sess.PostalCode, Province: sess.Province, Options: sess.Options}
	if len(sess.Options) == 0 {
		resp.Options = []domain.ShippingOption{}
		resp.Message = "No encontramos envíos para ese código postal, probá con otro"
	}
	httpx.RespondJSON(w, r, http.StatusOK, resp)
}

// PUT /api/v1/shipping/selection
func (h *Handler) SelectShipping(w http.ResponseWriter, r *http.Request) {
	var req SelectShippingRequestDTO
	if !h.decode(w, r, &req) {
		return
	}

	h.respondSession(w, r, http.StatusOK, func(ctx context.Context, id string) (*domain.Session, error) {
		return h.svc.SelectShipping(ctx, id, req.OptionID)
	})
}

// POST /api/v1/checkout
func (h *Handler) RequestCheckout(w http.ResponseWriter, r *http.Request) {
	h.respondSession(w, r, http.StatusOK, func(ctx context.Context, id string) (*domain.Session, error) {
		return h.svc.RequestCheckout(ctx, id)
	})
}

// DELETE /api/v1/checkout
func (h *Handler) CancelCheckout(w http.ResponseWriter, r *http.Request) {
	h.respondSession(w, r, http.StatusOK, func(ctx context.Context, id string) (*domain.Session, error) {
		return h.svc.CancelCheckout(ctx, id)
	})
}

// POST /api/v1/orders
func (h *Handler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var form domain.ContactForm
	if !h.decode(w, r, &form) {
		return
	}

	receipt, err := h.svc.SubmitOrder(ctx, getSessionID(r.Context()), form)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httpx.RespondJSON(w, r, http.StatusCreated, OrderResponseDTO{
		OrderID:     receipt.Order.OrderID,
		Total:       receipt.Order.Total,
		MessageLink: receipt.MessageLink,
		Order:       receipt.Order,
	})
}

// DELETE /api/v1/session
func (h *Handler) EndSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.svc.EndSession(ctx, getSessionID(r.Context())); err != nil {
		handleError(w, r, err)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondSession(w http.ResponseWriter, r *http.Request, status int, op func(context.Context, string) (*domain.Session, error)) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sess, err := op(ctx, getSessionID(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	httpx.RespondJSON(w, r, status, toCartResponse(sess))
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httpx.DecodeJSON(w, r, h.maxBodySize, dst); err != nil {
		httpx.RespondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return false
	}
	return true
}
