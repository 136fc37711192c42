package http

import (
	"time"

	"github.com/google/uuid"
	"github.com/nehueninos/nhnproparts/orders-service/internal/domain"
	"github.com/shopspring/decimal"
)

// PedidoRequest is the order notification body sent by the storefront.
type PedidoRequest struct {
	OrderID         string              `json:"orderId"`
	CustomerName    string              `json:"customerName"`
	CustomerEmail   string              `json:"customerEmail"`
	CustomerPhone   string              `json:"customerPhone"`
	CustomerAddress string              `json:"customerAddress"`
	Items           []PedidoItemRequest `json:"items"`
	Total           float64             `json:"total"`
	Shipping        PedidoShipping      `json:"shipping"`
}

type PedidoItemRequest struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type PedidoShipping struct {
	Method    string  `json:"method"`
	Price     float64 `json:"price"`
	Estimated string  `json:"estimated"`
}

type PedidoResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	OrderID string `json:"orderId,omitempty"`
}

type OrderResponse struct {
	ID        string              `json:"id"`
	Customer  domain.Customer     `json:"customer"`
	Items     []OrderItemResponse `json:"items"`
	Shipping  ShippingResponse    `json:"shipping"`
	Total     string              `json:"total"`
	Status    string              `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
}

type OrderItemResponse struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}

type ShippingResponse struct {
	Method    string `json:"method"`
	Price     string `json:"price"`
	Estimated string `json:"estimated"`
}

// money keeps the shortest decimal form of an incoming float amount.
// Sub-cent unit prices survive; Postgres rounds the NUMERIC columns on insert.
func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func (p PedidoRequest) toOrder(now time.Time) (*domain.Order, error) {
	id, err := uuid.Parse(p.OrderID)
	if err != nil {
		return nil, err
	}
	items := make([]domain.OrderItem, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, domain.OrderItem{
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    money(it.Price),
		})
	}
	return &domain.Order{
		ID: id,
		Customer: domain.Customer{
			Name:    p.CustomerName,
			Email:   p.CustomerEmail,
			Phone:   p.CustomerPhone,
			Address: p.CustomerAddress,
		},
		Items: items,
		Shipping: domain.Shipping{
			Method:    p.Shipping.Method,
			Price:     money(p.Shipping.Price),
			Estimated: p.Shipping.Estimated,
		},
		Total:     money(p.Total),
		Status:    domain.OrderStatusReceived,
		CreatedAt: now.UTC(),
	}, nil
}

func toOrderResponse(o *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price.StringFixed(2),
		})
	}
	return OrderResponse{
		ID:       o.ID.String(),
		Customer: o.Customer,
		Items:    items,
		Shipping: ShippingResponse{
			Method:    o.Shipping.Method,
			Price:     o.Shipping.Price.StringFixed(2),
			Estimated: o.Shipping.Estimated,
		},
		Total:     o.Total.StringFixed(2),
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
	}
}
