package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// OrderItem captures the price at submission time; it is not linked to the catalog.
type OrderItem struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type OrderShipping struct {
	Method    string          `json:"method"`
	Price     decimal.Decimal `json:"price"`
	Estimated string          `json:"estimated"`
}

// OrderPayload is the snapshot handed to the notification sinks. Total is
// computed once when the payload is built.
type OrderPayload struct {
	OrderID   string          `json:"order_id"`
	Customer  Customer        `json:"customer"`
	Items     []OrderItem     `json:"items"`
	Shipping  OrderShipping   `json:"shipping"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}

// DeliveryResult is the outcome of handing an order to one sink.
type DeliveryResult struct {
	Sink    string
	OrderID string
	Err     error
}

func (r DeliveryResult) OK() bool {
	return r.Err == nil
}
