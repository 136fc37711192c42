package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusReceived OrderStatus = "RECEIVED"
)

const EventTypeOrderPlaced = "OrderPlaced"

// totalTolerance absorbs float rounding picked up on the way in.
var totalTolerance = decimal.New(1, -2)

var (
	ErrInvalidOrder  = errors.New("invalid order")
	ErrTotalMismatch = errors.New("order total does not match items plus shipping")
)

type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type OrderItem struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type Shipping struct {
	Method    string          `json:"method"`
	Price     decimal.Decimal `json:"price"`
	Estimated string          `json:"estimated"`
}

type Order struct {
	ID        uuid.UUID       `json:"id"`
	Customer  Customer        `json:"customer"`
	Items     []OrderItem     `json:"items"`
	Shipping  Shipping        `json:"shipping"`
	Total     decimal.Decimal `json:"total"`
	Status    OrderStatus     `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// OrderPlacedEvent is the outbox payload published once an order is stored.
type OrderPlacedEvent struct {
	OrderID        string          `json:"order_id"`
	CustomerName   string          `json:"customer_name"`
	CustomerEmail  string          `json:"customer_email"`
	CustomerPhone  string          `json:"customer_phone"`
	Items          []OrderItem     `json:"items"`
	ShippingMethod string          `json:"shipping_method"`
	ShippingPrice  decimal.Decimal `json:"shipping_price"`
	Total          decimal.Decimal `json:"total"`
	PlacedAt       time.Time       `json:"placed_at"`
}

func (o *Order) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum
}

// Validate checks the order is complete and that its total adds up to
// within a cent.
func (o *Order) Validate() error {
	if o.ID == uuid.Nil {
		return fmt.Errorf("%w: missing order id", ErrInvalidOrder)
	}
	required := []struct{ field, value string }{
		{"customer name", o.Customer.Name},
		{"customer email", o.Customer.Email},
		{"customer phone", o.Customer.Phone},
		{"customer address", o.Customer.Address},
		{"shipping method", o.Shipping.Method},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: missing %s", ErrInvalidOrder, r.field)
		}
	}
	if len(o.Items) == 0 {
		return fmt.Errorf("%w: no items", ErrInvalidOrder)
	}
	for i, it := range o.Items {
		if strings.TrimSpace(it.Name) == "" {
			return fmt.Errorf("%w: item %d has no name", ErrInvalidOrder, i)
		}
		if it.Quantity < 1 {
			return fmt.Errorf("%w: item %d quantity must be at least 1", ErrInvalidOrder, i)
		}
		if it.Price.IsNegative() {
			return fmt.Errorf("%w: item %d has a negative price", ErrInvalidOrder, i)
		}
	}
	if o.Shipping.Price.IsNegative() {
		return fmt.Errorf("%w: negative shipping price", ErrInvalidOrder)
	}
	if o.Total.Sub(o.Subtotal().Add(o.Shipping.Price)).Abs().GreaterThan(totalTolerance) {
		return fmt.Errorf("%w: %w", ErrInvalidOrder, ErrTotalMismatch)
	}
	return nil
}

func (o *Order) PlacedEvent() OrderPlacedEvent {
	return OrderPlacedEvent{
		OrderID:        o.ID.String(),
		CustomerName:   o.Customer.Name,
		CustomerEmail:  o.Customer.Email,
		CustomerPhone:  o.Customer.Phone,
		Items:          o.Items,
		ShippingMethod: o.Shipping.Method,
		ShippingPrice:  o.Shipping.Price,
		Total:          o.Total,
		PlacedAt:       o.CreatedAt,
	}
}
