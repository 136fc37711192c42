package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nehueninos/nhnproparts/pkg/circuitbreaker"
	"github.com/nehueninos/nhnproparts/storefront-service/internal/domain"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var ErrOrderRejected = errors.New("order rejected by backend")

const maxResponseBytes = 64 << 10

// orderRequest is the /pedido body. Field names follow the backend's camelCase contract.
type orderRequest struct {
	OrderID         string             `json:"orderId"`
	CustomerName    string             `json:"customerName"`
	CustomerEmail   string             `json:"customerEmail"`
	CustomerPhone   string             `json:"customerPhone"`
	CustomerAddress string             `json:"customerAddress"`
	Items           []orderItemRequest `json:"items"`
	Total           float64            `json:"total"`
	Shipping        shippingRequest    `json:"shipping"`
}

type orderItemRequest struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type shippingRequest struct {
	Method    string  `json:"method"`
	Price     float64 `json:"price"`
	Estimated string  `json:"estimated"`
}

type statusError struct {
	code int
	msg  string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.code, e.msg)
}

type orderResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// OrderSink posts orders to the order backend.
type OrderSink struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[struct{}]
}

func NewOrderSink(baseURL string, timeout time.Duration) *OrderSink {
	return &OrderSink{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (s *OrderSink) Name() string {
	return "orders-api"
}

// WithBreaker stops posting after repeated transport or 5xx failures. A
// backend that answers with a rejection is up and does not trip the breaker.
func (s *OrderSink) WithBreaker(settings circuitbreaker.Settings, log zerolog.Logger) *OrderSink {
	settings.IsFailure = func(err error) bool {
		if errors.Is(err, context.Canceled) {
			return false
		}
		var se *statusError
		if errors.As(err, &se) {
			return se.code >= http.StatusInternalServerError
		}
		return !errors.Is(err, ErrOrderRejected)
	}
	s.breaker = circuitbreaker.New[struct{}](settings, log)
	return s
}

func (s *OrderSink) Deliver(ctx context.Context, order domain.OrderPayload) error {
	if s.breaker == nil {
		return s.post(ctx, order)
	}
	_, err := s.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, s.post(ctx, order)
	})
	return err
}

func (s *OrderSink) post(ctx context.Context, order domain.OrderPayload) error {
	body, err := json.Marshal(toOrderRequest(order))
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/pedido", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post order: %w", err)
	}
	defer resp.Body.Close()

	var out orderResponse
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read order response: %w", err)
	}
	// a non-JSON body still yields a useful error below
	_ = json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := out.Message
		if msg == "" {
			msg = strings.TrimSpace(string(raw))
		}
		return fmt.Errorf("%w: %w", ErrOrderRejected, &statusError{code: resp.StatusCode, msg: msg})
	}
	if !out.OK {
		return fmt.Errorf("%w: %s", ErrOrderRejected, out.Message)
	}
	return nil
}

func toOrderRequest(order domain.OrderPayload) orderRequest {
	items := make([]orderItemRequest, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, orderItemRequest{
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price.InexactFloat64(),
		})
	}
	return orderRequest{
		OrderID:         order.OrderID,
		CustomerName:    order.Customer.Name,
		CustomerEmail:   order.Customer.Email,
		CustomerPhone:   order.Customer.Phone,
		CustomerAddress: order.Customer.Address,
		Items:           items,
		Total:           order.Total.InexactFloat64(),
		Shipping: shippingRequest{
			Method:    order.Shipping.Method,
			Price:     order.Shipping.Price.InexactFloat64(),
			Estimated: order.Shipping.Estimated,
		},
	}
}
