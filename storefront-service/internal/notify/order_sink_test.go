package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nehueninos/nhnproparts/pkg/circuitbreaker"
	"github.com/nehueninos/nhnproparts/storefront-service/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder() domain.OrderPayload {
	return domain.OrderPayload{
		OrderID: "0b5e2a7c-1111-2222-3333-444455556666",
		Customer: domain.Customer{
			Name:    "Juan Pérez",
			Email:   "juan@example.com",
			Phone:   "3704 123456",
			Address: "Belgrano 123",
		},
		Items: []domain.OrderItem{
			{Name: "Filtro de aceite", Quantity: 2, Price: decimal.NewFromInt(1000)},
		},
		Shipping: domain.OrderShipping{
			Method:    "Correo Argentino - Retiro por sucursal",
			Price:     decimal.NewFromInt(500),
			Estimated: "3 días hábiles",
		},
		Total:     decimal.NewFromInt(2500),
		CreatedAt: time.Now(),
	}
}

func TestOrderSink_Deliver(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/pedido", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true,"message":"Pedido recibido"}`))
	}))
	defer srv.Close()

	sink := NewOrderSink(srv.URL+"/", time.Second)
	err := sink.Deliver(context.Background(), sampleOrder())

	require.NoError(t, err)
	assert.Equal(t, "0b5e2a7c-1111-2222-3333-444455556666", got["orderId"])
	assert.Equal(t, "Juan Pérez", got["customerName"])
	assert.Equal(t, "juan@example.com", got["customerEmail"])
	assert.Equal(t, "3704 123456", got["customerPhone"])
	assert.Equal(t, "Belgrano 123", got["customerAddress"])
	assert.Equal(t, float64(2500), got["total"])

	items := got["items"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, "Filtro de aceite", item["name"])
	assert.Equal(t, float64(2), item["quantity"])
	assert.Equal(t, float64(1000), item["price"])

	shipping := got["shipping"].(map[string]any)
	assert.Equal(t, "Correo Argentino - Retiro por sucursal", shipping["method"])
	assert.Equal(t, float64(500), shipping["price"])
	assert.Equal(t, "3 días hábiles", shipping["estimated"])
}

func TestOrderSink_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"server error", http.StatusInternalServerError, `{"ok":false,"message":"db down"}`, "db down"},
		{"plain text error", http.StatusBadGateway, "bad gateway", "bad gateway"},
		{"ok false", http.StatusOK, `{"ok":false,"message":"duplicado"}`, "duplicado"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := NewOrderSink(srv.URL, time.Second).Deliver(context.Background(), sampleOrder())

			require.ErrorIs(t, err, ErrOrderRejected)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestOrderSink_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := NewOrderSink(url, time.Second).Deliver(context.Background(), sampleOrder())

	assert.ErrorContains(t, err, "post order")
}

func TestOrderSink_Name(t *testing.T) {
	assert.Equal(t, "orders-api", NewOrderSink("http://localhost", time.Second).Name())
}

func TestOrderSink_BreakerTripsOnServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	sink := NewOrderSink(srv.URL, time.Second).WithBreaker(circuitbreaker.Settings{
		Name:        "orders-api",
		MaxFailures: 2,
		OpenTimeout: time.Minute,
	}, zerolog.Nop())

	for range 2 {
		assert.ErrorIs(t, sink.Deliver(context.Background(), sampleOrder()), ErrOrderRejected)
	}
	err := sink.Deliver(context.Background(), sampleOrder())

	assert.ErrorIs(t, err, circuitbreaker.ErrOpen)
	assert.Equal(t, int32(2), hits.Load())
}

func TestOrderSink_BreakerIgnoresRejections(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"ok":false,"message":"el pedido ya fue registrado"}`))
	}))
	defer srv.Close()

	sink := NewOrderSink(srv.URL, time.Second).WithBreaker(circuitbreaker.Settings{
		Name:        "orders-api",
		MaxFailures: 1,
		OpenTimeout: time.Minute,
	}, zerolog.Nop())

	for range 3 {
		assert.ErrorIs(t, sink.Deliver(context.Background(), sampleOrder()), ErrOrderRejected)
	}
	assert.Equal(t, int32(3), hits.Load())
}
