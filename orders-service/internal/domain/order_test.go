package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validOrder() *Order {
	return &Order{
		ID:       uuid.New(),
		Customer: Customer{Name: "Ana", Email: "ana@example.com", Phone: "3704000000", Address: "Mitre 1"},
		Items: []OrderItem{
			{Name: "Filtro de aceite", Quantity: 2, Price: decimal.NewFromInt(1000)},
		},
		Shipping:  Shipping{Method: "Correo Argentino - Retiro por sucursal", Price: decimal.NewFromInt(500), Estimated: "3 días hábiles"},
		Total:     decimal.NewFromInt(2500),
		CreatedAt: time.Now(),
	}
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, validOrder().Validate())
}

func TestValidate_FreeShipping(t *testing.T) {
	o := validOrder()
	o.Shipping = Shipping{Method: "Retirar por local", Price: decimal.Zero, Estimated: "Disponible hoy"}
	o.Total = decimal.NewFromInt(2000)

	assert.NoError(t, o.Validate())
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Order)
	}{
		{"nil id", func(o *Order) { o.ID = uuid.Nil }},
		{"blank name", func(o *Order) { o.Customer.Name = "  " }},
		{"blank email", func(o *Order) { o.Customer.Email = "" }},
		{"blank shipping method", func(o *Order) { o.Shipping.Method = "" }},
		{"no items", func(o *Order) { o.Items = nil }},
		{"zero quantity", func(o *Order) { o.Items[0].Quantity = 0 }},
		{"negative price", func(o *Order) { o.Items[0].Price = decimal.NewFromInt(-1) }},
		{"negative shipping", func(o *Order) { o.Shipping.Price = decimal.NewFromInt(-5) }},
		{"total mismatch", func(o *Order) { o.Total = decimal.NewFromInt(2499) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := validOrder()
			tt.mutate(o)
			assert.ErrorIs(t, o.Validate(), ErrInvalidOrder)
		})
	}
}

func TestValidate_TotalMismatchIsSpecific(t *testing.T) {
	o := validOrder()
	o.Total = decimal.NewFromInt(1)

	assert.ErrorIs(t, o.Validate(), ErrTotalMismatch)
}

func TestValidate_SubCentPrices(t *testing.T) {
	o := validOrder()
	o.Items = []OrderItem{{Name: "Arandela", Quantity: 2, Price: decimal.RequireFromString("0.125")}}
	o.Shipping.Price = decimal.Zero
	o.Total = decimal.RequireFromString("0.25")

	assert.NoError(t, o.Validate())
}

func TestValidate_TotalWithinCent(t *testing.T) {
	o := validOrder()
	o.Total = decimal.RequireFromString("2500.004")

	assert.NoError(t, o.Validate())

	o.Total = decimal.RequireFromString("2500.02")
	assert.ErrorIs(t, o.Validate(), ErrTotalMismatch)
}

func TestPlacedEvent(t *testing.T) {
	o := validOrder()

	ev := o.PlacedEvent()

	assert.Equal(t, o.ID.String(), ev.OrderID)
	assert.Equal(t, "ana@example.com", ev.CustomerEmail)
	assert.True(t, ev.Total.Equal(decimal.NewFromInt(2500)))
	assert.Len(t, ev.Items, 1)
}
