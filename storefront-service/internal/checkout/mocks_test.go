package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/nehueninos/nhnproparts/storefront-service/internal/domain"
	"github.com/shopspring/decimal"
)

// MockQuoter returns the same options for any postal code except "0000".
type MockQuoter struct {
	Options []domain.ShippingOption
	Calls   []string
}

func (m *MockQuoter) Quote(postalCode string) []domain.ShippingOption {
	m.Calls = append(m.Calls, postalCode)
	if postalCode == "0000" {
		return nil
	}
	return m.Options
}

func (m *MockQuoter) Province(postalCode string) (string, bool) {
	if postalCode == "0000" {
		return "", false
	}
	return "Formosa", true
}

// MockNotifier records dispatched orders and answers with a closed channel
// holding one result.
type MockNotifier struct {
	Dispatched []domain.OrderPayload
	Err        error
}

func (m *MockNotifier) Dispatch(_ context.Context, order domain.OrderPayload) <-chan domain.DeliveryResult {
	m.Dispatched = append(m.Dispatched, order)
	ch := make(chan domain.DeliveryResult, 1)
	ch <- domain.DeliveryResult{Sink: "mock", OrderID: order.OrderID, Err: m.Err}
	close(ch)
	return ch
}

type MockLinker struct {
	Err error
}

func (m *MockLinker) OrderLink(order domain.OrderPayload) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return "https://wa.me/5491100000000?text=" + order.OrderID, nil
}

var errLinkFailed = errors.New("link failed")

var fixedNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func testOptions() []domain.ShippingOption {
	return []domain.ShippingOption{
		{ID: domain.ShippingLocalPickup, Label: "Retirar por local", Price: decimal.Zero, Days: "Disponible hoy"},
		{ID: domain.ShippingBranchPickup, Label: "Correo Argentino - Retiro por sucursal", Price: decimal.NewFromInt(500), Days: "3 días hábiles"},
		{ID: domain.ShippingHomeDelivery, Label: "Correo Argentino - Envío a domicilio", Price: decimal.NewFromInt(725), Days: "3 días hábiles"},
	}
}

func testProduct(id string, price int64) domain.Product {
	return domain.Product{ID: id, Name: "Filtro " + id, Category: "Filtros", Price: decimal.NewFromInt(price), Stock: 10}
}

func validForm() domain.ContactForm {
	return domain.ContactForm{
		Name:    "Juan Pérez",
		Email:   "juan@example.com",
		Phone:   "3704 123456",
		Address: "Belgrano 123, Formosa",
	}
}

type testFlow struct {
	*Flow
	quoter   *MockQuoter
	notifier *MockNotifier
	linker   *MockLinker
}

func newTestFlow() testFlow {
	q := &MockQuoter{Options: testOptions()}
	n := &MockNotifier{}
	l := &MockLinker{}
	f := NewFlow(domain.NewSession("sess-1", fixedNow), q, n, l)
	f.newID = func() string { return "0b5e2a7c-1111-2222-3333-444455556666" }
	f.now = func() time.Time { return fixedNow }
	return testFlow{Flow: f, quoter: q, notifier: n, linker: l}
}
